package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/pagination"
)

// ExpenseInput carries the business fields of an expense create or
// full-update request.
type ExpenseInput struct {
	Value         decimal.Decimal
	Currency      models.CurrencyBenchmark
	Date          time.Time
	ExpenseType   models.ExpenseType
	PaymentMethod string
	IsFixed       bool
}

// ExpensePatch carries the optional fields of a partial update.
type ExpensePatch struct {
	Value         *decimal.Decimal
	Currency      *models.CurrencyBenchmark
	Date          *time.Time
	ExpenseType   *models.ExpenseType
	PaymentMethod *string
	IsFixed       *bool
}

// expenseService handles expense-record business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

func validateExpenseInput(in ExpenseInput) error {
	if err := validateRecordBase(in.Value, in.Currency, in.Date); err != nil {
		return err
	}
	if !in.ExpenseType.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown expense type")
	}
	if in.PaymentMethod == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "payment method is required")
	}
	return nil
}

// Create inserts a new active expense for the principal. An expense is a
// duplicate only when type, date, value and payment method all match an
// existing record of the same owner.
func (s *expenseService) Create(p Principal, in ExpenseInput) (*models.Expense, error) {
	if err := validateExpenseInput(in); err != nil {
		return nil, err
	}

	date := models.NormalizeDate(in.Date)

	var count int64
	if err := s.db.Model(&models.Expense{}).
		Where("user_id = ? AND expense_type = ? AND date = ? AND value = ? AND payment_method = ?",
			p.ID, in.ExpenseType, date, in.Value, in.PaymentMethod).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateExpense
	}

	expense := &models.Expense{
		RecordBase: models.RecordBase{
			Value:    in.Value,
			Currency: in.Currency,
			Date:     date,
			Active:   true,
			Kind:     models.RecordKindExpense,
			UserID:   p.ID,
		},
		ExpenseType:   in.ExpenseType,
		PaymentMethod: in.PaymentMethod,
		IsFixed:       in.IsFixed,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// GetByID returns an expense by id, active or not, for its owner or an admin.
func (s *expenseService) GetByID(p Principal, id string) (*models.Expense, error) {
	expense, err := s.findExpense(id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(p, expense.UserID); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListActive returns a page of the principal's active expenses.
func (s *expenseService) ListActive(p Principal, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{}).Where("user_id = ? AND active = ?", p.ID, true)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Order("date DESC").Scopes(pagination.Paginate(page)).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// Update replaces every business field of an expense, rejecting requests
// identical to the stored record.
func (s *expenseService) Update(p Principal, id string, in ExpenseInput) (*models.Expense, error) {
	expense, err := s.findExpense(id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(p, expense.UserID); err != nil {
		return nil, err
	}
	if err := validateExpenseInput(in); err != nil {
		return nil, err
	}
	if expenseUnchanged(expense, in) {
		return nil, apperrors.ErrNoChange
	}

	expense.Value = in.Value
	expense.Currency = in.Currency
	expense.Date = models.NormalizeDate(in.Date)
	expense.ExpenseType = in.ExpenseType
	expense.PaymentMethod = in.PaymentMethod
	expense.IsFixed = in.IsFixed

	if err := s.db.Save(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// Patch applies the provided fields of a partial update.
func (s *expenseService) Patch(p Principal, id string, in ExpensePatch) (*models.Expense, error) {
	expense, err := s.findExpense(id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(p, expense.UserID); err != nil {
		return nil, err
	}

	if in.Value != nil {
		expense.Value = *in.Value
	}
	if in.Currency != nil {
		expense.Currency = *in.Currency
	}
	if in.Date != nil {
		expense.Date = models.NormalizeDate(*in.Date)
	}
	if in.ExpenseType != nil {
		expense.ExpenseType = *in.ExpenseType
	}
	if in.PaymentMethod != nil {
		expense.PaymentMethod = *in.PaymentMethod
	}
	if in.IsFixed != nil {
		expense.IsFixed = *in.IsFixed
	}

	if err := validateExpenseInput(expenseProjection(expense)); err != nil {
		return nil, err
	}

	if err := s.db.Save(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// Activate transitions an inactive expense back to active.
func (s *expenseService) Activate(p Principal, id string) (*models.Expense, error) {
	return s.setActive(p, id, true)
}

// Deactivate soft-deletes an expense.
func (s *expenseService) Deactivate(p Principal, id string) (*models.Expense, error) {
	return s.setActive(p, id, false)
}

func (s *expenseService) setActive(p Principal, id string, active bool) (*models.Expense, error) {
	expense, err := s.findExpense(id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(p, expense.UserID); err != nil {
		return nil, err
	}
	if expense.Active == active {
		if active {
			return nil, apperrors.ErrAlreadyActive
		}
		return nil, apperrors.ErrAlreadyInactive
	}

	expense.Active = active
	if err := s.db.Model(expense).Update("active", active).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

func (s *expenseService) findExpense(id string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.First(&expense, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// expenseProjection rebuilds the request shape from a stored expense.
func expenseProjection(e *models.Expense) ExpenseInput {
	return ExpenseInput{
		Value:         e.Value,
		Currency:      e.Currency,
		Date:          e.Date,
		ExpenseType:   e.ExpenseType,
		PaymentMethod: e.PaymentMethod,
		IsFixed:       e.IsFixed,
	}
}

// expenseUnchanged reports whether the incoming request matches the stored
// record in every business field.
func expenseUnchanged(e *models.Expense, in ExpenseInput) bool {
	stored := expenseProjection(e)
	return stored.Value.Equal(in.Value) &&
		stored.Currency == in.Currency &&
		stored.Date.Equal(models.NormalizeDate(in.Date)) &&
		stored.ExpenseType == in.ExpenseType &&
		stored.PaymentMethod == in.PaymentMethod &&
		stored.IsFixed == in.IsFixed
}
