package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/logger"
	"moneta/internal/models"
	"moneta/internal/pagination"
	"moneta/internal/valuation"
)

// InvestmentInput carries the business fields of an investment create or
// full-update request.
type InvestmentInput struct {
	Value          decimal.Decimal
	Currency       models.CurrencyBenchmark
	Date           time.Time
	InvestmentType models.InvestmentType
	ActionQuantity int
	BrokerName     string
}

// InvestmentPatch carries the optional fields of a partial update.
type InvestmentPatch struct {
	Value          *decimal.Decimal
	Currency       *models.CurrencyBenchmark
	Date           *time.Time
	InvestmentType *models.InvestmentType
	ActionQuantity *int
	BrokerName     *string
}

// Simulation is the read-only result of projecting an investment over a
// requested horizon. Nothing is persisted.
type Simulation struct {
	InvestmentID   string          `json:"investment_id"`
	Days           int             `json:"days"`
	AnnualRate     float64         `json:"annual_rate"`
	ProjectedValue decimal.Decimal `json:"projected_value"`
}

// RecomputeReport summarizes a batch valuation run.
type RecomputeReport struct {
	Total   int `json:"total"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// investmentService handles investment-record business logic.
type investmentService struct {
	db *gorm.DB
}

// NewInvestmentService creates a new InvestmentServicer.
func NewInvestmentService(db *gorm.DB) InvestmentServicer {
	return &investmentService{db: db}
}

func validateInvestmentInput(in InvestmentInput) error {
	if err := validateRecordBase(in.Value, in.Currency, in.Date); err != nil {
		return err
	}
	if !in.InvestmentType.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown investment type")
	}
	if in.ActionQuantity < 1 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "action quantity must be at least 1")
	}
	if in.BrokerName == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "broker name is required")
	}
	return nil
}

// Create inserts a new active investment for the principal with its derived
// fields already computed. STOCK and CRYPTO positions are singletons per
// (owner, type, broker); FUND, FIXED_INCOME and TREASURY represent
// recurring contributions and may repeat.
func (s *investmentService) Create(p Principal, in InvestmentInput) (*models.Investment, error) {
	if err := validateInvestmentInput(in); err != nil {
		return nil, err
	}

	if in.InvestmentType.Singleton() {
		var count int64
		if err := s.db.Model(&models.Investment{}).
			Where("user_id = ? AND investment_type = ? AND broker_name = ?",
				p.ID, in.InvestmentType, in.BrokerName).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.ErrDuplicateInvestment
		}
	}

	inv := &models.Investment{
		RecordBase: models.RecordBase{
			Value:    in.Value,
			Currency: in.Currency,
			Date:     models.NormalizeDate(in.Date),
			Active:   true,
			Kind:     models.RecordKindInvestment,
			UserID:   p.ID,
		},
		InvestmentType: in.InvestmentType,
		ActionQuantity: in.ActionQuantity,
		BrokerName:     in.BrokerName,
	}
	valuation.Revalue(inv, time.Now())

	if err := s.db.Create(inv).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return inv, nil
}

// GetByID returns an investment by id, active or not, for its owner or an
// admin.
func (s *investmentService) GetByID(p Principal, id string) (*models.Investment, error) {
	inv, err := s.findInvestment(id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(p, inv.UserID); err != nil {
		return nil, err
	}
	return inv, nil
}

// ListActive returns a page of the principal's active investments.
func (s *investmentService) ListActive(p Principal, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error) {
	page.Defaults()

	base := s.db.Model(&models.Investment{}).Where("user_id = ? AND active = ?", p.ID, true)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var investments []models.Investment
	if err := base.Order("date DESC").Scopes(pagination.Paginate(page)).Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(investments, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// Update replaces every business field of an investment and recomputes the
// derived valuation fields. Requests identical to the stored record are
// rejected.
func (s *investmentService) Update(p Principal, id string, in InvestmentInput) (*models.Investment, error) {
	inv, err := s.findInvestment(id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(p, inv.UserID); err != nil {
		return nil, err
	}
	if err := validateInvestmentInput(in); err != nil {
		return nil, err
	}
	if investmentUnchanged(inv, in) {
		return nil, apperrors.ErrNoChange
	}

	inv.Value = in.Value
	inv.Currency = in.Currency
	inv.Date = models.NormalizeDate(in.Date)
	inv.InvestmentType = in.InvestmentType
	inv.ActionQuantity = in.ActionQuantity
	inv.BrokerName = in.BrokerName
	valuation.Revalue(inv, time.Now())
	inv.Version++

	if err := s.db.Save(inv).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return inv, nil
}

// Patch applies the provided fields of a partial update and recomputes the
// derived valuation fields.
func (s *investmentService) Patch(p Principal, id string, in InvestmentPatch) (*models.Investment, error) {
	inv, err := s.findInvestment(id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(p, inv.UserID); err != nil {
		return nil, err
	}

	if in.Value != nil {
		inv.Value = *in.Value
	}
	if in.Currency != nil {
		inv.Currency = *in.Currency
	}
	if in.Date != nil {
		inv.Date = models.NormalizeDate(*in.Date)
	}
	if in.InvestmentType != nil {
		inv.InvestmentType = *in.InvestmentType
	}
	if in.ActionQuantity != nil {
		inv.ActionQuantity = *in.ActionQuantity
	}
	if in.BrokerName != nil {
		inv.BrokerName = *in.BrokerName
	}

	if err := validateInvestmentInput(investmentProjection(inv)); err != nil {
		return nil, err
	}

	valuation.Revalue(inv, time.Now())
	inv.Version++

	if err := s.db.Save(inv).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return inv, nil
}

// Activate transitions an inactive investment back to active.
func (s *investmentService) Activate(p Principal, id string) (*models.Investment, error) {
	return s.setActive(p, id, true)
}

// Deactivate soft-deletes an investment. The daily valuation job keeps
// recomputing inactive positions so reactivation returns current numbers.
func (s *investmentService) Deactivate(p Principal, id string) (*models.Investment, error) {
	return s.setActive(p, id, false)
}

func (s *investmentService) setActive(p Principal, id string, active bool) (*models.Investment, error) {
	inv, err := s.findInvestment(id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(p, inv.UserID); err != nil {
		return nil, err
	}
	if inv.Active == active {
		if active {
			return nil, apperrors.ErrAlreadyActive
		}
		return nil, apperrors.ErrAlreadyInactive
	}

	inv.Active = active
	if err := s.db.Model(inv).Update("active", active).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return inv, nil
}

// Simulate projects an investment over the requested horizon instead of
// elapsed time. It is read-only: the stored record is never touched.
func (s *investmentService) Simulate(p Principal, id string, days int) (*Simulation, error) {
	inv, err := s.findInvestment(id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(p, inv.UserID); err != nil {
		return nil, err
	}
	if days <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "days must be a positive integer")
	}

	annual := valuation.AnnualRate(inv.InvestmentType, inv.Currency)
	return &Simulation{
		InvestmentID:   inv.ID,
		Days:           days,
		AnnualRate:     annual,
		ProjectedValue: valuation.FutureValue(inv.Value, annual, days),
	}, nil
}

// RecomputeValuations refreshes DaysInvested and CurrentValue for every
// investment in storage, regardless of owner or active flag. It is a
// maintenance entry point invoked by the daily scheduler, not a user
// action, so it takes no principal.
//
// Each record is written with an optimistic version check: a record updated
// concurrently by its owner since the batch read is skipped and logged, the
// user's write wins. Per-record failures are logged and do not abort the
// rest of the batch. The run is idempotent and safe to re-run.
func (s *investmentService) RecomputeValuations() (*RecomputeReport, error) {
	var investments []models.Investment
	if err := s.db.Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := time.Now()
	log := logger.Get()
	report := &RecomputeReport{Total: len(investments)}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range investments {
			inv := &investments[i]
			valuation.Revalue(inv, now)

			res := tx.Model(&models.Investment{}).
				Where("id = ? AND version = ?", inv.ID, inv.Version).
				Updates(map[string]interface{}{
					"days_invested": inv.DaysInvested,
					"current_value": inv.CurrentValue,
					"version":       inv.Version + 1,
				})
			if res.Error != nil {
				report.Failed++
				log.Errorw("valuation update failed", "investment_id", inv.ID, "error", res.Error)
				continue
			}
			if res.RowsAffected == 0 {
				// Concurrent owner update since the batch read; their write wins.
				report.Skipped++
				log.Warnw("valuation update skipped on version conflict", "investment_id", inv.ID)
				continue
			}
			report.Updated++
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return report, nil
}

func (s *investmentService) findInvestment(id string) (*models.Investment, error) {
	var inv models.Investment
	if err := s.db.First(&inv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &inv, nil
}

// investmentProjection rebuilds the request shape from a stored investment.
// Derived fields do not participate in change detection.
func investmentProjection(i *models.Investment) InvestmentInput {
	return InvestmentInput{
		Value:          i.Value,
		Currency:       i.Currency,
		Date:           i.Date,
		InvestmentType: i.InvestmentType,
		ActionQuantity: i.ActionQuantity,
		BrokerName:     i.BrokerName,
	}
}

// investmentUnchanged reports whether the incoming request matches the
// stored record in every business field.
func investmentUnchanged(i *models.Investment, in InvestmentInput) bool {
	stored := investmentProjection(i)
	return stored.Value.Equal(in.Value) &&
		stored.Currency == in.Currency &&
		stored.Date.Equal(models.NormalizeDate(in.Date)) &&
		stored.InvestmentType == in.InvestmentType &&
		stored.ActionQuantity == in.ActionQuantity &&
		stored.BrokerName == in.BrokerName
}
