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

// CostInput carries the business fields of a cost create or full-update
// request.
type CostInput struct {
	Value       decimal.Decimal
	Currency    models.CurrencyBenchmark
	Date        time.Time
	CostType    models.CostType
	Observation string
}

// CostPatch carries the optional fields of a partial update. Nil fields
// are left untouched.
type CostPatch struct {
	Value       *decimal.Decimal
	Currency    *models.CurrencyBenchmark
	Date        *time.Time
	CostType    *models.CostType
	Observation *string
}

// costService handles cost-record business logic.
type costService struct {
	db *gorm.DB
}

// NewCostService creates a new CostServicer.
func NewCostService(db *gorm.DB) CostServicer {
	return &costService{db: db}
}

func validateCostInput(in CostInput) error {
	if err := validateRecordBase(in.Value, in.Currency, in.Date); err != nil {
		return err
	}
	if !in.CostType.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown cost type")
	}
	if in.Observation == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "observation is required")
	}
	return nil
}

// Create inserts a new active cost for the principal. The duplicate key
// for costs is (owner, cost type, date); value and observation do not
// participate.
func (s *costService) Create(p Principal, in CostInput) (*models.Cost, error) {
	if err := validateCostInput(in); err != nil {
		return nil, err
	}

	date := models.NormalizeDate(in.Date)

	var count int64
	if err := s.db.Model(&models.Cost{}).
		Where("user_id = ? AND cost_type = ? AND date = ?", p.ID, in.CostType, date).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCost
	}

	cost := &models.Cost{
		RecordBase: models.RecordBase{
			Value:    in.Value,
			Currency: in.Currency,
			Date:     date,
			Active:   true,
			Kind:     models.RecordKindCost,
			UserID:   p.ID,
		},
		CostType:    in.CostType,
		Observation: in.Observation,
	}

	if err := s.db.Create(cost).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return cost, nil
}

// GetByID returns a cost by id, active or not, for its owner or an admin.
func (s *costService) GetByID(p Principal, id string) (*models.Cost, error) {
	cost, err := s.findCost(id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(p, cost.UserID); err != nil {
		return nil, err
	}
	return cost, nil
}

// ListActive returns a page of the principal's active costs.
func (s *costService) ListActive(p Principal, page pagination.PageRequest) (*pagination.PageResponse[models.Cost], error) {
	page.Defaults()

	base := s.db.Model(&models.Cost{}).Where("user_id = ? AND active = ?", p.ID, true)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var costs []models.Cost
	if err := base.Order("date DESC").Scopes(pagination.Paginate(page)).Find(&costs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(costs, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// Update replaces every business field of a cost. A request identical to
// the stored record in every field is rejected as a no-op resubmission.
func (s *costService) Update(p Principal, id string, in CostInput) (*models.Cost, error) {
	cost, err := s.findCost(id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(p, cost.UserID); err != nil {
		return nil, err
	}
	if err := validateCostInput(in); err != nil {
		return nil, err
	}
	if costUnchanged(cost, in) {
		return nil, apperrors.ErrNoChange
	}

	cost.Value = in.Value
	cost.Currency = in.Currency
	cost.Date = models.NormalizeDate(in.Date)
	cost.CostType = in.CostType
	cost.Observation = in.Observation

	if err := s.db.Save(cost).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return cost, nil
}

// Patch applies the provided fields of a partial update. Unlike Update,
// an effectively unchanged patch is accepted.
func (s *costService) Patch(p Principal, id string, in CostPatch) (*models.Cost, error) {
	cost, err := s.findCost(id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(p, cost.UserID); err != nil {
		return nil, err
	}

	if in.Value != nil {
		cost.Value = *in.Value
	}
	if in.Currency != nil {
		cost.Currency = *in.Currency
	}
	if in.Date != nil {
		cost.Date = models.NormalizeDate(*in.Date)
	}
	if in.CostType != nil {
		cost.CostType = *in.CostType
	}
	if in.Observation != nil {
		cost.Observation = *in.Observation
	}

	if err := validateCostInput(costProjection(cost)); err != nil {
		return nil, err
	}

	if err := s.db.Save(cost).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return cost, nil
}

// Activate transitions an inactive cost back to active.
func (s *costService) Activate(p Principal, id string) (*models.Cost, error) {
	return s.setActive(p, id, true)
}

// Deactivate soft-deletes a cost. The row is never physically removed.
func (s *costService) Deactivate(p Principal, id string) (*models.Cost, error) {
	return s.setActive(p, id, false)
}

func (s *costService) setActive(p Principal, id string, active bool) (*models.Cost, error) {
	cost, err := s.findCost(id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(p, cost.UserID); err != nil {
		return nil, err
	}
	if cost.Active == active {
		if active {
			return nil, apperrors.ErrAlreadyActive
		}
		return nil, apperrors.ErrAlreadyInactive
	}

	cost.Active = active
	if err := s.db.Model(cost).Update("active", active).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return cost, nil
}

func (s *costService) findCost(id string) (*models.Cost, error) {
	var cost models.Cost
	if err := s.db.First(&cost, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCostNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &cost, nil
}

// costProjection rebuilds the request shape from a stored cost so that an
// incoming full update can be compared field-by-field against it.
func costProjection(c *models.Cost) CostInput {
	return CostInput{
		Value:       c.Value,
		Currency:    c.Currency,
		Date:        c.Date,
		CostType:    c.CostType,
		Observation: c.Observation,
	}
}

// costUnchanged reports whether the incoming request matches the stored
// record in every business field. Decimal comparison is scale-insensitive.
func costUnchanged(c *models.Cost, in CostInput) bool {
	stored := costProjection(c)
	return stored.Value.Equal(in.Value) &&
		stored.Currency == in.Currency &&
		stored.Date.Equal(models.NormalizeDate(in.Date)) &&
		stored.CostType == in.CostType &&
		stored.Observation == in.Observation
}
