package services

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
)

// Principal is the authenticated actor performing an operation. It is
// passed explicitly to every guarded service method; services never read
// ambient authentication state.
type Principal struct {
	ID   string
	Role models.Role
}

// IsAdmin reports whether the principal has the admin role.
func (p Principal) IsAdmin() bool { return p.Role == models.RoleAdmin }

// authorizeOwner is the ownership guard: the operation proceeds only for
// an admin or the record's owner. Pure check, no side effects.
func authorizeOwner(p Principal, ownerID string) error {
	if p.IsAdmin() || p.ID == ownerID {
		return nil
	}
	return apperrors.ErrForbidden
}

// validateRecordBase enforces the invariants shared by every record kind:
// a strictly positive value, a supported currency, and a date that is not
// in the future.
func validateRecordBase(value decimal.Decimal, currency models.CurrencyBenchmark, date time.Time) error {
	if !value.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "value must be positive")
	}
	if !currency.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported currency")
	}
	if models.NormalizeDate(date).After(models.NormalizeDate(time.Now())) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "date cannot be in the future")
	}
	return nil
}
