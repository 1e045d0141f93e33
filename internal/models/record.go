package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordKind discriminates the three financial record types. It is set
// once at creation and never changes.
type RecordKind string

const (
	RecordKindCost       RecordKind = "COST"
	RecordKindExpense    RecordKind = "EXPENSE"
	RecordKindInvestment RecordKind = "INVESTMENT"
)

// RecordBase holds the fields shared by every financial record.
//
// UserID is the owning user and is immutable after creation. Active is the
// soft-delete flag: inactive records are excluded from listings but stay
// retrievable by id for authorized principals.
type RecordBase struct {
	Base
	Value    decimal.Decimal   `gorm:"type:numeric(19,4);not null" json:"value"`
	Currency CurrencyBenchmark `gorm:"type:varchar(3);not null" json:"currency"`
	Date     time.Time         `gorm:"not null" json:"date"`
	Active   bool              `gorm:"not null;default:true" json:"active"`
	Kind     RecordKind        `gorm:"type:varchar(12);not null" json:"kind"`
	UserID   string            `gorm:"type:uuid;not null;index" json:"user_id"`
}

// NormalizeDate truncates a record date to midnight UTC so that date
// equality (duplicate keys, change detection) ignores the time component.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
