package models

import "github.com/shopspring/decimal"

// InvestmentType categorizes an investment position. Some types carry a
// fixed annual rate that overrides the currency benchmark rate.
type InvestmentType string

const (
	InvestmentTypeStock       InvestmentType = "STOCK"
	InvestmentTypeFund        InvestmentType = "FUND"
	InvestmentTypeCrypto      InvestmentType = "CRYPTO"
	InvestmentTypeFixedIncome InvestmentType = "FIXED_INCOME"
	InvestmentTypeTreasury    InvestmentType = "TREASURY"
)

// fixedRates holds the annual rates for investment types that compound at
// a contractual rate instead of the currency benchmark.
var fixedRates = map[InvestmentType]float64{
	InvestmentTypeFixedIncome: 0.08,
	InvestmentTypeTreasury:    0.10,
}

// Valid reports whether t is a known investment type.
func (t InvestmentType) Valid() bool {
	switch t {
	case InvestmentTypeStock, InvestmentTypeFund, InvestmentTypeCrypto,
		InvestmentTypeFixedIncome, InvestmentTypeTreasury:
		return true
	}
	return false
}

// FixedRate returns the contractual annual rate for the type, if any.
func (t InvestmentType) FixedRate() (float64, bool) {
	rate, ok := fixedRates[t]
	return rate, ok
}

// Singleton reports whether the type represents a singleton position per
// broker. Singleton types reject duplicate submissions for the same broker;
// the remaining types model recurring contributions and may repeat.
func (t InvestmentType) Singleton() bool {
	return t == InvestmentTypeStock || t == InvestmentTypeCrypto
}

// Investment represents an investment position. CurrentValue and
// DaysInvested are derived caches kept consistent with Date and the
// applicable annual rate; they are recomputed on every write and by the
// daily valuation job. Version guards the batch recompute against
// concurrent per-record updates.
type Investment struct {
	RecordBase
	InvestmentType InvestmentType  `gorm:"type:varchar(20);not null;index" json:"investment_type"`
	ActionQuantity int             `gorm:"not null;default:1" json:"action_quantity"`
	BrokerName     string          `gorm:"not null" json:"broker_name"`
	CurrentValue   decimal.Decimal `gorm:"type:numeric(19,4);not null" json:"current_value"`
	DaysInvested   int             `gorm:"not null;default:0" json:"days_invested"`
	Version        int             `gorm:"not null;default:0" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
