// Package valuation implements the compound-interest projection used for
// investment records: annual-rate selection, conversion to an equivalent
// daily rate, and future-value projection.
package valuation

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"moneta/internal/models"
)

// compoundingPeriods is the calendar-day compounding convention. Every
// projection in the service uses 365 periods per year.
const compoundingPeriods = 365

// resultScale is the number of decimal places projected values are rounded
// to, half-up.
const resultScale = 4

// AnnualRate selects the authoritative annual rate for an investment.
// A contractual rate on the investment type wins; otherwise the currency
// benchmark rate applies. Exactly one source is authoritative.
func AnnualRate(invType models.InvestmentType, currency models.CurrencyBenchmark) float64 {
	if rate, ok := invType.FixedRate(); ok {
		return rate
	}
	return currency.AnnualRate()
}

// DailyRate converts an annual rate to the equivalent daily compounding
// rate: (1 + annual)^(1/365) - 1.
func DailyRate(annual float64) float64 {
	return math.Pow(1+annual, 1.0/compoundingPeriods) - 1
}

// FutureValue projects a principal forward by the given number of days of
// daily compounding at the given annual rate. The result is rounded to 4
// decimal places. Negative day counts are treated as zero.
func FutureValue(principal decimal.Decimal, annual float64, days int) decimal.Decimal {
	if days < 0 {
		days = 0
	}
	growth := math.Pow(1+DailyRate(annual), float64(days))
	return principal.Mul(decimal.NewFromFloat(growth)).Round(resultScale)
}

// DaysSince returns the number of whole days between the record date and
// now, clamped to zero for dates in the future.
func DaysSince(date, now time.Time) int {
	days := int(models.NormalizeDate(now).Sub(models.NormalizeDate(date)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Revalue recomputes the derived fields of an investment in place so that
// DaysInvested and CurrentValue are consistent with Date and now.
func Revalue(inv *models.Investment, now time.Time) {
	annual := AnnualRate(inv.InvestmentType, inv.Currency)
	inv.DaysInvested = DaysSince(inv.Date, now)
	inv.CurrentValue = FutureValue(inv.Value, annual, inv.DaysInvested)
}
