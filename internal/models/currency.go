package models

// CurrencyBenchmark identifies the currency a record is denominated in,
// together with the reference interest benchmark tied to that currency.
type CurrencyBenchmark string

const (
	CurrencyBRL CurrencyBenchmark = "BRL"
	CurrencyUSD CurrencyBenchmark = "USD"
	CurrencyEUR CurrencyBenchmark = "EUR"
)

// benchmark holds the static per-currency reference data.
type benchmark struct {
	Name       string
	AnnualRate float64
}

// benchmarks maps each supported currency to its benchmark name and
// annual reference rate.
var benchmarks = map[CurrencyBenchmark]benchmark{
	CurrencyBRL: {Name: "CDI", AnnualRate: 0.1365},
	CurrencyUSD: {Name: "SOFR", AnnualRate: 0.0525},
	CurrencyEUR: {Name: "ESTR", AnnualRate: 0.04},
}

// Valid reports whether c is a supported currency.
func (c CurrencyBenchmark) Valid() bool {
	_, ok := benchmarks[c]
	return ok
}

// BenchmarkName returns the display name of the currency's reference
// benchmark, e.g. "CDI" for BRL.
func (c CurrencyBenchmark) BenchmarkName() string {
	return benchmarks[c].Name
}

// AnnualRate returns the annual reference rate for the currency.
// Unknown currencies return 0.
func (c CurrencyBenchmark) AnnualRate() float64 {
	return benchmarks[c].AnnualRate
}
