package models

// ExpenseType categorizes a recurring or planned expense.
type ExpenseType string

const (
	ExpenseTypeRent         ExpenseType = "RENT"
	ExpenseTypeUtilities    ExpenseType = "UTILITIES"
	ExpenseTypeGroceries    ExpenseType = "GROCERIES"
	ExpenseTypeSubscription ExpenseType = "SUBSCRIPTION"
	ExpenseTypeInsurance    ExpenseType = "INSURANCE"
	ExpenseTypeTravel       ExpenseType = "TRAVEL"
	ExpenseTypeOther        ExpenseType = "OTHER"
)

// Valid reports whether t is a known expense type.
func (t ExpenseType) Valid() bool {
	switch t {
	case ExpenseTypeRent, ExpenseTypeUtilities, ExpenseTypeGroceries,
		ExpenseTypeSubscription, ExpenseTypeInsurance, ExpenseTypeTravel,
		ExpenseTypeOther:
		return true
	}
	return false
}

// Expense represents a planned or recurring outgoing payment. The duplicate
// key for expenses is (user, expense type, date, value, payment method);
// the backing unique index lives in the SQL migrations.
type Expense struct {
	RecordBase
	ExpenseType   ExpenseType `gorm:"type:varchar(20);not null;index" json:"expense_type"`
	PaymentMethod string      `gorm:"not null" json:"payment_method"`
	IsFixed       bool        `gorm:"not null;default:false" json:"is_fixed"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
