package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"moneta/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an active user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithRole(t, db, email, models.RoleUser)
}

// CreateTestAdmin creates an active user with the ADMIN role.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("admin%d@test.com", nextID())
	return CreateTestUserWithRole(t, db, email, models.RoleAdmin)
}

// CreateTestUserWithRole creates a user with the given email and role.
func CreateTestUserWithRole(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:     fmt.Sprintf("Test User %d", nextID()),
		Email:    email,
		Password: string(hash),
		Role:     role,
		Active:   true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// recordDate returns a normalized past date offset by n days so fixtures in
// the same test never collide on the duplicate keys unless they mean to.
func recordDate(n int64) time.Time {
	return models.NormalizeDate(time.Now().AddDate(0, 0, -int(n)))
}

// CreateTestCost creates an active cost of the given type for the user.
func CreateTestCost(t *testing.T, db *gorm.DB, userID string, costType models.CostType) *models.Cost {
	t.Helper()

	n := nextID()
	cost := &models.Cost{
		RecordBase: models.RecordBase{
			Value:    decimal.NewFromInt(n * 10),
			Currency: models.CurrencyBRL,
			Date:     recordDate(n),
			Active:   true,
			Kind:     models.RecordKindCost,
			UserID:   userID,
		},
		CostType:    costType,
		Observation: fmt.Sprintf("test cost %d", n),
	}
	if err := db.Create(cost).Error; err != nil {
		t.Fatalf("failed to create test cost: %v", err)
	}
	return cost
}

// CreateTestExpense creates an active expense of the given type for the user.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID string, expenseType models.ExpenseType) *models.Expense {
	t.Helper()

	n := nextID()
	expense := &models.Expense{
		RecordBase: models.RecordBase{
			Value:    decimal.NewFromInt(n * 10),
			Currency: models.CurrencyBRL,
			Date:     recordDate(n),
			Active:   true,
			Kind:     models.RecordKindExpense,
			UserID:   userID,
		},
		ExpenseType:   expenseType,
		PaymentMethod: "CREDIT_CARD",
		IsFixed:       false,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestInvestment creates an active investment of the given type for the
// user. CurrentValue starts equal to the principal; the valuation paths are
// what move it.
func CreateTestInvestment(t *testing.T, db *gorm.DB, userID string, invType models.InvestmentType) *models.Investment {
	t.Helper()

	n := nextID()
	value := decimal.NewFromInt(1000)
	inv := &models.Investment{
		RecordBase: models.RecordBase{
			Value:    value,
			Currency: models.CurrencyBRL,
			Date:     recordDate(n),
			Active:   true,
			Kind:     models.RecordKindInvestment,
			UserID:   userID,
		},
		InvestmentType: invType,
		ActionQuantity: 1,
		BrokerName:     fmt.Sprintf("Broker %d", n),
		CurrentValue:   value,
		DaysInvested:   0,
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("failed to create test investment: %v", err)
	}
	return inv
}
