package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"moneta/internal/models"
	"moneta/internal/pagination"
	"moneta/internal/testutil"
)

func validExpenseInput() ExpenseInput {
	return ExpenseInput{
		Value:         decimal.RequireFromString("1800.00"),
		Currency:      models.CurrencyBRL,
		Date:          time.Now().AddDate(0, 0, -5),
		ExpenseType:   models.ExpenseTypeRent,
		PaymentMethod: "BANK_TRANSFER",
		IsFixed:       true,
	}
}

func TestCreateExpense(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		expense, err := svc.Create(testPrincipal(user), validExpenseInput())
		testutil.AssertNoError(t, err)

		if expense.ID == "" {
			t.Fatal("expected non-empty expense ID")
		}
		if !expense.Active {
			t.Error("expected new expense to be active")
		}
		if !expense.IsFixed {
			t.Error("expected fixed expense")
		}
		if expense.Kind != models.RecordKindExpense {
			t.Errorf("expected kind EXPENSE, got %s", expense.Kind)
		}
	})

	t.Run("exact_duplicate_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		in := validExpenseInput()
		_, err := svc.Create(testPrincipal(user), in)
		testutil.AssertNoError(t, err)

		_, err = svc.Create(testPrincipal(user), in)
		testutil.AssertAppError(t, err, "DUPLICATE_EXPENSE")
	})

	t.Run("one_key_field_off_allowed", func(t *testing.T) {
		// Every field of the composite key participates: changing any one
		// of type, date, value or payment method makes a distinct expense.
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Create(testPrincipal(user), validExpenseInput())
		testutil.AssertNoError(t, err)

		tests := []struct {
			name   string
			mutate func(*ExpenseInput)
		}{
			{"different_type", func(in *ExpenseInput) { in.ExpenseType = models.ExpenseTypeUtilities }},
			{"different_date", func(in *ExpenseInput) { in.Date = in.Date.AddDate(0, 0, -1) }},
			{"different_value", func(in *ExpenseInput) { in.Value = decimal.RequireFromString("1850.00") }},
			{"different_payment_method", func(in *ExpenseInput) { in.PaymentMethod = "PIX" }},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				in := validExpenseInput()
				tc.mutate(&in)
				_, err := svc.Create(testPrincipal(user), in)
				testutil.AssertNoError(t, err)
			})
		}
	})

	t.Run("is_fixed_not_part_of_key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		in := validExpenseInput()
		_, err := svc.Create(testPrincipal(user), in)
		testutil.AssertNoError(t, err)

		in.IsFixed = false
		_, err = svc.Create(testPrincipal(user), in)
		testutil.AssertAppError(t, err, "DUPLICATE_EXPENSE")
	})

	t.Run("invalid_input", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		in := validExpenseInput()
		in.PaymentMethod = ""
		_, err := svc.Create(testPrincipal(user), in)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdateExpense(t *testing.T) {
	t.Run("identical_update_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		in := validExpenseInput()
		expense, err := svc.Create(testPrincipal(user), in)
		testutil.AssertNoError(t, err)

		_, err = svc.Update(testPrincipal(user), expense.ID, in)
		testutil.AssertAppError(t, err, "NO_CHANGE_DETECTED")
	})

	t.Run("is_fixed_flip_is_a_change", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		in := validExpenseInput()
		expense, err := svc.Create(testPrincipal(user), in)
		testutil.AssertNoError(t, err)

		in.IsFixed = false
		updated, err := svc.Update(testPrincipal(user), expense.ID, in)
		testutil.AssertNoError(t, err)
		if updated.IsFixed {
			t.Error("expected is_fixed to be false after update")
		}
	})

	t.Run("stranger_denied", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		owner := testutil.CreateTestUser(t, db)
		stranger := testutil.CreateTestUser(t, db)
		expense := testutil.CreateTestExpense(t, db, owner.ID, models.ExpenseTypeRent)

		_, err := svc.Update(testPrincipal(stranger), expense.ID, validExpenseInput())
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Update(testPrincipal(user), "00000000-0000-0000-0000-000000000000", validExpenseInput())
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
	})
}

func TestPatchExpense(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)
		expense := testutil.CreateTestExpense(t, db, user.ID, models.ExpenseTypeSubscription)

		method := "DEBIT_CARD"
		patched, err := svc.Patch(testPrincipal(user), expense.ID, ExpensePatch{PaymentMethod: &method})
		testutil.AssertNoError(t, err)

		if patched.PaymentMethod != method {
			t.Errorf("expected payment method %q, got %q", method, patched.PaymentMethod)
		}
		if patched.ExpenseType != expense.ExpenseType {
			t.Errorf("expense type changed unexpectedly to %s", patched.ExpenseType)
		}
	})
}

func TestListActiveExpenses(t *testing.T) {
	t.Run("scoped_to_principal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		testutil.CreateTestExpense(t, db, user.ID, models.ExpenseTypeRent)
		testutil.CreateTestExpense(t, db, other.ID, models.ExpenseTypeRent)

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.ListActive(testPrincipal(user), page)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Errorf("expected 1 expense, got %d", result.TotalItems)
		}
	})
}

func TestExpenseLifecycle(t *testing.T) {
	t.Run("idempotent_transitions_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)
		expense := testutil.CreateTestExpense(t, db, user.ID, models.ExpenseTypeRent)

		_, err := svc.Activate(testPrincipal(user), expense.ID)
		testutil.AssertAppError(t, err, "ALREADY_ACTIVE")

		_, err = svc.Deactivate(testPrincipal(user), expense.ID)
		testutil.AssertNoError(t, err)
		_, err = svc.Deactivate(testPrincipal(user), expense.ID)
		testutil.AssertAppError(t, err, "ALREADY_INACTIVE")
	})
}
