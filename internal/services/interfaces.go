package services

import (
	"time"

	"moneta/internal/models"
	"moneta/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Register(name, email, password string, anniversaryDate *time.Time) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(p Principal, id string) (*models.User, error)
	UpdateProfile(p Principal, id string, name string, anniversaryDate *time.Time) (*models.User, error)
	Activate(p Principal, id string) (*models.User, error)
	Deactivate(p Principal, id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// CostServicer defines the contract for cost-record business logic.
type CostServicer interface {
	Create(p Principal, in CostInput) (*models.Cost, error)
	GetByID(p Principal, id string) (*models.Cost, error)
	ListActive(p Principal, page pagination.PageRequest) (*pagination.PageResponse[models.Cost], error)
	Update(p Principal, id string, in CostInput) (*models.Cost, error)
	Patch(p Principal, id string, in CostPatch) (*models.Cost, error)
	Activate(p Principal, id string) (*models.Cost, error)
	Deactivate(p Principal, id string) (*models.Cost, error)
}

// ExpenseServicer defines the contract for expense-record business logic.
type ExpenseServicer interface {
	Create(p Principal, in ExpenseInput) (*models.Expense, error)
	GetByID(p Principal, id string) (*models.Expense, error)
	ListActive(p Principal, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	Update(p Principal, id string, in ExpenseInput) (*models.Expense, error)
	Patch(p Principal, id string, in ExpensePatch) (*models.Expense, error)
	Activate(p Principal, id string) (*models.Expense, error)
	Deactivate(p Principal, id string) (*models.Expense, error)
}

// InvestmentServicer defines the contract for investment-record business
// logic, including the valuation operations.
type InvestmentServicer interface {
	Create(p Principal, in InvestmentInput) (*models.Investment, error)
	GetByID(p Principal, id string) (*models.Investment, error)
	ListActive(p Principal, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error)
	Update(p Principal, id string, in InvestmentInput) (*models.Investment, error)
	Patch(p Principal, id string, in InvestmentPatch) (*models.Investment, error)
	Activate(p Principal, id string) (*models.Investment, error)
	Deactivate(p Principal, id string) (*models.Investment, error)
	Simulate(p Principal, id string, days int) (*Simulation, error)
	RecomputeValuations() (*RecomputeReport, error)
}
