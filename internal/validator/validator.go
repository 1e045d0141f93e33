// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"moneta/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency_benchmark", validateCurrencyBenchmark)
		_ = v.RegisterValidation("cost_type", validateCostType)
		_ = v.RegisterValidation("expense_type", validateExpenseType)
		_ = v.RegisterValidation("investment_type", validateInvestmentType)
		_ = v.RegisterValidation("user_role", validateUserRole)
	}
}

func validateCurrencyBenchmark(fl validator.FieldLevel) bool {
	return models.CurrencyBenchmark(fl.Field().String()).Valid()
}

func validateCostType(fl validator.FieldLevel) bool {
	return models.CostType(fl.Field().String()).Valid()
}

func validateExpenseType(fl validator.FieldLevel) bool {
	return models.ExpenseType(fl.Field().String()).Valid()
}

func validateInvestmentType(fl validator.FieldLevel) bool {
	return models.InvestmentType(fl.Field().String()).Valid()
}

func validateUserRole(fl validator.FieldLevel) bool {
	return models.Role(fl.Field().String()).Valid()
}
