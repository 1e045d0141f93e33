package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/pagination"
	"moneta/internal/services"
)

// ExpenseHandler handles expense-record requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRequest represents the payload for creating or fully updating an expense.
type ExpenseRequest struct {
	Value         decimal.Decimal `json:"value" binding:"required"`
	Currency      string          `json:"currency" binding:"required,currency_benchmark"`
	Date          time.Time       `json:"date" binding:"required"`
	ExpenseType   string          `json:"expense_type" binding:"required,expense_type"`
	PaymentMethod string          `json:"payment_method" binding:"required,max=100"`
	IsFixed       bool            `json:"is_fixed"`
}

// ExpensePatchRequest represents the payload for partially updating an expense.
type ExpensePatchRequest struct {
	Value         *decimal.Decimal `json:"value,omitempty"`
	Currency      *string          `json:"currency,omitempty" binding:"omitempty,currency_benchmark"`
	Date          *time.Time       `json:"date,omitempty"`
	ExpenseType   *string          `json:"expense_type,omitempty" binding:"omitempty,expense_type"`
	PaymentMethod *string          `json:"payment_method,omitempty" binding:"omitempty,max=100"`
	IsFixed       *bool            `json:"is_fixed,omitempty"`
}

func (r ExpenseRequest) toInput() services.ExpenseInput {
	return services.ExpenseInput{
		Value:         r.Value,
		Currency:      models.CurrencyBenchmark(r.Currency),
		Date:          r.Date,
		ExpenseType:   models.ExpenseType(r.ExpenseType),
		PaymentMethod: r.PaymentMethod,
		IsFixed:       r.IsFixed,
	}
}

func (r ExpensePatchRequest) toPatch() services.ExpensePatch {
	patch := services.ExpensePatch{
		Value:         r.Value,
		Date:          r.Date,
		PaymentMethod: r.PaymentMethod,
		IsFixed:       r.IsFixed,
	}
	if r.Currency != nil {
		currency := models.CurrencyBenchmark(*r.Currency)
		patch.Currency = &currency
	}
	if r.ExpenseType != nil {
		expenseType := models.ExpenseType(*r.ExpenseType)
		patch.ExpenseType = &expenseType
	}
	return patch
}

// CreateExpense handles creating a new expense record.
// @Summary     Create expense
// @Description Create a new expense record for the authenticated user
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ExpenseRequest true "Expense details"
// @Success     201 {object} models.Expense "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Duplicate expense"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	p, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.Create(p, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// GetExpenses handles listing the principal's active expenses.
// @Summary     List expenses
// @Description Get a paginated list of the authenticated user's active expenses
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Expense] "Paginated expenses"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	p, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.expenseService.ListActive(p, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetExpenseByID handles fetching a single expense.
// @Summary     Get expense
// @Description Get an expense by id, active or not
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} models.Expense "Expense"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpenseByID(c *gin.Context) {
	p, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetByID(p, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// UpdateExpense handles a full update of an expense.
// @Summary     Update expense
// @Description Replace every business field of an expense; identical resubmissions are rejected
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string         true "Expense ID"
// @Param       request body ExpenseRequest true "Expense details"
// @Success     200 {object} models.Expense "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     409 {object} ErrorResponse "No change detected"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	p, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.Update(p, c.Param("id"), req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// PatchExpense handles a partial update of an expense.
// @Summary     Patch expense
// @Description Update a subset of an expense's fields
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string              true "Expense ID"
// @Param       request body ExpensePatchRequest true "Fields to update"
// @Success     200 {object} models.Expense "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [patch]
func (h *ExpenseHandler) PatchExpense(c *gin.Context) {
	p, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpensePatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.Patch(p, c.Param("id"), req.toPatch())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeactivateExpense handles soft-deleting an expense.
// @Summary     Deactivate expense
// @Description Soft-delete an expense; it remains retrievable by id
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} models.Expense "Deactivated expense"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     409 {object} ErrorResponse "Already inactive"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeactivateExpense(c *gin.Context) {
	p, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.Deactivate(p, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// ActivateExpense handles reactivating a soft-deleted expense.
// @Summary     Activate expense
// @Description Reactivate a soft-deleted expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} models.Expense "Activated expense"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     409 {object} ErrorResponse "Already active"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id}/activate [post]
func (h *ExpenseHandler) ActivateExpense(c *gin.Context) {
	p, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.Activate(p, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}
