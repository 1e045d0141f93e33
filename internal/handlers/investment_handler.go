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

// InvestmentHandler handles investment-record requests.
type InvestmentHandler struct {
	investmentService services.InvestmentServicer
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(investmentService services.InvestmentServicer) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService}
}

// InvestmentRequest represents the payload for creating or fully updating
// an investment.
type InvestmentRequest struct {
	Value          decimal.Decimal `json:"value" binding:"required"`
	Currency       string          `json:"currency" binding:"required,currency_benchmark"`
	Date           time.Time       `json:"date" binding:"required"`
	InvestmentType string          `json:"investment_type" binding:"required,investment_type"`
	ActionQuantity int             `json:"action_quantity" binding:"required,min=1"`
	BrokerName     string          `json:"broker_name" binding:"required,max=100"`
}

// InvestmentPatchRequest represents the payload for partially updating an
// investment.
type InvestmentPatchRequest struct {
	Value          *decimal.Decimal `json:"value,omitempty"`
	Currency       *string          `json:"currency,omitempty" binding:"omitempty,currency_benchmark"`
	Date           *time.Time       `json:"date,omitempty"`
	InvestmentType *string          `json:"investment_type,omitempty" binding:"omitempty,investment_type"`
	ActionQuantity *int             `json:"action_quantity,omitempty" binding:"omitempty,min=1"`
	BrokerName     *string          `json:"broker_name,omitempty" binding:"omitempty,max=100"`
}

func (r InvestmentRequest) toInput() services.InvestmentInput {
	return services.InvestmentInput{
		Value:          r.Value,
		Currency:       models.CurrencyBenchmark(r.Currency),
		Date:           r.Date,
		InvestmentType: models.InvestmentType(r.InvestmentType),
		ActionQuantity: r.ActionQuantity,
		BrokerName:     r.BrokerName,
	}
}

func (r InvestmentPatchRequest) toPatch() services.InvestmentPatch {
	patch := services.InvestmentPatch{
		Value:          r.Value,
		Date:           r.Date,
		ActionQuantity: r.ActionQuantity,
		BrokerName:     r.BrokerName,
	}
	if r.Currency != nil {
		currency := models.CurrencyBenchmark(*r.Currency)
		patch.Currency = &currency
	}
	if r.InvestmentType != nil {
		invType := models.InvestmentType(*r.InvestmentType)
		patch.InvestmentType = &invType
	}
	return patch
}

// CreateInvestment handles creating a new investment record.
// @Summary     Create investment
// @Description Create a new investment record with its valuation fields computed
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body InvestmentRequest true "Investment details"
// @Success     201 {object} models.Investment "Investment created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Duplicate position"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [post]
func (h *InvestmentHandler) CreateInvestment(c *gin.Context) {
	p, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req InvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	inv, err := h.investmentService.Create(p, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"investment": inv})
}

// GetInvestments handles listing the principal's active investments.
// @Summary     List investments
// @Description Get a paginated list of the authenticated user's active investments
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Investment] "Paginated investments"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [get]
func (h *InvestmentHandler) GetInvestments(c *gin.Context) {
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

	result, err := h.investmentService.ListActive(p, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetInvestmentByID handles fetching a single investment.
// @Summary     Get investment
// @Description Get an investment by id, active or not
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {object} models.Investment "Investment"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id} [get]
func (h *InvestmentHandler) GetInvestmentByID(c *gin.Context) {
	p, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	inv, err := h.investmentService.GetByID(p, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investment": inv})
}

// UpdateInvestment handles a full update of an investment.
// @Summary     Update investment
// @Description Replace every business field of an investment; identical resubmissions are rejected
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Investment ID"
// @Param       request body InvestmentRequest true "Investment details"
// @Success     200 {object} models.Investment "Updated investment"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     409 {object} ErrorResponse "No change detected"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id} [put]
func (h *InvestmentHandler) UpdateInvestment(c *gin.Context) {
	p, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req InvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	inv, err := h.investmentService.Update(p, c.Param("id"), req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investment": inv})
}

// PatchInvestment handles a partial update of an investment.
// @Summary     Patch investment
// @Description Update a subset of an investment's fields
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                 true "Investment ID"
// @Param       request body InvestmentPatchRequest true "Fields to update"
// @Success     200 {object} models.Investment "Updated investment"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id} [patch]
func (h *InvestmentHandler) PatchInvestment(c *gin.Context) {
	p, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req InvestmentPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	inv, err := h.investmentService.Patch(p, c.Param("id"), req.toPatch())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investment": inv})
}

// DeactivateInvestment handles soft-deleting an investment.
// @Summary     Deactivate investment
// @Description Soft-delete an investment; it remains retrievable by id
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {object} models.Investment "Deactivated investment"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     409 {object} ErrorResponse "Already inactive"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id} [delete]
func (h *InvestmentHandler) DeactivateInvestment(c *gin.Context) {
	p, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	inv, err := h.investmentService.Deactivate(p, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investment": inv})
}

// ActivateInvestment handles reactivating a soft-deleted investment.
// @Summary     Activate investment
// @Description Reactivate a soft-deleted investment
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {object} models.Investment "Activated investment"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     409 {object} ErrorResponse "Already active"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id}/activate [post]
func (h *InvestmentHandler) ActivateInvestment(c *gin.Context) {
	p, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	inv, err := h.investmentService.Activate(p, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investment": inv})
}

// SimulateInvestment projects an investment over a requested horizon.
// @Summary     Simulate investment growth
// @Description Project an investment's value over a requested number of days without persisting anything
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id   path  string true "Investment ID"
// @Param       days query int    true "Projection horizon in days (positive)"
// @Success     200 {object} services.Simulation "Projection result"
// @Failure     400 {object} ErrorResponse "Invalid horizon"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id}/simulate [get]
func (h *InvestmentHandler) SimulateInvestment(c *gin.Context) {
	p, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	days, err := parseQueryInt(c, "days")
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.investmentService.Simulate(p, c.Param("id"), days)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"simulation": result})
}
