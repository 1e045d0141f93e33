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

// CostHandler handles cost-record requests.
type CostHandler struct {
	costService services.CostServicer
}

// NewCostHandler creates a new CostHandler.
func NewCostHandler(costService services.CostServicer) *CostHandler {
	return &CostHandler{costService: costService}
}

// CostRequest represents the payload for creating or fully updating a cost.
type CostRequest struct {
	Value       decimal.Decimal `json:"value" binding:"required"`
	Currency    string          `json:"currency" binding:"required,currency_benchmark"`
	Date        time.Time       `json:"date" binding:"required"`
	CostType    string          `json:"cost_type" binding:"required,cost_type"`
	Observation string          `json:"observation" binding:"required,max=500"`
}

// CostPatchRequest represents the payload for partially updating a cost.
type CostPatchRequest struct {
	Value       *decimal.Decimal `json:"value,omitempty"`
	Currency    *string          `json:"currency,omitempty" binding:"omitempty,currency_benchmark"`
	Date        *time.Time       `json:"date,omitempty"`
	CostType    *string          `json:"cost_type,omitempty" binding:"omitempty,cost_type"`
	Observation *string          `json:"observation,omitempty" binding:"omitempty,max=500"`
}

func (r CostRequest) toInput() services.CostInput {
	return services.CostInput{
		Value:       r.Value,
		Currency:    models.CurrencyBenchmark(r.Currency),
		Date:        r.Date,
		CostType:    models.CostType(r.CostType),
		Observation: r.Observation,
	}
}

func (r CostPatchRequest) toPatch() services.CostPatch {
	patch := services.CostPatch{
		Value:       r.Value,
		Date:        r.Date,
		Observation: r.Observation,
	}
	if r.Currency != nil {
		currency := models.CurrencyBenchmark(*r.Currency)
		patch.Currency = &currency
	}
	if r.CostType != nil {
		costType := models.CostType(*r.CostType)
		patch.CostType = &costType
	}
	return patch
}

// CreateCost handles creating a new cost record.
// @Summary     Create cost
// @Description Create a new cost record for the authenticated user
// @Tags        costs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CostRequest true "Cost details"
// @Success     201 {object} models.Cost "Cost created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Duplicate cost"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /costs [post]
func (h *CostHandler) CreateCost(c *gin.Context) {
	p, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	cost, err := h.costService.Create(p, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"cost": cost})
}

// GetCosts handles listing the principal's active costs.
// @Summary     List costs
// @Description Get a paginated list of the authenticated user's active costs
// @Tags        costs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Cost] "Paginated costs"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /costs [get]
func (h *CostHandler) GetCosts(c *gin.Context) {
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

	result, err := h.costService.ListActive(p, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCostByID handles fetching a single cost.
// @Summary     Get cost
// @Description Get a cost by id, active or not
// @Tags        costs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Cost ID"
// @Success     200 {object} models.Cost "Cost"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Cost not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /costs/{id} [get]
func (h *CostHandler) GetCostByID(c *gin.Context) {
	p, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	cost, err := h.costService.GetByID(p, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cost": cost})
}

// UpdateCost handles a full update of a cost.
// @Summary     Update cost
// @Description Replace every business field of a cost; identical resubmissions are rejected
// @Tags        costs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string      true "Cost ID"
// @Param       request body CostRequest true "Cost details"
// @Success     200 {object} models.Cost "Updated cost"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Cost not found"
// @Failure     409 {object} ErrorResponse "No change detected"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /costs/{id} [put]
func (h *CostHandler) UpdateCost(c *gin.Context) {
	p, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	cost, err := h.costService.Update(p, c.Param("id"), req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cost": cost})
}

// PatchCost handles a partial update of a cost.
// @Summary     Patch cost
// @Description Update a subset of a cost's fields
// @Tags        costs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string           true "Cost ID"
// @Param       request body CostPatchRequest true "Fields to update"
// @Success     200 {object} models.Cost "Updated cost"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Cost not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /costs/{id} [patch]
func (h *CostHandler) PatchCost(c *gin.Context) {
	p, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CostPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	cost, err := h.costService.Patch(p, c.Param("id"), req.toPatch())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cost": cost})
}

// DeactivateCost handles soft-deleting a cost.
// @Summary     Deactivate cost
// @Description Soft-delete a cost; it remains retrievable by id
// @Tags        costs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Cost ID"
// @Success     200 {object} models.Cost "Deactivated cost"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Cost not found"
// @Failure     409 {object} ErrorResponse "Already inactive"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /costs/{id} [delete]
func (h *CostHandler) DeactivateCost(c *gin.Context) {
	p, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	cost, err := h.costService.Deactivate(p, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cost": cost})
}

// ActivateCost handles reactivating a soft-deleted cost.
// @Summary     Activate cost
// @Description Reactivate a soft-deleted cost
// @Tags        costs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Cost ID"
// @Success     200 {object} models.Cost "Activated cost"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Cost not found"
// @Failure     409 {object} ErrorResponse "Already active"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /costs/{id}/activate [post]
func (h *CostHandler) ActivateCost(c *gin.Context) {
	p, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	cost, err := h.costService.Activate(p, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cost": cost})
}
