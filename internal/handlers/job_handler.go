package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moneta/internal/services"
)

// JobHandler exposes maintenance-job entry points for an external cron
// trigger. These routes are gated by JobAuthMiddleware, not by user auth.
type JobHandler struct {
	investmentService services.InvestmentServicer
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(investmentService services.InvestmentServicer) *JobHandler {
	return &JobHandler{investmentService: investmentService}
}

// RecomputeValuations triggers the batch valuation recompute.
// @Summary     Recompute investment valuations
// @Description Recompute the derived valuation fields of every investment record
// @Tags        jobs
// @Accept      json
// @Produce     json
// @Param       X-API-Key header string true "Job API key"
// @Success     200 {object} services.RecomputeReport "Batch summary"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /jobs/valuations/recompute [post]
func (h *JobHandler) RecomputeValuations(c *gin.Context) {
	report, err := h.investmentService.RecomputeValuations()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}
