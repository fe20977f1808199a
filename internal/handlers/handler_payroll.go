package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/quillbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/quillbooks/bookkeeping_app/internal/dto"
	"github.com/quillbooks/bookkeeping_app/internal/middleware"
)

// payrollHandler handles payroll configuration and payment distribution.
type payrollHandler struct {
	payrollService portssvc.PayrollSvcFacade
}

func registerPayrollRoutes(rg *gin.RouterGroup, payrollService portssvc.PayrollSvcFacade) {
	h := &payrollHandler{payrollService: payrollService}

	payroll := rg.Group("/payroll")
	{
		payroll.PUT("/configurations/:customerID", h.setConfiguration)
		payroll.GET("/configurations/:customerID", h.getConfiguration)
		payroll.POST("/distributions", h.distributePayment)
	}
}

func (h *payrollHandler) setConfiguration(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PayrollConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetConfiguration", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.payrollService.SetConfiguration(c.Request.Context(), c.Param("customerID"), req, actor); err != nil {
		respondError(c, err, "Failed to store payroll configuration")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *payrollHandler) getConfiguration(c *gin.Context) {
	configuration, err := h.payrollService.GetConfiguration(c.Request.Context(), c.Param("customerID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve payroll configuration")
		return
	}
	c.JSON(http.StatusOK, configuration)
}

func (h *payrollHandler) distributePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PayrollPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DistributePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	entry, err := h.payrollService.DistributePayment(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "Failed to distribute payroll payment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}
