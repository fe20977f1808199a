package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	portssvc "github.com/quillbooks/bookkeeping_app/internal/core/ports/services"
)

// reportingHandler serves the read-side report builders.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := &reportingHandler{reportingService: reportingService}

	reports := rg.Group("/reports")
	{
		reports.GET("/chart-of-accounts", h.chartOfAccounts)
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/income-statement", h.incomeStatement)
		reports.GET("/financial-condition", h.financialCondition)
	}
}

func (h *reportingHandler) chartOfAccounts(c *gin.Context) {
	chart, err := h.reportingService.ChartOfAccounts(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to build chart of accounts")
		return
	}
	c.JSON(http.StatusOK, chart)
}

func (h *reportingHandler) trialBalance(c *gin.Context) {
	includeEmpty, _ := strconv.ParseBool(c.DefaultQuery("includeEmptyEntries", "false"))

	balance, err := h.reportingService.TrialBalance(c.Request.Context(), includeEmpty)
	if err != nil {
		respondError(c, err, "Failed to build trial balance")
		return
	}
	c.JSON(http.StatusOK, balance)
}

func (h *reportingHandler) incomeStatement(c *gin.Context) {
	statement, err := h.reportingService.IncomeStatement(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to build income statement")
		return
	}
	c.JSON(http.StatusOK, statement)
}

func (h *reportingHandler) financialCondition(c *gin.Context) {
	condition, err := h.reportingService.FinancialCondition(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to build statement of financial condition")
		return
	}
	c.JSON(http.StatusOK, condition)
}
