package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/quillbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/quillbooks/bookkeeping_app/internal/dto"
	"github.com/quillbooks/bookkeeping_app/internal/middleware"
)

// ledgerHandler handles HTTP requests for the ledger tree.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := &ledgerHandler{ledgerService: ledgerService}

	ledgers := rg.Group("/ledgers")
	{
		ledgers.POST("", h.createLedger)
		ledgers.GET("", h.listLedgers)
		ledgers.GET("/:id", h.getLedger)
		ledgers.PUT("/:id", h.modifyLedger)
		ledgers.DELETE("/:id", h.deleteLedger)
		ledgers.GET("/:id/subledgers", h.listSubLedgers)
		ledgers.POST("/:id/subledgers", h.addSubLedger)
		ledgers.POST("/actions/backfill-totals", h.backfillTotals)
	}
}

func (h *ledgerHandler) createLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	ledger, err := h.ledgerService.CreateLedger(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "Failed to create ledger")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLedgerResponse(ledger))
}

func (h *ledgerHandler) listLedgers(c *gin.Context) {
	ledgers, err := h.ledgerService.ListLedgers(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list ledgers")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerResponses(ledgers))
}

func (h *ledgerHandler) getLedger(c *gin.Context) {
	ledger, err := h.ledgerService.GetLedger(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}

func (h *ledgerHandler) modifyLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ModifyLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ModifyLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	ledger, err := h.ledgerService.ModifyLedger(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondError(c, err, "Failed to modify ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}

func (h *ledgerHandler) deleteLedger(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.ledgerService.DeleteLedger(c.Request.Context(), c.Param("id"), actor); err != nil {
		respondError(c, err, "Failed to delete ledger")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ledgerHandler) listSubLedgers(c *gin.Context) {
	ledgers, err := h.ledgerService.ListSubLedgers(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list sub-ledgers")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerResponses(ledgers))
}

func (h *ledgerHandler) addSubLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddSubLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	ledger, err := h.ledgerService.AddSubLedger(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondError(c, err, "Failed to add sub-ledger")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLedgerResponse(ledger))
}

func (h *ledgerHandler) backfillTotals(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.ledgerService.BackfillLedgerTotals(c.Request.Context(), actor); err != nil {
		respondError(c, err, "Failed to backfill ledger totals")
		return
	}
	c.Status(http.StatusNoContent)
}
