package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
	portssvc "github.com/quillbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/quillbooks/bookkeeping_app/internal/dto"
	"github.com/quillbooks/bookkeeping_app/internal/middleware"
)

// accountHandler handles HTTP requests for accounts, their movement records and
// their command history.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := &accountHandler{accountService: accountService}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.modifyAccount)
		accounts.DELETE("/:id", h.deleteAccount)
		accounts.POST("/:id/commands", h.executeCommand)
		accounts.GET("/:id/commands", h.listCommands)
		accounts.GET("/:id/entries", h.listAccountEntries)
		accounts.GET("/alternative/:number", h.getAccountByAlternativeNumber)
	}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.accountService.GetAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) getAccountByAlternativeNumber(c *gin.Context) {
	account, err := h.accountService.GetAccountByAlternativeNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) modifyAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ModifyAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ModifyAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	account, err := h.accountService.ModifyAccount(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondError(c, err, "Failed to modify account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) executeCommand(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AccountCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ExecuteCommand", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	account, err := h.accountService.ExecuteCommand(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondError(c, err, "Failed to execute account command")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) deleteAccount(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), c.Param("id"), actor); err != nil {
		respondError(c, err, "Failed to delete account")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *accountHandler) listCommands(c *gin.Context) {
	commands, err := h.accountService.ListCommands(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list account commands")
		return
	}
	c.JSON(http.StatusOK, commands)
}

func (h *accountHandler) listAccountEntries(c *gin.Context) {
	dateRange, err := domain.ParseDateRange(c.Query("dateRange"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dateRange: " + err.Error()})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	entries, newToken, err := h.accountService.ListAccountEntries(c.Request.Context(), c.Param("id"), dateRange, limit, nextToken)
	if err != nil {
		respondError(c, err, "Failed to list account entries")
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountEntriesResponse{Entries: entries, NextToken: newToken})
}
