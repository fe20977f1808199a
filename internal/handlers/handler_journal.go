package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
	portssvc "github.com/quillbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/quillbooks/bookkeeping_app/internal/dto"
	"github.com/quillbooks/bookkeeping_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// journalHandler handles HTTP requests for journal entries and the posting
// re-dispatch.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
	postingService portssvc.PostingSvcFacade
}

func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, postingService portssvc.PostingSvcFacade) {
	h := &journalHandler{journalService: journalService, postingService: postingService}

	journal := rg.Group("/journal")
	{
		journal.POST("", h.createJournalEntry)
		journal.GET("", h.fetchJournalEntries)
		journal.GET("/:id", h.getJournalEntry)
		journal.POST("/:id/post", h.postEntry)
	}
}

func (h *journalHandler) createJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	entry, err := h.journalService.CreateJournalEntry(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "Failed to create journal entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

func (h *journalHandler) getJournalEntry(c *gin.Context) {
	entry, err := h.journalService.GetJournalEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// fetchJournalEntries requires a dateRange query in start..end format and
// accepts optional account and amountFrom/amountTo filters.
func (h *journalHandler) fetchJournalEntries(c *gin.Context) {
	dateRange, err := domain.ParseDateRange(c.Query("dateRange"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dateRange: " + err.Error()})
		return
	}

	var amountFilter *domain.AmountRange
	fromStr, toStr := c.Query("amountFrom"), c.Query("amountTo")
	if fromStr != "" || toStr != "" {
		if fromStr == "" || toStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amountFrom and amountTo must be given together"})
			return
		}
		from, err := decimal.NewFromString(fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amountFrom: " + err.Error()})
			return
		}
		to, err := decimal.NewFromString(toStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amountTo: " + err.Error()})
			return
		}
		amountFilter = &domain.AmountRange{From: from, To: to}
	}

	entries, err := h.journalService.FetchJournalEntries(c.Request.Context(), dateRange, c.Query("account"), amountFilter)
	if err != nil {
		respondError(c, err, "Failed to fetch journal entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponses(entries))
}

// postEntry re-dispatches the posting trigger for an entry that is still
// PENDING, e.g. after a posting failure. Posting an already processed entry is
// a no-op.
func (h *journalHandler) postEntry(c *gin.Context) {
	if _, ok := requireActor(c); !ok {
		return
	}

	if err := h.postingService.PostPendingEntry(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to post journal entry")
		return
	}
	c.Status(http.StatusAccepted)
}
