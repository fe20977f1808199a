package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
	"github.com/quillbooks/bookkeeping_app/internal/core/services"
	"github.com/quillbooks/bookkeeping_app/internal/platform/config"
)

// RegisterValidators installs the custom binding validators used by the DTOs.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ledgertype", func(fl validator.FieldLevel) bool {
			return domain.ValidLedgerType(domain.LedgerType(fl.Field().String()))
		})
	}
}

// RegisterRoutes sets up all application routes.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, svcs *services.Container) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	registerLedgerRoutes(v1, svcs.Ledger)
	registerAccountRoutes(v1, svcs.Account)
	registerJournalRoutes(v1, svcs.Journal, svcs.Posting)
	registerReportingRoutes(v1, svcs.Reporting)
	registerPayrollRoutes(v1, svcs.Payroll)
}
