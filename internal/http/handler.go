package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nurpe/careops-billing/internal/http/middleware"
	"github.com/nurpe/careops-billing/internal/model"
	"github.com/nurpe/careops-billing/internal/service"
)

// Services bundles the use cases exposed over HTTP.
type Services struct {
	Directory      *service.ServiceDirectory
	Placement      *service.PlacementService
	Contracts      *service.ContractService
	Invoices       *service.InvoiceService
	Payments       *service.PaymentService
	Reconciliation *service.ReconciliationService
}

type Handler struct {
	svc Services
	log zerolog.Logger
}

func NewHandler(svc Services, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/healthz", h.health)

	api := router.Group("/api")
	api.Use(authMiddleware)

	managers := middleware.RequireRoles(model.RoleManager)
	finance := middleware.RequireRoles(model.RoleFinance)

	api.GET("/services", h.listServices)
	api.POST("/services", managers, h.createService)
	api.GET("/services/:id", h.getService)
	api.PUT("/services/:id", managers, h.updateService)
	api.GET("/services/:id/utilization", h.serviceUtilization)
	api.GET("/services/:id/stacking", h.serviceStacking)
	api.GET("/utilization", h.listUtilization)
	api.POST("/placements/recommendations", h.recommendPlacements)

	api.GET("/contracts", h.listContracts)
	api.POST("/contracts", managers, h.createContract)
	api.GET("/contracts/:id", h.getContract)
	api.POST("/contracts/:id/terminate", managers, h.terminateContract)
	api.POST("/contracts/:id/assignment", managers, h.assignRoom)
	api.DELETE("/contracts/:id/assignment", managers, h.vacateRoom)

	api.POST("/rate-changes/preview", finance, h.previewRateChange)
	api.POST("/rate-changes", finance, h.applyRateChange)

	api.GET("/invoices", h.listInvoices)
	api.POST("/invoices", finance, h.generateInvoice)
	api.GET("/invoices/:id", h.getInvoice)
	api.POST("/invoices/:id/finalize", finance, h.finalizeInvoice)
	api.DELETE("/invoices/:id", finance, h.deleteInvoice)
	api.GET("/invoices/:id/pdf", h.invoicePDF)

	api.GET("/payments", h.listPayments)
	api.POST("/payments", finance, h.recordPayment)
	api.GET("/payments/:id", h.getPayment)
	api.GET("/payments/:id/allocation", h.suggestAllocation)
	api.POST("/payments/:id/allocation", finance, h.confirmAllocation)

	api.GET("/reconciliation", h.reconciliation)
	api.GET("/reconciliation/export", h.exportReconciliation)
	api.GET("/dashboard", h.dashboard)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) sendFile(c *gin.Context, result *service.ExportResult) {
	c.Header("Content-Type", result.ContentType)
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}

// parseOptionalDate returns fallback when raw is blank.
func parseOptionalDate(raw string, fallback time.Time) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	return parseDate(raw)
}
