package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/careops-billing/internal/model"
	"github.com/nurpe/careops-billing/internal/service"
)

type generateInvoiceRequest struct {
	ContractID  string `json:"contract_id" binding:"required"`
	PeriodStart string `json:"period_start" binding:"required"`
}

type recordPaymentRequest struct {
	Authority       model.Reference `json:"authority"`
	Amount          float64         `json:"amount" binding:"required"`
	DateReceived    string          `json:"date_received" binding:"required"`
	ReferenceNumber string          `json:"reference_number"`
	PeriodLabel     string          `json:"period_label"`
}

type confirmAllocationRequest struct {
	Allocations []service.AllocationInput `json:"allocations" binding:"required"`
	Force       bool                      `json:"force"`
}

func (h *Handler) listInvoices(c *gin.Context) {
	invoices, err := h.svc.Invoices.ListInvoices(c.Request.Context(), c.Query("contract_id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": invoices})
}

func (h *Handler) getInvoice(c *gin.Context) {
	details, err := h.svc.Invoices.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *Handler) generateInvoice(c *gin.Context) {
	var req generateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, err := parseDate(req.PeriodStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period_start"})
		return
	}
	details, err := h.svc.Invoices.GenerateInvoice(c.Request.Context(), req.ContractID, start)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, details)
}

func (h *Handler) finalizeInvoice(c *gin.Context) {
	invoice, err := h.svc.Invoices.FinalizeInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *Handler) deleteInvoice(c *gin.Context) {
	if err := h.svc.Invoices.DeleteInvoice(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) invoicePDF(c *gin.Context) {
	result, err := h.svc.Invoices.RenderInvoicePDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.sendFile(c, result)
}

func (h *Handler) listPayments(c *gin.Context) {
	payments, err := h.svc.Payments.ListPayments(c.Request.Context(), c.Query("authority_id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": payments})
}

func (h *Handler) getPayment(c *gin.Context) {
	payment, err := h.svc.Payments.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	allocations, err := h.svc.Payments.ListAllocations(c.Request.Context(), payment.ID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment, "allocations": allocations})
}

func (h *Handler) recordPayment(c *gin.Context) {
	var req recordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	received, err := parseDate(req.DateReceived)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_received"})
		return
	}
	payment, err := h.svc.Payments.RecordPayment(c.Request.Context(), service.RecordPaymentInput{
		Authority:       req.Authority,
		Amount:          req.Amount,
		DateReceived:    received,
		ReferenceNumber: req.ReferenceNumber,
		PeriodLabel:     req.PeriodLabel,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (h *Handler) suggestAllocation(c *gin.Context) {
	proposal, err := h.svc.Payments.SuggestAllocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, proposal)
}

func (h *Handler) confirmAllocation(c *gin.Context) {
	var req confirmAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	payment, err := h.svc.Payments.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	if !req.Force && !service.Balanced(payment.Amount, req.Allocations) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":     "allocations do not add up to the payment amount",
			"tolerance": service.AllocationTolerance,
		})
		return
	}

	allocations, err := h.svc.Payments.ConfirmAllocation(c.Request.Context(), payment.ID, req.Allocations)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": allocations})
}

func (h *Handler) reconciliation(c *gin.Context) {
	report, err := h.svc.Reconciliation.Reconcile(c.Request.Context(), c.Query("authority_id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) exportReconciliation(c *gin.Context) {
	result, err := h.svc.Reconciliation.ExportReconciliation(c.Request.Context(), c.Query("authority_id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.sendFile(c, result)
}

func (h *Handler) dashboard(c *gin.Context) {
	summary, err := h.svc.Reconciliation.Dashboard(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
