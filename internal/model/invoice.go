package model

import "time"

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusFinalized InvoiceStatus = "finalized"
)

type Invoice struct {
	ID                 string        `json:"id"`
	InvoiceNumber      string        `json:"invoice_number"`
	ContractID         string        `json:"contract_id"`
	ContractName       string        `json:"contract_name"`
	BillingPeriodStart time.Time     `json:"billing_period_start"`
	BillingPeriodEnd   time.Time     `json:"billing_period_end"`
	Status             InvoiceStatus `json:"status"`
	TotalAmount        float64       `json:"total_amount"`
	GeneratedAt        time.Time     `json:"generated_at"`
	FinalizedAt        *time.Time    `json:"finalized_at,omitempty"`
}

type InvoiceLineItem struct {
	ID          string      `json:"id"`
	InvoiceID   string      `json:"invoice_id"`
	LineType    SupportType `json:"line_type"`
	Description string      `json:"description"`
	Hours       *float64    `json:"hours,omitempty"`
	Rate        *float64    `json:"rate,omitempty"`
	Amount      float64     `json:"amount"`
}

type InvoiceDetails struct {
	Invoice
	LineItems []InvoiceLineItem `json:"line_items"`
}

// InvoiceDocument is everything needed to render an invoice for print.
type InvoiceDocument struct {
	Invoice  InvoiceDetails
	Contract Contract
}
