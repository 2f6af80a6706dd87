package model

import "time"

type PaymentStatus string

const (
	PaymentStatusPendingAllocation PaymentStatus = "pending_allocation"
	PaymentStatusAllocated         PaymentStatus = "allocated"
)

// PaymentReceived is a lump sum paid by an authority that still has to be
// spread across the authority's contracts.
type PaymentReceived struct {
	ID              string        `json:"id"`
	Authority       Reference     `json:"authority"`
	Amount          float64       `json:"amount"`
	DateReceived    time.Time     `json:"date_received"`
	ReferenceNumber string        `json:"reference_number"`
	PeriodLabel     string        `json:"period_label"`
	Status          PaymentStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
}

// PaymentAllocation is one confirmed share of a payment.
type PaymentAllocation struct {
	PaymentID  string    `json:"payment_id"`
	ContractID string    `json:"contract_id"`
	Amount     float64   `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}

type AllocationSuggestion struct {
	ContractID      string  `json:"contract_id"`
	ContractName    string  `json:"contract_name"`
	ExpectedAmount  float64 `json:"expected_amount"`
	SuggestedAmount float64 `json:"suggested_amount"`
	Variance        float64 `json:"variance"`
}

// AllocationProposal wraps the per-contract suggestions together with the
// rounding difference between the payment and the suggested total.
type AllocationProposal struct {
	PaymentID      string                 `json:"payment_id"`
	PaymentAmount  float64                `json:"payment_amount"`
	Suggestions    []AllocationSuggestion `json:"suggestions"`
	TotalExpected  float64                `json:"total_expected"`
	TotalSuggested float64                `json:"total_suggested"`
	Difference     float64                `json:"difference"`
}
