package model

type ReconciliationTotals struct {
	Expected         float64 `json:"expected"`
	Invoiced         float64 `json:"invoiced"`
	Received         float64 `json:"received"`
	VarianceInvoiced float64 `json:"variance_invoiced"`
	VarianceReceived float64 `json:"variance_received"`
	Outstanding      float64 `json:"outstanding"`
}

type ReconciliationRow struct {
	ContractID      string         `json:"contract_id"`
	ServiceUserName string         `json:"service_user_name"`
	AuthorityName   string         `json:"authority_name"`
	Expected        float64        `json:"expected"`
	Invoiced        float64        `json:"invoiced"`
	Variance        float64        `json:"variance"`
	Status          ContractStatus `json:"status"`
}

type Reconciliation struct {
	AuthorityID string               `json:"authority_id,omitempty"`
	Totals      ReconciliationTotals `json:"totals"`
	Rows        []ReconciliationRow  `json:"rows"`
}

type DashboardSummary struct {
	ActiveContracts int `json:"active_contracts"`
	PendingPayments int `json:"pending_payments"`
	DraftInvoices   int `json:"draft_invoices"`
}
