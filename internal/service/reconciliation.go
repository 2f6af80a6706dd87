package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nurpe/careops-billing/internal/model"
	"github.com/nurpe/careops-billing/internal/repository"
)

type ExcelGenerator interface {
	Generate(report model.Reconciliation, generatedAt time.Time) ([]byte, error)
}

type ReconciliationService struct {
	contracts ContractRepository
	invoices  InvoiceRepository
	payments  PaymentRepository
	excel     ExcelGenerator
	policy    Policy
	log       zerolog.Logger
	now       func() time.Time
}

func NewReconciliationService(contracts ContractRepository, invoices InvoiceRepository, payments PaymentRepository, excel ExcelGenerator, policy Policy, log zerolog.Logger) *ReconciliationService {
	return &ReconciliationService{
		contracts: contracts,
		invoices:  invoices,
		payments:  payments,
		excel:     excel,
		policy:    policy,
		log:       log,
		now:       time.Now,
	}
}

// ExportResult is a rendered document ready to be sent to the caller.
type ExportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

// Reconcile compares expected, invoiced and received amounts. An empty
// authorityID covers every authority.
func (s *ReconciliationService) Reconcile(ctx context.Context, authorityID string) (*model.Reconciliation, error) {
	authorityID = strings.TrimSpace(authorityID)

	allContracts, err := s.contracts.ListContracts(ctx, repository.ContractFilter{})
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoices.ListInvoices(ctx, repository.InvoiceFilter{})
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.ListPayments(ctx, repository.PaymentFilter{AuthorityID: authorityID})
	if err != nil {
		return nil, err
	}

	report := reconcile(authorityID, allContracts, invoices, payments, s.policy)
	return &report, nil
}

func reconcile(authorityID string, contracts []model.Contract, invoices []model.Invoice, payments []model.PaymentReceived, policy Policy) model.Reconciliation {
	authorityOf := make(map[string]string, len(contracts))
	for _, c := range contracts {
		authorityOf[c.ID] = c.Authority.ID
	}

	invoicedByContract := make(map[string]float64)
	var totalInvoiced float64
	for _, inv := range invoices {
		if authorityID != "" && authorityOf[inv.ContractID] != authorityID {
			continue
		}
		invoicedByContract[inv.ContractID] += inv.TotalAmount
		totalInvoiced += inv.TotalAmount
	}

	var totalReceived float64
	for _, p := range payments {
		if authorityID != "" && p.Authority.ID != authorityID {
			continue
		}
		totalReceived += p.Amount
	}

	rows := make([]model.ReconciliationRow, 0, len(contracts))
	var totalExpected float64
	for _, c := range contracts {
		if authorityID != "" && c.Authority.ID != authorityID {
			continue
		}
		expected := 0.0
		if c.IsActive() {
			expected = expectedAmount(c, policy)
		}
		totalExpected += expected
		invoiced := invoicedByContract[c.ID]
		rows = append(rows, model.ReconciliationRow{
			ContractID:      c.ID,
			ServiceUserName: c.ServiceUserName,
			AuthorityName:   c.Authority.Name,
			Expected:        roundMoney(expected),
			Invoiced:        roundMoney(invoiced),
			Variance:        roundMoney(invoiced - expected),
			Status:          c.Status,
		})
	}

	return model.Reconciliation{
		AuthorityID: authorityID,
		Totals: model.ReconciliationTotals{
			Expected:         roundMoney(totalExpected),
			Invoiced:         roundMoney(totalInvoiced),
			Received:         roundMoney(totalReceived),
			VarianceInvoiced: roundMoney(totalInvoiced - totalExpected),
			VarianceReceived: roundMoney(totalReceived - totalInvoiced),
			Outstanding:      roundMoney(totalInvoiced - totalReceived),
		},
		Rows: rows,
	}
}

func (s *ReconciliationService) ExportReconciliation(ctx context.Context, authorityID string) (*ExportResult, error) {
	report, err := s.Reconcile(ctx, authorityID)
	if err != nil {
		return nil, err
	}
	generatedAt := s.now().UTC()
	content, err := s.excel.Generate(*report, generatedAt)
	if err != nil {
		return nil, err
	}

	scope := sanitizeFileName(report.AuthorityID)
	if scope == "" {
		scope = "all"
	}
	return &ExportResult{
		FileName:    fmt.Sprintf("reconciliation-%s-%s.xlsx", scope, generatedAt.Format("20060102")),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     content,
	}, nil
}

func (s *ReconciliationService) Dashboard(ctx context.Context) (*model.DashboardSummary, error) {
	active, err := s.contracts.ListContracts(ctx, repository.ContractFilter{Status: model.ContractStatusActive})
	if err != nil {
		return nil, err
	}
	pending, err := s.payments.ListPayments(ctx, repository.PaymentFilter{Status: model.PaymentStatusPendingAllocation})
	if err != nil {
		return nil, err
	}
	drafts, err := s.invoices.ListInvoices(ctx, repository.InvoiceFilter{Status: model.InvoiceStatusDraft})
	if err != nil {
		return nil, err
	}
	return &model.DashboardSummary{
		ActiveContracts: len(active),
		PendingPayments: len(pending),
		DraftInvoices:   len(drafts),
	}, nil
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
