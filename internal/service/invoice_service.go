package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/nurpe/careops-billing/internal/model"
	"github.com/nurpe/careops-billing/internal/repository"
)

// billingPeriodDays is the span from the first to the last day of a period.
const billingPeriodDays = 27

type PDFGenerator interface {
	Generate(doc model.InvoiceDocument) ([]byte, error)
}

type InvoiceService struct {
	invoices  InvoiceRepository
	contracts ContractRepository
	pdf       PDFGenerator
	ids       repository.IDGenerator
	policy    Policy
	log       zerolog.Logger
	now       func() time.Time
}

func NewInvoiceService(invoices InvoiceRepository, contracts ContractRepository, pdf PDFGenerator, ids repository.IDGenerator, policy Policy, log zerolog.Logger) *InvoiceService {
	return &InvoiceService{
		invoices:  invoices,
		contracts: contracts,
		pdf:       pdf,
		ids:       ids,
		policy:    policy,
		log:       log,
		now:       time.Now,
	}
}

func (s *InvoiceService) ListInvoices(ctx context.Context, contractID string) ([]model.Invoice, error) {
	return s.invoices.ListInvoices(ctx, repository.InvoiceFilter{ContractID: contractID})
}

func (s *InvoiceService) GetInvoice(ctx context.Context, id string) (*model.InvoiceDetails, error) {
	invoice, err := s.invoices.GetInvoice(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	items, err := s.invoices.ListLineItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.InvoiceDetails{Invoice: *invoice, LineItems: items}, nil
}

// GenerateInvoice drafts an invoice for one contract covering the billing
// period that starts on periodStart.
func (s *InvoiceService) GenerateInvoice(ctx context.Context, contractID string, periodStart time.Time) (*model.InvoiceDetails, error) {
	if periodStart.IsZero() {
		return nil, fmt.Errorf("%w: period start is required", ErrInvalidInput)
	}
	contract, err := s.contracts.GetContract(ctx, contractID)
	if err != nil {
		return nil, translate(err)
	}
	if contract.TerminatedDate != nil && periodStart.After(*contract.TerminatedDate) {
		return nil, fmt.Errorf("%w: contract %s ended before the period", ErrInvalidState, contract.ID)
	}

	count, err := s.invoices.CountInvoices(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	invoice := model.Invoice{
		ID:                 s.ids.NewID("inv"),
		InvoiceNumber:      fmt.Sprintf("INV-%d-%06d", now.Year(), count+1),
		ContractID:         contract.ID,
		ContractName:       contract.ServiceUserName,
		BillingPeriodStart: periodStart,
		BillingPeriodEnd:   periodStart.AddDate(0, 0, billingPeriodDays),
		Status:             model.InvoiceStatusDraft,
		GeneratedAt:        now,
	}
	items := s.lineItems(invoice.ID, *contract)
	amounts := make([]float64, len(items))
	for i, item := range items {
		amounts[i] = item.Amount
	}
	invoice.TotalAmount = sumMoney(amounts...)

	if err := s.invoices.CreateInvoice(ctx, invoice, items); err != nil {
		return nil, translate(err)
	}
	s.log.Info().
		Str("invoice_id", invoice.ID).
		Str("contract_id", contract.ID).
		Float64("total", invoice.TotalAmount).
		Msg("invoice generated")
	return &model.InvoiceDetails{Invoice: invoice, LineItems: items}, nil
}

func (s *InvoiceService) lineItems(invoiceID string, c model.Contract) []model.InvoiceLineItem {
	type line struct {
		kind  model.SupportType
		label string
		hours float64
		rate  float64
	}
	lines := []line{
		{model.SupportShared, "Shared support", c.SharedHoursPerWeek, c.SharedRate},
		{model.SupportOneToOne, "1:1 support", c.OneToOneHoursPerWeek, c.OneToOneRate},
		{model.SupportTwoToOne, "2:1 support", c.TwoToOneHoursPerWeek, c.TwoToOneRate},
	}
	if c.NightHoursPerWeek != nil && c.NightRate != nil {
		lines = append(lines, line{model.SupportNight, "Night support", *c.NightHoursPerWeek, *c.NightRate})
	}

	items := make([]model.InvoiceLineItem, 0, len(lines))
	for _, l := range lines {
		if l.hours <= 0 {
			continue
		}
		hours := l.hours * s.policy.BillingWeeks
		rate := l.rate
		items = append(items, model.InvoiceLineItem{
			ID:          s.ids.NewID("line"),
			InvoiceID:   invoiceID,
			LineType:    l.kind,
			Description: fmt.Sprintf("%s (%gh/week x %g weeks)", l.label, l.hours, s.policy.BillingWeeks),
			Hours:       &hours,
			Rate:        &rate,
			Amount:      roundMoney(hours * rate),
		})
	}
	return items
}

// FinalizeInvoice locks a draft. Finalized invoices cannot go back to draft.
func (s *InvoiceService) FinalizeInvoice(ctx context.Context, id string) (*model.Invoice, error) {
	invoice, err := s.invoices.GetInvoice(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if invoice.Status != model.InvoiceStatusDraft {
		return nil, fmt.Errorf("%w: invoice %s is already finalized", ErrInvalidState, invoice.InvoiceNumber)
	}
	now := s.now().UTC()
	invoice.Status = model.InvoiceStatusFinalized
	invoice.FinalizedAt = &now
	if err := s.invoices.UpdateInvoice(ctx, *invoice); err != nil {
		return nil, translate(err)
	}
	s.log.Info().Str("invoice_id", invoice.ID).Msg("invoice finalized")
	return invoice, nil
}

// DeleteInvoice removes a draft; finalized invoices are kept.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id string) error {
	invoice, err := s.invoices.GetInvoice(ctx, id)
	if err != nil {
		return translate(err)
	}
	if invoice.Status == model.InvoiceStatusFinalized {
		return fmt.Errorf("%w: finalized invoice %s cannot be deleted", ErrInvalidState, invoice.InvoiceNumber)
	}
	return translate(s.invoices.DeleteInvoice(ctx, id))
}

func (s *InvoiceService) RenderInvoicePDF(ctx context.Context, id string) (*ExportResult, error) {
	details, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	contract, err := s.contracts.GetContract(ctx, details.ContractID)
	if err != nil {
		return nil, translate(err)
	}
	content, err := s.pdf.Generate(model.InvoiceDocument{Invoice: *details, Contract: *contract})
	if err != nil {
		return nil, err
	}
	name := sanitizeFileName(details.InvoiceNumber)
	if name == "" {
		name = sanitizeFileName(details.ID)
	}
	return &ExportResult{
		FileName:    name + ".pdf",
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}
