package repository

import (
	"context"

	"github.com/nurpe/careops-billing/internal/model"
)

// InvoiceFilter narrows ListInvoices. Zero values match everything.
type InvoiceFilter struct {
	ContractID string
	Status     model.InvoiceStatus
}

func (s *Store) ListInvoices(ctx context.Context, filter InvoiceFilter) ([]model.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []model.Invoice
	for _, item := range s.invoices {
		if filter.ContractID != "" && item.ContractID != filter.ContractID {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		result = append(result, cloneInvoice(item))
	}
	return result, nil
}

func (s *Store) GetInvoice(ctx context.Context, id string) (*model.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos := indexOf(s.invoices, func(item model.Invoice) bool { return item.ID == id })
	if pos < 0 {
		return nil, ErrNotFound
	}
	invoice := cloneInvoice(s.invoices[pos])
	return &invoice, nil
}

func (s *Store) ListLineItems(ctx context.Context, invoiceID string) ([]model.InvoiceLineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.lineItems[invoiceID]
	result := make([]model.InvoiceLineItem, len(items))
	copy(result, items)
	return result, nil
}

// CountInvoices returns how many invoices have ever been stored; it feeds the
// invoice number sequence.
func (s *Store) CountInvoices(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.issued, nil
}

func (s *Store) CreateInvoice(ctx context.Context, invoice model.Invoice, items []model.InvoiceLineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.invoices, func(item model.Invoice) bool { return item.ID == invoice.ID }) >= 0 {
		return ErrConflict
	}
	s.invoices = append(s.invoices, cloneInvoice(invoice))
	s.issued++
	stored := make([]model.InvoiceLineItem, len(items))
	copy(stored, items)
	s.lineItems[invoice.ID] = stored
	return nil
}

func (s *Store) UpdateInvoice(ctx context.Context, invoice model.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos := indexOf(s.invoices, func(item model.Invoice) bool { return item.ID == invoice.ID })
	if pos < 0 {
		return ErrNotFound
	}
	s.invoices[pos] = cloneInvoice(invoice)
	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos := indexOf(s.invoices, func(item model.Invoice) bool { return item.ID == id })
	if pos < 0 {
		return ErrNotFound
	}
	s.invoices = append(s.invoices[:pos], s.invoices[pos+1:]...)
	delete(s.lineItems, id)
	return nil
}

func cloneInvoice(inv model.Invoice) model.Invoice {
	if inv.FinalizedAt != nil {
		finalized := *inv.FinalizedAt
		inv.FinalizedAt = &finalized
	}
	return inv
}
