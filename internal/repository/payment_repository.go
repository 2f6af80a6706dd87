package repository

import (
	"context"

	"github.com/nurpe/careops-billing/internal/model"
)

// PaymentFilter narrows ListPayments. Zero values match everything.
type PaymentFilter struct {
	AuthorityID string
	Status      model.PaymentStatus
}

func (s *Store) ListPayments(ctx context.Context, filter PaymentFilter) ([]model.PaymentReceived, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []model.PaymentReceived
	for _, item := range s.payments {
		if filter.AuthorityID != "" && item.Authority.ID != filter.AuthorityID {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *Store) GetPayment(ctx context.Context, id string) (*model.PaymentReceived, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos := indexOf(s.payments, func(item model.PaymentReceived) bool { return item.ID == id })
	if pos < 0 {
		return nil, ErrNotFound
	}
	payment := s.payments[pos]
	return &payment, nil
}

func (s *Store) CreatePayment(ctx context.Context, payment model.PaymentReceived) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.payments, func(item model.PaymentReceived) bool { return item.ID == payment.ID }) >= 0 {
		return ErrConflict
	}
	s.payments = append(s.payments, payment)
	return nil
}

// SaveAllocation stores the confirmed allocations and the payment's new state
// together.
func (s *Store) SaveAllocation(ctx context.Context, payment model.PaymentReceived, allocations []model.PaymentAllocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos := indexOf(s.payments, func(item model.PaymentReceived) bool { return item.ID == payment.ID })
	if pos < 0 {
		return ErrNotFound
	}
	s.payments[pos] = payment
	stored := make([]model.PaymentAllocation, len(allocations))
	copy(stored, allocations)
	s.allocations[payment.ID] = stored
	return nil
}

func (s *Store) ListAllocations(ctx context.Context, paymentID string) ([]model.PaymentAllocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.allocations[paymentID]
	result := make([]model.PaymentAllocation, len(items))
	copy(result, items)
	return result, nil
}
