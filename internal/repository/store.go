package repository

import (
	"sync"

	"github.com/nurpe/careops-billing/internal/model"
)

// Store is the in-memory backing store for every entity. Records are kept in
// insertion order and handed out as copies so callers never alias the stored
// values.
type Store struct {
	mu sync.RWMutex

	services    []model.Service
	assignments []model.RoomAssignment
	contracts   []model.Contract
	invoices    []model.Invoice
	issued      int
	lineItems   map[string][]model.InvoiceLineItem
	payments    []model.PaymentReceived
	allocations map[string][]model.PaymentAllocation
}

func NewStore() *Store {
	return &Store{
		lineItems:   make(map[string][]model.InvoiceLineItem),
		allocations: make(map[string][]model.PaymentAllocation),
	}
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}
	return -1
}
