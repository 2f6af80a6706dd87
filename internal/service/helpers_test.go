package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/careops-billing/internal/model"
	"github.com/nurpe/careops-billing/internal/repository"
)

var fixedNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

func seededStore(t *testing.T) *repository.Store {
	t.Helper()
	store := repository.NewStore()
	require.NoError(t, repository.Seed(context.Background(), store))
	return store
}

func clock() time.Time { return fixedNow }

func newPlacementService(store *repository.Store) *PlacementService {
	return NewPlacementService(store, store, DefaultPolicy(), zerolog.Nop())
}

func newContractService(store *repository.Store) *ContractService {
	svc := NewContractService(store, store, repository.NewSequenceGenerator(100), zerolog.Nop())
	svc.now = clock
	return svc
}

func newPaymentService(store *repository.Store) *PaymentService {
	svc := NewPaymentService(store, store, repository.NewSequenceGenerator(100), DefaultPolicy(), zerolog.Nop())
	svc.now = clock
	return svc
}

type stubPDF struct {
	doc model.InvoiceDocument
}

func (s *stubPDF) Generate(doc model.InvoiceDocument) ([]byte, error) {
	s.doc = doc
	return []byte("%PDF-stub"), nil
}

type stubExcel struct {
	report model.Reconciliation
}

func (s *stubExcel) Generate(report model.Reconciliation, _ time.Time) ([]byte, error) {
	s.report = report
	return []byte("xlsx"), nil
}
