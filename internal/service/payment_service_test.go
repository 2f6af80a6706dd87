package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/careops-billing/internal/model"
)

func TestProposeAllocationProportional(t *testing.T) {
	payment := model.PaymentReceived{ID: "p", Amount: 10000}
	contracts := []model.Contract{
		{ID: "a", ServiceUserName: "A", SharedHoursPerWeek: 75, SharedRate: 20, Status: model.ContractStatusActive},
		{ID: "b", ServiceUserName: "B", SharedHoursPerWeek: 50, SharedRate: 20, Status: model.ContractStatusActive},
	}

	proposal := proposeAllocation(payment, contracts, DefaultPolicy())

	require.Len(t, proposal.Suggestions, 2)
	assert.Equal(t, 6000.0, proposal.Suggestions[0].ExpectedAmount)
	assert.Equal(t, 6000.0, proposal.Suggestions[0].SuggestedAmount)
	assert.Equal(t, 0.0, proposal.Suggestions[0].Variance)
	assert.Equal(t, 4000.0, proposal.Suggestions[1].SuggestedAmount)
	assert.Equal(t, 0.0, proposal.Suggestions[1].Variance)
	assert.Equal(t, 10000.0, proposal.TotalSuggested)
	assert.Equal(t, 0.0, proposal.Difference)
}

func TestProposeAllocationNothingExpected(t *testing.T) {
	payment := model.PaymentReceived{ID: "p", Amount: 500}

	proposal := proposeAllocation(payment, nil, DefaultPolicy())
	assert.Empty(t, proposal.Suggestions)
	assert.Equal(t, 500.0, proposal.Difference)

	zero := []model.Contract{{ID: "a", Status: model.ContractStatusActive}}
	proposal = proposeAllocation(payment, zero, DefaultPolicy())
	assert.Empty(t, proposal.Suggestions)
}

func TestSuggestAllocationRoundingStaysWithinTolerance(t *testing.T) {
	svc := newPaymentService(seededStore(t))

	proposal, err := svc.SuggestAllocation(context.Background(), "payment-3")
	require.NoError(t, err)

	require.Len(t, proposal.Suggestions, 4)
	assert.Equal(t, 16040.8, proposal.TotalExpected)
	assert.InDelta(t, 48500, proposal.TotalSuggested, 0.01*float64(len(proposal.Suggestions)))
	assert.InDelta(t, 0, proposal.Difference, 0.01*float64(len(proposal.Suggestions)))
	for _, s := range proposal.Suggestions {
		assert.NotEqual(t, "contract-5", s.ContractID)
	}
}

func TestSuggestAllocationUnknownPayment(t *testing.T) {
	svc := newPaymentService(seededStore(t))

	_, err := svc.SuggestAllocation(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConfirmAllocation(t *testing.T) {
	store := seededStore(t)
	svc := newPaymentService(store)
	ctx := context.Background()

	records, err := svc.ConfirmAllocation(ctx, "payment-2", []AllocationInput{{ContractID: "contract-4", Amount: 13500}})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, fixedNow, records[0].CreatedAt)

	payment, err := svc.GetPayment(ctx, "payment-2")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusAllocated, payment.Status)

	stored, err := svc.ListAllocations(ctx, "payment-2")
	require.NoError(t, err)
	assert.Equal(t, records, stored)

	_, err = svc.ConfirmAllocation(ctx, "payment-2", []AllocationInput{{ContractID: "contract-4", Amount: 1}})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestConfirmAllocationRejectsBadInput(t *testing.T) {
	svc := newPaymentService(seededStore(t))
	ctx := context.Background()

	cases := []struct {
		name        string
		allocations []AllocationInput
		want        error
	}{
		{"empty", nil, ErrInvalidInput},
		{"negative", []AllocationInput{{ContractID: "contract-1", Amount: -1}}, ErrInvalidInput},
		{"duplicate", []AllocationInput{{ContractID: "contract-1", Amount: 1}, {ContractID: "contract-1", Amount: 2}}, ErrInvalidInput},
		{"other authority", []AllocationInput{{ContractID: "contract-4", Amount: 1}}, ErrInvalidInput},
		{"unknown contract", []AllocationInput{{ContractID: "nope", Amount: 1}}, ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ConfirmAllocation(ctx, "payment-3", tc.allocations)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	payment, err := svc.GetPayment(ctx, "payment-3")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPendingAllocation, payment.Status)
}

func TestBalanced(t *testing.T) {
	assert.True(t, Balanced(100, []AllocationInput{{Amount: 33.33}, {Amount: 33.33}, {Amount: 33.34}}))
	assert.True(t, Balanced(100, []AllocationInput{{Amount: 99.99}}))
	assert.False(t, Balanced(100, []AllocationInput{{Amount: 99.98}}))
}

func TestRecordPayment(t *testing.T) {
	svc := newPaymentService(seededStore(t))
	ctx := context.Background()

	payment, err := svc.RecordPayment(ctx, RecordPaymentInput{
		Authority:       model.Reference{ID: "auth-2", Name: "County"},
		Amount:          1234.567,
		DateReceived:    fixedNow,
		ReferenceNumber: " REF-1 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "payment-101", payment.ID)
	assert.Equal(t, 1234.57, payment.Amount)
	assert.Equal(t, "REF-1", payment.ReferenceNumber)
	assert.Equal(t, model.PaymentStatusPendingAllocation, payment.Status)

	listed, err := svc.ListPayments(ctx, "auth-2")
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	_, err = svc.RecordPayment(ctx, RecordPaymentInput{Authority: model.Reference{ID: "auth-2"}, DateReceived: fixedNow, ReferenceNumber: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
