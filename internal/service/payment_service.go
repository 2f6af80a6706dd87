package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nurpe/careops-billing/internal/model"
	"github.com/nurpe/careops-billing/internal/repository"
)

// AllocationTolerance is how far confirmed allocations may drift from the
// payment amount before the API refuses them. The service itself records
// whatever the caller confirms.
const AllocationTolerance = 0.01

type PaymentService struct {
	payments  PaymentRepository
	contracts ContractRepository
	ids       repository.IDGenerator
	policy    Policy
	log       zerolog.Logger
	now       func() time.Time
}

func NewPaymentService(payments PaymentRepository, contracts ContractRepository, ids repository.IDGenerator, policy Policy, log zerolog.Logger) *PaymentService {
	return &PaymentService{
		payments:  payments,
		contracts: contracts,
		ids:       ids,
		policy:    policy,
		log:       log,
		now:       time.Now,
	}
}

type RecordPaymentInput struct {
	Authority       model.Reference
	Amount          float64
	DateReceived    time.Time
	ReferenceNumber string
	PeriodLabel     string
}

type AllocationInput struct {
	ContractID string  `json:"contract_id"`
	Amount     float64 `json:"amount"`
}

func (s *PaymentService) ListPayments(ctx context.Context, authorityID string) ([]model.PaymentReceived, error) {
	return s.payments.ListPayments(ctx, repository.PaymentFilter{AuthorityID: authorityID})
}

func (s *PaymentService) GetPayment(ctx context.Context, id string) (*model.PaymentReceived, error) {
	payment, err := s.payments.GetPayment(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return payment, nil
}

func (s *PaymentService) RecordPayment(ctx context.Context, input RecordPaymentInput) (*model.PaymentReceived, error) {
	if strings.TrimSpace(input.Authority.ID) == "" {
		return nil, fmt.Errorf("%w: authority id is required", ErrInvalidInput)
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(input.ReferenceNumber) == "" {
		return nil, fmt.Errorf("%w: reference number is required", ErrInvalidInput)
	}
	if input.DateReceived.IsZero() {
		return nil, fmt.Errorf("%w: date received is required", ErrInvalidInput)
	}

	payment := model.PaymentReceived{
		ID:              s.ids.NewID("payment"),
		Authority:       input.Authority,
		Amount:          roundMoney(input.Amount),
		DateReceived:    input.DateReceived,
		ReferenceNumber: strings.TrimSpace(input.ReferenceNumber),
		PeriodLabel:     strings.TrimSpace(input.PeriodLabel),
		Status:          model.PaymentStatusPendingAllocation,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.payments.CreatePayment(ctx, payment); err != nil {
		return nil, translate(err)
	}
	s.log.Info().Str("payment_id", payment.ID).Float64("amount", payment.Amount).Msg("payment recorded")
	return &payment, nil
}

// SuggestAllocation spreads the payment over the authority's active contracts
// in proportion to what each contract is expected to bill.
func (s *PaymentService) SuggestAllocation(ctx context.Context, paymentID string) (*model.AllocationProposal, error) {
	payment, err := s.payments.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, translate(err)
	}
	contracts, err := s.contracts.ListContracts(ctx, repository.ContractFilter{
		AuthorityID: payment.Authority.ID,
		Status:      model.ContractStatusActive,
	})
	if err != nil {
		return nil, err
	}
	proposal := proposeAllocation(*payment, contracts, s.policy)
	return &proposal, nil
}

// proposeAllocation returns no suggestions when nothing is expected, since a
// proportional split is undefined. Each value is rounded on its own; the
// leftover is reported as Difference rather than pushed onto a contract.
func proposeAllocation(payment model.PaymentReceived, contracts []model.Contract, policy Policy) model.AllocationProposal {
	proposal := model.AllocationProposal{
		PaymentID:     payment.ID,
		PaymentAmount: payment.Amount,
		Suggestions:   []model.AllocationSuggestion{},
	}

	expected := make([]float64, len(contracts))
	totalExpected := 0.0
	for i, contract := range contracts {
		expected[i] = expectedAmount(contract, policy)
		totalExpected += expected[i]
	}
	if totalExpected == 0 {
		proposal.Difference = roundMoney(payment.Amount)
		return proposal
	}

	suggestedAmounts := make([]float64, 0, len(contracts))
	for i, contract := range contracts {
		suggested := expected[i] / totalExpected * payment.Amount
		item := model.AllocationSuggestion{
			ContractID:      contract.ID,
			ContractName:    contract.ServiceUserName,
			ExpectedAmount:  roundMoney(expected[i]),
			SuggestedAmount: roundMoney(suggested),
			Variance:        roundMoney(suggested - expected[i]),
		}
		proposal.Suggestions = append(proposal.Suggestions, item)
		suggestedAmounts = append(suggestedAmounts, item.SuggestedAmount)
	}
	proposal.TotalExpected = roundMoney(totalExpected)
	proposal.TotalSuggested = sumMoney(suggestedAmounts...)
	proposal.Difference = sumMoney(payment.Amount, -proposal.TotalSuggested)
	return proposal
}

// expectedAmount is the billing-cycle value of shared and one-to-one support.
// Two-to-one and night hours are left out.
func expectedAmount(c model.Contract, policy Policy) float64 {
	return c.SharedHoursPerWeek*policy.BillingWeeks*c.SharedRate +
		c.OneToOneHoursPerWeek*policy.BillingWeeks*c.OneToOneRate
}

// Balanced reports whether allocations add up to amount within
// AllocationTolerance.
func Balanced(amount float64, allocations []AllocationInput) bool {
	values := make([]float64, 0, len(allocations)+1)
	values = append(values, amount)
	for _, a := range allocations {
		values = append(values, -a.Amount)
	}
	return math.Abs(sumMoney(values...)) <= AllocationTolerance
}

// ConfirmAllocation records the caller's chosen split and marks the payment
// allocated. The amounts need not match the suggestion or add up to the
// payment.
func (s *PaymentService) ConfirmAllocation(ctx context.Context, paymentID string, allocations []AllocationInput) ([]model.PaymentAllocation, error) {
	payment, err := s.payments.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, translate(err)
	}
	if payment.Status != model.PaymentStatusPendingAllocation {
		return nil, fmt.Errorf("%w: payment %s is already %s", ErrInvalidState, payment.ID, payment.Status)
	}
	if len(allocations) == 0 {
		return nil, fmt.Errorf("%w: at least one allocation is required", ErrInvalidInput)
	}

	now := s.now().UTC()
	seen := make(map[string]struct{}, len(allocations))
	records := make([]model.PaymentAllocation, 0, len(allocations))
	for _, item := range allocations {
		if item.Amount < 0 {
			return nil, fmt.Errorf("%w: allocation for %s is negative", ErrInvalidInput, item.ContractID)
		}
		if _, dup := seen[item.ContractID]; dup {
			return nil, fmt.Errorf("%w: contract %s allocated twice", ErrInvalidInput, item.ContractID)
		}
		seen[item.ContractID] = struct{}{}

		contract, err := s.contracts.GetContract(ctx, item.ContractID)
		if err != nil {
			return nil, translate(err)
		}
		if contract.Authority.ID != payment.Authority.ID {
			return nil, fmt.Errorf("%w: contract %s belongs to another authority", ErrInvalidInput, contract.ID)
		}
		records = append(records, model.PaymentAllocation{
			PaymentID:  payment.ID,
			ContractID: contract.ID,
			Amount:     roundMoney(item.Amount),
			CreatedAt:  now,
		})
	}

	payment.Status = model.PaymentStatusAllocated
	if err := s.payments.SaveAllocation(ctx, *payment, records); err != nil {
		return nil, translate(err)
	}
	s.log.Info().
		Str("payment_id", payment.ID).
		Int("contracts", len(records)).
		Msg("payment allocated")
	return records, nil
}

func (s *PaymentService) ListAllocations(ctx context.Context, paymentID string) ([]model.PaymentAllocation, error) {
	if _, err := s.payments.GetPayment(ctx, paymentID); err != nil {
		return nil, translate(err)
	}
	return s.payments.ListAllocations(ctx, paymentID)
}
