package service

import (
	"context"

	"github.com/nurpe/careops-billing/internal/model"
	"github.com/nurpe/careops-billing/internal/repository"
)

type ServiceRepository interface {
	ListServices(ctx context.Context) ([]model.Service, error)
	GetService(ctx context.Context, id string) (*model.Service, error)
	CreateService(ctx context.Context, service model.Service) error
	UpdateService(ctx context.Context, service model.Service) error
	ListActiveAssignments(ctx context.Context, serviceID string) ([]model.RoomAssignment, error)
	ActiveAssignmentForContract(ctx context.Context, contractID string) (*model.RoomAssignment, error)
	CreateAssignment(ctx context.Context, assignment model.RoomAssignment) error
	UpdateAssignment(ctx context.Context, assignment model.RoomAssignment) error
}

type ContractRepository interface {
	ListContracts(ctx context.Context, filter repository.ContractFilter) ([]model.Contract, error)
	GetContract(ctx context.Context, id string) (*model.Contract, error)
	CreateContract(ctx context.Context, contract model.Contract) error
	UpdateContract(ctx context.Context, contract model.Contract) error
	UpdateContracts(ctx context.Context, contracts []model.Contract) error
}

type InvoiceRepository interface {
	ListInvoices(ctx context.Context, filter repository.InvoiceFilter) ([]model.Invoice, error)
	GetInvoice(ctx context.Context, id string) (*model.Invoice, error)
	ListLineItems(ctx context.Context, invoiceID string) ([]model.InvoiceLineItem, error)
	CountInvoices(ctx context.Context) (int, error)
	CreateInvoice(ctx context.Context, invoice model.Invoice, items []model.InvoiceLineItem) error
	UpdateInvoice(ctx context.Context, invoice model.Invoice) error
	DeleteInvoice(ctx context.Context, id string) error
}

type PaymentRepository interface {
	ListPayments(ctx context.Context, filter repository.PaymentFilter) ([]model.PaymentReceived, error)
	GetPayment(ctx context.Context, id string) (*model.PaymentReceived, error)
	CreatePayment(ctx context.Context, payment model.PaymentReceived) error
	SaveAllocation(ctx context.Context, payment model.PaymentReceived, allocations []model.PaymentAllocation) error
	ListAllocations(ctx context.Context, paymentID string) ([]model.PaymentAllocation, error)
}
