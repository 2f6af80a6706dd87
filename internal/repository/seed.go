package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/nurpe/careops-billing/internal/model"
)

var (
	authCityCouncil = model.Reference{ID: "auth-1", Name: "City Council"}
	authCounty      = model.Reference{ID: "auth-2", Name: "County Social Services"}
	regionNorth     = model.Reference{ID: "region-1", Name: "North"}
	regionSouth     = model.Reference{ID: "region-2", Name: "South"}
)

func day(raw string) time.Time {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		panic(err)
	}
	return t
}

// Seed loads a small demo dataset: four services, six contracts, their room
// assignments, a handful of invoices and three payments.
func Seed(ctx context.Context, store *Store) error {
	services := []model.Service{
		{ID: "service-1", Name: "Greendale House", Address: "12 Greendale Road", Region: regionNorth, TotalRooms: 4, RoomNaming: model.RoomNamingNumeric, CreatedAt: day("2023-06-01")},
		{ID: "service-2", Name: "Riverside Court", Address: "3 Riverside Walk", Region: regionSouth, TotalRooms: 3, RoomNaming: model.RoomNamingNumeric, CreatedAt: day("2023-08-15")},
		{ID: "service-3", Name: "Oak Lodge", Address: "88 Oak Lane", Region: regionNorth, TotalRooms: 5, RoomNaming: model.RoomNamingAlphabetic, CreatedAt: day("2023-09-10")},
		{ID: "service-4", Name: "Maple View", Address: "5 Maple Close", Region: regionSouth, TotalRooms: 6, RoomNaming: model.RoomNamingNumeric, CreatedAt: day("2024-01-05")},
	}
	for _, service := range services {
		if err := store.CreateService(ctx, service); err != nil {
			return fmt.Errorf("seed service %s: %w", service.ID, err)
		}
	}

	nightHours, nightRate := 56.0, 22.5
	contracts := []model.Contract{
		{
			ID: "contract-1", Authority: authCityCouncil, Region: regionNorth, LotName: "Lot A",
			ServiceUserName: "John Smith", CycleStartDate: day("2024-01-15"),
			SharedHoursPerWeek: 40, SharedRate: 20, OneToOneHoursPerWeek: 20, OneToOneRate: 25.75,
			TwoToOneHoursPerWeek: 10, TwoToOneRate: 30,
			Status: model.ContractStatusActive, CreatedAt: day("2024-01-15"),
		},
		{
			ID: "contract-2", Authority: authCityCouncil, Region: regionNorth, LotName: "Lot A",
			ServiceUserName: "Jane Doe", CycleStartDate: day("2024-01-15"),
			SharedHoursPerWeek: 40, SharedRate: 20, OneToOneHoursPerWeek: 20, OneToOneRate: 25.75,
			Status: model.ContractStatusActive, CreatedAt: day("2024-01-15"),
		},
		{
			ID: "contract-3", Authority: authCityCouncil, Region: regionSouth, LotName: "Lot B",
			ServiceUserName: "Bob Wilson", CycleStartDate: day("2024-02-01"),
			SharedHoursPerWeek: 30, SharedRate: 19.57, OneToOneHoursPerWeek: 15, OneToOneRate: 26.78,
			Status: model.ContractStatusActive, CreatedAt: day("2024-02-01"),
		},
		{
			ID: "contract-4", Authority: authCounty, Region: regionSouth, LotName: "Lot C",
			ServiceUserName: "Mary Jones", CycleStartDate: day("2024-02-05"),
			SharedHoursPerWeek: 35, SharedRate: 21, OneToOneHoursPerWeek: 10, OneToOneRate: 27.5,
			NightHoursPerWeek: &nightHours, NightRate: &nightRate,
			Status: model.ContractStatusActive, CreatedAt: day("2024-02-05"),
		},
		{
			ID: "contract-5", Authority: authCounty, Region: regionSouth, LotName: "Lot C",
			ServiceUserName: "Peter Brown", CycleStartDate: day("2023-11-01"),
			SharedHoursPerWeek: 25, SharedRate: 20.5, OneToOneHoursPerWeek: 5, OneToOneRate: 26,
			Status: model.ContractStatusActive, CreatedAt: day("2023-11-01"),
		},
		{
			ID: "contract-6", Authority: authCityCouncil, Region: regionNorth, LotName: "Lot B",
			ServiceUserName: "Susan Clark", CycleStartDate: day("2024-03-01"),
			SharedHoursPerWeek: 20, SharedRate: 19.57, OneToOneHoursPerWeek: 0, OneToOneRate: 26.78,
			Status: model.ContractStatusActive, CreatedAt: day("2024-03-01"),
		},
	}

	placements := map[string]model.Placement{
		"contract-1": {ServiceID: "service-1", ServiceName: "Greendale House", RoomNumber: "Room 1"},
		"contract-2": {ServiceID: "service-1", ServiceName: "Greendale House", RoomNumber: "Room 2"},
		"contract-3": {ServiceID: "service-1", ServiceName: "Greendale House", RoomNumber: "Room 3"},
		"contract-4": {ServiceID: "service-2", ServiceName: "Riverside Court", RoomNumber: "Room 1"},
		"contract-6": {ServiceID: "service-3", ServiceName: "Oak Lodge", RoomNumber: "Unit A"},
	}

	for i, contract := range contracts {
		if placement, ok := placements[contract.ID]; ok {
			p := placement
			contract.Placement = &p
			assignment := model.RoomAssignment{
				ID:              fmt.Sprintf("assignment-%d", i+1),
				ServiceID:       placement.ServiceID,
				ServiceName:     placement.ServiceName,
				RoomNumber:      placement.RoomNumber,
				ContractID:      contract.ID,
				ServiceUserName: contract.ServiceUserName,
				AssignedDate:    contract.CycleStartDate,
				Status:          model.AssignmentStatusActive,
			}
			if err := store.CreateAssignment(ctx, assignment); err != nil {
				return fmt.Errorf("seed assignment %s: %w", assignment.ID, err)
			}
		}
		if contract.ID == "contract-5" {
			terminated := day("2024-02-29")
			contract.Status = model.ContractStatusTerminated
			contract.TerminatedDate = &terminated
		}
		if err := store.CreateContract(ctx, contract); err != nil {
			return fmt.Errorf("seed contract %s: %w", contract.ID, err)
		}
	}

	finalized := day("2024-02-13")
	invoices := []model.Invoice{
		{ID: "inv-1", InvoiceNumber: "INV-2024-000001", ContractID: "contract-1", ContractName: "John Smith", BillingPeriodStart: day("2024-01-15"), BillingPeriodEnd: day("2024-02-11"), Status: model.InvoiceStatusFinalized, TotalAmount: 6460, GeneratedAt: day("2024-02-12"), FinalizedAt: &finalized},
		{ID: "inv-2", InvoiceNumber: "INV-2024-000002", ContractID: "contract-2", ContractName: "Jane Doe", BillingPeriodStart: day("2024-01-15"), BillingPeriodEnd: day("2024-02-11"), Status: model.InvoiceStatusFinalized, TotalAmount: 5260, GeneratedAt: day("2024-02-12"), FinalizedAt: &finalized},
		{ID: "inv-3", InvoiceNumber: "INV-2024-000003", ContractID: "contract-5", ContractName: "Peter Brown", BillingPeriodStart: day("2024-01-29"), BillingPeriodEnd: day("2024-02-25"), Status: model.InvoiceStatusFinalized, TotalAmount: 2570, GeneratedAt: day("2024-02-26"), FinalizedAt: &finalized},
		{ID: "inv-4", InvoiceNumber: "INV-2024-000004", ContractID: "contract-4", ContractName: "Mary Jones", BillingPeriodStart: day("2024-02-05"), BillingPeriodEnd: day("2024-03-03"), Status: model.InvoiceStatusDraft, TotalAmount: 4040, GeneratedAt: day("2024-03-04")},
	}
	for _, invoice := range invoices {
		if err := store.CreateInvoice(ctx, invoice, nil); err != nil {
			return fmt.Errorf("seed invoice %s: %w", invoice.ID, err)
		}
	}

	payments := []model.PaymentReceived{
		{ID: "payment-1", Authority: authCityCouncil, Amount: 52000, DateReceived: day("2024-02-12"), ReferenceNumber: "REF123456", PeriodLabel: "Period ending 2024-02-11", Status: model.PaymentStatusAllocated, CreatedAt: day("2024-02-12")},
		{ID: "payment-2", Authority: authCounty, Amount: 13500, DateReceived: day("2024-02-13"), ReferenceNumber: "REF789012", PeriodLabel: "Period ending 2024-02-11", Status: model.PaymentStatusPendingAllocation, CreatedAt: day("2024-02-13")},
		{ID: "payment-3", Authority: authCityCouncil, Amount: 48500, DateReceived: day("2024-03-12"), ReferenceNumber: "REF345678", PeriodLabel: "Period ending 2024-03-10", Status: model.PaymentStatusPendingAllocation, CreatedAt: day("2024-03-12")},
	}
	for _, payment := range payments {
		if err := store.CreatePayment(ctx, payment); err != nil {
			return fmt.Errorf("seed payment %s: %w", payment.ID, err)
		}
	}
	return nil
}
