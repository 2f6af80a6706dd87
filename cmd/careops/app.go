package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nurpe/careops-billing/internal/config"
	"github.com/nurpe/careops-billing/internal/excel"
	httphandler "github.com/nurpe/careops-billing/internal/http"
	"github.com/nurpe/careops-billing/internal/pdf"
	"github.com/nurpe/careops-billing/internal/repository"
	"github.com/nurpe/careops-billing/internal/service"
)

// app wires one in-memory store into every use case.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	services httphandler.Services
}

func newApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app, error) {
	store := repository.NewStore()
	if cfg.SeedDemo {
		if err := repository.Seed(ctx, store); err != nil {
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
		log.Info().Msg("demo data loaded")
	}

	ids := repository.UUIDGenerator{}
	policy := cfg.Engine

	return &app{
		cfg: cfg,
		log: log,
		services: httphandler.Services{
			Directory:      service.NewServiceDirectory(store, ids, log),
			Placement:      service.NewPlacementService(store, store, policy, log),
			Contracts:      service.NewContractService(store, store, ids, log),
			Invoices:       service.NewInvoiceService(store, store, pdf.NewGenerator(), ids, policy, log),
			Payments:       service.NewPaymentService(store, store, ids, policy, log),
			Reconciliation: service.NewReconciliationService(store, store, store, excel.NewGenerator(), policy, log),
		},
	}, nil
}
