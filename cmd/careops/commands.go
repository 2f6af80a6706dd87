package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nurpe/careops-billing/internal/auth"
	"github.com/nurpe/careops-billing/internal/config"
	httphandler "github.com/nurpe/careops-billing/internal/http"
	"github.com/nurpe/careops-billing/internal/http/middleware"
	"github.com/nurpe/careops-billing/internal/logger"
	"github.com/nurpe/careops-billing/internal/model"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "careops",
		Short:         "Care services placement and billing engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCommand(), newReconcileCommand(), newRecommendCommand())
	return root
}

func bootstrap(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Environment)
	return newApp(cmd.Context(), cfg, log)
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd)
			if err != nil {
				return err
			}

			tokenParser := auth.NewParser(a.cfg.Auth.AccessSecret)
			handler := httphandler.NewHandler(a.services, a.log)
			authMiddleware := middleware.Auth(tokenParser)
			router := httphandler.NewRouter(handler, authMiddleware, a.cfg.Environment, a.cfg.HTTP.CORSAllowedOrigins, a.log)

			addr := fmt.Sprintf("%s:%d", a.cfg.HTTP.Host, a.cfg.HTTP.Port)
			a.log.Info().Str("addr", addr).Msg("starting careops service")
			if err := router.Run(addr); err != nil {
				a.log.Error().Err(err).Msg("server stopped")
				return err
			}
			return nil
		},
	}
}

func newReconcileCommand() *cobra.Command {
	var authorityID, out string
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Print expected, invoiced and received totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			report, err := a.services.Reconciliation.Reconcile(cmd.Context(), authorityID)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CONTRACT\tSERVICE USER\tSTATUS\tEXPECTED\tINVOICED\tVARIANCE")
			for _, row := range report.Rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%.2f\n",
					row.ContractID, row.ServiceUserName, row.Status, row.Expected, row.Invoiced, row.Variance)
			}
			t := report.Totals
			fmt.Fprintf(w, "TOTAL\t\t\t%.2f\t%.2f\t%.2f\n", t.Expected, t.Invoiced, t.VarianceInvoiced)
			fmt.Fprintf(w, "RECEIVED\t\t\t\t%.2f\t%.2f\n", t.Received, t.VarianceReceived)
			fmt.Fprintf(w, "OUTSTANDING\t\t\t\t%.2f\t\n", t.Outstanding)
			if err := w.Flush(); err != nil {
				return err
			}

			if out == "" {
				return nil
			}
			export, err := a.services.Reconciliation.ExportReconciliation(cmd.Context(), authorityID)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, export.Content, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			a.log.Info().Str("file", out).Msg("reconciliation exported")
			return nil
		},
	}
	cmd.Flags().StringVar(&authorityID, "authority", "", "limit to one authority id")
	cmd.Flags().StringVar(&out, "out", "", "also write the workbook to this .xlsx file")
	return cmd
}

func newRecommendCommand() *cobra.Command {
	var req model.PlacementRequest
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank services for a prospective placement",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			recs, err := a.services.Placement.RecommendPlacements(cmd.Context(), req)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SERVICE\tREGION\tSCORE\tTIER\tVACANT\tSAVINGS\tREASONING")
			for _, r := range recs {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%v\t%.0f\t%s\n",
					r.ServiceName, r.RegionName, r.EfficiencyScore, r.Recommendation,
					r.VacantRoomNumbers, r.EstimatedAnnualSavings, r.Reasoning)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Float64Var(&req.SharedHours, "shared", 0, "weekly shared hours")
	cmd.Flags().Float64Var(&req.OneToOneHours, "one-to-one", 0, "weekly one-to-one hours")
	cmd.Flags().StringVar(&req.RegionID, "region", "", "region id")
	cmd.Flags().StringVar(&req.AuthorityID, "authority", "", "authority id")
	_ = cmd.MarkFlagRequired("region")
	_ = cmd.MarkFlagRequired("authority")
	return cmd
}
