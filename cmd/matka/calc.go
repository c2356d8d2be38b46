package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"matka_backend/internal/config"
	"matka_backend/internal/config/env"
	"matka_backend/internal/converter"
	"matka_backend/internal/model"
	"matka_backend/internal/service/payout"

	"github.com/spf13/cobra"
)

type calcOptions struct {
	configPath string
	session    string
	number     string
	open       string
	totalsPath string
}

func newCalcCmd() *cobra.Command {
	opts := calcOptions{}

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute payouts for a result offline",
		Example: `  matka calc --session open --number 234 --totals totals.json
  matka calc --session close --number 138 --open 234 --totals totals.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalc(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "config.yaml", "game config (rates, panna lists)")
	cmd.Flags().StringVar(&opts.session, "session", "", "open or close")
	cmd.Flags().StringVar(&opts.number, "number", "", "declared number")
	cmd.Flags().StringVar(&opts.open, "open", "", "open result number (close session only)")
	cmd.Flags().StringVar(&opts.totalsPath, "totals", "", "JSON file with aggregated bet totals")
	_ = cmd.MarkFlagRequired("session")
	_ = cmd.MarkFlagRequired("number")
	_ = cmd.MarkFlagRequired("totals")

	return cmd
}

func runCalc(out, errOut io.Writer, opts calcOptions) error {
	cfg, err := env.NewGameConfigFromYAML(opts.configPath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(opts.totalsPath)
	if err != nil {
		return fmt.Errorf("read totals: %w", err)
	}
	var totals model.AggregatedBetTotals
	if err := json.Unmarshal(data, &totals); err != nil {
		return fmt.Errorf("parse totals: %w", err)
	}

	calc := payout.NewCalculator(cfg.WinningRates(), cfg.PannaCatalogue())

	var res *model.PayoutBreakdown
	switch model.Session(opts.session) {
	case model.SessionOpen:
		res, err = calc.ComputeForOpen(opts.number, &totals)
	case model.SessionClose:
		var open *model.OpenResult
		if opts.open != "" {
			if open, err = payout.NewOpenResult(opts.open); err != nil {
				return err
			}
		}
		res, err = calc.ComputeForClose(opts.number, open, &totals)
		if errors.Is(err, payout.ErrMissingOpenResult) && cfg.MissingOpenPolicy() == config.MissingOpenFallback {
			fmt.Fprintln(errOut, "warning:", err)
			err = nil
		}
	default:
		return fmt.Errorf("session must be open or close, got %q", opts.session)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(converter.ToBreakdownResponse(*res))
}
