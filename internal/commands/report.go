package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/reimburse/internal/config"
	"github.com/cleared-dev/reimburse/internal/reimburse"
	"github.com/cleared-dev/reimburse/internal/report"
	"github.com/cleared-dev/reimburse/internal/ynab"
)

type reportOptions struct {
	since  string
	match  string
	format string
}

func newReportCommand(opts *globalOptions) *cobra.Command {
	ropts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print reimbursable transactions with their payees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts, ropts)
		},
	}

	cmd.Flags().StringVar(&ropts.since, "since", "", "earliest date, YYYY-MM-DD (default: lookback_days before today)")
	cmd.Flags().StringVar(&ropts.match, "match", "", "category name substring (overrides match)")
	cmd.Flags().StringVar(&ropts.format, "format", "", "output format: text or csv (overrides format)")

	return cmd
}

func runReport(cmd *cobra.Command, opts *globalOptions, ropts *reportOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	// Flags win over the file, including an explicit --match "".
	if cmd.Flags().Changed("match") {
		cfg.Match = ropts.match
	}
	if ropts.format != "" {
		cfg.Format = ropts.format
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	since := cfg.SinceDate(time.Now())
	if ropts.since != "" {
		since, err = time.Parse(ynab.DateLayout, ropts.since)
		if err != nil {
			return fmt.Errorf("parsing --since: %w", err)
		}
	}

	secrets, err := config.LoadSecrets(cfg.SecretsFile)
	if err != nil {
		return fmt.Errorf("loading secrets: %w", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)
	client := ynab.NewClient(cfg.BaseURL, secrets.Token, cfg.Timeout)
	svc := reimburse.NewService(client, logger)

	res, err := svc.Run(cmd.Context(), reimburse.RunParams{
		Secrets: secrets,
		Match:   cfg.Match,
		Since:   since,
	})
	if err != nil {
		return err
	}

	if cfg.Format == config.FormatCSV {
		return report.CSV(cmd.OutOrStdout(), res)
	}
	return report.Text(cmd.OutOrStdout(), res)
}
