package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/reimburse/internal/buildinfo"
	"github.com/cleared-dev/reimburse/internal/config"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath  string
	secretsPath string
	verbose     bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
// Run without a subcommand, it prints the reimbursement report.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "reimburse",
		Short:   "List YNAB transactions owed back to you",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts, &reportOptions{})
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.FileName, "config file (optional)")
	flags.StringVar(&opts.secretsPath, "secrets", "", "secrets file (overrides secrets_file)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging on stderr")

	rootCmd.AddCommand(newReportCommand(opts))
	rootCmd.AddCommand(newCategoriesCommand(opts))
	rootCmd.AddCommand(newInitCommand())

	return rootCmd
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: "reimburse"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig reads the optional config file, then .env and the process
// environment, then the --secrets flag, and validates the result.
func loadConfig(opts *globalOptions) (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.LoadOrDefault(opts.configPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if opts.secretsPath != "" {
		cfg.SecretsFile = opts.secretsPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
