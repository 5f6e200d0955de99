package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/reimburse/internal/config"
)

// Placeholders written to a fresh secrets file.
const (
	placeholderToken      = "YOUR_PERSONAL_ACCESS_TOKEN"
	placeholderBudgetID   = "last-used"
	placeholderCategoryID = "CHANGE_ME"
)

func newInitCommand() *cobra.Command {
	var secrets config.Secrets
	var match string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default reimburse.yaml and secrets file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, secrets, match); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized reimburse config at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&secrets.Token, "token", placeholderToken, "YNAB personal access token")
	cmd.Flags().StringVar(&secrets.BudgetID, "budget-id", placeholderBudgetID, "YNAB budget ID")
	cmd.Flags().StringVar(&secrets.ReimbursementCategoryID, "category-id", "", "reimbursement category ID")
	cmd.Flags().StringVar(&match, "match", config.Default().Match, "category name substring")

	return cmd
}

func runInit(dir string, secrets config.Secrets, match string) error {
	cfg := config.Default()
	cfg.Match = match

	configPath := filepath.Join(dir, config.FileName)
	secretsPath := filepath.Join(dir, cfg.SecretsFile)

	// Never clobber an existing setup.
	for _, p := range []string{configPath, secretsPath} {
		if _, err := os.Stat(p); err == nil {
			return fmt.Errorf("%s already exists", p)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", p, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(secretsPath), 0o700); err != nil {
		return fmt.Errorf("creating secrets directory: %w", err)
	}

	if err := config.Save(configPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// The category ID is required by LoadSecrets; leave a marker the user
	// must replace rather than an empty value.
	if secrets.ReimbursementCategoryID == "" {
		secrets.ReimbursementCategoryID = placeholderCategoryID
	}
	if err := config.SaveSecrets(secretsPath, secrets); err != nil {
		return fmt.Errorf("writing secrets: %w", err)
	}

	if err := ensureGitignore(dir, filepath.Dir(cfg.SecretsFile)+"/"); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}
	return nil
}

// ensureGitignore appends pattern to dir/.gitignore unless already listed.
func ensureGitignore(dir, pattern string) error {
	path := filepath.Join(dir, ".gitignore")
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == pattern {
			return nil
		}
	}

	content := string(data)
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += pattern + "\n"
	return os.WriteFile(path, []byte(content), 0o644)
}
