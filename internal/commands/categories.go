package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/reimburse/internal/config"
	"github.com/cleared-dev/reimburse/internal/model"
	"github.com/cleared-dev/reimburse/internal/reimburse"
	"github.com/cleared-dev/reimburse/internal/ynab"
)

func newCategoriesCommand(opts *globalOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List budget categories and their IDs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			secrets, err := config.LoadSecrets(cfg.SecretsFile)
			if err != nil {
				return fmt.Errorf("loading secrets: %w", err)
			}

			client := ynab.NewClient(cfg.BaseURL, secrets.Token, cfg.Timeout)
			svc := reimburse.NewService(client, newLogger(cmd.ErrOrStderr(), opts.verbose))
			groups, err := svc.Categories(cmd.Context(), secrets.BudgetID)
			if err != nil {
				return err
			}
			return printCategories(cmd, groups, all)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include hidden and deleted categories")

	return cmd
}

func printCategories(cmd *cobra.Command, groups []model.CategoryGroup, all bool) error {
	w := cmd.OutOrStdout()
	for _, g := range groups {
		if !all && (g.Hidden || g.Deleted) {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s%s\n", g.Name, statusSuffix(g.Hidden, g.Deleted)); err != nil {
			return err
		}
		for _, c := range g.Categories {
			if !all && (c.Hidden || c.Deleted) {
				continue
			}
			if _, err := fmt.Fprintf(w, "  %s\t%s%s\n", c.ID, c.Name, statusSuffix(c.Hidden, c.Deleted)); err != nil {
				return err
			}
		}
	}
	return nil
}

func statusSuffix(hidden, deleted bool) string {
	switch {
	case deleted:
		return " (deleted)"
	case hidden:
		return " (hidden)"
	}
	return ""
}
