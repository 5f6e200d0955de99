package reimburse

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/reimburse/internal/config"
	"github.com/cleared-dev/reimburse/internal/model"
)

// API is the subset of the YNAB client a run needs.
type API interface {
	Categories(ctx context.Context, budgetID string) ([]model.CategoryGroup, error)
	TransactionsByCategory(ctx context.Context, budgetID, categoryID string, since time.Time) ([]model.Transaction, error)
	TransactionsSince(ctx context.Context, budgetID string, since time.Time) ([]model.Transaction, error)
}

// Service runs the fetch, match and resolve pipeline.
type Service struct {
	api    API
	logger *log.Logger
}

// NewService creates a Service. A nil logger discards output.
func NewService(api API, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{api: api, logger: logger}
}

// RunParams holds the inputs for one run.
type RunParams struct {
	Secrets config.Secrets
	Match   string // category name substring; empty = use Secrets.ReimbursementCategoryID
	Since   time.Time
}

// Result is everything a report needs.
type Result struct {
	CategoryID   string
	Since        time.Time
	Transactions []model.Transaction // category-scoped, API order
	Payees       map[string]string   // transaction ID -> payee name
	Matches      []Match
}

// Run resolves the category, fetches category-scoped and budget-wide
// transactions concurrently, and matches them. Any failure ends the run.
func (s *Service) Run(ctx context.Context, params RunParams) (*Result, error) {
	categoryID, err := s.categoryID(ctx, params)
	if err != nil {
		return nil, err
	}

	var (
		scoped []model.Transaction
		all    []model.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		txns, err := s.api.TransactionsByCategory(gctx, params.Secrets.BudgetID, categoryID, params.Since)
		if err != nil {
			return fmt.Errorf("fetching category transactions: %w", err)
		}
		scoped = txns
		return nil
	})
	g.Go(func() error {
		txns, err := s.api.TransactionsSince(gctx, params.Secrets.BudgetID, params.Since)
		if err != nil {
			return fmt.Errorf("fetching payee names: %w", err)
		}
		all = txns
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Debug("fetched transactions", "category", len(scoped), "budget", len(all), "since", params.Since.Format(time.DateOnly))
	for _, txn := range scoped {
		if !txn.HasPayee() {
			s.logger.Warn("transaction has no payee", "id", txn.ID, "parent", txn.ParentID, "date", txn.Date.Format(time.DateOnly))
		}
	}

	payees := PayeeLookup(all)
	matcher := Matcher{Name: params.Match, CategoryID: categoryID}
	matches := matcher.Match(scoped, payees)
	for _, m := range matches {
		if !m.Resolved {
			s.logger.Warn("payee unresolved", "id", m.Transaction.ID, "parent", m.Transaction.ParentID)
		}
	}

	return &Result{
		CategoryID:   categoryID,
		Since:        params.Since,
		Transactions: scoped,
		Payees:       payees,
		Matches:      matches,
	}, nil
}

func (s *Service) categoryID(ctx context.Context, params RunParams) (string, error) {
	configured := params.Secrets.ReimbursementCategoryID
	if params.Match == "" {
		return configured, nil
	}

	groups, err := s.api.Categories(ctx, params.Secrets.BudgetID)
	if err != nil {
		return "", fmt.Errorf("fetching categories: %w", err)
	}
	id, err := ResolveCategory(groups, params.Match)
	if err != nil {
		return "", fmt.Errorf("resolving category: %w", err)
	}
	if configured != "" && id != configured {
		s.logger.Warn("resolved category differs from reimbursement_category_id", "match", params.Match, "resolved", id, "configured", configured)
	}
	s.logger.Debug("resolved category", "match", params.Match, "id", id)
	return id, nil
}

// Categories lists the budget's category groups.
func (s *Service) Categories(ctx context.Context, budgetID string) ([]model.CategoryGroup, error) {
	groups, err := s.api.Categories(ctx, budgetID)
	if err != nil {
		return nil, fmt.Errorf("fetching categories: %w", err)
	}
	return groups, nil
}
