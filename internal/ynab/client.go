package ynab

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cleared-dev/reimburse/internal/model"
)

// DefaultBaseURL is the public YNAB v1 API.
const DefaultBaseURL = "https://api.ynab.com/v1"

// maxBodySize caps how much of a response is read into memory.
const maxBodySize = 32 << 20

// Client is a minimal read-only YNAB API client. Each call is a single
// attempt; there is no retry.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient creates a Client authorised with a personal access token.
// timeout bounds each HTTP call.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

// Categories returns the budget's category groups.
func (c *Client) Categories(ctx context.Context, budgetID string) ([]model.CategoryGroup, error) {
	body, err := c.get(ctx, "/budgets/"+url.PathEscape(budgetID)+"/categories", nil)
	if err != nil {
		return nil, err
	}
	return ParseCategories(body)
}

// TransactionsByCategory returns the transactions filed under categoryID on
// or after since, including split children in that category.
func (c *Client) TransactionsByCategory(ctx context.Context, budgetID, categoryID string, since time.Time) ([]model.Transaction, error) {
	path := "/budgets/" + url.PathEscape(budgetID) + "/categories/" + url.PathEscape(categoryID) + "/transactions"
	body, err := c.get(ctx, path, sinceQuery(since))
	if err != nil {
		return nil, err
	}
	return ParseTransactions(body)
}

// TransactionsSince returns every transaction in the budget on or after since.
func (c *Client) TransactionsSince(ctx context.Context, budgetID string, since time.Time) ([]model.Transaction, error) {
	body, err := c.get(ctx, "/budgets/"+url.PathEscape(budgetID)+"/transactions", sinceQuery(since))
	if err != nil {
		return nil, err
	}
	return ParseTransactions(body)
}

func sinceQuery(since time.Time) url.Values {
	return url.Values{"since_date": {since.Format(DateLayout)}}
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectivityError{Method: http.MethodGet, Path: path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &ConnectivityError{Method: http.MethodGet, Path: path, Err: fmt.Errorf("reading body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			Method:     http.MethodGet,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}
	return body, nil
}
