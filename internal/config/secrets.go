package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Keys recognised in the secrets file.
const (
	KeyToken                   = "token"
	KeyBudgetID                = "budget_id"
	KeyReimbursementCategoryID = "reimbursement_category_id"
)

// Secrets holds the YNAB credentials and identifiers for one run.
type Secrets struct {
	Token                   string
	BudgetID                string
	ReimbursementCategoryID string
}

// SecretsError reports a missing or malformed secrets file.
type SecretsError struct {
	Path string
	Line int // 1-based; 0 when the error is not tied to a line
	Err  error
}

func (e *SecretsError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("secrets %s line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("secrets %s: %v", e.Path, e.Err)
}

func (e *SecretsError) Unwrap() error { return e.Err }

// LoadSecrets reads a file of "key = value" lines. Lines are split on the
// first '=', keys are case-insensitive, and blank or '#' lines are skipped.
func LoadSecrets(path string) (Secrets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Secrets{}, &SecretsError{Path: path, Err: err}
	}

	values := make(map[string]string)
	sc := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return Secrets{}, &SecretsError{Path: path, Line: lineNo, Err: errors.New("expected key = value")}
		}
		values[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	if err := sc.Err(); err != nil {
		return Secrets{}, &SecretsError{Path: path, Err: err}
	}

	var missing []string
	for _, k := range []string{KeyToken, KeyBudgetID, KeyReimbursementCategoryID} {
		if values[k] == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return Secrets{}, &SecretsError{Path: path, Err: fmt.Errorf("missing required keys: %s", strings.Join(missing, ", "))}
	}

	return Secrets{
		Token:                   values[KeyToken],
		BudgetID:                values[KeyBudgetID],
		ReimbursementCategoryID: values[KeyReimbursementCategoryID],
	}, nil
}

// SaveSecrets writes s in the format LoadSecrets reads. The file is created
// with owner-only permissions.
func SaveSecrets(path string, s Secrets) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s = %s\n", KeyToken, s.Token)
	fmt.Fprintf(&b, "%s = %s\n", KeyBudgetID, s.BudgetID)
	fmt.Fprintf(&b, "%s = %s\n", KeyReimbursementCategoryID, s.ReimbursementCategoryID)
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("writing secrets: %w", err)
	}
	return nil
}
