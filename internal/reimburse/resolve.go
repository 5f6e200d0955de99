package reimburse

import (
	"fmt"
	"strings"

	"github.com/cleared-dev/reimburse/internal/model"
)

// CategoryNotFoundError is returned when no category name contains Match.
type CategoryNotFoundError struct {
	Match string
}

func (e *CategoryNotFoundError) Error() string {
	return fmt.Sprintf("no category name contains %q", e.Match)
}

// ResolveCategory returns the ID of the first category, in group order,
// whose name contains match. Deleted categories are ignored.
func ResolveCategory(groups []model.CategoryGroup, match string) (string, error) {
	for _, g := range groups {
		for _, c := range g.Categories {
			if c.Deleted {
				continue
			}
			if strings.Contains(c.Name, match) {
				return c.ID, nil
			}
		}
	}
	return "", &CategoryNotFoundError{Match: match}
}
