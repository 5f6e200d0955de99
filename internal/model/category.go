package model

// Category is a single budget category.
type Category struct {
	ID      string
	Name    string
	Hidden  bool
	Deleted bool
}

// CategoryGroup groups categories in the budget.
type CategoryGroup struct {
	ID         string
	Name       string
	Hidden     bool
	Deleted    bool
	Categories []Category
}
