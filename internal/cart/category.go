package cart

// Category classifies a book. CategoryNone is the draft sentinel shown before
// the user picks one; created items never carry it.
type Category string

const (
	CategoryNone       Category = "SELECCIONE"
	CategoryFiction    Category = "FICCION"
	CategoryNonFiction Category = "NO_FICCION"
	CategoryScience    Category = "CIENCIA"
	CategoryHistory    Category = "HISTORIA"
	CategoryChildren   Category = "INFANTIL"
)

// selectable categories, in display order
var categories = []Category{
	CategoryFiction,
	CategoryNonFiction,
	CategoryScience,
	CategoryHistory,
	CategoryChildren,
}

// Categories returns the closed set of selectable categories (the sentinel
// excluded).
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c is a selectable category.
func (c Category) Valid() bool {
	for _, v := range categories {
		if c == v {
			return true
		}
	}
	return false
}
