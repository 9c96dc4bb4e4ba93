package book

import "time"

// Book represents a catalogued title. AuthorID and ShelfID reference rows in
// the authors and shelves tables; Jacket holds the logical filename stem of
// the current jacket asset, or nil when the book has none.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	AuthorID    string    `json:"author"`
	ISBN        string    `json:"isbn"`
	Date        *string   `json:"date"`
	Description *string   `json:"description"`
	Jacket      *string   `json:"jacket"`
	ShelfID     *string   `json:"shelf"`
	CreatedAt   time.Time `json:"-"`
}

// Patch carries the fields of a partial book update. Nil means "leave
// unchanged"; for nullable columns an explicit null cannot be distinguished
// from absence by encoding/json alone, so PATCH only sets provided values.
type Patch struct {
	Title       *string `json:"title"`
	AuthorID    *string `json:"author"`
	ISBN        *string `json:"isbn"`
	Date        *string `json:"date"`
	Description *string `json:"description"`
	Jacket      *string `json:"jacket"`
	ShelfID     *string `json:"shelf"`
}

// Filter holds the parameters for a paginated book search.
type Filter struct {
	Query    string // Substring search against title
	AuthorID string
	ShelfID  string
}

// Global field names for validation
const (
	FieldTitle       = "title"
	FieldAuthor      = "author"
	FieldISBN        = "isbn"
	FieldDate        = "date"
	FieldDescription = "description"
	FieldJacket      = "jacket"
	FieldShelf       = "shelf"
)
