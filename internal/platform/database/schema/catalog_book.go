package schema

// BookTable represents the 'books' table
type BookTable struct {
	Table       string
	ID          string
	Title       string
	Author      string
	ISBN        string
	Date        string
	Description string
	Jacket      string
	Shelf       string
	CreatedAt   string
}

// Book is the schema definition for books
var Book = BookTable{
	Table:       "books",
	ID:          "id",
	Title:       "title",
	Author:      "author",
	ISBN:        "isbn",
	Date:        "date",
	Description: "description",
	Jacket:      "jacket",
	Shelf:       "shelf",
	CreatedAt:   "created_at",
}

func (t BookTable) Columns() []string {
	return []string{t.ID, t.Title, t.Author, t.ISBN, t.Date, t.Description, t.Jacket, t.Shelf, t.CreatedAt}
}
