package schema

// AuthorTable represents the 'authors' table
type AuthorTable struct {
	Table         string
	ID            string
	FirstName     string
	LastName      string
	FirstNameNorm string
	LastNameNorm  string
	CreatedAt     string
}

// Author is the schema definition for authors
var Author = AuthorTable{
	Table:         "authors",
	ID:            "id",
	FirstName:     "first_name",
	LastName:      "last_name",
	FirstNameNorm: "first_name_norm",
	LastNameNorm:  "last_name_norm",
	CreatedAt:     "created_at",
}

func (t AuthorTable) Columns() []string {
	return []string{t.ID, t.FirstName, t.LastName, t.CreatedAt}
}
