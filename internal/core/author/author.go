package author

import "time"

// Author represents a person who wrote one or more books in the catalog.
type Author struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"-"`
}

// Filter holds the parameters for a paginated author search.
type Filter struct {
	Query string // Substring search against firstName and lastName
}

// Global field names for validation
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
)
