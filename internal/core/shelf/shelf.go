package shelf

import "time"

// Shelf represents a physical location where books are stored.
type Shelf struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  *string   `json:"location"`
	CreatedAt time.Time `json:"-"`
}

// Global field names for validation
const (
	FieldName     = "name"
	FieldLocation = "location"
)
