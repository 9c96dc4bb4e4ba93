package schema

// ShelfTable represents the 'shelves' table
type ShelfTable struct {
	Table     string
	ID        string
	Name      string
	Location  string
	CreatedAt string
}

// Shelf is the schema definition for shelves
var Shelf = ShelfTable{
	Table:     "shelves",
	ID:        "id",
	Name:      "name",
	Location:  "location",
	CreatedAt: "created_at",
}

func (t ShelfTable) Columns() []string {
	return []string{t.ID, t.Name, t.Location, t.CreatedAt}
}
