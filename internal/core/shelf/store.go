package shelf

import "context"

// Repository defines the persistence contract for shelves.
type Repository interface {
	ListShelves(ctx context.Context, limit, offset int) ([]*Shelf, int, error)
	GetShelf(ctx context.Context, id string) (*Shelf, error)
	CreateShelf(ctx context.Context, s *Shelf) error
	UpdateShelf(ctx context.Context, s *Shelf) error
	DeleteShelf(ctx context.Context, id string) error
}
