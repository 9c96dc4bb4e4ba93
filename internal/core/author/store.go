package author

import "context"

// Repository defines the persistence contract for authors.
type Repository interface {
	ListAuthors(ctx context.Context, filter Filter, limit, offset int) ([]*Author, int, error)
	GetAuthor(ctx context.Context, id string) (*Author, error)
	CreateAuthor(ctx context.Context, a *Author, firstNorm, lastNorm string) error
	UpdateAuthor(ctx context.Context, a *Author, firstNorm, lastNorm string) error
	DeleteAuthor(ctx context.Context, id string) error

	// ExistsByName reports whether an author with the given folded name pair
	// exists, excluding excludeID (pass "" on create).
	ExistsByName(ctx context.Context, firstNorm, lastNorm, excludeID string) (bool, error)
}
