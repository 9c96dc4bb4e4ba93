package book

import "context"

// Repository defines the persistence contract for books.
type Repository interface {
	ListBooks(ctx context.Context, filter Filter, limit, offset int) ([]*Book, int, error)
	GetBook(ctx context.Context, id string) (*Book, error)
	CreateBook(ctx context.Context, b *Book) error
	UpdateBook(ctx context.Context, b *Book) error
	DeleteBook(ctx context.Context, id string) error

	// UpdateJacket swaps the jacket stem pointer without touching any other
	// column. A nil stem clears it.
	UpdateJacket(ctx context.Context, id string, stem *string) error

	ISBNExists(ctx context.Context, isbn, excludeID string) (bool, error)
	AuthorExists(ctx context.Context, authorID string) (bool, error)
	ShelfExists(ctx context.Context, shelfID string) (bool, error)
}
