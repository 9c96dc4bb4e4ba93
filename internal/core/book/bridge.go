package book

import (
	"context"

	"github.com/libris/libris/internal/jacket"
)

// JacketBridge adapts the book repository to the jacket package's BookStore
// contract, exposing only the identity and jacket pointer of a book.
type JacketBridge struct {
	repo Repository
}

func NewJacketBridge(repo Repository) *JacketBridge {
	return &JacketBridge{repo: repo}
}

func (bridge *JacketBridge) GetBook(ctx context.Context, id string) (*jacket.BookRef, error) {
	b, err := bridge.repo.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	return &jacket.BookRef{ID: b.ID, Jacket: b.Jacket}, nil
}

func (bridge *JacketBridge) UpdateJacket(ctx context.Context, id string, stem *string) error {
	return bridge.repo.UpdateJacket(ctx, id, stem)
}
