package book

import (
	"context"
	"log/slog"
	"strings"

	"github.com/libris/libris/internal/platform/apperr"
	"github.com/libris/libris/internal/platform/validate"
	"github.com/libris/libris/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListBooks(ctx context.Context, filter Filter, limit, offset int) ([]*Book, int, error) {
	return service.repo.ListBooks(ctx, filter, limit, offset)
}

func (service *Service) GetBook(ctx context.Context, id string) (*Book, error) {
	return service.repo.GetBook(ctx, id)
}

func (service *Service) CreateBook(ctx context.Context, book *Book) error {
	if book.Jacket != nil {
		return validate.RequiredError(FieldJacket, "Jacket is read-only here. Use the jacket upload endpoint.")
	}

	book.ISBN = normalizeISBN(book.ISBN)
	if err := service.validateBook(ctx, book); err != nil {
		return err
	}

	exists, err := service.repo.ISBNExists(ctx, book.ISBN, "")
	if err != nil {
		return err
	}
	if exists {
		return apperr.Conflict("A book with this ISBN already exists")
	}

	book.ID = uuid.New()
	if err := service.repo.CreateBook(ctx, book); err != nil {
		return err
	}

	service.logger.Info("book_created",
		slog.String("book_id", book.ID),
		slog.String("isbn", book.ISBN),
	)
	return nil
}

// UpdateBook replaces every writable field of the book. Missing fields fail
// validation rather than being preserved; partial changes go through PatchBook.
func (service *Service) UpdateBook(ctx context.Context, id string, book *Book) error {
	current, err := service.repo.GetBook(ctx, id)
	if err != nil {
		return err
	}

	if book.Jacket != nil {
		return validate.RequiredError(FieldJacket, "Jacket is read-only here. Use the jacket upload endpoint.")
	}

	book.ID = id
	book.Jacket = current.Jacket
	book.ISBN = normalizeISBN(book.ISBN)

	if err := service.validateBook(ctx, book); err != nil {
		return err
	}

	exists, err := service.repo.ISBNExists(ctx, book.ISBN, id)
	if err != nil {
		return err
	}
	if exists {
		return apperr.Conflict("A book with this ISBN already exists")
	}

	if err := service.repo.UpdateBook(ctx, book); err != nil {
		return err
	}

	service.logger.Info("book_updated", slog.String("book_id", id))
	return nil
}

// PatchBook applies the provided fields on top of the stored book and
// re-validates the merged result.
func (service *Service) PatchBook(ctx context.Context, id string, patch *Patch) (*Book, error) {
	if patch.Jacket != nil {
		return nil, validate.RequiredError(FieldJacket, "Jacket is read-only here. Use the jacket upload endpoint.")
	}

	book, err := service.repo.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		book.Title = *patch.Title
	}
	if patch.AuthorID != nil {
		book.AuthorID = *patch.AuthorID
	}
	if patch.ISBN != nil {
		book.ISBN = normalizeISBN(*patch.ISBN)
	}
	if patch.Date != nil {
		book.Date = patch.Date
	}
	if patch.Description != nil {
		book.Description = patch.Description
	}
	if patch.ShelfID != nil {
		book.ShelfID = patch.ShelfID
	}

	if err := service.validateBook(ctx, book); err != nil {
		return nil, err
	}

	if patch.ISBN != nil {
		exists, err := service.repo.ISBNExists(ctx, book.ISBN, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperr.Conflict("A book with this ISBN already exists")
		}
	}

	if err := service.repo.UpdateBook(ctx, book); err != nil {
		return nil, err
	}

	service.logger.Info("book_patched", slog.String("book_id", id))
	return book, nil
}

func (service *Service) DeleteBook(ctx context.Context, id string) error {
	if err := service.repo.DeleteBook(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("book_deleted", slog.String("book_id", id))
	return nil
}

// validateBook checks field rules plus the referential rules the original API
// reported as validation failures rather than FK errors.
func (service *Service) validateBook(ctx context.Context, book *Book) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, book.Title).MaxLen(FieldTitle, book.Title, 500)
	validator.Required(FieldAuthor, book.AuthorID)
	validator.Required(FieldISBN, book.ISBN)
	if book.ISBN != "" {
		validator.ISBN(FieldISBN, book.ISBN)
	}
	if book.Date != nil {
		validator.Date(FieldDate, *book.Date)
	}
	if book.Description != nil {
		validator.MaxLen(FieldDescription, *book.Description, 5000)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	authorOK, err := service.repo.AuthorExists(ctx, book.AuthorID)
	if err != nil {
		return err
	}
	if !authorOK {
		return validate.RequiredError(FieldAuthor, "Author does not exist")
	}

	if book.ShelfID != nil {
		shelfOK, err := service.repo.ShelfExists(ctx, *book.ShelfID)
		if err != nil {
			return err
		}
		if !shelfOK {
			return validate.RequiredError(FieldShelf, "Shelf does not exist")
		}
	}

	return nil
}

func normalizeISBN(isbn string) string {
	return strings.ReplaceAll(strings.TrimSpace(isbn), "-", "")
}
