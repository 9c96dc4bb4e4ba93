package jacket

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/libris/libris/internal/platform/apperr"
	"github.com/libris/libris/internal/platform/validate"
)

// BookRef is the slice of a book record the jacket lifecycle needs: its
// identity and the current jacket stem.
type BookRef struct {
	ID     string
	Jacket *string
}

// BookStore is the external collaborator holding the jacket pointer. The
// book's jacket column is the single source of truth for which stem is
// active; this package never persists book state itself.
type BookStore interface {
	GetBook(ctx context.Context, id string) (*BookRef, error)
	UpdateJacket(ctx context.Context, id string, stem *string) error
}

// UploadResult is returned to the client after a successful upload.
type UploadResult struct {
	Filename string   `json:"filename"`
	URLs     Manifest `json:"urls"`
}

// Service coordinates the jacket lifecycle: validation, stem generation,
// pipeline runs, variant-set deletion, and the book's jacket pointer.
type Service struct {
	books     BookStore
	layout    *Layout
	pipeline  *Pipeline
	retriever *Retriever
	logger    *slog.Logger

	// now is swappable in tests so generated stems are deterministic.
	now func() time.Time
}

func NewService(books BookStore, layout *Layout, logger *slog.Logger) *Service {
	return &Service{
		books:     books,
		layout:    layout,
		pipeline:  NewPipeline(layout),
		retriever: NewRetriever(layout),
		logger:    logger,
		now:       time.Now,
	}
}

/*
Upload validates the inbound file, retires the previous jacket if one exists,
runs the processing pipeline under a freshly generated stem, and finally moves
the book's jacket pointer to the new stem.

The pointer is updated last: a book never references a stem whose files are
not fully on disk. If the pipeline fails, the partial stem is cleaned up
best-effort and the book keeps its previous jacket.
*/
func (service *Service) Upload(ctx context.Context, bookID string, file UploadedFile) (*UploadResult, error) {
	if err := validateUpload(file); err != nil {
		return nil, err
	}

	book, err := service.books.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	// Replace semantics: the old stem's files go first, best-effort. Losing
	// the race here only leaves orphans for the sweeper, never a book
	// pointing at missing files.
	if book.Jacket != nil {
		if err := service.DeleteStemFiles(*book.Jacket); err != nil {
			service.logger.Warn("jacket_old_stem_cleanup_failed",
				slog.String("book_id", bookID),
				slog.String("stem", *book.Jacket),
				slog.String("error", err.Error()),
			)
		}
	}

	stem := service.newStem(bookID)

	manifest, err := service.pipeline.Process(ctx, file.Data, stem)
	if err != nil {
		if cleanupErr := service.DeleteStemFiles(stem); cleanupErr != nil {
			service.logger.Warn("jacket_partial_stem_cleanup_failed",
				slog.String("stem", stem),
				slog.String("error", cleanupErr.Error()),
			)
		}

		var codecErr *CodecError
		if errors.As(err, &codecErr) && codecErr.Op == "decode" {
			return nil, validate.RequiredError("jacket", "File is not a valid image")
		}
		return nil, apperr.Internal(err)
	}

	if err := service.books.UpdateJacket(ctx, bookID, &stem); err != nil {
		return nil, err
	}

	urls := make(Manifest, len(manifest))
	for name, url := range manifest {
		urls[name] = strings.ReplaceAll(url, BookIDPlaceholder, bookID)
	}

	service.logger.Info("jacket_uploaded",
		slog.String("book_id", bookID),
		slog.String("stem", stem),
		slog.Int64("size", file.Size),
	)

	return &UploadResult{Filename: stem, URLs: urls}, nil
}

// Delete removes the full variant set for the book's current jacket and
// clears the pointer. A book without a jacket is a 404, matching retrieval.
func (service *Service) Delete(ctx context.Context, bookID string) error {
	book, err := service.books.GetBook(ctx, bookID)
	if err != nil {
		return err
	}
	if book.Jacket == nil {
		return apperr.NotFoundMsg("Book has no jacket")
	}

	if err := service.DeleteStemFiles(*book.Jacket); err != nil {
		service.logger.Warn("jacket_delete_files_failed",
			slog.String("book_id", bookID),
			slog.String("stem", *book.Jacket),
			slog.String("error", err.Error()),
		)
	}

	if err := service.books.UpdateJacket(ctx, bookID, nil); err != nil {
		return err
	}

	service.logger.Info("jacket_deleted",
		slog.String("book_id", bookID),
		slog.String("stem", *book.Jacket),
	)
	return nil
}

// Retrieve resolves the book's current jacket to a file path and content
// type for the requested size.
func (service *Service) Retrieve(ctx context.Context, bookID, size string) (path, contentType string, err error) {
	book, err := service.books.GetBook(ctx, bookID)
	if err != nil {
		return "", "", err
	}
	if book.Jacket == nil {
		return "", "", apperr.NotFoundMsg("Book has no jacket")
	}

	return service.retriever.Resolve(*book.Jacket, size)
}

// DeleteStemFiles unlinks every variant file for a stem under the service's
// layout. See [DeleteStemFiles].
func (service *Service) DeleteStemFiles(stem string) error {
	return DeleteStemFiles(service.layout, stem)
}

// DeleteStemFiles unlinks every variant file for a stem. Missing files are
// skipped; other unlink errors are collected so the caller can log them.
// Shared with the orphan sweeper.
func DeleteStemFiles(layout *Layout, stem string) error {
	names := []string{OriginalName}
	for _, spec := range Variants {
		names = append(names, spec.Name)
	}

	var errs []error
	for _, name := range names {
		path := layout.Path(name, stem)
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("remove %s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}

func (service *Service) newStem(bookID string) string {
	return fmt.Sprintf("jacket_%s_%d", bookID, service.now().UnixNano())
}

// validateUpload enforces the declared-metadata rules before any disk I/O.
func validateUpload(file UploadedFile) error {
	if len(file.Data) == 0 {
		return validate.RequiredError("jacket", "No file uploaded")
	}
	if file.Size > MaxUploadBytes {
		return validate.RequiredError("jacket", "File too large. Maximum size: 10MB.")
	}
	if !AllowedContentType(file.ContentType) {
		return validate.RequiredError("jacket",
			"Unsupported file type. Allowed: image/jpeg, image/jpg, image/png, image/webp")
	}
	return nil
}
