package jacket

import (
	"errors"
	"io/fs"
	"os"

	"github.com/libris/libris/internal/platform/apperr"
	"github.com/libris/libris/internal/platform/validate"
)

// Retriever resolves a (stem, size) pair to a file path and content type.
type Retriever struct {
	layout *Layout
}

func NewRetriever(layout *Layout) *Retriever {
	return &Retriever{layout: layout}
}

// Resolve returns the on-disk path and content type for a stem's variant.
// An unknown size is a validation error. A missing file is a NotFound, not
// an internal error: the book's jacket pointer and the filesystem can drift
// (manual cleanup, partial restores) and retrieval treats that as absence.
func (r *Retriever) Resolve(stem, size string) (path, contentType string, err error) {
	if size != OriginalName {
		if _, ok := VariantByName(size); !ok {
			return "", "", validate.RequiredError("size",
				"Unknown size. Must be one of: small, medium, large, original")
		}
	}

	path = r.layout.Path(size, stem)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", "", apperr.NotFoundMsg("Jacket file not found")
		}
		return "", "", apperr.Internal(err)
	}

	return path, ContentType(size), nil
}

// ContentType returns the MIME type a variant is served with.
func ContentType(variant string) string {
	if variant == OriginalName {
		return "image/jpeg"
	}
	return "image/webp"
}
