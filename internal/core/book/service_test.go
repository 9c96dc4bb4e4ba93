package book

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libris/libris/internal/platform/apperr"
	"github.com/libris/libris/internal/platform/dberr"
)

type fakeRepo struct {
	books       map[string]*Book
	isbnTaken   bool
	authorKnown bool
	shelfKnown  bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		books:       map[string]*Book{},
		authorKnown: true,
		shelfKnown:  true,
	}
}

func (f *fakeRepo) ListBooks(_ context.Context, _ Filter, _, _ int) ([]*Book, int, error) {
	var out []*Book
	for _, b := range f.books {
		out = append(out, b)
	}
	return out, len(out), nil
}

func (f *fakeRepo) GetBook(_ context.Context, id string) (*Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, apperr.NotFound("Resource")
	}
	copied := *b
	return &copied, nil
}

func (f *fakeRepo) CreateBook(_ context.Context, b *Book) error {
	f.books[b.ID] = b
	return nil
}

func (f *fakeRepo) UpdateBook(_ context.Context, b *Book) error {
	if _, ok := f.books[b.ID]; !ok {
		return dberr.ErrNotFound
	}
	f.books[b.ID] = b
	return nil
}

func (f *fakeRepo) DeleteBook(_ context.Context, id string) error {
	if _, ok := f.books[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.books, id)
	return nil
}

func (f *fakeRepo) UpdateJacket(_ context.Context, id string, stem *string) error {
	b, ok := f.books[id]
	if !ok {
		return dberr.ErrNotFound
	}
	b.Jacket = stem
	return nil
}

func (f *fakeRepo) ISBNExists(_ context.Context, _, _ string) (bool, error) {
	return f.isbnTaken, nil
}

func (f *fakeRepo) AuthorExists(_ context.Context, _ string) (bool, error) {
	return f.authorKnown, nil
}

func (f *fakeRepo) ShelfExists(_ context.Context, _ string) (bool, error) {
	return f.shelfKnown, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, slog.New(slog.DiscardHandler))
}

func validBook() *Book {
	return &Book{
		Title:    "The Master and Margarita",
		AuthorID: "0198f2e4-1111-7000-8000-000000000001",
		ISBN:     "978-0-14-045546-8",
	}
}

func TestCreateBook(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	input := validBook()
	err := service.CreateBook(context.Background(), input)
	require.NoError(t, err)

	assert.NotEmpty(t, input.ID)
	assert.Equal(t, "9780140455468", input.ISBN, "ISBN should be stored without hyphens")
}

func TestCreateBook_ISBNConflict(t *testing.T) {
	repo := newFakeRepo()
	repo.isbnTaken = true
	service := newTestService(repo)

	err := service.CreateBook(context.Background(), validBook())
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusConflict, appErr.HTTPStatus)
}

func TestCreateBook_UnknownAuthor(t *testing.T) {
	repo := newFakeRepo()
	repo.authorKnown = false
	service := newTestService(repo)

	err := service.CreateBook(context.Background(), validBook())
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
}

func TestCreateBook_JacketReadOnly(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	stem := "jacket_b1_123"
	input := validBook()
	input.Jacket = &stem

	err := service.CreateBook(context.Background(), input)
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	assert.Empty(t, repo.books, "book should not be created")
}

func TestUpdateBook_PreservesJacket(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	existing := validBook()
	require.NoError(t, service.CreateBook(context.Background(), existing))

	stem := "jacket_" + existing.ID + "_42"
	require.NoError(t, repo.UpdateJacket(context.Background(), existing.ID, &stem))

	replacement := validBook()
	replacement.Title = "A Hero of Our Time"
	require.NoError(t, service.UpdateBook(context.Background(), existing.ID, replacement))

	stored, err := repo.GetBook(context.Background(), existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "A Hero of Our Time", stored.Title)
	require.NotNil(t, stored.Jacket)
	assert.Equal(t, stem, *stored.Jacket, "PUT must not clear the jacket pointer")
}

func TestPatchBook(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	existing := validBook()
	require.NoError(t, service.CreateBook(context.Background(), existing))

	newTitle := "Dead Souls"
	patched, err := service.PatchBook(context.Background(), existing.ID, &Patch{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, "Dead Souls", patched.Title)
	assert.Equal(t, existing.ISBN, patched.ISBN, "unpatched fields remain")
}

func TestPatchBook_JacketReadOnly(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	existing := validBook()
	require.NoError(t, service.CreateBook(context.Background(), existing))

	stem := "jacket_sneaky_1"
	_, err := service.PatchBook(context.Background(), existing.ID, &Patch{Jacket: &stem})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
}

func TestPatchBook_InvalidDate(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	existing := validBook()
	require.NoError(t, service.CreateBook(context.Background(), existing))

	badDate := "31-12-2020"
	_, err := service.PatchBook(context.Background(), existing.ID, &Patch{Date: &badDate})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}
