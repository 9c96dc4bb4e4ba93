package author

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
	authors map[string]*Author
	norms   map[string]string // id -> "first|last" folded pair
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		authors: map[string]*Author{},
		norms:   map[string]string{},
	}
}

func (f *fakeRepo) ListAuthors(_ context.Context, _ Filter, _, _ int) ([]*Author, int, error) {
	var out []*Author
	for _, a := range f.authors {
		out = append(out, a)
	}
	return out, len(out), nil
}

func (f *fakeRepo) GetAuthor(_ context.Context, id string) (*Author, error) {
	a, ok := f.authors[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return a, nil
}

func (f *fakeRepo) CreateAuthor(_ context.Context, a *Author, firstNorm, lastNorm string) error {
	f.authors[a.ID] = a
	f.norms[a.ID] = firstNorm + "|" + lastNorm
	return nil
}

func (f *fakeRepo) UpdateAuthor(_ context.Context, a *Author, firstNorm, lastNorm string) error {
	if _, ok := f.authors[a.ID]; !ok {
		return dberr.ErrNotFound
	}
	f.authors[a.ID] = a
	f.norms[a.ID] = firstNorm + "|" + lastNorm
	return nil
}

func (f *fakeRepo) DeleteAuthor(_ context.Context, id string) error {
	if _, ok := f.authors[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.authors, id)
	delete(f.norms, id)
	return nil
}

func (f *fakeRepo) ExistsByName(_ context.Context, firstNorm, lastNorm, excludeID string) (bool, error) {
	for id, pair := range f.norms {
		if id != excludeID && pair == firstNorm+"|"+lastNorm {
			return true, nil
		}
	}
	return false, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, slog.New(slog.DiscardHandler))
}

func TestCreateAuthor(t *testing.T) {
	service := newTestService(newFakeRepo())

	input := &Author{FirstName: "Nikolai", LastName: "Gogol"}
	require.NoError(t, service.CreateAuthor(context.Background(), input))
	assert.NotEmpty(t, input.ID)
}

func TestCreateAuthor_MissingFields(t *testing.T) {
	service := newTestService(newFakeRepo())

	err := service.CreateAuthor(context.Background(), &Author{FirstName: "  "})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	assert.Len(t, appErr.Details, 2)
}

func TestCreateAuthor_AccentInsensitiveDuplicate(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	require.NoError(t, service.CreateAuthor(context.Background(), &Author{FirstName: "Éric", LastName: "Rohmer"}))

	err := service.CreateAuthor(context.Background(), &Author{FirstName: "Eric", LastName: "Rohmer"})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusConflict, appErr.HTTPStatus)
}

func TestUpdateAuthor_ExcludesSelfFromDuplicateCheck(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	input := &Author{FirstName: "Anna", LastName: "Akhmatova"}
	require.NoError(t, service.CreateAuthor(context.Background(), input))

	// Saving the same name on the same record must not conflict.
	err := service.UpdateAuthor(context.Background(), input.ID, &Author{FirstName: "Anna", LastName: "Akhmatova"})
	require.NoError(t, err)
}

func TestDeleteAuthor_NotFound(t *testing.T) {
	service := newTestService(newFakeRepo())

	err := service.DeleteAuthor(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}
