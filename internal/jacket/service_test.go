package jacket

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libris/libris/internal/platform/apperr"
)

type fakeBooks struct {
	refs     map[string]*BookRef
	getCalls int
}

func newFakeBooks(refs ...*BookRef) *fakeBooks {
	f := &fakeBooks{refs: map[string]*BookRef{}}
	for _, ref := range refs {
		f.refs[ref.ID] = ref
	}
	return f
}

func (f *fakeBooks) GetBook(_ context.Context, id string) (*BookRef, error) {
	f.getCalls++
	ref, ok := f.refs[id]
	if !ok {
		return nil, apperr.NotFound("Book")
	}
	copied := *ref
	return &copied, nil
}

func (f *fakeBooks) UpdateJacket(_ context.Context, id string, stem *string) error {
	ref, ok := f.refs[id]
	if !ok {
		return apperr.NotFound("Book")
	}
	ref.Jacket = stem
	return nil
}

func newTestService(t *testing.T, books BookStore) (*Service, *Layout) {
	t.Helper()
	layout := NewLayout(t.TempDir())
	service := NewService(books, layout, slog.New(slog.DiscardHandler))
	service.now = func() time.Time { return time.Unix(0, 1234) }
	return service, layout
}

func TestUpload(t *testing.T) {
	books := newFakeBooks(&BookRef{ID: "b1"})
	service, layout := newTestService(t, books)

	data := testJPEG(t, 600, 900)
	result, err := service.Upload(context.Background(), "b1", UploadedFile{
		Data:        data,
		ContentType: "image/jpeg",
		Size:        int64(len(data)),
	})
	require.NoError(t, err)

	assert.Equal(t, "jacket_b1_1234", result.Filename)
	assert.Equal(t, "/books/b1/jacket/small", result.URLs["small"])
	assert.Equal(t, "/books/b1/jacket/original", result.URLs[OriginalName])

	require.NotNil(t, books.refs["b1"].Jacket)
	assert.Equal(t, "jacket_b1_1234", *books.refs["b1"].Jacket)

	_, err = os.Stat(layout.Path("medium", "jacket_b1_1234"))
	assert.NoError(t, err)
}

func TestUpload_ValidationShortCircuits(t *testing.T) {
	tests := []struct {
		name string
		file UploadedFile
	}{
		{"empty file", UploadedFile{ContentType: "image/jpeg"}},
		{"oversized", UploadedFile{Data: []byte{1}, ContentType: "image/jpeg", Size: MaxUploadBytes + 1}},
		{"disallowed type", UploadedFile{Data: []byte{1}, ContentType: "image/gif", Size: 1}},
		{"svg is not a raster type", UploadedFile{Data: []byte{1}, ContentType: "image/svg+xml", Size: 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			books := newFakeBooks(&BookRef{ID: "b1"})
			service, _ := newTestService(t, books)

			_, err := service.Upload(context.Background(), "b1", tc.file)
			require.Error(t, err)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
			assert.Zero(t, books.getCalls, "validation failures must precede any lookup or I/O")
		})
	}
}

func TestUpload_BookNotFound(t *testing.T) {
	service, _ := newTestService(t, newFakeBooks())

	data := testJPEG(t, 100, 100)
	_, err := service.Upload(context.Background(), "missing", UploadedFile{
		Data:        data,
		ContentType: "image/jpeg",
		Size:        int64(len(data)),
	})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
}

func TestUpload_ReplaceDeletesOldStem(t *testing.T) {
	oldStem := "jacket_b1_1"
	books := newFakeBooks(&BookRef{ID: "b1", Jacket: &oldStem})
	service, layout := newTestService(t, books)

	// Seed the old stem's files so the replace has something to retire.
	require.NoError(t, layout.Ensure())
	_, err := NewPipeline(layout).Process(context.Background(), testJPEG(t, 400, 600), oldStem)
	require.NoError(t, err)

	data := testJPEG(t, 600, 900)
	result, err := service.Upload(context.Background(), "b1", UploadedFile{
		Data:        data,
		ContentType: "image/jpeg",
		Size:        int64(len(data)),
	})
	require.NoError(t, err)
	assert.NotEqual(t, oldStem, result.Filename)

	for _, variant := range []string{OriginalName, "small", "medium", "large"} {
		_, err := os.Stat(layout.Path(variant, oldStem))
		assert.True(t, os.IsNotExist(err), "old %s file must be gone", variant)
		_, err = os.Stat(layout.Path(variant, result.Filename))
		assert.NoError(t, err, "new %s file must exist", variant)
	}

	require.NotNil(t, books.refs["b1"].Jacket)
	assert.Equal(t, result.Filename, *books.refs["b1"].Jacket)
}

func TestUpload_PipelineFailureKeepsPointer(t *testing.T) {
	books := newFakeBooks(&BookRef{ID: "b1"})
	service, layout := newTestService(t, books)

	_, err := service.Upload(context.Background(), "b1", UploadedFile{
		Data:        []byte("not an image"),
		ContentType: "image/jpeg",
		Size:        12,
	})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus, "undecodable upload is a client error")

	assert.Nil(t, books.refs["b1"].Jacket, "jacket pointer must not move on failure")
	_, statErr := os.Stat(layout.Path(OriginalName, "jacket_b1_1234"))
	assert.True(t, os.IsNotExist(statErr), "partial stem cleaned up")
}

func TestDelete(t *testing.T) {
	stem := "jacket_b1_9"
	books := newFakeBooks(&BookRef{ID: "b1", Jacket: &stem})
	service, layout := newTestService(t, books)

	_, err := NewPipeline(layout).Process(context.Background(), testJPEG(t, 400, 600), stem)
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), "b1"))

	assert.Nil(t, books.refs["b1"].Jacket)
	for _, variant := range []string{OriginalName, "small", "medium", "large"} {
		_, err := os.Stat(layout.Path(variant, stem))
		assert.True(t, os.IsNotExist(err))
	}
}

func TestDelete_NoJacket(t *testing.T) {
	books := newFakeBooks(&BookRef{ID: "b1"})
	service, _ := newTestService(t, books)

	err := service.Delete(context.Background(), "b1")
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
}

func TestRetrieve(t *testing.T) {
	stem := "jacket_b1_5"
	books := newFakeBooks(&BookRef{ID: "b1", Jacket: &stem})
	service, layout := newTestService(t, books)

	_, err := NewPipeline(layout).Process(context.Background(), testJPEG(t, 400, 600), stem)
	require.NoError(t, err)

	path, contentType, err := service.Retrieve(context.Background(), "b1", "large")
	require.NoError(t, err)
	assert.Equal(t, layout.Path("large", stem), path)
	assert.Equal(t, "image/webp", contentType)
}

func TestRetrieve_JacketUnset(t *testing.T) {
	books := newFakeBooks(&BookRef{ID: "b1"})
	service, _ := newTestService(t, books)

	_, _, err := service.Retrieve(context.Background(), "b1", "small")
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
}

func TestRetrieve_DriftedPointer(t *testing.T) {
	stem := "jacket_b1_44"
	books := newFakeBooks(&BookRef{ID: "b1", Jacket: &stem})
	service, _ := newTestService(t, books)

	// Pointer set but no files on disk.
	_, _, err := service.Retrieve(context.Background(), "b1", "small")
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
}
