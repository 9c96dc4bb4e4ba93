package jacket

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libris/libris/internal/platform/apperr"
)

func TestRetrieverResolve(t *testing.T) {
	layout := NewLayout(t.TempDir())
	pipeline := NewPipeline(layout)
	retriever := NewRetriever(layout)

	_, err := pipeline.Process(context.Background(), testJPEG(t, 400, 600), "jacket_b1_7")
	require.NoError(t, err)

	t.Run("variant", func(t *testing.T) {
		path, contentType, err := retriever.Resolve("jacket_b1_7", "small")
		require.NoError(t, err)
		assert.Equal(t, layout.Path("small", "jacket_b1_7"), path)
		assert.Equal(t, "image/webp", contentType)
	})

	t.Run("original", func(t *testing.T) {
		path, contentType, err := retriever.Resolve("jacket_b1_7", OriginalName)
		require.NoError(t, err)
		assert.Equal(t, layout.Path(OriginalName, "jacket_b1_7"), path)
		assert.Equal(t, "image/jpeg", contentType)
	})

	t.Run("unknown size", func(t *testing.T) {
		_, _, err := retriever.Resolve("jacket_b1_7", "huge")
		require.Error(t, err)

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := retriever.Resolve("jacket_gone_1", "small")
		require.Error(t, err)

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
	})
}
