package jacket

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineProcess(t *testing.T) {
	layout := NewLayout(t.TempDir())
	pipeline := NewPipeline(layout)

	manifest, err := pipeline.Process(context.Background(), testJPEG(t, 800, 1200), "jacket_b1_1")
	require.NoError(t, err)

	assert.Len(t, manifest, 4)
	assert.Equal(t, "/books/{bookId}/jacket/original", manifest[OriginalName])
	assert.Equal(t, "/books/{bookId}/jacket/small", manifest["small"])
	assert.Equal(t, "/books/{bookId}/jacket/medium", manifest["medium"])
	assert.Equal(t, "/books/{bookId}/jacket/large", manifest["large"])

	for _, variant := range []string{OriginalName, "small", "medium", "large"} {
		info, err := os.Stat(layout.Path(variant, "jacket_b1_1"))
		require.NoError(t, err, "file for %s must exist", variant)
		assert.Positive(t, info.Size())
	}
}

func TestPipelineProcess_InvalidImage(t *testing.T) {
	layout := NewLayout(t.TempDir())
	pipeline := NewPipeline(layout)

	_, err := pipeline.Process(context.Background(), []byte("garbage"), "jacket_b1_2")
	require.Error(t, err)

	var procErr *ProcessingError
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, "jacket_b1_2", procErr.Stem)

	var codecErr *CodecError
	assert.ErrorAs(t, err, &codecErr)
}

func TestPipelineProcess_IndependentStems(t *testing.T) {
	layout := NewLayout(t.TempDir())
	pipeline := NewPipeline(layout)

	_, err := pipeline.Process(context.Background(), testJPEG(t, 400, 600), "jacket_b1_1")
	require.NoError(t, err)
	_, err = pipeline.Process(context.Background(), testJPEG(t, 400, 600), "jacket_b1_2")
	require.NoError(t, err)

	_, err = os.Stat(layout.Path("small", "jacket_b1_1"))
	assert.NoError(t, err, "first stem untouched by second run")
	_, err = os.Stat(layout.Path("small", "jacket_b1_2"))
	assert.NoError(t, err)
}
