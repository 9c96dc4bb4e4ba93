package jacket

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutEnsure(t *testing.T) {
	root := filepath.Join(t.TempDir(), "jackets")
	layout := NewLayout(root)

	require.NoError(t, layout.Ensure())

	for _, dir := range []string{"original", "small", "medium", "large"} {
		info, err := os.Stat(filepath.Join(root, dir))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	// Second call is a no-op.
	require.NoError(t, layout.Ensure())
}

func TestLayoutPath(t *testing.T) {
	layout := NewLayout("/var/lib/libris/jackets")

	assert.Equal(t, "/var/lib/libris/jackets/original/jacket_b1_42.jpg",
		layout.Path(OriginalName, "jacket_b1_42"))
	assert.Equal(t, "/var/lib/libris/jackets/small/jacket_b1_42.webp",
		layout.Path("small", "jacket_b1_42"))
	assert.Equal(t, "/var/lib/libris/jackets/large/jacket_b1_42.webp",
		layout.Path("large", "jacket_b1_42"))
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "jpg", Extension(OriginalName))
	for _, spec := range Variants {
		assert.Equal(t, "webp", Extension(spec.Name))
	}
}
