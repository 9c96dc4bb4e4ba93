package jacket

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testJPEG encodes a solid-color image of the given dimensions as JPEG bytes.
func testJPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := imaging.New(width, height, color.NRGBA{R: 180, G: 40, B: 40, A: 255})

	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90)))
	return buf.Bytes()
}

func TestEncodeVariant_CoverDimensions(t *testing.T) {
	tests := []struct {
		name         string
		srcW, srcH   int
		spec         SizeSpec
		wantW, wantH int
	}{
		{"landscape source to portrait small", 1200, 800, Variants[0], 200, 300},
		{"portrait source to medium", 600, 900, Variants[1], 300, 450},
		{"square source to large", 1000, 1000, Variants[2], 500, 750},
		{"smaller than target gets upscaled", 100, 100, Variants[0], 200, 300},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dest := filepath.Join(t.TempDir(), "out.webp")
			err := EncodeVariant(testJPEG(t, tc.srcW, tc.srcH), tc.spec, dest)
			require.NoError(t, err)

			f, err := os.Open(dest)
			require.NoError(t, err)
			defer f.Close()

			decoded, err := webp.Decode(f)
			require.NoError(t, err)

			bounds := decoded.Bounds()
			assert.Equal(t, tc.wantW, bounds.Dx())
			assert.Equal(t, tc.wantH, bounds.Dy())
		})
	}
}

func TestEncodeVariant_InvalidImage(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.webp")
	err := EncodeVariant([]byte("this is not an image"), Variants[0], dest)
	require.Error(t, err)

	var codecErr *CodecError
	require.ErrorAs(t, err, &codecErr)
	assert.Equal(t, "decode", codecErr.Op)

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "no output file should be written")
}

func TestEncodeOriginal(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.jpg")
	err := EncodeOriginal(testJPEG(t, 640, 480), dest)
	require.NoError(t, err)

	f, err := os.Open(dest)
	require.NoError(t, err)
	defer f.Close()

	decoded, format, err := image.Decode(f)
	require.NoError(t, err)

	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 640, decoded.Bounds().Dx(), "original keeps source dimensions")
	assert.Equal(t, 480, decoded.Bounds().Dy())
}

func TestEncodeOriginal_WebPSource(t *testing.T) {
	img := imaging.New(320, 240, color.NRGBA{G: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, webp.Encode(&buf, img, &webp.Options{Quality: 90}))

	dest := filepath.Join(t.TempDir(), "out.jpg")
	require.NoError(t, EncodeOriginal(buf.Bytes(), dest))

	f, err := os.Open(dest)
	require.NoError(t, err)
	defer f.Close()

	_, format, err := image.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format, "webp input transcodes to jpeg")
}
