package jacket

import (
	"bytes"
	"fmt"
	"os"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	// Registers the WebP decoder with image.Decode so image/webp uploads
	// pass through the same path as JPEG and PNG.
	_ "golang.org/x/image/webp"
)

// CodecError reports a failure to decode or re-encode an uploaded image.
// It is a client error at upload time (the bytes were not a usable image)
// but a server error if it appears later in the pipeline.
type CodecError struct {
	Op    string
	Cause error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("jacket codec: %s: %v", e.Op, e.Cause)
}

func (e *CodecError) Unwrap() error { return e.Cause }

// EncodeVariant decodes src, crops it to the spec's aspect ratio with a
// center-anchored cover fill, and writes the WebP result to destPath.
func EncodeVariant(src []byte, spec SizeSpec, destPath string) error {
	img, err := imaging.Decode(bytes.NewReader(src))
	if err != nil {
		return &CodecError{Op: "decode", Cause: err}
	}

	resized := imaging.Fill(img, spec.Width, spec.Height, imaging.Center, imaging.Lanczos)

	dest, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", destPath, err)
	}

	if err := webp.Encode(dest, resized, &webp.Options{Quality: float32(spec.Quality)}); err != nil {
		dest.Close()
		return &CodecError{Op: "encode " + spec.Name, Cause: err}
	}
	return dest.Close()
}

// EncodeOriginal decodes src and writes the canonical full-size JPEG at
// quality 100 to destPath. Dimensions are preserved.
func EncodeOriginal(src []byte, destPath string) error {
	img, err := imaging.Decode(bytes.NewReader(src))
	if err != nil {
		return &CodecError{Op: "decode", Cause: err}
	}

	dest, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", destPath, err)
	}

	if err := imaging.Encode(dest, img, imaging.JPEG, imaging.JPEGQuality(100)); err != nil {
		dest.Close()
		return &CodecError{Op: "encode original", Cause: err}
	}
	return dest.Close()
}
