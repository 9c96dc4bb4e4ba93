// Package jacket implements the book jacket image pipeline: upload
// validation, multi-resolution re-encoding, the on-disk storage layout,
// size-specific retrieval, and cleanup on replace or delete.
package jacket

// SizeSpec describes one rendered variant of a jacket image.
type SizeSpec struct {
	Name    string
	Width   int
	Height  int
	Quality int // WebP quality, 0-100
}

// OriginalName is the reserved variant name for the canonical full-size copy.
// The original is always stored as JPEG at quality 100 regardless of the
// uploaded format.
const OriginalName = "original"

// Variants is the fixed set of rendered sizes. Order matters only for
// deterministic log output; the files carry no ordering.
var Variants = []SizeSpec{
	{Name: "small", Width: 200, Height: 300, Quality: 85},
	{Name: "medium", Width: 300, Height: 450, Quality: 90},
	{Name: "large", Width: 500, Height: 750, Quality: 95},
}

// DefaultVariant is served when a retrieval request names no size.
const DefaultVariant = "medium"

// MaxUploadBytes caps inbound jacket files at 10 MiB.
const MaxUploadBytes = 10 << 20

// allowedContentTypes is the upload MIME allow-list. image/jpg is not a real
// MIME type but common enough in the wild to accept.
var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// AllowedContentType reports whether the declared upload MIME type is accepted.
func AllowedContentType(contentType string) bool {
	return allowedContentTypes[contentType]
}

// VariantByName returns the SizeSpec for a rendered variant name. The
// "original" pseudo-variant is not in the set; callers handle it separately.
func VariantByName(name string) (SizeSpec, bool) {
	for _, spec := range Variants {
		if spec.Name == name {
			return spec, true
		}
	}
	return SizeSpec{}, false
}

// UploadedFile is the validated in-memory representation of an inbound jacket.
type UploadedFile struct {
	Data        []byte
	ContentType string
	Size        int64
}
