package jacket

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Manifest maps a variant name (including "original") to the URL path a
// client can fetch it from.
type Manifest map[string]string

// ProcessingError reports a pipeline run that did not produce the complete
// variant set. The files written before the failure may still be on disk;
// the caller decides whether to clean them up.
type ProcessingError struct {
	Stem  string
	Cause error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("jacket pipeline: stem %s: %v", e.Stem, e.Cause)
}

func (e *ProcessingError) Unwrap() error { return e.Cause }

// Pipeline turns one uploaded image into the full derived-artifact set:
// the canonical original plus every rendered variant.
type Pipeline struct {
	layout *Layout
}

func NewPipeline(layout *Layout) *Pipeline {
	return &Pipeline{layout: layout}
}

// Process writes the original and all variants for stem. The original is
// written first so a stem with any files at all always has its source of
// truth on disk; variants are then encoded concurrently. Any failure returns
// a *ProcessingError without rolling back files already written.
func (p *Pipeline) Process(ctx context.Context, data []byte, stem string) (Manifest, error) {
	if err := p.layout.Ensure(); err != nil {
		return nil, &ProcessingError{Stem: stem, Cause: err}
	}

	if err := EncodeOriginal(data, p.layout.Path(OriginalName, stem)); err != nil {
		return nil, &ProcessingError{Stem: stem, Cause: err}
	}

	group, _ := errgroup.WithContext(ctx)
	for _, spec := range Variants {
		group.Go(func() error {
			return EncodeVariant(data, spec, p.layout.Path(spec.Name, stem))
		})
	}
	if err := group.Wait(); err != nil {
		return nil, &ProcessingError{Stem: stem, Cause: err}
	}

	manifest := Manifest{OriginalName: variantURL(OriginalName)}
	for _, spec := range Variants {
		manifest[spec.Name] = variantURL(spec.Name)
	}
	return manifest, nil
}

// BookIDPlaceholder marks where the owning book's ID belongs in manifest
// URLs. The pipeline does not know which book owns a stem; the coordinator
// substitutes the real ID before URLs leave the process.
const BookIDPlaceholder = "{bookId}"

func variantURL(variant string) string {
	return "/books/" + BookIDPlaceholder + "/jacket/" + variant
}
