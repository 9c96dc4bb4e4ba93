package jacket

import (
	"fmt"
	"os"
	"path/filepath"
)

// Layout owns the on-disk directory structure under the jackets root:
// one directory per variant name plus "original", each holding files named
// by logical stem.
type Layout struct {
	root string
}

func NewLayout(root string) *Layout {
	return &Layout{root: root}
}

// Root returns the jackets root directory.
func (l *Layout) Root() string { return l.root }

// Ensure creates the root and every variant directory. It is idempotent and
// safe to call before each pipeline run.
func (l *Layout) Ensure() error {
	dirs := []string{filepath.Join(l.root, OriginalName)}
	for _, spec := range Variants {
		dirs = append(dirs, filepath.Join(l.root, spec.Name))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure jacket dir %s: %w", dir, err)
		}
	}
	return nil
}

// Path computes the file path for a stem under a variant directory. The
// extension follows the variant's format: jpg for the original, webp for
// every rendered size.
func (l *Layout) Path(variant, stem string) string {
	return filepath.Join(l.root, variant, stem+"."+Extension(variant))
}

// Extension returns the file extension used for a variant.
func Extension(variant string) string {
	if variant == OriginalName {
		return "jpg"
	}
	return "webp"
}
