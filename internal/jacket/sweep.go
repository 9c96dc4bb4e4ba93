package jacket

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// StemSource yields the stems that are still referenced by a book. Anything
// on disk outside this set is an orphan.
type StemSource interface {
	ActiveStems(ctx context.Context) ([]string, error)
}

// Sweeper garbage-collects jacket files whose stems no book references.
// Replaced jackets leave their old files behind when the best-effort delete
// during upload fails; the sweeper is the out-of-band cleanup for those.
type Sweeper struct {
	source StemSource
	layout *Layout
	logger *slog.Logger
}

func NewSweeper(source StemSource, layout *Layout, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		source: source,
		layout: layout,
		logger: logger,
	}
}

// Run walks the original/ directory, compares each stem against the live
// set, and deletes the full variant set of every orphan. With dryRun the
// orphans are reported but nothing is unlinked. Returns the orphan stems.
func (sweeper *Sweeper) Run(ctx context.Context, dryRun bool) ([]string, error) {
	stems, err := sweeper.source.ActiveStems(ctx)
	if err != nil {
		return nil, err
	}

	live := make(map[string]bool, len(stems))
	for _, stem := range stems {
		live[stem] = true
	}

	entries, err := os.ReadDir(filepath.Join(sweeper.layout.Root(), OriginalName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var orphans []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if live[stem] {
			continue
		}
		orphans = append(orphans, stem)

		if dryRun {
			sweeper.logger.Info("jacket_orphan_found", slog.String("stem", stem))
			continue
		}
		if err := DeleteStemFiles(sweeper.layout, stem); err != nil {
			sweeper.logger.Warn("jacket_orphan_delete_failed",
				slog.String("stem", stem),
				slog.String("error", err.Error()),
			)
			continue
		}
		sweeper.logger.Info("jacket_orphan_deleted", slog.String("stem", stem))
	}

	return orphans, nil
}
