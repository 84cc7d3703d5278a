// Package importer drives batch imports: it walks the show listing page
// by page, hands every discovered game ID to a bounded pool of workers,
// and saves parsed games to the store. The scraper core imposes no rate
// limit and never retries, so pacing and retry policy both live here,
// with the caller.
package importer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/bcallahan/trivia-archive/internal/game"
	"github.com/bcallahan/trivia-archive/internal/logger"
)

// Fetcher is the scraping surface the importer drives.
type Fetcher interface {
	FetchShowList(ctx context.Context, page int) []game.ListEntry
	FetchGame(ctx context.Context, sourceGameID int) *game.Game
}

// Store receives parsed games.
type Store interface {
	SaveGame(g *game.Game) error
	HasGame(sourceGameID int) (bool, error)
}

// Options tunes one import run. Zero-value fields fall back to defaults.
type Options struct {
	StartPage    int           // first listing page, default 1
	EndPage      int           // last listing page inclusive; 0 walks until an empty page
	Workers      int           // concurrent fetch workers, default 4
	Delay        time.Duration // per-worker pause between requests
	Retries      uint64        // retry attempts per game after the first failure
	SkipExisting bool          // skip games already in the store
}

// Stats summarizes an import run.
type Stats struct {
	Pages      int
	Discovered int
	Imported   int
	Skipped    int
	Failed     int
}

// Importer coordinates one or more import runs against a fetcher and a
// store.
type Importer struct {
	fetcher Fetcher
	store   Store
	opts    Options
}

// New creates an Importer.
func New(fetcher Fetcher, store Store, opts Options) *Importer {
	if opts.StartPage <= 0 {
		opts.StartPage = 1
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	return &Importer{
		fetcher: fetcher,
		store:   store,
		opts:    opts,
	}
}

// Run enumerates listing pages and imports every discovered game.
// Individual failures are counted, logged, and skipped; only context
// cancellation aborts the run early.
func (imp *Importer) Run(ctx context.Context) (*Stats, error) {
	runID := uuid.New().String()
	stats := &Stats{}

	logger.Info("import started", logger.Fields{
		"run_id":     runID,
		"start_page": imp.opts.StartPage,
		"workers":    imp.opts.Workers,
	})

	ids, pages, err := imp.discover(ctx)
	stats.Pages = pages
	stats.Discovered = len(ids)
	if err != nil {
		return stats, err
	}

	jobs := make(chan int)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for w := 0; w < imp.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				outcome := imp.importOne(ctx, id, runID)
				mu.Lock()
				switch outcome {
				case outcomeImported:
					stats.Imported++
				case outcomeSkipped:
					stats.Skipped++
				case outcomeFailed:
					stats.Failed++
				}
				mu.Unlock()

				if imp.opts.Delay > 0 {
					select {
					case <-time.After(imp.opts.Delay):
					case <-ctx.Done():
					}
				}
			}
		}()
	}

	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		jobs <- id
	}
	close(jobs)
	wg.Wait()

	logger.Info("import finished", logger.Fields{
		"run_id":     runID,
		"pages":      stats.Pages,
		"discovered": stats.Discovered,
		"imported":   stats.Imported,
		"skipped":    stats.Skipped,
		"failed":     stats.Failed,
	})

	return stats, ctx.Err()
}

// discover walks listing pages collecting unique game IDs in discovery
// order. An empty page ends the walk: the listing gives no way to tell
// "no more pages" from a transient failure.
func (imp *Importer) discover(ctx context.Context) ([]int, int, error) {
	ids := make([]int, 0)
	seen := make(map[int]bool)
	pages := 0

	for page := imp.opts.StartPage; imp.opts.EndPage == 0 || page <= imp.opts.EndPage; page++ {
		if err := ctx.Err(); err != nil {
			return ids, pages, err
		}

		entries := imp.fetcher.FetchShowList(ctx, page)
		if len(entries) == 0 {
			logger.Info("empty listing page, stopping discovery", logger.Fields{"page": page})
			break
		}
		pages++
		logger.IncrCounter("import.pages")

		for _, entry := range entries {
			if !seen[entry.SourceGameID] {
				seen[entry.SourceGameID] = true
				ids = append(ids, entry.SourceGameID)
			}
		}
	}

	return ids, pages, nil
}

type outcome int

const (
	outcomeImported outcome = iota
	outcomeSkipped
	outcomeFailed
)

func (imp *Importer) importOne(ctx context.Context, sourceGameID int, runID string) outcome {
	if imp.opts.SkipExisting {
		has, err := imp.store.HasGame(sourceGameID)
		if err != nil {
			logger.Error("store lookup failed", logger.Fields{"run_id": runID, "game_id": sourceGameID}, err)
			return outcomeFailed
		}
		if has {
			return outcomeSkipped
		}
	}

	start := time.Now()
	g := imp.fetchWithRetry(ctx, sourceGameID)
	logger.RecordTiming("import.fetch_game", time.Since(start))

	if g == nil {
		logger.Warn("no data for game", logger.Fields{"run_id": runID, "game_id": sourceGameID})
		logger.IncrCounter("import.failed")
		return outcomeFailed
	}

	if err := imp.store.SaveGame(g); err != nil {
		logger.Error("saving game failed", logger.Fields{"run_id": runID, "game_id": sourceGameID}, err)
		logger.IncrCounter("import.failed")
		return outcomeFailed
	}

	logger.IncrCounter("import.games")
	logger.Debug("game imported", logger.Fields{
		"run_id":      runID,
		"game_id":     sourceGameID,
		"show_number": g.ShowNumber,
		"clues":       g.ClueCount(),
	})
	return outcomeImported
}

// fetchWithRetry wraps the scraper's nil-on-failure contract in the
// importer's retry policy.
func (imp *Importer) fetchWithRetry(ctx context.Context, sourceGameID int) *game.Game {
	var g *game.Game
	op := func() error {
		g = imp.fetcher.FetchGame(ctx, sourceGameID)
		if g == nil {
			return fmt.Errorf("no data for game %d", sourceGameID)
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), imp.opts.Retries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return nil
	}
	return g
}
