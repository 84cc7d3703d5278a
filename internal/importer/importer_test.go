package importer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bcallahan/trivia-archive/internal/game"
)

type stubFetcher struct {
	mu        sync.Mutex
	pages     map[int][]game.ListEntry
	games     map[int]*game.Game
	gameCalls map[int]int
}

func (f *stubFetcher) FetchShowList(ctx context.Context, page int) []game.ListEntry {
	if entries, ok := f.pages[page]; ok {
		return entries
	}
	return []game.ListEntry{}
}

func (f *stubFetcher) FetchGame(ctx context.Context, sourceGameID int) *game.Game {
	f.mu.Lock()
	if f.gameCalls == nil {
		f.gameCalls = make(map[int]int)
	}
	f.gameCalls[sourceGameID]++
	f.mu.Unlock()
	return f.games[sourceGameID]
}

type stubStore struct {
	mu       sync.Mutex
	saved    map[int]*game.Game
	existing map[int]bool
	saveErr  error
}

func newStubStore() *stubStore {
	return &stubStore{saved: make(map[int]*game.Game), existing: make(map[int]bool)}
}

func (s *stubStore) SaveGame(g *game.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved[g.SourceGameID] = g
	return nil
}

func (s *stubStore) HasGame(sourceGameID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.existing[sourceGameID], nil
}

func testGame(id int) *game.Game {
	return &game.Game{SourceGameID: id, ShowNumber: id}
}

func entries(ids ...int) []game.ListEntry {
	out := make([]game.ListEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, game.ListEntry{SourceGameID: id, ShowNumber: id})
	}
	return out
}

func TestRunImportsDiscoveredGames(t *testing.T) {
	fetcher := &stubFetcher{
		pages: map[int][]game.ListEntry{
			1: entries(8000, 8001),
			2: entries(8002),
		},
		games: map[int]*game.Game{
			8000: testGame(8000),
			8001: testGame(8001),
			8002: testGame(8002),
		},
	}
	store := newStubStore()

	imp := New(fetcher, store, Options{Workers: 2})
	stats, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if stats.Pages != 2 {
		t.Errorf("pages = %d, expected 2", stats.Pages)
	}
	if stats.Discovered != 3 {
		t.Errorf("discovered = %d, expected 3", stats.Discovered)
	}
	if stats.Imported != 3 || stats.Failed != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if len(store.saved) != 3 {
		t.Errorf("saved %d games, expected 3", len(store.saved))
	}
}

func TestRunCountsFailures(t *testing.T) {
	fetcher := &stubFetcher{
		pages: map[int][]game.ListEntry{1: entries(8000, 8001)},
		games: map[int]*game.Game{8000: testGame(8000)}, // 8001 always fails
	}
	store := newStubStore()

	imp := New(fetcher, store, Options{Workers: 1})
	stats, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if stats.Imported != 1 || stats.Failed != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestRunRetriesFailedFetches(t *testing.T) {
	fetcher := &stubFetcher{
		pages: map[int][]game.ListEntry{1: entries(8000)},
		games: map[int]*game.Game{}, // never succeeds
	}
	store := newStubStore()

	imp := New(fetcher, store, Options{Workers: 1, Retries: 2})
	stats, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if stats.Failed != 1 {
		t.Errorf("failed = %d, expected 1", stats.Failed)
	}
	if calls := fetcher.gameCalls[8000]; calls != 3 {
		t.Errorf("fetch attempts = %d, expected 3 (1 + 2 retries)", calls)
	}
}

func TestRunSkipsExisting(t *testing.T) {
	fetcher := &stubFetcher{
		pages: map[int][]game.ListEntry{1: entries(8000, 8001)},
		games: map[int]*game.Game{8000: testGame(8000), 8001: testGame(8001)},
	}
	store := newStubStore()
	store.existing[8000] = true

	imp := New(fetcher, store, Options{Workers: 1, SkipExisting: true})
	stats, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if stats.Skipped != 1 || stats.Imported != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if fetcher.gameCalls[8000] != 0 {
		t.Error("existing game should not be fetched")
	}
}

func TestRunDeduplicatesDiscovery(t *testing.T) {
	fetcher := &stubFetcher{
		pages: map[int][]game.ListEntry{
			1: entries(8000, 8000),
			2: entries(8000),
		},
		games: map[int]*game.Game{8000: testGame(8000)},
	}
	store := newStubStore()

	imp := New(fetcher, store, Options{Workers: 1})
	stats, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if stats.Discovered != 1 {
		t.Errorf("discovered = %d, expected 1", stats.Discovered)
	}
	if fetcher.gameCalls[8000] != 1 {
		t.Errorf("fetch calls = %d, expected 1", fetcher.gameCalls[8000])
	}
}

func TestRunHonorsEndPage(t *testing.T) {
	fetcher := &stubFetcher{
		pages: map[int][]game.ListEntry{
			1: entries(8000),
			2: entries(8001),
			3: entries(8002),
		},
		games: map[int]*game.Game{8000: testGame(8000), 8001: testGame(8001), 8002: testGame(8002)},
	}
	store := newStubStore()

	imp := New(fetcher, store, Options{Workers: 1, EndPage: 2})
	stats, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if stats.Pages != 2 || stats.Discovered != 2 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := &stubFetcher{
		pages: map[int][]game.ListEntry{1: entries(8000)},
		games: map[int]*game.Game{8000: testGame(8000)},
	}
	store := newStubStore()

	imp := New(fetcher, store, Options{Workers: 1, Delay: time.Millisecond})
	_, err := imp.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
