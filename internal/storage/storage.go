package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bcallahan/trivia-archive/internal/game"
)

// Store persists normalized games in SQLite, keyed by source_game_id and
// clue_id. Re-saving a game replaces its rows, so re-scraping is
// idempotent: deterministic clue IDs map onto the same rows every time.
type Store struct {
	db *sql.DB
}

// GameSummary is one stored game as reported by ListGames.
type GameSummary struct {
	SourceGameID   int
	ShowNumber     int
	AirDate        time.Time
	IsSpecial      bool
	TournamentType string
	ClueCount      int
}

// Open opens (creating if necessary) the database at the given path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return store, nil
}

// initSchema creates the tables if they don't exist.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		source_game_id  INTEGER PRIMARY KEY,
		show_number     INTEGER NOT NULL,
		air_date        TEXT NOT NULL,
		season          INTEGER,
		is_special      INTEGER NOT NULL,
		tournament_type TEXT NOT NULL DEFAULT '',
		scraped_at      TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS clues (
		clue_id           TEXT PRIMARY KEY,
		source_game_id    INTEGER NOT NULL REFERENCES games(source_game_id),
		round             TEXT NOT NULL,
		category          TEXT NOT NULL,
		category_position INTEGER NOT NULL,
		clue_index        INTEGER NOT NULL,
		question          TEXT NOT NULL,
		answer            TEXT NOT NULL,
		value             INTEGER,
		daily_double      INTEGER NOT NULL,
		triple_stumper    INTEGER NOT NULL,
		is_final          INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_clues_game ON clues(source_game_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveGame stores a game and all of its clues, replacing any rows from a
// previous scrape of the same source game.
func (s *Store) SaveGame(g *game.Game) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT OR REPLACE INTO games
		(source_game_id, show_number, air_date, season, is_special, tournament_type, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.SourceGameID, g.ShowNumber, g.AirDate.Format("2006-01-02"),
		nullableInt(g.Season), g.IsSpecial, g.TournamentType,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving game: %w", err)
	}

	// A re-scrape may have a different structure; drop the old clues
	// rather than leaving orphans behind.
	if _, err := tx.Exec(`DELETE FROM clues WHERE source_game_id = ?`, g.SourceGameID); err != nil {
		return fmt.Errorf("clearing previous clues: %w", err)
	}

	insert, err := tx.Prepare(`INSERT INTO clues
		(clue_id, source_game_id, round, category, category_position, clue_index,
		 question, answer, value, daily_double, triple_stumper, is_final)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing clue insert: %w", err)
	}
	defer insert.Close()

	for _, cat := range g.Categories {
		for idx, clue := range cat.Clues {
			_, err := insert.Exec(clue.ClueID, g.SourceGameID, string(clue.Round),
				clue.Category, cat.Position, idx,
				clue.Question, clue.Answer, nullableInt(clue.Value),
				clue.DailyDouble, clue.TripleStumper, clue.IsFinalJeopardy)
			if err != nil {
				return fmt.Errorf("saving clue %s: %w", clue.ClueID, err)
			}
		}
	}

	return tx.Commit()
}

// GetGame loads a stored game with its categories rebuilt in round-major,
// position order. Returns nil when the game is not stored (not an error).
func (s *Store) GetGame(sourceGameID int) (*game.Game, error) {
	row := s.db.QueryRow(`SELECT source_game_id, show_number, air_date, season, is_special, tournament_type
		FROM games WHERE source_game_id = ?`, sourceGameID)

	var g game.Game
	var airDate string
	var season sql.NullInt64
	err := row.Scan(&g.SourceGameID, &g.ShowNumber, &airDate, &season, &g.IsSpecial, &g.TournamentType)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading game: %w", err)
	}

	g.AirDate = game.ParseAirDate(airDate)
	if season.Valid {
		n := int(season.Int64)
		g.Season = &n
	}

	rows, err := s.db.Query(`SELECT clue_id, round, category, category_position, clue_index,
		question, answer, value, daily_double, triple_stumper, is_final
		FROM clues WHERE source_game_id = ?
		ORDER BY CASE round WHEN 'single' THEN 0 WHEN 'double' THEN 1 ELSE 2 END,
			category_position, clue_index`, sourceGameID)
	if err != nil {
		return nil, fmt.Errorf("loading clues: %w", err)
	}
	defer rows.Close()

	g.Categories = make([]game.Category, 0)
	for rows.Next() {
		var clue game.Clue
		var round string
		var pos, idx int
		var value sql.NullInt64
		err := rows.Scan(&clue.ClueID, &round, &clue.Category, &pos, &idx,
			&clue.Question, &clue.Answer, &value,
			&clue.DailyDouble, &clue.TripleStumper, &clue.IsFinalJeopardy)
		if err != nil {
			return nil, fmt.Errorf("scanning clue: %w", err)
		}
		clue.Round = game.Round(round)
		if value.Valid {
			n := int(value.Int64)
			clue.Value = &n
		}

		last := len(g.Categories) - 1
		if last < 0 || g.Categories[last].Round != clue.Round || g.Categories[last].Position != pos {
			g.Categories = append(g.Categories, game.Category{
				Name:     clue.Category,
				Round:    clue.Round,
				Position: pos,
				Clues:    make([]game.Clue, 0),
			})
			last++
		}
		g.Categories[last].Clues = append(g.Categories[last].Clues, clue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading clues: %w", err)
	}

	return &g, nil
}

// HasGame reports whether a game is already stored.
func (s *Store) HasGame(sourceGameID int) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM games WHERE source_game_id = ?`, sourceGameID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking game: %w", err)
	}
	return n > 0, nil
}

// ListGames returns a summary of every stored game, newest show first.
func (s *Store) ListGames() ([]GameSummary, error) {
	rows, err := s.db.Query(`SELECT g.source_game_id, g.show_number, g.air_date, g.is_special, g.tournament_type,
		(SELECT COUNT(*) FROM clues c WHERE c.source_game_id = g.source_game_id)
		FROM games g ORDER BY g.show_number DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}
	defer rows.Close()

	summaries := make([]GameSummary, 0)
	for rows.Next() {
		var sum GameSummary
		var airDate string
		if err := rows.Scan(&sum.SourceGameID, &sum.ShowNumber, &airDate,
			&sum.IsSpecial, &sum.TournamentType, &sum.ClueCount); err != nil {
			return nil, fmt.Errorf("scanning summary: %w", err)
		}
		sum.AirDate = game.ParseAirDate(airDate)
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// Count returns the number of stored games.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM games`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting games: %w", err)
	}
	return n, nil
}

func nullableInt(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
