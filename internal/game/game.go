package game

import (
	"crypto/sha1"
	"fmt"
	"time"
)

// Round identifies one of the three stages of a show.
type Round string

const (
	RoundSingle Round = "single"
	RoundDouble Round = "double"
	RoundFinal  Round = "final"
)

// Game is the fully parsed representation of one archived show.
// Categories preserve on-page left-to-right, round-major order.
type Game struct {
	SourceGameID   int        `json:"source_game_id"`
	ShowNumber     int        `json:"show_number"`
	AirDate        time.Time  `json:"air_date"`
	Season         *int       `json:"season,omitempty"`
	IsSpecial      bool       `json:"is_special"`
	TournamentType string     `json:"tournament_type,omitempty"`
	Categories     []Category `json:"categories"`
}

// Category is a named group of clues within one round. Position is the
// zero-based column index and is unique within (game, round).
type Category struct {
	Name     string `json:"name"`
	Round    Round  `json:"round"`
	Position int    `json:"position"`
	Clues    []Clue `json:"clues"`
}

// Clue is the atomic question/answer unit. Value is nil for the final
// round and for clues whose value could not be determined.
type Clue struct {
	ClueID          string `json:"clue_id"`
	Question        string `json:"question"`
	Answer          string `json:"answer"`
	Value           *int   `json:"value,omitempty"`
	DailyDouble     bool   `json:"daily_double"`
	TripleStumper   bool   `json:"triple_stumper"`
	IsFinalJeopardy bool   `json:"is_final_jeopardy"`
	Category        string `json:"category"`
	Round           Round  `json:"round"`
}

// ListEntry is one show discovered on a listing page. AirDate is the
// zero time when the link text carried no recognizable date.
type ListEntry struct {
	SourceGameID int       `json:"source_game_id"`
	ShowNumber   int       `json:"show_number"`
	AirDate      time.Time `json:"air_date,omitzero"`
}

// ClueID creates a deterministic identifier for a clue from its structural
// position. Re-scraping the same game always yields the same IDs, so
// downstream storage can key per-clue rows on it.
func ClueID(sourceGameID int, round Round, categoryPos, clueIndex int) string {
	h := sha1.New()
	fmt.Fprintf(h, "%d|%s|%d|%d", sourceGameID, round, categoryPos, clueIndex)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// ClueCount returns the total number of clues across all categories.
func (g *Game) ClueCount() int {
	total := 0
	for _, cat := range g.Categories {
		total += len(cat.Clues)
	}
	return total
}

// RoundCategories returns the categories of a single round, in position order.
func (g *Game) RoundCategories(r Round) []Category {
	out := make([]Category, 0)
	for _, cat := range g.Categories {
		if cat.Round == r {
			out = append(out, cat)
		}
	}
	return out
}
