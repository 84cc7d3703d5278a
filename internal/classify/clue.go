package classify

import (
	"strconv"
	"strings"

	"github.com/bcallahan/trivia-archive/internal/game"
)

// RawClue carries the unclassified fields extracted from one clue cell.
type RawClue struct {
	ValueText  string // visible value token, e.g. "$200" or "DD: $1,000"
	ValueClass string // class attribute of the value cell, if any
	Question   string
	Answer     string
	WrongCount int // number of wrong-answer response markers
}

// ClueContext locates a clue within its game, round, and category.
type ClueContext struct {
	SourceGameID     int
	Round            game.Round
	CategoryName     string
	CategoryPosition int
	ClueIndex        int
}

// Markers holds the source-specific tokens that distinguish a daily-double
// value cell from a regular one. The displayed value of a daily double is
// the contestant's wager, so magnitude alone cannot identify it.
type Markers struct {
	DailyDoubleClasses  []string
	DailyDoublePrefixes []string
}

// DefaultMarkers returns the marker set used by the archive's current
// markup.
func DefaultMarkers() Markers {
	return Markers{
		DailyDoubleClasses:  []string{"clue_value_daily_double"},
		DailyDoublePrefixes: []string{"DD:"},
	}
}

// Clue derives the classified clue from raw fields using the default
// markers.
func Clue(raw RawClue, ctx ClueContext) game.Clue {
	return ClueWith(raw, ctx, DefaultMarkers())
}

// ClueWith derives the classified clue from raw fields and context. It is
// pure: the same inputs always produce the same output, including the
// clue ID. Missing or unrecognized fields degrade to their explicit
// defaults rather than failing.
func ClueWith(raw RawClue, ctx ClueContext, markers Markers) game.Clue {
	dailyDouble := markers.isDailyDouble(raw)

	var value *int
	if ctx.Round != game.RoundFinal {
		value = parseValue(raw.ValueText, markers)
	}

	return game.Clue{
		ClueID:          game.ClueID(ctx.SourceGameID, ctx.Round, ctx.CategoryPosition, ctx.ClueIndex),
		Question:        strings.TrimSpace(raw.Question),
		Answer:          strings.TrimSpace(raw.Answer),
		Value:           value,
		DailyDouble:     dailyDouble,
		TripleStumper:   raw.WrongCount == 3,
		IsFinalJeopardy: ctx.Round == game.RoundFinal,
		Category:        ctx.CategoryName,
		Round:           ctx.Round,
	}
}

func (m Markers) isDailyDouble(raw RawClue) bool {
	for _, class := range m.DailyDoubleClasses {
		if strings.Contains(raw.ValueClass, class) {
			return true
		}
	}
	text := strings.TrimSpace(raw.ValueText)
	for _, prefix := range m.DailyDoublePrefixes {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}
	return false
}

// parseValue extracts the integer point value from a value token.
// Returns nil when no numeric value can be recovered.
func parseValue(text string, markers Markers) *int {
	text = strings.TrimSpace(text)
	for _, prefix := range markers.DailyDoublePrefixes {
		text = strings.TrimSpace(strings.TrimPrefix(text, prefix))
	}
	text = strings.TrimPrefix(text, "$")
	text = strings.ReplaceAll(text, ",", "")

	if text == "" {
		return nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return nil
	}
	return &n
}
