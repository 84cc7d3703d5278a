package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bcallahan/trivia-archive/internal/game"
	"github.com/bcallahan/trivia-archive/internal/importer"
	"github.com/bcallahan/trivia-archive/internal/storage"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// WriteGame writes one parsed game in the specified format.
func WriteGame(w io.Writer, g *game.Game, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, g)
	}

	fmt.Fprintf(w, "Show #%d", g.ShowNumber)
	if !g.AirDate.IsZero() {
		fmt.Fprintf(w, " - aired %s", g.AirDate.Format("January 2, 2006"))
	}
	fmt.Fprintln(w)
	if g.Season != nil {
		fmt.Fprintf(w, "Season: %d\n", *g.Season)
	}
	if g.IsSpecial {
		fmt.Fprintf(w, "Special episode: %s\n", g.TournamentType)
	}

	for _, round := range []game.Round{game.RoundSingle, game.RoundDouble, game.RoundFinal} {
		cats := g.RoundCategories(round)
		if len(cats) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n[%s round]\n", round)
		for _, cat := range cats {
			fmt.Fprintf(w, "  %s:\n", cat.Name)
			for _, clue := range cat.Clues {
				value := "-"
				if clue.Value != nil {
					value = fmt.Sprintf("$%d", *clue.Value)
				}
				flags := ""
				if clue.DailyDouble {
					flags += " [DD]"
				}
				if clue.TripleStumper {
					flags += " [TS]"
				}
				if clue.Question == "" {
					fmt.Fprintf(w, "    %s (unrevealed)\n", value)
					continue
				}
				fmt.Fprintf(w, "    %s%s %s => %s\n", value, flags, clue.Question, clue.Answer)
			}
		}
	}

	fmt.Fprintf(w, "\nTotal: %d categories, %d clues\n", len(g.Categories), g.ClueCount())
	return nil
}

// WriteEntries writes one listing page's entries.
func WriteEntries(w io.Writer, page int, entries []game.ListEntry, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, map[string]interface{}{
			"page":    page,
			"entries": entries,
		})
	}

	if len(entries) == 0 {
		fmt.Fprintf(w, "No shows found on page %d.\n", page)
		return nil
	}

	for _, entry := range entries {
		if entry.AirDate.IsZero() {
			fmt.Fprintf(w, "game %d: show #%d\n", entry.SourceGameID, entry.ShowNumber)
		} else {
			fmt.Fprintf(w, "game %d: show #%d, aired %s\n",
				entry.SourceGameID, entry.ShowNumber, entry.AirDate.Format("2006-01-02"))
		}
	}
	fmt.Fprintf(w, "\nTotal: %d shows on page %d\n", len(entries), page)
	return nil
}

// WriteStats writes an import run's summary.
func WriteStats(w io.Writer, stats *importer.Stats, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, stats)
	}

	fmt.Fprintf(w, "Pages walked:     %d\n", stats.Pages)
	fmt.Fprintf(w, "Games discovered: %d\n", stats.Discovered)
	fmt.Fprintf(w, "Games imported:   %d\n", stats.Imported)
	fmt.Fprintf(w, "Games skipped:    %d\n", stats.Skipped)
	fmt.Fprintf(w, "Games failed:     %d\n", stats.Failed)
	return nil
}

// WriteSummaries writes the stored-game listing.
func WriteSummaries(w io.Writer, summaries []storage.GameSummary, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, summaries)
	}

	if len(summaries) == 0 {
		fmt.Fprintln(w, "No games stored.")
		return nil
	}

	for _, sum := range summaries {
		line := fmt.Sprintf("show #%d (game %d): %d clues", sum.ShowNumber, sum.SourceGameID, sum.ClueCount)
		if !sum.AirDate.IsZero() {
			line += ", aired " + sum.AirDate.Format("2006-01-02")
		}
		if sum.IsSpecial {
			line += " [" + sum.TournamentType + "]"
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "\nTotal: %d games\n", len(summaries))
	return nil
}
