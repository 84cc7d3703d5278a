package scraper

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/bcallahan/trivia-archive/internal/classify"
	"github.com/bcallahan/trivia-archive/internal/game"
	"github.com/bcallahan/trivia-archive/internal/logger"
)

// roundContainers maps the detail page's round container IDs to rounds,
// in round-major order. Any subset may be absent on irregular pages.
var roundContainers = []struct {
	selector string
	round    game.Round
}{
	{"#jeopardy_round", game.RoundSingle},
	{"#double_jeopardy_round", game.RoundDouble},
	{"#final_jeopardy_round", game.RoundFinal},
}

// FetchGame retrieves a show's detail page and parses it into a Game.
// Returns nil on transport failure or when the page carries no
// identifiable show number; that nil is the single top-level failure
// signal, no error propagates to the caller.
func (s *Scraper) FetchGame(ctx context.Context, sourceGameID int) *game.Game {
	url := fmt.Sprintf("%s/showgame.php?game_id=%d", s.baseURL, sourceGameID)

	resp, err := s.get(ctx, url)
	if err != nil {
		logger.Warn("game fetch failed", logger.Fields{"game_id": sourceGameID, "error": err.Error()})
		return nil
	}
	defer resp.Body.Close()

	g, err := s.parseGame(resp.Body, sourceGameID)
	if err != nil {
		logger.Warn("game parse failed", logger.Fields{"game_id": sourceGameID, "error": err.Error()})
		return nil
	}

	return g
}

// parseGame extracts the full game structure from detail-page markup.
func (s *Scraper) parseGame(r io.Reader, sourceGameID int) (*game.Game, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	title := normalizeText(doc.Find("#game_title").Text())
	if title == "" {
		title = normalizeText(doc.Find("h1").First().Text())
	}

	// A game without an identifiable show number is unusable downstream.
	showNumber, ok := classify.ShowNumber(title)
	if !ok {
		return nil, fmt.Errorf("no show number in title %q", title)
	}

	isSpecial, tournamentType := classify.EpisodeIn(title, s.vocabulary)

	// The season index link is optional; absent means unknown, not fatal.
	seasonHref, _ := doc.Find("a[href*='season=']").First().Attr("href")

	g := &game.Game{
		SourceGameID:   sourceGameID,
		ShowNumber:     showNumber,
		AirDate:        game.ExtractAirDate(title),
		Season:         classify.Season(seasonHref),
		IsSpecial:      isSpecial,
		TournamentType: tournamentType,
		Categories:     make([]game.Category, 0),
	}

	for _, rc := range roundContainers {
		container := doc.Find(rc.selector)
		if container.Length() == 0 {
			continue
		}
		if rc.round == game.RoundFinal {
			g.Categories = append(g.Categories, s.parseFinalRound(container, sourceGameID)...)
		} else {
			g.Categories = append(g.Categories, s.parseBoardRound(container, rc.round, sourceGameID)...)
		}
	}

	return g, nil
}

// parseBoardRound extracts the categories and clues of a single or double
// round. Category header cells run left to right; clue cells appear in
// row-major order, so cell k belongs to category k mod n at row k div n.
func (s *Scraper) parseBoardRound(container *goquery.Selection, round game.Round, sourceGameID int) []game.Category {
	categories := make([]game.Category, 0)

	container.Find("td.category_name").Each(func(pos int, sel *goquery.Selection) {
		categories = append(categories, game.Category{
			Name:     normalizeText(sel.Text()),
			Round:    round,
			Position: pos,
			Clues:    make([]game.Clue, 0),
		})
	})
	if len(categories) == 0 {
		return categories
	}

	n := len(categories)
	container.Find("td.clue").Each(func(k int, cell *goquery.Selection) {
		pos := k % n
		idx := k / n

		raw := extractRawClue(cell)
		clue := classify.ClueWith(raw, classify.ClueContext{
			SourceGameID:     sourceGameID,
			Round:            round,
			CategoryName:     categories[pos].Name,
			CategoryPosition: pos,
			ClueIndex:        idx,
		}, s.markers)

		categories[pos].Clues = append(categories[pos].Clues, clue)
	})

	return categories
}

// parseFinalRound extracts the final round's categories. Normally there is
// exactly one, but tie-breaker games carry a second, so the container is
// treated as a sequence of category tables.
func (s *Scraper) parseFinalRound(container *goquery.Selection, sourceGameID int) []game.Category {
	tables := container.Find("table.final_round")
	if tables.Length() == 0 {
		// Irregular markup: fall back to the container itself when it
		// holds a bare category.
		if container.Find("td.category_name").Length() == 0 {
			return nil
		}
		tables = container
	}

	categories := make([]game.Category, 0)

	tables.Each(func(pos int, table *goquery.Selection) {
		name := normalizeText(table.Find("td.category_name").First().Text())

		raw := extractRawClue(table)
		clue := classify.ClueWith(raw, classify.ClueContext{
			SourceGameID:     sourceGameID,
			Round:            game.RoundFinal,
			CategoryName:     name,
			CategoryPosition: pos,
			ClueIndex:        0,
		}, s.markers)

		categories = append(categories, game.Category{
			Name:     name,
			Round:    game.RoundFinal,
			Position: pos,
			Clues:    []game.Clue{clue},
		})
	})

	return categories
}

// extractRawClue pulls the unclassified fields out of one clue cell:
// value token (with its class, which may carry the daily-double marker),
// prompt text, correct response, and the count of wrong-answer markers.
// Missing pieces stay empty; an unrevealed clue still yields a cell.
func extractRawClue(cell *goquery.Selection) classify.RawClue {
	valueSel := cell.Find("td.clue_value, td.clue_value_daily_double").First()
	valueClass, _ := valueSel.Attr("class")

	question := cell.Find("td.clue_text").First()

	answer := cell.Find("em.correct_response").First()

	return classify.RawClue{
		ValueText:  normalizeText(valueSel.Text()),
		ValueClass: valueClass,
		Question:   normalizeText(question.Text()),
		Answer:     normalizeText(answer.Text()),
		WrongCount: cell.Find("td.wrong").Length(),
	}
}

// normalizeText collapses runs of whitespace the way the source's nested
// markup tends to produce them.
func normalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
