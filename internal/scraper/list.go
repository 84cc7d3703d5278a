package scraper

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/bcallahan/trivia-archive/internal/classify"
	"github.com/bcallahan/trivia-archive/internal/game"
	"github.com/bcallahan/trivia-archive/internal/logger"
)

var gameIDPattern = regexp.MustCompile(`game_id=(\d+)`)

// FetchShowList retrieves one page of the show listing and extracts an
// entry for every discoverable show link, in document order.
//
// Both transport failure and a page with no matching links surface as an
// empty slice; the caller cannot distinguish "no more pages" from a
// transient failure except by retrying or inspecting logs.
func (s *Scraper) FetchShowList(ctx context.Context, page int) []game.ListEntry {
	url := fmt.Sprintf("%s/showlist.php?page=%d", s.baseURL, page)

	resp, err := s.get(ctx, url)
	if err != nil {
		logger.Warn("show list fetch failed", logger.Fields{"page": page, "error": err.Error()})
		return []game.ListEntry{}
	}
	defer resp.Body.Close()

	entries, err := parseShowList(resp.Body)
	if err != nil {
		logger.Warn("show list parse failed", logger.Fields{"page": page, "error": err.Error()})
		return []game.ListEntry{}
	}

	return entries
}

// parseShowList extracts show links from listing-page markup.
func parseShowList(r io.Reader) ([]game.ListEntry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	entries := make([]game.ListEntry, 0)

	doc.Find("a[href*='game_id=']").Each(func(i int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		m := gameIDPattern.FindStringSubmatch(href)
		if m == nil {
			return
		}
		sourceGameID, err := strconv.Atoi(m[1])
		if err != nil {
			return
		}

		// Show number and air date come from the link's visible text,
		// e.g. "#8000, aired 2024-01-01" or "Show #8000 - 2024-01-01".
		// Either may be missing on irregular pages; the entry is still
		// emitted with what was recoverable.
		text := sel.Text()
		showNumber, _ := classify.ShowNumber(text)

		entries = append(entries, game.ListEntry{
			SourceGameID: sourceGameID,
			ShowNumber:   showNumber,
			AirDate:      game.ExtractAirDate(text),
		})
	})

	return entries, nil
}
