package classify

import (
	"regexp"
	"strconv"
	"strings"
)

// Phrase maps a title substring to the canonical label reported as the
// tournament type.
type Phrase struct {
	Match string
	Label string
}

// DefaultVocabulary returns the built-in tournament/special-episode
// phrases, ordered most-specific-first so that "Tournament of Champions"
// wins over the generic "Tournament". Matching is case-insensitive.
func DefaultVocabulary() []Phrase {
	return []Phrase{
		{"tournament of champions", "Tournament of Champions"},
		{"battle of the decades", "Battle of the Decades"},
		{"ultimate tournament", "Ultimate Tournament of Champions"},
		{"second chance", "Second Chance Tournament"},
		{"all-star", "All-Star Games"},
		{"power players", "Power Players Week"},
		{"armed forces", "Armed Forces Week"},
		{"back to school", "Back to School Week"},
		{"celebrity", "Celebrity"},
		{"teachers", "Teachers Tournament"},
		{"professors", "Professors Tournament"},
		{"college", "College Championship"},
		{"teen", "Teen Tournament"},
		{"kids", "Kids Week"},
		{"masters", "Masters"},
		{"invitational", "Invitational"},
		{"champions", "Champions"},
		{"tournament", "Tournament"},
	}
}

// Episode classifies a show title against the default vocabulary.
func Episode(title string) (isSpecial bool, tournamentType string) {
	return EpisodeIn(title, DefaultVocabulary())
}

// EpisodeIn classifies a show title against the given vocabulary. The
// first matching phrase determines the tournament type; no match means a
// regular episode. Matching is case-insensitive on both sides, so
// configured phrases may be written in any register.
func EpisodeIn(title string, vocab []Phrase) (isSpecial bool, tournamentType string) {
	lower := strings.ToLower(title)
	for _, p := range vocab {
		if strings.Contains(lower, strings.ToLower(p.Match)) {
			return true, p.Label
		}
	}
	return false, ""
}

var (
	showNumberPattern     = regexp.MustCompile(`(?i)show\s*#(\d+)`)
	bareShowNumberPattern = regexp.MustCompile(`#(\d+)`)
)

// ShowNumber extracts the show number from a title line ("Show #8000 ...").
// Falls back to a bare "#8000" token when the "Show" prefix is absent.
func ShowNumber(title string) (int, bool) {
	if m := showNumberPattern.FindStringSubmatch(title); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return n, true
		}
	}

	if m := bareShowNumberPattern.FindStringSubmatch(title); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return n, true
		}
	}

	return 0, false
}

var seasonPattern = regexp.MustCompile(`season=(\d+)`)

// Season extracts the season number from a season-index link target
// ("showseason.php?season=40"). Returns nil when no season is present;
// an absent season link is not an error.
func Season(href string) *int {
	m := seasonPattern.FindStringSubmatch(href)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}
