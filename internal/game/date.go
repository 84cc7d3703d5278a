package game

import (
	"regexp"
	"strings"
	"time"
)

var airedPrefix = regexp.MustCompile(`(?i)aired\s+`)

// ParseAirDate attempts to parse an air-date string into a time.Time.
// Returns time.Time{} (zero value) if parsing fails.
// Supports formats: "aired January 15, 2024", "Monday, January 15, 2024",
// "January 15, 2024", "2024-01-15"
func ParseAirDate(text string) time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}
	}

	// Strip a leading "aired " so the remaining layouts apply
	text = airedPrefix.ReplaceAllString(text, "")

	// Try "Monday, January 15, 2024" format
	t, err := time.Parse("Monday, January 2, 2006", text)
	if err == nil {
		return t
	}

	// Try "January 15, 2024" format
	t, err = time.Parse("January 2, 2006", text)
	if err == nil {
		return t
	}

	// Try "2024-01-15" format
	t, err = time.Parse("2006-01-02", text)
	if err == nil {
		return t
	}

	// Try "Jan 15, 2024" format (abbreviated month)
	t, err = time.Parse("Jan 2, 2006", text)
	if err == nil {
		return t
	}

	// Could not parse, return zero time
	return time.Time{}
}

// ExtractAirDate scans free-form text (a title line or link label) for the
// first recognizable air-date token and parses it. Returns the zero time
// when no token is found.
func ExtractAirDate(text string) time.Time {
	// Pattern for dates like "January 15, 2024"
	longDate := regexp.MustCompile(`(?i)(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},\s+\d{4}`)
	if match := longDate.FindString(text); match != "" {
		return ParseAirDate(match)
	}

	// Pattern for ISO-like dates "2024-01-15"
	isoDate := regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	if match := isoDate.FindString(text); match != "" {
		return ParseAirDate(match)
	}

	return time.Time{}
}
