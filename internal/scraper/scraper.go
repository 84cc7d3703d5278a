package scraper

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bcallahan/trivia-archive/internal/classify"
)

const (
	DefaultBaseURL = "https://www.j-archive.com"
	UserAgent      = "trivia-archive/1.0 (github.com/bcallahan/trivia-archive)"
	Timeout        = 30 * time.Second
)

// Scraper fetches and parses archive listing and game detail pages.
// Each call is an independent request/parse unit with no shared mutable
// state, so a single Scraper is safe for concurrent use.
type Scraper struct {
	client     *http.Client
	baseURL    string
	userAgent  string
	markers    classify.Markers
	vocabulary []classify.Phrase
}

// Options configures a Scraper. Zero-value fields fall back to defaults.
type Options struct {
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	Markers    classify.Markers
	Vocabulary []classify.Phrase
}

// New creates a Scraper with default options.
func New() *Scraper {
	return NewWithOptions(Options{})
}

// NewWithOptions creates a Scraper with the given options.
func NewWithOptions(opts Options) *Scraper {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = UserAgent
	}
	if opts.Timeout == 0 {
		opts.Timeout = Timeout
	}
	if len(opts.Markers.DailyDoubleClasses) == 0 && len(opts.Markers.DailyDoublePrefixes) == 0 {
		opts.Markers = classify.DefaultMarkers()
	}
	if len(opts.Vocabulary) == 0 {
		opts.Vocabulary = classify.DefaultVocabulary()
	}

	return &Scraper{
		client: &http.Client{
			Timeout: opts.Timeout,
		},
		baseURL:    opts.BaseURL,
		userAgent:  opts.UserAgent,
		markers:    opts.Markers,
		vocabulary: opts.Vocabulary,
	}
}

// get performs one GET round trip. The caller's context carries any
// deadline; cancellation aborts the request.
func (s *Scraper) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp, nil
}
