package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"
)

const (
	apifyScraperActor = "dev_fusion~linkedin-profile-scraper"
	apifyAPIURL       = "https://api.apify.com/v2/acts/" + apifyScraperActor + "/run-sync-get-dataset-items"
)

var linkedInURLPattern = regexp.MustCompile(`^https?://(www\.)?linkedin\.com/in/[a-zA-Z0-9-]+/?$`)

// ValidateLinkedInURL checks the profile URL shape before anything is
// persisted or enqueued.
func ValidateLinkedInURL(url string) error {
	if !linkedInURLPattern.MatchString(url) {
		return fmt.Errorf("invalid LinkedIn profile URL format: %q", url)
	}
	return nil
}

// Scraper fetches raw profile records through the Apify scraping
// actor.
type Scraper struct {
	token  string
	client *http.Client
	apiURL string
}

func NewScraper(token string) *Scraper {
	return &Scraper{
		token:  token,
		client: &http.Client{Timeout: 120 * time.Second},
		apiURL: apifyAPIURL,
	}
}

type scrapeRequest struct {
	ProfileURLs []string `json:"profileUrls"`
	MaxRetries  int      `json:"maxRetries"`
	TimeoutSecs int      `json:"timeoutSecs"`
}

// Scrape runs the actor synchronously and returns the first dataset
// item as a JSON string, ready for summarization.
func (s *Scraper) Scrape(ctx context.Context, profileURL string) (string, error) {
	if err := ValidateLinkedInURL(profileURL); err != nil {
		return "", err
	}
	if s.token == "" {
		return "", fmt.Errorf("apify token is not configured")
	}

	body, err := json.Marshal(scrapeRequest{
		ProfileURLs: []string{profileURL},
		MaxRetries:  3,
		TimeoutSecs: 90,
	})
	if err != nil {
		return "", fmt.Errorf("marshal scrape request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build scrape request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("scraper request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read scraper response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("scraper API error: %d %s", resp.StatusCode, payload)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(payload, &items); err != nil {
		return "", fmt.Errorf("decode scraper response: %w", err)
	}
	if len(items) == 0 {
		return "", fmt.Errorf("unexpected empty response from scraper API")
	}
	return string(items[0]), nil
}
