package fpros

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/tyler180/fantasypros-weekly/internal/config"
	"github.com/tyler180/fantasypros-weekly/internal/points"
)

const (
	BaseURL = "https://www.fantasypros.com"
	ua      = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119 Safari/537.36 (+stats-research)"
)

var (
	// ErrFetch covers transport failures and non-200 responses.
	ErrFetch = errors.New("fetch failed")
	// ErrParse means the page did not hold a usable leaders table.
	ErrParse = errors.New("unexpected page structure")
)

type Client struct {
	http    *http.Client
	baseURL string
}

// New returns a client for the FantasyPros leaders report. An empty baseURL uses BaseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// LeadersURL builds the single-week leaders report URL, e.g.
// https://www.fantasypros.com/nfl/reports/leaders/half-ppr.php?year=2021&start=1&end=1
func (c *Client) LeadersURL(scoring config.Scoring, year, week int) string {
	q := url.Values{}
	q.Set("year", fmt.Sprint(year))
	q.Set("start", fmt.Sprint(week))
	q.Set("end", fmt.Sprint(week))
	return fmt.Sprintf("%s/nfl/reports/leaders/%s.php?%s", c.baseURL, scoring, q.Encode())
}

// Fetch returns every player's scoring line for one week. One request, no retries.
func (c *Client) Fetch(ctx context.Context, scoring config.Scoring, year, week int) ([]points.WeeklyRecord, error) {
	u := c.LeadersURL(scoring, year, week)
	log.Debug().Str("url", u).Int("week", week).Msg("fpros: GET")

	html, err := c.getText(ctx, u)
	if err != nil {
		return nil, err
	}
	recs, err := ParseLeaders(strings.NewReader(html), week)
	if err != nil {
		return nil, errors.Wrapf(err, "week %d (%s)", week, u)
	}
	if len(recs) == 0 {
		log.Warn().Int("week", week).Str("url", u).Msg("fpros: leaders table has no rows")
	}
	return recs, nil
}

func (c *Client) getText(ctx context.Context, u string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", errors.Wrapf(ErrFetch, "build request: %v", err)
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrapf(ErrFetch, "%s: %v", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", errors.Wrapf(ErrFetch, "status %d for %s (body len=%d)", resp.StatusCode, u, len(b))
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrapf(ErrFetch, "read body %s: %v", u, err)
	}
	return string(b), nil
}
