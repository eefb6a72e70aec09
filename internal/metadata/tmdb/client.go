package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vadimtrunov/PickFlick/internal/httpclient"
)

const (
	// DefaultBaseURL is the TMDb API v3 root.
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// ImageBaseURL is the TMDb image host; a size segment and the poster path follow it.
	ImageBaseURL = "https://image.tmdb.org/t/p/"

	sortPopularityDesc = "popularity.desc"
)

// Media types understood by the discover and details endpoints.
const (
	MediaMovie = "movie"
	MediaTV    = "tv"
)

// ErrUnsupportedMediaType is returned for media types other than movie and tv.
var ErrUnsupportedMediaType = errors.New("unsupported media type")

// Config holds connection settings. Either credential may be empty; an empty
// one is simply not sent.
type Config struct {
	BaseURL string
	APIKey  string
	Token   string
	Timeout time.Duration
}

// Client is a TMDb API v3 client.
type Client struct {
	baseURL string
	apiKey  string
	token   string
	http    *httpclient.Client
	logger  *slog.Logger
}

// New creates a new TMDb client.
func New(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.Timeout

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  cfg.APIKey,
		token:   cfg.Token,
		http:    httpclient.New(httpCfg, logger),
		logger:  logger.With(slog.String("component", "tmdb")),
	}
}

// Discover lists titles of the given media type sorted by descending
// popularity. page <= 0 leaves the page parameter out, which TMDb treats as 1.
func (c *Client) Discover(ctx context.Context, mediaType string, page int) (*DiscoverPage, error) {
	if err := checkMediaType(mediaType); err != nil {
		return nil, err
	}

	params := url.Values{"sort_by": {sortPopularityDesc}}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}

	var resp DiscoverPage
	if err := c.get(ctx, "/discover/"+mediaType, params, &resp); err != nil {
		return nil, fmt.Errorf("discover %s page %d: %w", mediaType, page, err)
	}
	return &resp, nil
}

// Details retrieves the full record for one title.
func (c *Client) Details(ctx context.Context, mediaType string, id int) (*Details, error) {
	if err := checkMediaType(mediaType); err != nil {
		return nil, err
	}

	var details Details
	path := fmt.Sprintf("/%s/%d", mediaType, id)
	if err := c.get(ctx, path, nil, &details); err != nil {
		return nil, fmt.Errorf("get %s %d: %w", mediaType, id, err)
	}
	return &details, nil
}

// PosterURL returns the full URL for a poster path, or "" when there is no path.
func PosterURL(posterPath, size string) string {
	if posterPath == "" {
		return ""
	}
	return ImageBaseURL + size + posterPath
}

func checkMediaType(mediaType string) error {
	switch mediaType {
	case MediaMovie, MediaTV:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedMediaType, mediaType)
}

// get performs an authenticated GET request to the TMDb API and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	q := u.Query()
	if c.apiKey != "" {
		q.Set("api_key", c.apiKey)
	}
	for k, vs := range params {
		for _, v := range vs {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
