package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.themoviedb.org/3"

	// DefaultPosterSizeIndex picks the poster size out of the configured list.
	// Fixed at 4 ("w500" in the stock TMDB configuration).
	DefaultPosterSizeIndex = 4

	defaultTimeout   = 10 * time.Second
	defaultRateLimit = 20
	rateBurst        = 5

	// cap on how much of an error body ends up in the error message
	maxErrorBody = 512
)

// Config is built once at startup and handed to NewClient
type Config struct {
	BaseURL         string
	APIKey          string
	ReadToken       string // optional v4 read token, sent as a bearer token
	Timeout         time.Duration
	RateLimit       int // requests per second
	PosterSizeIndex int // zero means DefaultPosterSizeIndex
}

// Client queries the TMDB search, details and configuration endpoints
type Client struct {
	baseURL         string
	apiKey          string
	readToken       string
	posterSizeIndex int
	httpClient      *http.Client
	rateLimiter     *rate.Limiter
	cache           ConfigurationCache
	logger          *slog.Logger
}

// NewClient creates a catalog client. cache may be nil, in which case the
// configuration endpoint is called on every detail fetch.
func NewClient(cfg Config, cache ConfigurationCache, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = defaultRateLimit
	}
	if cfg.PosterSizeIndex <= 0 {
		cfg.PosterSizeIndex = DefaultPosterSizeIndex
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:         cfg.BaseURL,
		apiKey:          cfg.APIKey,
		readToken:       cfg.ReadToken,
		posterSizeIndex: cfg.PosterSizeIndex,
		rateLimiter:     rate.NewLimiter(rate.Limit(cfg.RateLimit), rateBurst),
		cache:           cache,
		logger:          logger,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Search returns the candidates TMDB matches for a free-text query
func (c *Client) Search(ctx context.Context, query string) ([]Candidate, error) {
	params := url.Values{}
	params.Set("query", query)

	var response searchResponse
	if err := c.doRequest(ctx, "/search/movie", params, &response); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	if response.Results == nil {
		return nil, fmt.Errorf("search %q: %w: missing results field", query, ErrUnexpectedResponse)
	}

	candidates := make([]Candidate, 0, len(*response.Results))
	for _, r := range *response.Results {
		candidates = append(candidates, toCandidate(r))
	}
	return candidates, nil
}

// FetchDetails loads a title and resolves its poster URL through the configuration endpoint
func (c *Client) FetchDetails(ctx context.Context, externalID int64) (*Details, error) {
	endpoint := "/movie/" + strconv.FormatInt(externalID, 10)

	var movie movieResponse
	if err := c.doRequest(ctx, endpoint, nil, &movie); err != nil {
		// only the movie endpoint gives 404 the meaning "no such title"
		var se *statusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("fetch movie %d: %w", externalID, ErrNotFound)
		}
		return nil, fmt.Errorf("fetch movie %d: %w", externalID, err)
	}

	cfg, err := c.Configuration(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch movie %d: %w", externalID, err)
	}

	posterPath := ""
	if movie.PosterPath != nil {
		posterPath = *movie.PosterPath
	}
	imgURL, err := BuildImageURL(cfg, c.posterSizeIndex, posterPath)
	if err != nil {
		return nil, fmt.Errorf("fetch movie %d: %w", externalID, err)
	}

	title := preferredTitle(movie.OriginalTitle, movie.Title)
	if title == "" {
		return nil, fmt.Errorf("fetch movie %d: %w: missing title", externalID, ErrUnexpectedResponse)
	}

	return &Details{
		ExternalID:  externalID,
		Title:       title,
		Year:        ParseYear(movie.ReleaseDate),
		Description: movie.Overview,
		ImgURL:      imgURL,
	}, nil
}

// Configuration returns the image configuration, from the cache when one is set
func (c *Client) Configuration(ctx context.Context) (*Configuration, error) {
	if c.cache != nil {
		cached, err := c.cache.Get(ctx)
		if err != nil {
			c.logger.Warn("catalog configuration cache read failed", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	var response configurationResponse
	if err := c.doRequest(ctx, "/configuration", nil, &response); err != nil {
		return nil, fmt.Errorf("fetch configuration: %w", err)
	}
	if response.Images == nil {
		return nil, fmt.Errorf("fetch configuration: %w: missing images block", ErrUnexpectedResponse)
	}

	cfg := &Configuration{
		ImageBaseURL: response.Images.BaseURL,
		PosterSizes:  response.Images.PosterSizes,
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cfg); err != nil {
			c.logger.Warn("catalog configuration cache write failed", "error", err)
		}
	}
	return cfg, nil
}

// doRequest performs one rate-limited GET and decodes the JSON body into result.
// Nothing is retried.
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	fullURL := c.baseURL + endpoint + "?" + params.Encode()

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %v", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json;charset=utf-8")
	req.Header.Set("User-Agent", "topmovies/1.0")
	if c.readToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.readToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &statusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: failed to parse response: %v", ErrUnexpectedResponse, err)
	}
	return nil
}
