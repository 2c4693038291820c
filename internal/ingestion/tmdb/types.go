package tmdb

import (
	"fmt"
	"strconv"
	"strings"
)

// ============================================
// API RESPONSE STRUCTURES
// ============================================

// searchResponse represents the response from GET /search/movie.
// Results is a pointer so a body without the field can be told apart from an empty list.
type searchResponse struct {
	Page         int             `json:"page"`
	Results      *[]searchResult `json:"results"`
	TotalResults int             `json:"total_results"`
}

// searchResult represents a single hit in the search results
type searchResult struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title"`
	ReleaseDate   string `json:"release_date"`
}

// movieResponse represents the response from GET /movie/{id}
type movieResponse struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	ReleaseDate   string  `json:"release_date"`
	Overview      string  `json:"overview"`
	PosterPath    *string `json:"poster_path"`
}

// configurationResponse represents the response from GET /configuration
type configurationResponse struct {
	Images *struct {
		BaseURL       string   `json:"base_url"`
		SecureBaseURL string   `json:"secure_base_url"`
		PosterSizes   []string `json:"poster_sizes"`
	} `json:"images"`
}

// ============================================
// EXTRACTED STRUCTURES
// ============================================

// Candidate is a search hit offered to the user before a full detail fetch
type Candidate struct {
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	ExternalID  int64  `json:"external_id"`
}

// Year is the release year, 0 when the catalog has no release date
func (c Candidate) Year() int {
	return ParseYear(c.ReleaseDate)
}

// Details is the canonical record for one catalog title
type Details struct {
	ExternalID  int64
	Title       string
	Year        int
	Description string
	ImgURL      string
}

// Configuration holds what is needed to build poster URLs
type Configuration struct {
	ImageBaseURL string   `json:"image_base_url"`
	PosterSizes  []string `json:"poster_sizes"`
}

// ============================================
// HELPER FUNCTIONS
// ============================================

func toCandidate(r searchResult) Candidate {
	return Candidate{
		Title:       preferredTitle(r.OriginalTitle, r.Title),
		ReleaseDate: r.ReleaseDate,
		ExternalID:  r.ID,
	}
}

// preferredTitle returns the original title, falling back to the localized one
func preferredTitle(original, localized string) string {
	if original != "" {
		return original
	}
	return localized
}

// ParseYear reads the year out of a "YYYY-MM-DD" release date
func ParseYear(releaseDate string) int {
	year, _, _ := strings.Cut(releaseDate, "-")
	if len(year) != 4 {
		return 0
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return 0
	}
	return y
}

// BuildImageURL joins base URL, poster size and poster path with single slashes
func BuildImageURL(cfg *Configuration, sizeIndex int, posterPath string) (string, error) {
	if posterPath == "" {
		return "", fmt.Errorf("%w: title has no poster", ErrUnexpectedResponse)
	}
	if cfg.ImageBaseURL == "" {
		return "", fmt.Errorf("%w: empty image base url", ErrUnexpectedResponse)
	}
	if sizeIndex < 0 || sizeIndex >= len(cfg.PosterSizes) {
		return "", fmt.Errorf("%w: poster size index %d out of range (%d sizes)",
			ErrUnexpectedResponse, sizeIndex, len(cfg.PosterSizes))
	}

	return strings.TrimRight(cfg.ImageBaseURL, "/") + "/" +
		strings.Trim(cfg.PosterSizes[sizeIndex], "/") + "/" +
		strings.TrimLeft(posterPath, "/"), nil
}
