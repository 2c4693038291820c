package client

// http_client.go talks to the topmovies API for the CLI commands.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"topmovies/internal/microservices/http-api/dto"
)

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// APIError carries the status and the server's {"error": ...} message
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: apiURL,
		httpClient: &http.Client{
			// adding a movie makes two catalog calls server side
			Timeout: 30 * time.Second,
		},
	}
}

// ListMovies returns the ranked list, lowest rated first
func (c *HTTPClient) ListMovies() ([]dto.MovieResponse, error) {
	var result dto.MovieListResponse
	if err := c.do(http.MethodGet, "/api/movies", nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (c *HTTPClient) GetMovie(id int64) (*dto.MovieResponse, error) {
	var result dto.MovieResponse
	if err := c.do(http.MethodGet, "/api/movies/"+strconv.FormatInt(id, 10), nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetMovieByTitle looks a movie up by its exact stored title
func (c *HTTPClient) GetMovieByTitle(title string) (*dto.MovieResponse, error) {
	var result dto.MovieResponse
	path := "/api/movies/lookup?title=" + url.QueryEscape(title)
	if err := c.do(http.MethodGet, path, nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) RateMovie(id int64, rating float64, review string) (*dto.MovieResponse, error) {
	body := dto.RateMovieDTO{Rating: &rating, Review: review}
	var result dto.MovieResponse
	path := "/api/movies/" + strconv.FormatInt(id, 10) + "/rating"
	if err := c.do(http.MethodPut, path, body, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) DeleteMovie(id int64) error {
	return c.do(http.MethodDelete, "/api/movies/"+strconv.FormatInt(id, 10), nil, http.StatusNoContent, nil)
}

// SearchCatalog lists TMDB candidates for a title
func (c *HTTPClient) SearchCatalog(query string) ([]dto.CandidateResponse, error) {
	var result dto.CandidateListResponse
	path := "/api/catalog/search?q=" + url.QueryEscape(query)
	if err := c.do(http.MethodGet, path, nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// AddFromCatalog stores a candidate and returns the new movie
func (c *HTTPClient) AddFromCatalog(externalID int64) (*dto.MovieResponse, error) {
	var result dto.MovieResponse
	path := "/api/catalog/" + strconv.FormatInt(externalID, 10) + "/add"
	if err := c.do(http.MethodPost, path, nil, http.StatusCreated, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// do sends one request and decodes the body into result when want matches
func (c *HTTPClient) do(method, path string, body interface{}, want int, result interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not reach API at %s: %w", c.baseURL, err)
	}
	defer response.Body.Close()

	if response.StatusCode != want {
		apiErr := &APIError{StatusCode: response.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(response.Body).Decode(&payload) == nil {
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if result == nil {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(result)
}
