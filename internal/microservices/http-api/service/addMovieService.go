package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"topmovies/internal/ingestion/tmdb"
	"topmovies/internal/microservices/http-api/models"
	"topmovies/internal/microservices/http-api/repository"
)

// MovieCatalog is the part of the TMDB client the add workflow needs
type MovieCatalog interface {
	Search(ctx context.Context, query string) ([]tmdb.Candidate, error)
	FetchDetails(ctx context.Context, externalID int64) (*tmdb.Details, error)
}

type AddMovieService interface {
	Search(ctx context.Context, query string) ([]tmdb.Candidate, error)
	AddFromCatalog(ctx context.Context, externalID int64) (string, error)
	Resolve(ctx context.Context, externalID int64) (*models.Movie, error)
}

type addMovieService struct {
	catalog MovieCatalog
	repo    repository.MovieRepository
	logger  *slog.Logger
}

func NewAddMovieService(catalog MovieCatalog, repo repository.MovieRepository, logger *slog.Logger) AddMovieService {
	if logger == nil {
		logger = slog.Default()
	}
	return &addMovieService{catalog: catalog, repo: repo, logger: logger}
}

// Search offers catalog candidates for a free-text title
func (s *addMovieService) Search(ctx context.Context, query string) ([]tmdb.Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	return s.catalog.Search(ctx, query)
}

// AddFromCatalog fetches the selected title and stores it unrated.
// A title already in the list yields ("", repository.ErrDuplicateTitle).
func (s *addMovieService) AddFromCatalog(ctx context.Context, externalID int64) (string, error) {
	details, err := s.catalog.FetchDetails(ctx, externalID)
	if err != nil {
		return "", fmt.Errorf("add movie %d: %w", externalID, err)
	}

	movie := &models.Movie{
		Title:       truncateRunes(details.Title, models.TitleMaxLen),
		Year:        details.Year,
		Description: truncateRunes(details.Description, models.DescriptionMaxLen),
		ImgURL:      details.ImgURL,
	}

	if err := s.repo.Create(ctx, movie); err != nil {
		if errors.Is(err, repository.ErrDuplicateTitle) {
			s.logger.Warn("movie already in list", "title", movie.Title, "external_id", externalID)
			return "", repository.ErrDuplicateTitle
		}
		return "", fmt.Errorf("add movie %d: %w", externalID, err)
	}

	s.logger.Info("movie added", "id", movie.ID, "title", movie.Title, "external_id", externalID)
	return movie.Title, nil
}

// Resolve adds the title and returns the stored row so the caller can move on to rating it
func (s *addMovieService) Resolve(ctx context.Context, externalID int64) (*models.Movie, error) {
	title, err := s.AddFromCatalog(ctx, externalID)
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.GetByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("added movie missing on lookup", "title", title)
		}
		return nil, err
	}
	return movie, nil
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
