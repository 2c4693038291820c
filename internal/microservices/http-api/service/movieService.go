package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"topmovies/internal/microservices/http-api/models"
	"topmovies/internal/microservices/http-api/repository"
)

type MovieService interface {
	ListRanked(ctx context.Context) ([]models.Movie, error)
	Get(ctx context.Context, id int64) (*models.Movie, error)
	GetByTitle(ctx context.Context, title string) (*models.Movie, error)
	RateAndReview(ctx context.Context, id int64, rating float64, review string) (*models.Movie, error)
	Delete(ctx context.Context, id int64) error
}

type movieService struct {
	repo   repository.MovieRepository
	logger *slog.Logger
}

func NewMovieService(repo repository.MovieRepository, logger *slog.Logger) MovieService {
	if logger == nil {
		logger = slog.Default()
	}
	return &movieService{repo: repo, logger: logger}
}

// ListRanked returns the whole list in ascending rating order with ranks filled in
func (s *movieService) ListRanked(ctx context.Context) ([]models.Movie, error) {
	list, err := s.repo.ListOrderedByRating(ctx)
	if err != nil {
		return nil, err
	}
	return AssignRankings(list), nil
}

func (s *movieService) Get(ctx context.Context, id int64) (*models.Movie, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *movieService) GetByTitle(ctx context.Context, title string) (*models.Movie, error) {
	return s.repo.GetByTitle(ctx, title)
}

// RateAndReview overwrites rating and review and returns the stored movie
func (s *movieService) RateAndReview(ctx context.Context, id int64, rating float64, review string) (*models.Movie, error) {
	if rating < 0 || rating > 10 {
		return nil, fmt.Errorf("%w: rating %.1f outside 0..10", ErrInvalidRating, rating)
	}
	review = strings.TrimSpace(review)
	if review == "" {
		return nil, fmt.Errorf("%w: review is required", ErrInvalidRating)
	}
	if utf8.RuneCountInString(review) > models.ReviewMaxLen {
		return nil, fmt.Errorf("%w: review longer than %d characters", ErrInvalidRating, models.ReviewMaxLen)
	}

	if err := s.repo.UpdateRatingReview(ctx, id, rating, review); err != nil {
		return nil, err
	}
	s.logger.Info("movie rated", "movie_id", id, "rating", rating)
	return s.repo.GetByID(ctx, id)
}

func (s *movieService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("movie deleted", "movie_id", id)
	return nil
}
