package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"topmovies/internal/logger"
	"topmovies/internal/microservices/http-api/models"
	"topmovies/internal/microservices/http-api/repository"
	"topmovies/internal/microservices/http-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMovieService_ListRanked(t *testing.T) {
	repo := new(MockMovieRepository)
	svc := service.NewMovieService(repo, logger.Discard())

	t.Run("Success", func(t *testing.T) {
		repo.On("ListOrderedByRating", mock.Anything).Return([]models.Movie{
			{ID: 2, Title: "B", Rating: floatPtr(3)},
			{ID: 1, Title: "A", Rating: floatPtr(8)},
		}, nil).Once()

		list, err := svc.ListRanked(context.Background())
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, 1, *list[0].Ranking)
		assert.Equal(t, 2, *list[1].Ranking)
	})

	t.Run("Empty", func(t *testing.T) {
		repo.On("ListOrderedByRating", mock.Anything).Return([]models.Movie{}, nil).Once()

		list, err := svc.ListRanked(context.Background())
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("StoreError", func(t *testing.T) {
		repo.On("ListOrderedByRating", mock.Anything).Return(nil, errors.New("db down")).Once()

		_, err := svc.ListRanked(context.Background())
		assert.Error(t, err)
	})

	repo.AssertExpectations(t)
}

func TestMovieService_RateAndReview(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockMovieRepository)
		svc := service.NewMovieService(repo, logger.Discard())

		review := "Great"
		repo.On("UpdateRatingReview", mock.Anything, int64(7), 8.5, "Great").Return(nil).Once()
		repo.On("GetByID", mock.Anything, int64(7)).
			Return(&models.Movie{ID: 7, Title: "Inception", Rating: floatPtr(8.5), Review: &review}, nil).Once()

		m, err := svc.RateAndReview(context.Background(), 7, 8.5, "  Great ")
		require.NoError(t, err)
		assert.Equal(t, 8.5, *m.Rating)
		assert.Equal(t, "Great", *m.Review)
		repo.AssertExpectations(t)
	})

	t.Run("UnknownID", func(t *testing.T) {
		repo := new(MockMovieRepository)
		svc := service.NewMovieService(repo, logger.Discard())
		repo.On("UpdateRatingReview", mock.Anything, int64(99), 5.0, "ok").Return(repository.ErrNotFound).Once()

		_, err := svc.RateAndReview(context.Background(), 99, 5, "ok")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	invalid := []struct {
		name   string
		rating float64
		review string
	}{
		{"NegativeRating", -1, "bad"},
		{"RatingAboveTen", 10.5, "too good"},
		{"EmptyReview", 5, "   "},
		{"LongReview", 5, strings.Repeat("a", models.ReviewMaxLen+1)},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockMovieRepository)
			svc := service.NewMovieService(repo, logger.Discard())

			_, err := svc.RateAndReview(context.Background(), 1, tc.rating, tc.review)
			assert.ErrorIs(t, err, service.ErrInvalidRating)
			repo.AssertNotCalled(t, "UpdateRatingReview", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestMovieService_Delete(t *testing.T) {
	repo := new(MockMovieRepository)
	svc := service.NewMovieService(repo, logger.Discard())

	repo.On("Delete", mock.Anything, int64(1)).Return(nil).Once()
	repo.On("Delete", mock.Anything, int64(2)).Return(repository.ErrNotFound).Once()

	assert.NoError(t, svc.Delete(context.Background(), 1))
	assert.ErrorIs(t, svc.Delete(context.Background(), 2), repository.ErrNotFound)
	repo.AssertExpectations(t)
}

func TestMovieService_Get(t *testing.T) {
	repo := new(MockMovieRepository)
	svc := service.NewMovieService(repo, logger.Discard())

	repo.On("GetByID", mock.Anything, int64(3)).Return(&models.Movie{ID: 3, Title: "Heat"}, nil).Once()
	repo.On("GetByTitle", mock.Anything, "Ran").Return(nil, repository.ErrNotFound).Once()

	m, err := svc.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Heat", m.Title)

	_, err = svc.GetByTitle(context.Background(), "Ran")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
