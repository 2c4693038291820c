package service_test

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"topmovies/database"
	"topmovies/internal/ingestion/tmdb"
	"topmovies/internal/logger"
	"topmovies/internal/microservices/http-api/models"
	"topmovies/internal/microservices/http-api/repository"
	"topmovies/internal/microservices/http-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var inception = &tmdb.Details{
	ExternalID:  27205,
	Title:       "Inception",
	Year:        2010,
	Description: "A thief who steals corporate secrets through dream-sharing technology.",
	ImgURL:      "http://image.tmdb.org/t/p/w500/inception.jpg",
}

func TestAddMovieService_Search(t *testing.T) {
	t.Run("EmptyQuery", func(t *testing.T) {
		catalog := new(MockCatalog)
		svc := service.NewAddMovieService(catalog, new(MockMovieRepository), logger.Discard())

		_, err := svc.Search(context.Background(), "   ")
		assert.ErrorIs(t, err, service.ErrEmptyQuery)
		catalog.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("TrimsAndDelegates", func(t *testing.T) {
		catalog := new(MockCatalog)
		svc := service.NewAddMovieService(catalog, new(MockMovieRepository), logger.Discard())
		want := []tmdb.Candidate{{Title: "Inception", ReleaseDate: "2010-07-15", ExternalID: 27205}}
		catalog.On("Search", mock.Anything, "Inception").Return(want, nil).Once()

		got, err := svc.Search(context.Background(), " Inception ")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("CatalogUnavailable", func(t *testing.T) {
		catalog := new(MockCatalog)
		svc := service.NewAddMovieService(catalog, new(MockMovieRepository), logger.Discard())
		catalog.On("Search", mock.Anything, "Inception").Return(nil, tmdb.ErrUnavailable).Once()

		_, err := svc.Search(context.Background(), "Inception")
		assert.ErrorIs(t, err, tmdb.ErrUnavailable)
	})
}

func TestAddMovieService_AddFromCatalog(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		catalog := new(MockCatalog)
		repo := new(MockMovieRepository)
		svc := service.NewAddMovieService(catalog, repo, logger.Discard())

		catalog.On("FetchDetails", mock.Anything, int64(27205)).Return(inception, nil).Once()
		repo.On("Create", mock.Anything, mock.MatchedBy(func(m *models.Movie) bool {
			return m.Title == "Inception" && m.Year == 2010 && m.Rating == nil && m.Review == nil
		})).Return(nil).Once()

		title, err := svc.AddFromCatalog(context.Background(), 27205)
		require.NoError(t, err)
		assert.Equal(t, "Inception", title)
		repo.AssertExpectations(t)
	})

	t.Run("Duplicate", func(t *testing.T) {
		catalog := new(MockCatalog)
		repo := new(MockMovieRepository)
		svc := service.NewAddMovieService(catalog, repo, logger.Discard())

		catalog.On("FetchDetails", mock.Anything, int64(27205)).Return(inception, nil).Once()
		repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateTitle).Once()

		title, err := svc.AddFromCatalog(context.Background(), 27205)
		assert.ErrorIs(t, err, repository.ErrDuplicateTitle)
		assert.Empty(t, title)
	})

	t.Run("CatalogErrorWritesNothing", func(t *testing.T) {
		catalog := new(MockCatalog)
		repo := new(MockMovieRepository)
		svc := service.NewAddMovieService(catalog, repo, logger.Discard())

		catalog.On("FetchDetails", mock.Anything, int64(1)).Return(nil, tmdb.ErrUnexpectedResponse).Once()

		_, err := svc.AddFromCatalog(context.Background(), 1)
		assert.ErrorIs(t, err, tmdb.ErrUnexpectedResponse)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("TruncatesLongText", func(t *testing.T) {
		catalog := new(MockCatalog)
		repo := new(MockMovieRepository)
		svc := service.NewAddMovieService(catalog, repo, logger.Discard())

		long := &tmdb.Details{
			Title:       strings.Repeat("é", 200),
			Year:        1999,
			Description: strings.Repeat("ж", 500),
			ImgURL:      "http://img/x.jpg",
		}
		catalog.On("FetchDetails", mock.Anything, int64(5)).Return(long, nil).Once()

		var stored *models.Movie
		repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.Movie)
		}).Return(nil).Once()

		title, err := svc.AddFromCatalog(context.Background(), 5)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, models.TitleMaxLen, utf8.RuneCountInString(stored.Title))
		assert.Equal(t, models.DescriptionMaxLen, utf8.RuneCountInString(stored.Description))
		assert.Equal(t, stored.Title, title)
	})
}

func TestAddMovieService_Resolve(t *testing.T) {
	t.Run("LookupMissIsAnError", func(t *testing.T) {
		catalog := new(MockCatalog)
		repo := new(MockMovieRepository)
		svc := service.NewAddMovieService(catalog, repo, logger.Discard())

		catalog.On("FetchDetails", mock.Anything, int64(27205)).Return(inception, nil).Once()
		repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		repo.On("GetByTitle", mock.Anything, "Inception").Return(nil, repository.ErrNotFound).Once()

		m, err := svc.Resolve(context.Background(), 27205)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, m)
	})

	t.Run("DuplicateSkipsLookup", func(t *testing.T) {
		catalog := new(MockCatalog)
		repo := new(MockMovieRepository)
		svc := service.NewAddMovieService(catalog, repo, logger.Discard())

		catalog.On("FetchDetails", mock.Anything, int64(27205)).Return(inception, nil).Once()
		repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateTitle).Once()

		_, err := svc.Resolve(context.Background(), 27205)
		assert.ErrorIs(t, err, repository.ErrDuplicateTitle)
		repo.AssertNotCalled(t, "GetByTitle", mock.Anything, mock.Anything)
	})
}

// End to end against a migrated in-memory store
func TestAddMovieService_WithStore(t *testing.T) {
	db, err := database.Open(":memory:", logger.Discard())
	require.NoError(t, err)
	defer database.Close(db)

	repo := repository.NewMovieRepository(db)
	catalog := new(MockCatalog)
	catalog.On("FetchDetails", mock.Anything, int64(27205)).Return(inception, nil)
	svc := service.NewAddMovieService(catalog, repo, logger.Discard())
	ctx := context.Background()

	m, err := svc.Resolve(ctx, 27205)
	require.NoError(t, err)
	assert.NotZero(t, m.ID)
	assert.Equal(t, "Inception", m.Title)
	assert.Equal(t, 2010, m.Year)
	assert.Equal(t, inception.Description, m.Description)
	assert.Equal(t, inception.ImgURL, m.ImgURL)
	assert.Nil(t, m.Rating)
	assert.Nil(t, m.Review)

	// adding the same title again leaves exactly one row
	title, err := svc.AddFromCatalog(ctx, 27205)
	assert.ErrorIs(t, err, repository.ErrDuplicateTitle)
	assert.Empty(t, title)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// rate it and watch the rank follow
	movies := service.NewMovieService(repo, logger.Discard())
	rated, err := movies.RateAndReview(ctx, m.ID, 9, "Layers on layers")
	require.NoError(t, err)
	assert.Equal(t, 9.0, *rated.Rating)
	assert.Equal(t, "Layers on layers", *rated.Review)

	list, err := movies.ListRanked(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, *list[0].Ranking)

	require.NoError(t, movies.Delete(ctx, m.ID))
	_, err = movies.Get(ctx, m.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
