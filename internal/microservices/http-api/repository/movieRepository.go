package repository

import (
	"context"
	"errors"
	"fmt"

	"topmovies/internal/microservices/http-api/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("movie not found")
	ErrDuplicateTitle = errors.New("movie title already exists")
)

// pgUniqueViolation is the SQLSTATE Postgres reports for a unique index conflict
const pgUniqueViolation = "23505"

type MovieRepository interface {
	ListOrderedByRating(ctx context.Context) ([]models.Movie, error)
	GetByID(ctx context.Context, id int64) (*models.Movie, error)
	GetByTitle(ctx context.Context, title string) (*models.Movie, error)
	Create(ctx context.Context, movie *models.Movie) error
	UpdateRatingReview(ctx context.Context, id int64, rating float64, review string) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type movieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

// ListOrderedByRating returns every movie by ascending rating.
// Unrated movies come first and ties keep insertion order, on SQLite and Postgres alike.
func (r *movieRepository) ListOrderedByRating(ctx context.Context) ([]models.Movie, error) {
	var list []models.Movie
	err := r.db.WithContext(ctx).
		Order("CASE WHEN rating IS NULL THEN 0 ELSE 1 END").
		Order("rating ASC").
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return list, nil
}

func (r *movieRepository) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	var m models.Movie
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (r *movieRepository) GetByTitle(ctx context.Context, title string) (*models.Movie, error) {
	var m models.Movie
	if err := r.db.WithContext(ctx).Where("title = ?", title).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

// Create inserts movie; a title clash returns ErrDuplicateTitle and writes nothing
func (r *movieRepository) Create(ctx context.Context, movie *models.Movie) error {
	if err := r.db.WithContext(ctx).Create(movie).Error; err != nil {
		return translate(err)
	}
	// GORM populates movie.ID and the timestamps
	return nil
}

func (r *movieRepository) UpdateRatingReview(ctx context.Context, id int64, rating float64, review string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Movie{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"rating": rating, "review": review})
	if result.Error != nil {
		return fmt.Errorf("update movie %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *movieRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Movie{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete movie %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *movieRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Movie{}).Count(&count).Error
	return count, err
}

// translate maps driver errors onto the package sentinels
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateTitle
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicateTitle
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return ErrDuplicateTitle
	}
	return err
}
