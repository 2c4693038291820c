package dto

import (
	"time"

	"topmovies/internal/ingestion/tmdb"
	"topmovies/internal/microservices/http-api/models"
)

// RateMovieDTO is the body of PUT /api/movies/:movie_id/rating
type RateMovieDTO struct {
	Rating *float64 `json:"rating" binding:"required,gte=0,lte=10"`
	Review string   `json:"review" binding:"required,max=120"`
}

// MovieResponse is one row of the ranked list and the edit view
type MovieResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Year        int       `json:"year"`
	Description string    `json:"description"`
	Rating      *float64  `json:"rating"`
	Ranking     *int      `json:"ranking,omitempty"`
	Review      *string   `json:"review"`
	ImgURL      string    `json:"img_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromModelToMovieResponse(m models.Movie) MovieResponse {
	return MovieResponse{
		ID:          m.ID,
		Title:       m.Title,
		Year:        m.Year,
		Description: m.Description,
		Rating:      m.Rating,
		Ranking:     m.Ranking,
		Review:      m.Review,
		ImgURL:      m.ImgURL,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// MovieListResponse wraps the ranked list
type MovieListResponse struct {
	Data  []MovieResponse `json:"data"`
	Total int             `json:"total"`
}

func NewMovieListResponse(movies []models.Movie) MovieListResponse {
	data := make([]MovieResponse, 0, len(movies))
	for _, m := range movies {
		data = append(data, FromModelToMovieResponse(m))
	}
	return MovieListResponse{Data: data, Total: len(data)}
}

// CandidateResponse is a catalog search hit
type CandidateResponse struct {
	ExternalID  int64  `json:"external_id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Year        int    `json:"year,omitempty"`
}

type CandidateListResponse struct {
	Query string              `json:"query"`
	Data  []CandidateResponse `json:"data"`
}

func NewCandidateListResponse(query string, candidates []tmdb.Candidate) CandidateListResponse {
	data := make([]CandidateResponse, 0, len(candidates))
	for _, c := range candidates {
		data = append(data, CandidateResponse{
			ExternalID:  c.ExternalID,
			Title:       c.Title,
			ReleaseDate: c.ReleaseDate,
			Year:        c.Year(),
		})
	}
	return CandidateListResponse{Query: query, Data: data}
}
