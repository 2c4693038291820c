package service

import "topmovies/internal/microservices/http-api/models"

// AssignRankings numbers a list already sorted by ascending rating:
// the first movie gets rank 1 and the highest-rated gets len(movies).
// The input slice is left untouched.
func AssignRankings(movies []models.Movie) []models.Movie {
	ranked := make([]models.Movie, len(movies))
	for i, m := range movies {
		rank := i + 1
		m.Ranking = &rank
		ranked[i] = m
	}
	return ranked
}
