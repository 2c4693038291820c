package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"topmovies/internal/ingestion/tmdb"
	"topmovies/internal/microservices/http-api/middleware"
	"topmovies/internal/microservices/http-api/repository"
	"topmovies/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// statusFor maps service and catalog errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrEmptyQuery), errors.Is(err, service.ErrInvalidRating):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, tmdb.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicateTitle):
		return http.StatusConflict
	case errors.Is(err, tmdb.ErrUnavailable), errors.Is(err, tmdb.ErrUnexpectedResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

const internalErrorMessage = "internal server error"

// respondError writes err as {"error": ...}. Unclassified failures are logged
// in full and reach the client only as a generic message.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"request_id", middleware.RequestID(c),
			"path", c.FullPath(),
			"status", status,
			"error", err,
		)
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = internalErrorMessage
	}
	c.JSON(status, gin.H{"error": message})
}
