package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"topmovies/internal/microservices/http-api/dto"
	"topmovies/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type MovieHandler struct {
	svc service.MovieService
}

func NewMovieHandler(svc service.MovieService) *MovieHandler {
	return &MovieHandler{svc: svc}
}

func (h *MovieHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/lookup", h.GetByTitle)
	rg.GET("/:movie_id", h.Get)
	rg.PUT("/:movie_id/rating", h.Rate)
	rg.DELETE("/:movie_id", h.Delete)
}

// List returns the ranked list, lowest rated first
// GET /api/movies
func (h *MovieHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.ListRanked(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMovieListResponse(list))
}

// GET /api/movies/:movie_id
func (h *MovieHandler) Get(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	m, err := h.svc.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToMovieResponse(*m))
}

// GetByTitle finds a movie by its exact stored title
// GET /api/movies/lookup?title=
func (h *MovieHandler) GetByTitle(c *gin.Context) {
	title := strings.TrimSpace(c.Query("title"))
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title query parameter is required"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	m, err := h.svc.GetByTitle(ctx, title)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToMovieResponse(*m))
}

// Rate overwrites rating and review
// PUT /api/movies/:movie_id/rating
func (h *MovieHandler) Rate(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}

	var in dto.RateMovieDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	m, err := h.svc.RateAndReview(ctx, id, *in.Rating, in.Review)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToMovieResponse(*m))
}

// DELETE /api/movies/:movie_id
func (h *MovieHandler) Delete(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func movieID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("movie_id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
		return 0, false
	}
	return id, true
}
