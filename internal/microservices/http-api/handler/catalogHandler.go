package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"topmovies/internal/microservices/http-api/dto"
	"topmovies/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// catalog calls chain up to two upstream requests
const catalogTimeout = 30 * time.Second

type CatalogHandler struct {
	svc service.AddMovieService
}

func NewCatalogHandler(svc service.AddMovieService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search", h.Search)
	rg.POST("/:external_id/add", h.Add)
}

// Search lists catalog candidates for a title
// GET /api/catalog/search?q=
func (h *CatalogHandler) Search(c *gin.Context) {
	query := c.Query("q")

	ctx, cancel := context.WithTimeout(c.Request.Context(), catalogTimeout)
	defer cancel()

	candidates, err := h.svc.Search(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCandidateListResponse(query, candidates))
}

// Add stores the chosen candidate and points the caller at the new movie
// POST /api/catalog/:external_id/add
func (h *CatalogHandler) Add(c *gin.Context) {
	externalID, err := strconv.ParseInt(c.Param("external_id"), 10, 64)
	if err != nil || externalID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid external id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), catalogTimeout)
	defer cancel()

	m, err := h.svc.Resolve(ctx, externalID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/movies/%d", m.ID))
	c.JSON(http.StatusCreated, dto.FromModelToMovieResponse(*m))
}
