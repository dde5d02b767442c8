package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"tacitus-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// QueryHandler handles location-aware questions
type QueryHandler struct {
	service QueryService
}

// QueryService answers a question asked at a coordinate
type QueryService interface {
	Query(ctx context.Context, text string, lat, lon float64) (models.Answer, error)
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(svc QueryService) *QueryHandler {
	return &QueryHandler{service: svc}
}

// QueryRequest is the body of POST /api/query.
type QueryRequest struct {
	Query     string   `json:"query" example:"What is this building?"`
	Latitude  *float64 `json:"latitude" example:"48.8584"`
	Longitude *float64 `json:"longitude" example:"2.2945"`
}

// QueryResponse carries the answer text.
type QueryResponse struct {
	Answer string `json:"answer"`
}

// Query handles POST /api/query requests
//
//	@Summary	Answer a question about the caller's surroundings
//	@Tags		query
//	@Accept		json
//	@Produce	json
//	@Param		request	body		QueryRequest	true	"Query and coordinates"
//	@Success	200		{object}	QueryResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	500		{object}	ErrorResponse
//	@Router		/query [post]
func (h *QueryHandler) Query(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Query) == "" || req.Latitude == nil || req.Longitude == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters"})
		return
	}

	answer, err := h.service.Query(c.Request.Context(), req.Query, *req.Latitude, *req.Longitude)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters"})
			return
		}
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, QueryResponse{Answer: answer.Text})
}
