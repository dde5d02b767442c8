package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"tacitus-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// LocationHandler handles creation and lookup of stored locations
type LocationHandler struct {
	creator LocationCreator
	service LocationService
}

// LocationCreator geocodes and stores a new location
type LocationCreator interface {
	CreateLocation(ctx context.Context, placeName string) models.CreateLocationResult
}

// LocationService reads stored locations
type LocationService interface {
	ListLocations(ctx context.Context) ([]models.LocationSummary, error)
	GetLocation(ctx context.Context, id int64) (*models.Location, error)
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(creator LocationCreator, svc LocationService) *LocationHandler {
	return &LocationHandler{creator: creator, service: svc}
}

// SearchLocationRequest is the body of POST /api/search-location.
type SearchLocationRequest struct {
	Location string `json:"location" example:"Paris, France"`
}

// SearchLocationResponse reports a stored location.
type SearchLocationResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	Location *models.Location `json:"location"`
}

// ListLocationsResponse lists stored locations without their articles.
type ListLocationsResponse struct {
	Success   bool                     `json:"success"`
	Locations []models.LocationSummary `json:"locations"`
}

// LocationResponse wraps a single stored location.
type LocationResponse struct {
	Success  bool             `json:"success"`
	Location *models.Location `json:"location"`
}

// SearchLocation handles POST /api/search-location requests
//
//	@Summary	Geocode a place, gather articles and store it
//	@Tags		locations
//	@Accept		json
//	@Produce	json
//	@Param		request	body		SearchLocationRequest	true	"Place name"
//	@Success	200		{object}	SearchLocationResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	500		{object}	ErrorResponse
//	@Router		/search-location [post]
func (h *LocationHandler) SearchLocation(c *gin.Context) {
	var req SearchLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Location) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Location is required"})
		return
	}

	result := h.creator.CreateLocation(c.Request.Context(), req.Location)
	if err := result.Err(); err != nil {
		status, msg := searchLocationError(err)
		if status == http.StatusInternalServerError {
			zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("location", req.Location).Msg("search location failed")
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, SearchLocationResponse{
		Success:  true,
		Message:  fmt.Sprintf("Location data for %q has been processed and stored", result.Location.Name),
		Location: result.Location,
	})
}

func searchLocationError(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest, "Location is required"
	case errors.Is(err, models.ErrLocationNotFound):
		return http.StatusNotFound, "Location not found"
	case errors.Is(err, models.ErrUpstreamUnavailable):
		return http.StatusInternalServerError, "Error getting coordinates for this location"
	default:
		return http.StatusInternalServerError, "Database error"
	}
}

// ListLocations handles GET /api/locations requests
//
//	@Summary	List stored locations, newest first
//	@Tags		locations
//	@Produce	json
//	@Success	200	{object}	ListLocationsResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/locations [get]
func (h *LocationHandler) ListLocations(c *gin.Context) {
	locations, err := h.service.ListLocations(c.Request.Context())
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("list locations failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, ListLocationsResponse{Success: true, Locations: locations})
}

// GetLocation handles GET /api/locations/:id requests
//
//	@Summary	Get a stored location with its articles
//	@Tags		locations
//	@Produce	json
//	@Param		id	path		int	true	"Location id"
//	@Success	200	{object}	LocationResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/locations/{id} [get]
func (h *LocationHandler) GetLocation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location id"})
		return
	}

	location, err := h.service.GetLocation(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location id"})
		case errors.Is(err, models.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		default:
			zerolog.Ctx(c.Request.Context()).Error().Err(err).Int64("id", id).Msg("get location failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	c.JSON(http.StatusOK, LocationResponse{Success: true, Location: location})
}
