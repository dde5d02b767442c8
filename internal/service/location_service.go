package service

import (
	"context"
	"fmt"

	"tacitus-api/internal/models"
)

// LocationService exposes stored locations for reading.
type LocationService struct {
	repo LocationRepository
}

// NewLocationService creates a new location service
func NewLocationService(repo LocationRepository) *LocationService {
	return &LocationService{repo: repo}
}

// ListLocations returns all stored locations, newest first.
func (s *LocationService) ListLocations(ctx context.Context) ([]models.LocationSummary, error) {
	locations, err := s.repo.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list locations: %w", err)
	}
	return locations, nil
}

// GetLocation returns one stored location with its articles.
func (s *LocationService) GetLocation(ctx context.Context, id int64) (*models.Location, error) {
	if id <= 0 {
		return nil, fmt.Errorf("service: invalid location id %d: %w", id, models.ErrInvalidInput)
	}

	location, err := s.repo.GetLocationByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get location: %w", err)
	}
	return location, nil
}
