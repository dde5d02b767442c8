package service

import (
	"context"

	"tacitus-api/internal/llm"
	"tacitus-api/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockLocationRepository is a mock implementation of LocationRepository
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) InsertLocation(ctx context.Context, lat, lon float64, name string, articles models.Articles) (*models.Location, error) {
	args := m.Called(ctx, lat, lon, name, articles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockLocationRepository) ListLocations(ctx context.Context) ([]models.LocationSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LocationSummary), args.Error(1)
}

func (m *MockLocationRepository) GetLocationByID(ctx context.Context, id int64) (*models.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockLocationRepository) FindNearestLocation(ctx context.Context, lat, lon, tolerance float64) (*models.Location, error) {
	args := m.Called(ctx, lat, lon, tolerance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

// MockGeocoder is a mock implementation of Geocoder
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Resolve(ctx context.Context, placeName string) (models.Coordinates, error) {
	args := m.Called(ctx, placeName)
	return args.Get(0).(models.Coordinates), args.Error(1)
}

// MockArticleSearcher is a mock implementation of ArticleSearcher
type MockArticleSearcher struct {
	mock.Mock
}

func (m *MockArticleSearcher) SearchByText(ctx context.Context, name string) ([]string, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockArticleSearcher) SearchByCoordinates(ctx context.Context, lat, lon float64, radiusMeters int) ([]string, error) {
	args := m.Called(ctx, lat, lon, radiusMeters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockBackend is a mock implementation of llm.Backend
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Complete(ctx context.Context, prompt llm.Prompt) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockBackend) Name() string { return "mock" }
