package service

import (
	"context"
	"fmt"
	"strings"

	"tacitus-api/internal/models"
	"tacitus-api/internal/wikipedia"

	"github.com/rs/zerolog"
)

// DefaultMatchTolerance is the per-axis degree window used to match a query to a stored location.
const DefaultMatchTolerance = 0.1

// LocationRepository is the store the service layer reads and appends to.
type LocationRepository interface {
	InsertLocation(ctx context.Context, lat, lon float64, name string, articles models.Articles) (*models.Location, error)
	ListLocations(ctx context.Context) ([]models.LocationSummary, error)
	GetLocationByID(ctx context.Context, id int64) (*models.Location, error)
	FindNearestLocation(ctx context.Context, lat, lon, tolerance float64) (*models.Location, error)
}

// Geocoder resolves a place name to coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, placeName string) (models.Coordinates, error)
}

// ArticleSearcher finds reference article URLs.
type ArticleSearcher interface {
	SearchByText(ctx context.Context, name string) ([]string, error)
	SearchByCoordinates(ctx context.Context, lat, lon float64, radiusMeters int) ([]string, error)
}

// ContextResolver decides which stored location grounds a query and creates new locations.
type ContextResolver struct {
	repo      LocationRepository
	geocoder  Geocoder
	articles  ArticleSearcher
	tolerance float64
}

// NewContextResolver creates a resolver. A non-positive tolerance uses DefaultMatchTolerance.
func NewContextResolver(repo LocationRepository, geocoder Geocoder, articles ArticleSearcher, tolerance float64) *ContextResolver {
	if tolerance <= 0 {
		tolerance = DefaultMatchTolerance
	}
	return &ContextResolver{
		repo:      repo,
		geocoder:  geocoder,
		articles:  articles,
		tolerance: tolerance,
	}
}

// ResolveQueryContext returns the name and articles of the nearest stored location within
// tolerance, paired with the query's own coordinates. When nothing qualifies it returns the
// unknown-location context. Only store failures are errors.
func (r *ContextResolver) ResolveQueryContext(ctx context.Context, lat, lon float64) (models.QueryContext, error) {
	loc, err := r.repo.FindNearestLocation(ctx, lat, lon, r.tolerance)
	if err != nil {
		return models.QueryContext{}, fmt.Errorf("service: failed to find nearest location: %w", err)
	}

	if loc == nil {
		return models.QueryContext{
			Latitude:  lat,
			Longitude: lon,
			Name:      models.UnknownLocationName,
			Articles:  []string{},
		}, nil
	}

	articles := []string(loc.Articles)
	if articles == nil {
		articles = []string{}
	}
	return models.QueryContext{
		Latitude:  lat,
		Longitude: lon,
		Name:      loc.Name,
		Articles:  articles,
	}, nil
}

// CreateLocation geocodes placeName, gathers articles near the resolved point and persists
// a new record. Geocoding and store failures abort with nothing persisted; an article
// search failure or empty result degrades to a single synthetic article.
func (r *ContextResolver) CreateLocation(ctx context.Context, placeName string) models.CreateLocationResult {
	return r.create(ctx, placeName, func(ctx context.Context, coords models.Coordinates) ([]string, error) {
		return r.articles.SearchByCoordinates(ctx, coords.Latitude, coords.Longitude, wikipedia.DefaultRadiusMeters)
	})
}

// CreateLocationFromText is CreateLocation with articles found by title search on placeName.
func (r *ContextResolver) CreateLocationFromText(ctx context.Context, placeName string) models.CreateLocationResult {
	return r.create(ctx, placeName, func(ctx context.Context, _ models.Coordinates) ([]string, error) {
		return r.articles.SearchByText(ctx, placeName)
	})
}

type articleLookup func(ctx context.Context, coords models.Coordinates) ([]string, error)

func (r *ContextResolver) create(ctx context.Context, placeName string, lookup articleLookup) models.CreateLocationResult {
	logger := zerolog.Ctx(ctx)

	placeName = strings.TrimSpace(placeName)
	if placeName == "" {
		return failed(fmt.Errorf("service: location name cannot be empty: %w", models.ErrInvalidInput))
	}

	coords, err := r.geocoder.Resolve(ctx, placeName)
	if err != nil {
		return failed(fmt.Errorf("service: failed to geocode %q: %w", placeName, err))
	}

	outcome := models.OutcomeSuccess
	var cause error

	articles, err := lookup(ctx, coords)
	switch {
	case err != nil:
		cause = err
		fallthrough
	case len(articles) == 0:
		outcome = models.OutcomeDegraded
		articles = []string{wikipedia.ArticleURL(placeName)}
		logger.Warn().Err(cause).Str("location", placeName).Msg("no articles found, using synthetic article")
	}

	loc, err := r.repo.InsertLocation(ctx, coords.Latitude, coords.Longitude, placeName, models.Articles(articles))
	if err != nil {
		return failed(fmt.Errorf("service: failed to store location: %w", err))
	}

	logger.Info().
		Int64("id", loc.ID).
		Str("location", placeName).
		Int("articles", len(articles)).
		Str("outcome", string(outcome)).
		Msg("location stored")

	return models.CreateLocationResult{Location: loc, Outcome: outcome, Cause: cause}
}

func failed(err error) models.CreateLocationResult {
	return models.CreateLocationResult{Outcome: models.OutcomeFailed, Cause: err}
}

