package repository

import (
	"context"
	"fmt"

	"tacitus-api/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Store is a location store that owns its connection.
type Store interface {
	InsertLocation(ctx context.Context, lat, lon float64, name string, articles models.Articles) (*models.Location, error)
	ListLocations(ctx context.Context) ([]models.LocationSummary, error)
	GetLocationByID(ctx context.Context, id int64) (*models.Location, error)
	FindNearestLocation(ctx context.Context, lat, lon, tolerance float64) (*models.Location, error)
	Close() error
}

// Open connects to the store selected by driver and makes sure its schema exists.
func Open(ctx context.Context, driver, source string) (Store, error) {
	switch driver {
	case DriverSQLite:
		return OpenSQLite(source)
	case DriverPostgres:
		pool, err := pgxpool.New(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("repository: cannot connect to postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("repository: cannot reach postgres: %w", err)
		}
		repo := NewPostgresRepository(pool)
		if err := repo.Migrate(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("repository: unsupported driver %q", driver)
	}
}
