package repository

import (
	"context"
	"errors"
	"fmt"

	"tacitus-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS locations (
		id BIGSERIAL PRIMARY KEY,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		location_name TEXT NOT NULL CHECK (location_name <> ''),
		articles TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS locations_created_at_idx ON locations (created_at);
`

// PostgresRepository implements the location store for PostgreSQL
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Close releases the connection pool.
func (r *PostgresRepository) Close() error {
	r.db.Close()
	return nil
}

// Migrate creates the locations table if it does not exist
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("repository: failed to create schema: %w", err)
	}
	return nil
}

// InsertLocation appends a new location and returns it with its assigned id and creation time
func (r *PostgresRepository) InsertLocation(ctx context.Context, lat, lon float64, name string, articles models.Articles) (*models.Location, error) {
	if articles == nil {
		articles = models.Articles{}
	}
	encoded, err := articles.Value()
	if err != nil {
		return nil, fmt.Errorf("repository: failed to encode articles: %w: %w", models.ErrPersistence, err)
	}

	loc := models.Location{
		Latitude:  lat,
		Longitude: lon,
		Name:      name,
		Articles:  articles,
	}

	sql := `
		INSERT INTO locations (latitude, longitude, location_name, articles)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err = r.db.QueryRow(ctx, sql, lat, lon, name, encoded.(string)).Scan(&loc.ID, &loc.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to insert location: %w: %w", models.ErrPersistence, err)
	}
	loc.CreatedAt = loc.CreatedAt.UTC()

	return &loc, nil
}

// ListLocations returns all locations without articles, most recently created first
func (r *PostgresRepository) ListLocations(ctx context.Context) ([]models.LocationSummary, error) {
	sql := `
		SELECT id, latitude, longitude, location_name, created_at
		FROM locations
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute list query: %w: %w", models.ErrPersistence, err)
	}
	defer rows.Close()

	locations := []models.LocationSummary{}
	for rows.Next() {
		var loc models.LocationSummary
		err := rows.Scan(
			&loc.ID,
			&loc.Latitude,
			&loc.Longitude,
			&loc.Name,
			&loc.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan location: %w: %w", models.ErrPersistence, err)
		}
		loc.CreatedAt = loc.CreatedAt.UTC()
		locations = append(locations, loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w: %w", models.ErrPersistence, err)
	}

	return locations, nil
}

// GetLocationByID returns the full location, or models.ErrRecordNotFound
func (r *PostgresRepository) GetLocationByID(ctx context.Context, id int64) (*models.Location, error) {
	sql := `
		SELECT id, latitude, longitude, location_name, articles, created_at
		FROM locations
		WHERE id = $1
	`

	loc, err := r.scanLocation(r.db.QueryRow(ctx, sql, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("repository: location %d: %w", id, models.ErrRecordNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("repository: failed to get location: %w: %w", models.ErrPersistence, err)
	}
	return loc, nil
}

// FindNearestLocation returns the location whose latitude and longitude deltas are both strictly
// within tolerance and whose delta sum is smallest, or nil when none qualifies. Ties go to the lowest id.
func (r *PostgresRepository) FindNearestLocation(ctx context.Context, lat, lon, tolerance float64) (*models.Location, error) {
	sql := `
		SELECT id, latitude, longitude, location_name, articles, created_at
		FROM locations
		WHERE ABS(latitude - $1) < $3 AND ABS(longitude - $2) < $3
		ORDER BY ABS(latitude - $1) + ABS(longitude - $2), id
		LIMIT 1
	`

	loc, err := r.scanLocation(r.db.QueryRow(ctx, sql, lat, lon, tolerance))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute nearest query: %w: %w", models.ErrPersistence, err)
	}
	return loc, nil
}

func (r *PostgresRepository) scanLocation(row pgx.Row) (*models.Location, error) {
	var (
		loc      models.Location
		articles string
	)
	err := row.Scan(
		&loc.ID,
		&loc.Latitude,
		&loc.Longitude,
		&loc.Name,
		&articles,
		&loc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := loc.Articles.Scan(articles); err != nil {
		return nil, err
	}
	loc.CreatedAt = loc.CreatedAt.UTC()
	return &loc, nil
}
