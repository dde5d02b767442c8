package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tacitus-api/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// created_at is stored as fixed-width UTC text so lexical order matches time order.
const sqliteTimeLayout = "2006-01-02 15:04:05.000000000"

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS locations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		location_name TEXT NOT NULL CHECK (location_name <> ''),
		articles TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS locations_created_at_idx ON locations (created_at);
`

// SQLiteRepository implements the location store on a local SQLite file
type SQLiteRepository struct {
	db *sqlx.DB
}

type sqliteLocationRow struct {
	ID        int64           `db:"id"`
	Latitude  float64         `db:"latitude"`
	Longitude float64         `db:"longitude"`
	Name      string          `db:"location_name"`
	Articles  models.Articles `db:"articles"`
	CreatedAt string          `db:"created_at"`
}

// OpenSQLite opens the database at path, creating the schema if needed.
// Use ":memory:" for an in-memory database.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("repository: failed to create database directory: %w", err)
		}
	}

	conn, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to open database: %w", err)
	}

	// SQLite serializes writers; one connection also keeps ":memory:" databases alive.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("repository: failed to connect to database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("repository: failed to set busy timeout: %w", err)
	}

	if _, err := conn.Exec(sqliteSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("repository: failed to create schema: %w", err)
	}

	return &SQLiteRepository{db: conn}, nil
}

// Close closes the database connection.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// InsertLocation appends a new location and returns it with its assigned id and creation time
func (r *SQLiteRepository) InsertLocation(ctx context.Context, lat, lon float64, name string, articles models.Articles) (*models.Location, error) {
	if articles == nil {
		articles = models.Articles{}
	}
	createdAt := time.Now().UTC()

	var id int64
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO locations (latitude, longitude, location_name, articles, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`, lat, lon, name, articles, createdAt.Format(sqliteTimeLayout)).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to insert location: %w: %w", models.ErrPersistence, err)
	}

	return &models.Location{
		ID:        id,
		Latitude:  lat,
		Longitude: lon,
		Name:      name,
		Articles:  articles,
		CreatedAt: createdAt,
	}, nil
}

// ListLocations returns all locations without articles, most recently created first
func (r *SQLiteRepository) ListLocations(ctx context.Context) ([]models.LocationSummary, error) {
	var rows []sqliteLocationRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, latitude, longitude, location_name, created_at
		FROM locations
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list locations: %w: %w", models.ErrPersistence, err)
	}

	summaries := make([]models.LocationSummary, 0, len(rows))
	for _, row := range rows {
		loc, err := row.toLocation()
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, loc.Summary())
	}
	return summaries, nil
}

// GetLocationByID returns the full location, or models.ErrRecordNotFound
func (r *SQLiteRepository) GetLocationByID(ctx context.Context, id int64) (*models.Location, error) {
	var row sqliteLocationRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, latitude, longitude, location_name, articles, created_at
		FROM locations
		WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("repository: location %d: %w", id, models.ErrRecordNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("repository: failed to get location: %w: %w", models.ErrPersistence, err)
	}
	return row.toLocation()
}

// FindNearestLocation returns the location whose latitude and longitude deltas are both strictly
// within tolerance and whose delta sum is smallest, or nil when none qualifies. Ties go to the lowest id.
func (r *SQLiteRepository) FindNearestLocation(ctx context.Context, lat, lon, tolerance float64) (*models.Location, error) {
	var row sqliteLocationRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, latitude, longitude, location_name, articles, created_at
		FROM locations
		WHERE ABS(latitude - ?) < ? AND ABS(longitude - ?) < ?
		ORDER BY ABS(latitude - ?) + ABS(longitude - ?), id
		LIMIT 1
	`, lat, tolerance, lon, tolerance, lat, lon)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute nearest query: %w: %w", models.ErrPersistence, err)
	}
	return row.toLocation()
}

func (row sqliteLocationRow) toLocation() (*models.Location, error) {
	createdAt, err := time.ParseInLocation(sqliteTimeLayout, row.CreatedAt, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to parse created_at: %w: %w", models.ErrPersistence, err)
	}

	articles := row.Articles
	if articles == nil {
		articles = models.Articles{}
	}

	return &models.Location{
		ID:        row.ID,
		Latitude:  row.Latitude,
		Longitude: row.Longitude,
		Name:      row.Name,
		Articles:  articles,
		CreatedAt: createdAt,
	}, nil
}
