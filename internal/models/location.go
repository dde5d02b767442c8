package models

import "time"

// UnknownLocationName is the context name used when no stored location covers a query.
const UnknownLocationName = "unknown location"

// Location represents a persisted point of interest together with the reference articles gathered for it when it was created.
type Location struct {
	ID        int64     `json:"id" db:"id"`
	Latitude  float64   `json:"latitude" db:"latitude"`
	Longitude float64   `json:"longitude" db:"longitude"`
	Name      string    `json:"location_name" db:"location_name"`
	Articles  Articles  `json:"articles" db:"articles"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// LocationSummary is the list view of a Location, without its articles.
type LocationSummary struct {
	ID        int64     `json:"id" db:"id"`
	Latitude  float64   `json:"latitude" db:"latitude"`
	Longitude float64   `json:"longitude" db:"longitude"`
	Name      string    `json:"location_name" db:"location_name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Coordinates is a latitude/longitude pair in signed degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// QueryContext is the grounding handed to prompt assembly. Coordinates are always
// the caller's, never the matched record's.
type QueryContext struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Name      string   `json:"location"`
	Articles  []string `json:"articles"`
}

// Summary drops the articles of a location.
func (l Location) Summary() LocationSummary {
	return LocationSummary{
		ID:        l.ID,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		Name:      l.Name,
		CreatedAt: l.CreatedAt,
	}
}
