package main

import (
	"context"
	"io"

	"tacitus-api/internal/models"
)

// LocationCreator creates locations through the same pipeline as the HTTP API.
type LocationCreator interface {
	CreateLocation(ctx context.Context, placeName string) models.CreateLocationResult
	CreateLocationFromText(ctx context.Context, placeName string) models.CreateLocationResult
}

// LocationLister lists stored locations.
type LocationLister interface {
	ListLocations(ctx context.Context) ([]models.LocationSummary, error)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Creator   LocationCreator
	Locations LocationLister
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `default:"configs" help:"Directory containing app.env" type:"path"`

	Add    AddCmd    `cmd:"" help:"Geocode a place, gather its articles and store it"`
	Import ImportCmd `cmd:"" help:"Store every place listed in a CSV file"`
	List   ListCmd   `cmd:"" help:"List stored locations"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Place string `arg:"" help:"Place name, e.g. \"Paris, France\""`
	Geo   bool   `help:"Find articles near the coordinates instead of by title"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	File string `short:"f" required:"" type:"existingfile" help:"CSV file whose first column is the place name; the header row is skipped"`
	Geo  bool   `help:"Find articles near the coordinates instead of by title"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}
