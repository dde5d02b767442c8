package main

import (
	"fmt"

	"tacitus-api/internal/models"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	result := create(deps, c.Place, c.Geo)
	if err := result.Err(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s: %v\n", c.Place, err)
		return err
	}

	printResult(deps, result)
	return nil
}

func create(deps *Dependencies, place string, geo bool) models.CreateLocationResult {
	if geo {
		return deps.Creator.CreateLocation(deps.Ctx, place)
	}
	return deps.Creator.CreateLocationFromText(deps.Ctx, place)
}

func printResult(deps *Dependencies, result models.CreateLocationResult) {
	loc := result.Location
	fmt.Fprintf(deps.Stdout, "stored #%d %s (%.6f, %.6f) with %d article(s)",
		loc.ID, loc.Name, loc.Latitude, loc.Longitude, len(loc.Articles))
	if result.Outcome == models.OutcomeDegraded {
		fmt.Fprint(deps.Stdout, " [fallback article]")
	}
	fmt.Fprintln(deps.Stdout)
}
