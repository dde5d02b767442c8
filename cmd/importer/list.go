package main

import (
	"fmt"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	locations, err := deps.Locations.ListLocations(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if len(locations) == 0 {
		fmt.Fprintln(deps.Stdout, "No locations found. Use 'importer add' to create one.")
		return nil
	}

	for _, l := range locations {
		fmt.Fprintf(deps.Stdout, "%d  %s  %.6f,%.6f  %s\n",
			l.ID, l.Name, l.Latitude, l.Longitude, l.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	return nil
}
