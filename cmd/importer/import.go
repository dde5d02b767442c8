package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Run executes the import command. Rows are processed in order; a failed row is
// reported and skipped.
func (c *ImportCmd) Run(deps *Dependencies) error {
	places, err := parseCSV(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Parsed %d places from %s\n", len(places), c.File)

	var failed int
	for i, place := range places {
		if err := deps.Ctx.Err(); err != nil {
			return err
		}

		result := create(deps, place, c.Geo)
		if err := result.Err(); err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "row %d: %s: %v\n", i+1, place, err)
			continue
		}
		printResult(deps, result)
	}

	fmt.Fprintf(deps.Stdout, "Imported %d of %d places\n", len(places)-failed, len(places))
	if failed > 0 {
		return fmt.Errorf("%d of %d places failed", failed, len(places))
	}
	return nil
}

// parseCSV returns the non-empty first column of every row after the header.
func parseCSV(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	// Skip header
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var places []string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		if len(record) == 0 {
			continue
		}
		place := strings.TrimSpace(record[0])
		if place == "" {
			continue
		}
		places = append(places, place)
	}

	return places, nil
}
