package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Articles is an ordered list of article URLs stored as a JSON text column.
// It implements sql.Scanner and driver.Valuer so both stores read and write it transparently.
type Articles []string

// Scan implements sql.Scanner
func (a *Articles) Scan(src any) error {
	if a == nil {
		return fmt.Errorf("models: Scan on nil *Articles")
	}

	var raw []byte
	switch v := src.(type) {
	case nil:
		*a = Articles{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("models: cannot scan type %T into Articles", src)
	}

	out := []string{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("models: decode articles: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*a = out
	return nil
}

// Value implements driver.Valuer. A nil list is stored as an empty JSON array.
func (a Articles) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
