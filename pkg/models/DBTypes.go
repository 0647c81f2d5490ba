package models

import (
	"database/sql/driver"
	"fmt"

	"github.com/goccy/go-json"
)

/*
DbStringSlice stores a list of strings in a single TEXT column as a
JSON array.
*/
type DbStringSlice []string

func (s *DbStringSlice) Scan(src any) error {
	var (
		b []byte
	)

	switch v := src.(type) {
	case nil:
		*s = nil
		return nil

	case string:
		b = []byte(v)

	case []byte:
		b = v

	default:
		return fmt.Errorf("can't scan type %T into DbStringSlice", v)
	}

	if len(b) == 0 {
		*s = nil
		return nil
	}

	return json.Unmarshal(b, s)
}

func (s DbStringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}

	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, fmt.Errorf("error encoding string slice: %w", err)
	}

	return string(b), nil
}
