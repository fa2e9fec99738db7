package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Exposure is the tri-state outcome of a URL scan. A URL that has never
// been scanned by a completed session, or whose scan could not determine
// exposure, is ExposureUnknown.
type Exposure int

const (
	// ExposureUnknown means no completed scan has determined exposure.
	ExposureUnknown Exposure = iota
	// Exposed means the URL appeared in the scanned listing.
	Exposed
	// NotExposed means the URL was scanned and did not appear.
	NotExposed
)

// String returns a readable name, mainly for logs.
func (e Exposure) String() string {
	switch e {
	case Exposed:
		return "exposed"
	case NotExposed:
		return "not_exposed"
	default:
		return "unknown"
	}
}

// ExposureFromBool converts a nullable boolean column value.
func ExposureFromBool(b *bool) Exposure {
	switch {
	case b == nil:
		return ExposureUnknown
	case *b:
		return Exposed
	default:
		return NotExposed
	}
}

// Bool returns the nullable-boolean wire representation:
// true, false, or nil for unknown.
func (e Exposure) Bool() *bool {
	switch e {
	case Exposed:
		v := true
		return &v
	case NotExposed:
		v := false
		return &v
	default:
		return nil
	}
}

// MarshalJSON emits true/false/null so API clients see the same shape
// the scanner writes.
func (e Exposure) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Bool())
}

// UnmarshalJSON accepts true/false/null.
func (e *Exposure) UnmarshalJSON(data []byte) error {
	var b *bool
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("unmarshal exposure: %w", err)
	}
	*e = ExposureFromBool(b)
	return nil
}

// Scan implements sql.Scanner for a nullable BOOLEAN column.
func (e *Exposure) Scan(value any) error {
	if value == nil {
		*e = ExposureUnknown
		return nil
	}
	b, ok := value.(bool)
	if !ok {
		return fmt.Errorf("scan exposure: unexpected type %T", value)
	}
	if b {
		*e = Exposed
	} else {
		*e = NotExposed
	}
	return nil
}

// Value implements driver.Valuer.
func (e Exposure) Value() (driver.Value, error) {
	b := e.Bool()
	if b == nil {
		return nil, nil
	}
	return *b, nil
}
