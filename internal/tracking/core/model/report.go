package model

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// Category classifies a vehicle in the aggregated fleet view.
type Category string

const (
	CategoryTruck    Category = "truck"
	CategoryBus      Category = "bus"
	CategoryAircraft Category = "aircraft"
)

// Source records where an aggregated entry came from. It is internal
// provenance for tests and observability and never appears on the wire.
type Source string

const (
	SourceReal      Source = "real"
	SourceSynthetic Source = "synthetic"
)

// vehicleIDPattern mirrors the ingestion gateway's schema: alphanumeric plus
// hyphen/underscore, 1..100 characters. Path separators and dots are
// excluded so identifiers are safe to embed in cache keys and URLs.
var vehicleIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,100}$`)

// Report is one vehicle observation. Reports are immutable once constructed;
// every stage of the pipeline passes them by value or fresh pointer and never
// mutates a stored one.
type Report struct {
	VehicleID string  `json:"vehicle_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp int64   `json:"timestamp,omitempty"`

	// Category and display fields, used by the live fleet view only.
	Type     Category `json:"type,omitempty"`
	Callsign string   `json:"callsign,omitempty"`
	Altitude float64  `json:"altitude,omitempty"`
	Velocity float64  `json:"velocity,omitempty"`
	Route    string   `json:"route,omitempty"`
	City     string   `json:"city,omitempty"`

	// Source is the provenance flag (real vs synthetic).
	Source Source `json:"-"`
}

// ValidationError describes a report field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ValidateVehicleID checks an identifier against the allowed pattern.
func ValidateVehicleID(id string) error {
	if !vehicleIDPattern.MatchString(id) {
		return &ValidationError{Field: "vehicle_id", Reason: "must be 1-100 characters of [a-zA-Z0-9_-]"}
	}
	return nil
}

// Validate checks the report fields. A zero timestamp is allowed; the
// consumer stamps it at ingest time.
func (r *Report) Validate() error {
	if err := ValidateVehicleID(r.VehicleID); err != nil {
		return err
	}
	if r.Latitude < -90 || r.Latitude > 90 {
		return &ValidationError{Field: "latitude", Reason: fmt.Sprintf("%v out of range [-90,90]", r.Latitude)}
	}
	if r.Longitude < -180 || r.Longitude > 180 {
		return &ValidationError{Field: "longitude", Reason: fmt.Sprintf("%v out of range [-180,180]", r.Longitude)}
	}
	if r.Timestamp < 0 {
		return &ValidationError{Field: "timestamp", Reason: "must be a positive epoch timestamp"}
	}
	switch r.Type {
	case "", CategoryTruck, CategoryBus, CategoryAircraft:
	default:
		return &ValidationError{Field: "type", Reason: fmt.Sprintf("%q is not a known category", r.Type)}
	}
	return nil
}

// reportFields is the declared payload shape; anything else is rejected.
var reportFields = map[string]bool{
	"vehicle_id": true,
	"latitude":   true,
	"longitude":  true,
	"timestamp":  true,
	"type":       true,
	"callsign":   true,
	"altitude":   true,
	"velocity":   true,
	"route":      true,
	"city":       true,
}

// DecodeReport strictly decodes a JSON position report. Fields outside the
// declared shape are rejected as a validation failure; anything that is not
// well-formed JSON for the shape is returned as a plain decode error.
func DecodeReport(data []byte) (*Report, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	for field := range raw {
		if !reportFields[field] {
			return nil, &ValidationError{Field: field, Reason: "unknown field"}
		}
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}
