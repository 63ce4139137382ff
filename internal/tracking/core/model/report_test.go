package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateVehicleID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "simple", id: "truck-001", wantErr: false},
		{name: "underscore", id: "bus_42", wantErr: false},
		{name: "max length", id: strings.Repeat("a", 100), wantErr: false},
		{name: "empty", id: "", wantErr: true},
		{name: "too long", id: strings.Repeat("a", 101), wantErr: true},
		{name: "path traversal", id: "../etc", wantErr: true},
		{name: "slash", id: "a/b", wantErr: true},
		{name: "dot", id: "v1.2", wantErr: true},
		{name: "space", id: "v 1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVehicleID(tt.id)
			if tt.wantErr {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "vehicle_id", verr.Field)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReportValidate(t *testing.T) {
	valid := Report{VehicleID: "v1", Latitude: 41.8, Longitude: -87.6, Timestamp: 1700000000}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Report)
		field  string
	}{
		{name: "latitude above range", mutate: func(r *Report) { r.Latitude = 95 }, field: "latitude"},
		{name: "latitude below range", mutate: func(r *Report) { r.Latitude = -90.5 }, field: "latitude"},
		{name: "longitude above range", mutate: func(r *Report) { r.Longitude = 181 }, field: "longitude"},
		{name: "longitude below range", mutate: func(r *Report) { r.Longitude = -180.1 }, field: "longitude"},
		{name: "negative timestamp", mutate: func(r *Report) { r.Timestamp = -1 }, field: "timestamp"},
		{name: "unknown category", mutate: func(r *Report) { r.Type = "spaceship" }, field: "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)

			var verr *ValidationError
			require.ErrorAs(t, r.Validate(), &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestReportValidateBoundaryCoordinates(t *testing.T) {
	r := Report{VehicleID: "edge", Latitude: 90, Longitude: -180}
	assert.NoError(t, r.Validate(), "inclusive bounds must pass")
}

func TestReportValidateCategories(t *testing.T) {
	for _, c := range []Category{"", CategoryTruck, CategoryBus, CategoryAircraft} {
		r := Report{VehicleID: "v1", Latitude: 1, Longitude: 2, Type: c}
		assert.NoError(t, r.Validate(), "category %q must pass", c)
	}
}

func TestDecodeReportRejectsUnknownCategory(t *testing.T) {
	_, err := DecodeReport([]byte(`{"vehicle_id":"v1","latitude":1,"longitude":2,"type":"spaceship"}`))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr, "an undeclared category must never reach the pipeline")
	assert.Equal(t, "type", verr.Field)
}

func TestDecodeReport(t *testing.T) {
	r, err := DecodeReport([]byte(`{"vehicle_id":"v1","latitude":41.8,"longitude":-87.6,"timestamp":1700000000}`))
	require.NoError(t, err)
	assert.Equal(t, "v1", r.VehicleID)
	assert.Equal(t, 41.8, r.Latitude)
	assert.Equal(t, -87.6, r.Longitude)
	assert.Equal(t, int64(1700000000), r.Timestamp)
}

func TestDecodeReportMissingTimestamp(t *testing.T) {
	r, err := DecodeReport([]byte(`{"vehicle_id":"v1","latitude":1,"longitude":2}`))
	require.NoError(t, err)
	assert.Zero(t, r.Timestamp)
}

func TestDecodeReportUnknownField(t *testing.T) {
	_, err := DecodeReport([]byte(`{"vehicle_id":"v1","latitude":1,"longitude":2,"speed":88}`))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr, "extra fields are a validation failure, not a decode failure")
	assert.Equal(t, "speed", verr.Field)
}

func TestDecodeReportAcceptsDisplayFields(t *testing.T) {
	r, err := DecodeReport([]byte(`{"vehicle_id":"aircraft-UAL123","latitude":40.7,"longitude":-74.0,"type":"aircraft","callsign":"UAL123","altitude":35000,"velocity":210.5}`))
	require.NoError(t, err)
	assert.Equal(t, CategoryAircraft, r.Type)
	assert.Equal(t, 210.5, r.Velocity)
}

func TestDecodeReportMalformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "truncated", payload: `{"vehicle_id":"v1"`},
		{name: "not json", payload: `hello`},
		{name: "wrong type", payload: `{"vehicle_id":"v1","latitude":"north","longitude":2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeReport([]byte(tt.payload))
			require.Error(t, err)

			var verr *ValidationError
			assert.False(t, errors.As(err, &verr), "malformed payloads must not be validation errors")
		})
	}
}

func TestReportSourceNeverSerialized(t *testing.T) {
	r := Report{VehicleID: "v1", Latitude: 1, Longitude: 2, Source: SourceSynthetic}
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "synthetic")
	assert.NotContains(t, string(data), "Source")
}
