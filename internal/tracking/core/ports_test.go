package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "vehicle:truck-001:latest", CacheKey("truck-001"))
}

func TestVehicleIDFromKey(t *testing.T) {
	tests := []struct {
		key    string
		wantID string
		wantOK bool
	}{
		{key: "vehicle:truck-001:latest", wantID: "truck-001", wantOK: true},
		{key: "vehicle::latest", wantID: "", wantOK: false},
		{key: "vehicle:truck-001", wantID: "", wantOK: false},
		{key: "vehicle:latest", wantID: "", wantOK: false},
		{key: "session:abc:latest", wantID: "", wantOK: false},
		{key: "", wantID: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			id, ok := VehicleIDFromKey(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
