package feed

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexus-logistics/tracking-service/pkg/options"
)

func newTestFeed(t *testing.T, handler http.HandlerFunc) *OpenSky {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts := options.NewFeedOptions()
	opts.BaseURL = srv.URL
	return New(opts)
}

func TestFetchParsesStates(t *testing.T) {
	f := newTestFeed(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "24.5", q.Get("lamin"))
		assert.Equal(t, "-125", q.Get("lomin"))
		assert.Equal(t, "49.5", q.Get("lamax"))
		assert.Equal(t, "-66.5", q.Get("lomax"))

		fmt.Fprint(w, `{"time":1700000000,"states":[
			["abc123","UAL123  ","United States",null,1700000000,-87.6,41.8,35000.0,false,210.5],
			["def456","","United States",null,1699999990,-118.4,33.9,30000.0,false,190.0]
		]}`)
	})

	reports, err := f.Fetch(t.Context())
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, "aircraft-UAL123", reports[0].VehicleID)
	assert.Equal(t, "UAL123", reports[0].Callsign, "callsigns are trimmed")
	assert.Equal(t, 41.8, reports[0].Latitude)
	assert.Equal(t, -87.6, reports[0].Longitude)
	assert.Equal(t, int64(1700000000), reports[0].Timestamp)
	assert.Equal(t, 35000.0, reports[0].Altitude)
	assert.Equal(t, 210.5, reports[0].Velocity)

	// Missing callsign falls back to the transponder address.
	assert.Equal(t, "aircraft-def456", reports[1].VehicleID)
	assert.Equal(t, "N/A", reports[1].Callsign)
}

func TestFetchSkipsUnusableStates(t *testing.T) {
	f := newTestFeed(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"time":1700000000,"states":[
			["abc123","UAL123",null,null,1700000000,null,41.8,35000.0,false],
			["def456","AAL456",null,null,1700000000,-118.4,null,30000.0,false],
			["ghi789","DAL789",null,null,1700000000,-87.6,41.8,0.0,true],
			["jkl012","SWA101",null,null,1700000000,-97.0,32.9,31000.0,false]
		]}`)
	})

	reports, err := f.Fetch(t.Context())
	require.NoError(t, err)

	// Null coordinates and on-ground states are filtered out.
	require.Len(t, reports, 1)
	assert.Equal(t, "aircraft-SWA101", reports[0].VehicleID)
}

func TestFetchCapsResults(t *testing.T) {
	f := newTestFeed(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"time":1700000000,"states":[`)
		for i := 0; i < 150; i++ {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `["hex%03d","FLT%03d",null,null,1700000000,-100.0,40.0,33000.0,false]`, i, i)
		}
		fmt.Fprint(w, `]}`)
	})

	reports, err := f.Fetch(t.Context())
	require.NoError(t, err)
	assert.Len(t, reports, 100)
}

func TestFetchErrorStatus(t *testing.T) {
	f := newTestFeed(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := f.Fetch(t.Context())
	assert.Error(t, err)
}

func TestFetchMalformedPayload(t *testing.T) {
	f := newTestFeed(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"time":`)
	})

	_, err := f.Fetch(t.Context())
	assert.Error(t, err)
}

func TestFetchNullStates(t *testing.T) {
	f := newTestFeed(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"time":1700000000,"states":null}`)
	})

	reports, err := f.Fetch(t.Context())
	require.NoError(t, err)
	assert.Empty(t, reports, "a null state list is an empty success; the caller decides the fallback")
}
