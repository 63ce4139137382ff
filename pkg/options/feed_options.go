package options

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/pflag"
)

var _ IOptions = (*FeedOptions)(nil)

// FeedOptions contains configuration for the external aircraft telemetry feed.
type FeedOptions struct {
	// BaseURL of the state-vector endpoint.
	BaseURL string `json:"base-url" mapstructure:"base-url"`

	// Timeout is the hard deadline for one feed request. On expiry the
	// aggregator falls back to the synthetic roster.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`

	// MaxResults caps qualifying entries returned by one fetch.
	MaxResults int `json:"max-results" mapstructure:"max-results"`

	// ExcludeOnGround drops entries reported as on the ground.
	ExcludeOnGround bool `json:"exclude-on-ground" mapstructure:"exclude-on-ground"`

	// Bounding box scoping the query (continental US by default).
	LatMin float64 `json:"lat-min" mapstructure:"lat-min"`
	LonMin float64 `json:"lon-min" mapstructure:"lon-min"`
	LatMax float64 `json:"lat-max" mapstructure:"lat-max"`
	LonMax float64 `json:"lon-max" mapstructure:"lon-max"`
}

// NewFeedOptions creates a new FeedOptions with default values.
func NewFeedOptions() *FeedOptions {
	return &FeedOptions{
		BaseURL:         "https://opensky-network.org/api/states/all",
		Timeout:         5 * time.Second,
		MaxResults:      100,
		ExcludeOnGround: true,
		LatMin:          24.5,
		LonMin:          -125.0,
		LatMax:          49.5,
		LonMax:          -66.5,
	}
}

// Validate is used to parse and validate the parameters entered by the user at
// the command line when the program starts.
func (o *FeedOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errs := []error{}

	if _, err := url.Parse(o.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("invalid feed base url: %w", err))
	}
	if o.MaxResults <= 0 {
		errs = append(errs, fmt.Errorf("feed max-results must be positive, got %d", o.MaxResults))
	}
	if o.LatMin >= o.LatMax || o.LonMin >= o.LonMax {
		errs = append(errs, fmt.Errorf("feed bounding box is degenerate"))
	}

	return errs
}

// AddFlags adds flags for FeedOptions to the specified FlagSet.
func (o *FeedOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.BaseURL, "feed.base-url", o.BaseURL, "Base URL of the external aircraft feed.")
	fs.DurationVar(&o.Timeout, "feed.timeout", o.Timeout, "Hard deadline for one feed request.")
	fs.IntVar(&o.MaxResults, "feed.max-results", o.MaxResults, "Maximum qualifying entries per fetch.")
	fs.BoolVar(&o.ExcludeOnGround, "feed.exclude-on-ground", o.ExcludeOnGround, "Drop aircraft reported on the ground.")
	fs.Float64Var(&o.LatMin, "feed.lat-min", o.LatMin, "Bounding box minimum latitude.")
	fs.Float64Var(&o.LonMin, "feed.lon-min", o.LonMin, "Bounding box minimum longitude.")
	fs.Float64Var(&o.LatMax, "feed.lat-max", o.LatMax, "Bounding box maximum latitude.")
	fs.Float64Var(&o.LonMax, "feed.lon-max", o.LonMax, "Bounding box maximum longitude.")
}
