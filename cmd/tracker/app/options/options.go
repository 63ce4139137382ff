// Package options holds the complete option set of the tracker binary.
package options

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/nexus-logistics/tracking-service/internal/tracking"
	"github.com/nexus-logistics/tracking-service/pkg/log"
	"github.com/nexus-logistics/tracking-service/pkg/options"
)

// TrackerOptions aggregates all configurable parts of the tracker.
type TrackerOptions struct {
	Http   *options.HttpOptions   `json:"http" mapstructure:"http"`
	Mqtt   *options.MqttOptions   `json:"mqtt" mapstructure:"mqtt"`
	Redis  *options.RedisOptions  `json:"redis" mapstructure:"redis"`
	Sqlite *options.SqliteOptions `json:"sqlite" mapstructure:"sqlite"`
	Feed   *options.FeedOptions   `json:"feed" mapstructure:"feed"`
	Log    *log.Options           `json:"log" mapstructure:"log"`
}

// NewTrackerOptions returns options with all defaults applied.
func NewTrackerOptions() *TrackerOptions {
	return &TrackerOptions{
		Http:   options.NewHttpOptions(),
		Mqtt:   options.NewMqttOptions(),
		Redis:  options.NewRedisOptions(),
		Sqlite: options.NewSqliteOptions(),
		Feed:   options.NewFeedOptions(),
		Log:    log.NewOptions(),
	}
}

// AddFlags binds every option group to the command's flag set.
func (o *TrackerOptions) AddFlags(fs *pflag.FlagSet) {
	o.Http.AddFlags(fs)
	o.Mqtt.AddFlags(fs)
	o.Redis.AddFlags(fs)
	o.Sqlite.AddFlags(fs)
	o.Feed.AddFlags(fs)
	o.Log.AddFlags(fs)
}

// Complete fills in values that can only be derived at runtime.
func (o *TrackerOptions) Complete() error {
	if o.Mqtt.ClientID == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return fmt.Errorf("failed to derive mqtt client id: %w", err)
		}
		o.Mqtt.ClientID = fmt.Sprintf("tracker-%s", hostname)
	}
	return nil
}

// Validate checks all option groups and aggregates their errors.
func (o *TrackerOptions) Validate() error {
	var errs []error
	errs = append(errs, o.Http.Validate()...)
	errs = append(errs, o.Mqtt.Validate()...)
	errs = append(errs, o.Redis.Validate()...)
	errs = append(errs, o.Sqlite.Validate()...)
	errs = append(errs, o.Feed.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	return errors.Join(errs...)
}

// Config converts the options into the server configuration.
func (o *TrackerOptions) Config() *tracking.Config {
	return &tracking.Config{
		Http:   o.Http,
		Mqtt:   o.Mqtt,
		Redis:  o.Redis,
		Sqlite: o.Sqlite,
		Feed:   o.Feed,
	}
}
