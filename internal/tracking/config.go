package tracking

import (
	"github.com/nexus-logistics/tracking-service/pkg/options"
)

// Config is the complete runtime configuration of the tracking server.
type Config struct {
	Http   *options.HttpOptions
	Mqtt   *options.MqttOptions
	Redis  *options.RedisOptions
	Sqlite *options.SqliteOptions
	Feed   *options.FeedOptions
}
