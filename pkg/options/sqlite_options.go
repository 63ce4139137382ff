package options

import (
	"errors"

	"github.com/spf13/pflag"
)

var _ IOptions = (*SqliteOptions)(nil)

// SqliteOptions contains configuration for the history store database.
type SqliteOptions struct {
	// Path to the database file. ":memory:" is accepted for tests.
	Path string `json:"path" mapstructure:"path"`
}

// NewSqliteOptions creates a new SqliteOptions with default values.
func NewSqliteOptions() *SqliteOptions {
	return &SqliteOptions{
		Path: "tracking.db",
	}
}

// Validate is used to parse and validate the parameters entered by the user at
// the command line when the program starts.
func (o *SqliteOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errs := []error{}

	if o.Path == "" {
		errs = append(errs, errors.New("sqlite path is required"))
	}

	return errs
}

// AddFlags adds flags for SqliteOptions to the specified FlagSet.
func (o *SqliteOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.Path, "sqlite.path", o.Path, "Path to the history store database file.")
}
