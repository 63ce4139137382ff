package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nexus-logistics/tracking-service/pkg/log"
)

// RunFunc is the application's entry point after option loading succeeds.
type RunFunc func() error

// Options abstracts the option struct a command binds, completes and
// validates before running.
type Options interface {
	// AddFlags binds the options to the command's flag set.
	AddFlags(fs *pflag.FlagSet)

	// Complete fills in derived or defaulted values after flag parsing.
	Complete() error

	// Validate checks the final option values.
	Validate() error
}

// App assembles a cobra command with config-file and environment loading
// layered under the command-line flags.
type App struct {
	name        string
	short       string
	description string
	opts        Options
	run         RunFunc
	cmd         *cobra.Command

	configFile string
}

// Option configures an App.
type Option func(*App)

// WithDescription sets the long description shown in help output.
func WithDescription(desc string) Option {
	return func(a *App) { a.description = desc }
}

// WithOptions attaches the option struct the command operates on.
func WithOptions(opts Options) Option {
	return func(a *App) { a.opts = opts }
}

// WithRunFunc sets the application entry point.
func WithRunFunc(run RunFunc) Option {
	return func(a *App) { a.run = run }
}

// NewApp creates an App with the given name and short description.
func NewApp(name, short string, opts ...Option) *App {
	a := &App{
		name:  name,
		short: short,
	}
	for _, o := range opts {
		o(a)
	}

	a.cmd = a.buildCommand()
	return a
}

// Run executes the command and returns its error, if any.
func (a *App) Run() error {
	return a.cmd.Execute()
}

// Command exposes the underlying cobra command, mainly for tests.
func (a *App) Command() *cobra.Command {
	return a.cmd
}

func (a *App) buildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           a.name,
		Short:         a.short,
		Long:          a.description,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runCommand,
	}

	fs := cmd.Flags()
	fs.StringVarP(&a.configFile, "config", "c", "", "Path to the configuration file.")
	if a.opts != nil {
		a.opts.AddFlags(fs)
	}

	return cmd
}

func (a *App) runCommand(cmd *cobra.Command, args []string) error {
	if a.opts != nil {
		if err := a.loadOptions(cmd.Flags()); err != nil {
			return err
		}

		if err := a.opts.Complete(); err != nil {
			return fmt.Errorf("failed to complete options: %w", err)
		}

		if err := a.opts.Validate(); err != nil {
			return err
		}
	}

	if a.run != nil {
		return a.run()
	}
	return nil
}

// loadOptions layers the config file and environment under the parsed flags:
// explicit flags win, then env, then the file, then the struct defaults.
func (a *App) loadOptions(fs *pflag.FlagSet) error {
	v := viper.New()

	if a.configFile != "" {
		v.SetConfigFile(a.configFile)
	} else {
		v.SetConfigName(a.name)
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("/etc/%s", a.name))
	}

	v.SetEnvPrefix(strings.ReplaceAll(strings.ToUpper(a.name), "-", "_"))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// No config file found in the search path: run on flags and env.
	} else {
		log.Info("Loaded configuration file", "path", v.ConfigFileUsed())
		v.OnConfigChange(func(e fsnotify.Event) {
			log.Info("Configuration file changed; restart to apply", "path", e.Name)
		})
		v.WatchConfig()
	}

	return v.Unmarshal(a.opts)
}
