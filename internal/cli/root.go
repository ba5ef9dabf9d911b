package cli

import (
	"context"
	"fmt"

	"github.com/plugboard-dev/plugboard/internal/app"
	"github.com/plugboard-dev/plugboard/internal/branding"
	"github.com/plugboard-dev/plugboard/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` hosts plugins that contribute to named extension points.
Built-in modules and plugin manifests add handlers, hooks and injector bindings;
consumers track the points and receive every contribution in order.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		return bindFlags(cmd)
	},
}

// flagKeys maps command-line flags to the config keys they override.
var flagKeys = map[string]string{
	"log-level":   config.KeyLogLevel,
	"log-format":  config.KeyLogFormat,
	"plugins-dir": config.KeyPluginsDir,
	"listen":      config.KeyListen,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("log-level", "", "Log level (debug, info, warn, error)")
	pf.String("log-format", "", "Log format (text, json)")
	pf.String("plugins-dir", "", "Directory scanned for plugin manifests")
}

// bindFlags lets the flags cmd understands override config file and
// environment values.
func bindFlags(cmd *cobra.Command) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}

// newApp builds the host from the current configuration. Logs go to the
// command's error stream so that stdout stays parseable.
func newApp(cmd *cobra.Command) (*app.App, error) {
	s := config.Current()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.New(ctx, cmd.ErrOrStderr(), &app.Config{
		PluginsDir: s.PluginsDir,
		LogLevel:   s.LogLevel,
		LogFormat:  s.LogFormat,
		Verbose:    s.Verbose,
		Version:    buildVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("starting host: %w", err)
	}
	return a, nil
}
