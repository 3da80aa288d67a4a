package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/microsoft/retina-site/internal/docsite/config"
	"github.com/microsoft/retina-site/internal/docsite/logger"
	"github.com/microsoft/retina-site/internal/docsite/plugin"
)

// envPrefix scopes the environment variables that override flags, for
// example RETINA_SITE_LOG_LEVEL.
const envPrefix = "RETINA_SITE"

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "retina-site",
		Short:         "Build and preview the Retina documentation site",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "retina.yaml", "Site descriptor file (YAML, JSON or TOML)")
	cmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().String("log-format", "console", "Log format: console or json")
	_ = v.BindPFlags(cmd.PersistentFlags())

	cmd.AddCommand(newBuildCmd(v))
	cmd.AddCommand(newServeCmd(v))
	cmd.AddCommand(newCheckCmd(v))
	cmd.AddCommand(newConfigCmd(v))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// newLogger builds the command logger. Logs go to stderr so stdout stays
// clean for reports.
func newLogger(v *viper.Viper, w io.Writer) (*logger.Logger, error) {
	format := v.GetString("log-format")
	if format != "console" && format != "json" {
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return logger.New(logger.Options{
		Level:         v.GetString("log-level"),
		HumanReadable: format == "console",
		Writer:        w,
	})
}

// loadDescriptor loads and validates the descriptor, resolving plugins
// against the built-in registry.
func loadDescriptor(v *viper.Viper) (*config.SiteDescriptor, *plugin.Registry, error) {
	path := strings.TrimSpace(v.GetString("config"))
	if path == "" {
		return nil, nil, fmt.Errorf("config file is required")
	}
	registry := plugin.Default()
	d, err := config.Load(path, registry)
	if err != nil {
		return nil, nil, err
	}
	return d, registry, nil
}
