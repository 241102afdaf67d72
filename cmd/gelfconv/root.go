package main

import (
	"os"

	"github.com/nicwaller/gelfconv"
	"github.com/nicwaller/gelfconv/config"
	"github.com/spf13/cobra"
)

var root = &cobra.Command{
	Use:   "gelfconv",
	Short: "gelfconv - convert structured log events to GELF",
	Long: `gelfconv reads structured log events (JSON, YAML or key=value lines)
and writes Graylog Extended Log Format 1.1 documents, one per line.
It does not send anything over the network; pipe its output to a sender.`,
	SilenceUsage: true,
}

var configPath string

func init() {
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"YAML config file (default $GELFCONV_CONFIG)")
	root.PersistentFlags().String("log-level", "", "debug, info, warn or error")
	root.PersistentFlags().String("log-format", "", "tint, json or text")

	root.AddCommand(encodeCmd)
	root.AddCommand(validateCmd)
}

// loadConfig reads the config file, applies flags that were set explicitly
// and installs the logger.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(gelfconv.CoalesceStr(configPath, os.Getenv("GELFCONV_CONFIG")))
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	overrideString := func(name string, target *string) {
		if flags.Changed(name) {
			*target, _ = flags.GetString(name)
		}
	}
	overrideString("log-level", &cfg.Logging.Level)
	overrideString("log-format", &cfg.Logging.Format)
	overrideString("facility", &cfg.Facility)
	overrideString("hostname", &cfg.Hostname)
	overrideString("input", &cfg.Input.Codec)
	overrideString("framing", &cfg.Input.Framing)
	overrideString("metrics-textfile", &cfg.Metrics.Textfile)
	if flags.Changed("validate") {
		cfg.ValidateDocuments, _ = flags.GetBool("validate")
	}
	if flags.Changed("cache-hostname") {
		cache, _ := flags.GetBool("cache-hostname")
		cfg.CacheHostname = &cache
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, _ := cfg.LogLevel()
	setupLogging(cmd.ErrOrStderr(), cfg.Logging.Format, level)
	return cfg, nil
}
