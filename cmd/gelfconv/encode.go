package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/nicwaller/gelfconv"
	"github.com/nicwaller/gelfconv/codec"
	"github.com/nicwaller/gelfconv/config"
	"github.com/nicwaller/gelfconv/filter"
	"github.com/nicwaller/gelfconv/framing"
	"github.com/nicwaller/gelfconv/output"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Convert log events on stdin to GELF documents on stdout",
	Long: `Reads one event per frame from stdin and writes one GELF 1.1 JSON
document per line to stdout. Events without a message are skipped.

  echo 'level=warn msg="disk almost full" volume=/var' | gelfconv encode --facility billing`,
	Args: cobra.NoArgs,
	RunE: runEncode,
}

func init() {
	f := encodeCmd.Flags()
	f.String("facility", "", "GELF facility added to every document")
	f.String("hostname", "", "use this host name instead of the system host name")
	f.Bool("cache-hostname", true, "resolve the system host name only once")
	f.StringP("input", "i", "", "input codec: auto, json, yaml, kv, plain or ncsa")
	f.String("framing", "", "input framing: lines, whole, yaml or auto")
	f.Bool("validate", false, "drop documents that break GELF 1.1 payload rules")
	f.String("metrics-textfile", "", "write pipeline counters to this file when done")
	f.StringArray("set", nil, "set a property on every event (key=value, repeatable)")
	f.StringArray("remove", nil, "remove a property from every event (repeatable)")
	f.StringArray("rename", nil, "rename a property (old=new, repeatable)")
	f.String("min-level", "", "drop events below this level")
}

func runEncode(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	decoder, err := codec.ByName(cfg.Input.Codec)
	if err != nil {
		return err
	}
	framer, err := framing.ByName(cfg.Input.Framing)
	if err != nil {
		return err
	}

	filters, err := filtersFromFlags(cmd)
	if err != nil {
		return err
	}

	pipeline, err := gelfconv.NewPipeline("encode", gelfconv.PipelineOptions{
		Facility: cfg.Facility,
		Framing:  framer,
		Decoder:  decoder,
		Filters:  filters,
		Encoder:  gelfconv.NewEncoder(gelfconv.EncoderOptions{Hostname: hostnameProvider(cfg)}),
		Output:   output.Writer(output.WriterOptions{Writer: cmd.OutOrStdout()}),
		Validate: cfg.ValidateDocuments,
	})
	if err != nil {
		return err
	}

	result, err := pipeline.Run(cmd.Context(), cmd.InOrStdin())

	if cfg.Metrics.Textfile != "" {
		if werr := prometheus.WriteToTextfile(cfg.Metrics.Textfile, pipeline.Gatherer()); werr != nil {
			slog.Error("failed to write metrics textfile", "path", cfg.Metrics.Textfile, "error", werr)
		}
	}

	if err != nil {
		return err
	}
	if !result.Ok() {
		return fmt.Errorf("%d of %d events could not be converted", result.Errors+result.Invalid, result.Total)
	}
	return nil
}

// filtersFromFlags builds filters in a fixed order: rename, remove, set, min-level.
func filtersFromFlags(cmd *cobra.Command) ([]gelfconv.FilterPlugin, error) {
	flags := cmd.Flags()
	var filters []gelfconv.FilterPlugin

	renames, _ := flags.GetStringArray("rename")
	for _, assignment := range renames {
		oldKey, newKey, ok := strings.Cut(assignment, "=")
		if !ok || oldKey == "" || newKey == "" {
			return nil, fmt.Errorf("--rename expects old=new, got %q", assignment)
		}
		filters = append(filters, filter.Rename(oldKey, newKey))
	}

	removals, _ := flags.GetStringArray("remove")
	for _, key := range removals {
		filters = append(filters, filter.Remove(key))
	}

	sets, _ := flags.GetStringArray("set")
	for _, assignment := range sets {
		key, value, ok := strings.Cut(assignment, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("--set expects key=value, got %q", assignment)
		}
		filters = append(filters, filter.Replace(key, value))
	}

	if minLevel, _ := flags.GetString("min-level"); minLevel != "" {
		level, err := gelfconv.ParseLevel(minLevel)
		if err != nil {
			return nil, err
		}
		filters = append(filters, filter.MinLevel(level))
	}
	return filters, nil
}

func hostnameProvider(cfg *config.Config) gelfconv.HostnameProvider {
	if cfg.Hostname != "" {
		return gelfconv.StaticHostname(cfg.Hostname)
	}
	var provider gelfconv.HostnameProvider = gelfconv.OSHostname
	if cfg.ShouldCacheHostname() {
		provider = gelfconv.CachedHostname(provider)
	}
	return provider
}
