package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/nicwaller/gelfconv"
	"github.com/nicwaller/gelfconv/framing"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check GELF documents on stdin, one per line",
	Long: `Reads GELF JSON documents from stdin, one per line, and reports every
line that breaks the GELF 1.1 payload rules. Exits non-zero if any does.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if _, err := loadConfig(cmd); err != nil {
		return err
	}
	checked, invalid, err := validateStream(cmd.Context(), cmd.InOrStdin(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	slog.Info("validation finished", "checked", checked, "invalid", invalid)
	if invalid > 0 {
		return fmt.Errorf("%d of %d documents are invalid", invalid, checked)
	}
	return nil
}

func validateStream(ctx context.Context, input io.Reader, report io.Writer) (checked, invalid int, err error) {
	ctx = context.WithValue(ctx, gelfconv.ContextKeyPipelineName, "validate")
	frames := make(chan []byte, gelfconv.ChanBufferSize)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return framing.Lines().Extract(gctx, input, frames)
	})
	g.Go(func() error {
		line := 0
		return gelfconv.PumpToFunction(gctx, frames, func(frame []byte) error {
			line++
			if len(frame) == 0 {
				return nil
			}
			checked++
			doc, err := gelfconv.ParseDocument(frame)
			if err == nil {
				err = doc.Validate()
			}
			if err != nil {
				invalid++
				_, werr := fmt.Fprintf(report, "line %d: %v\n", line, err)
				return werr
			}
			return nil
		})
	})
	err = g.Wait()
	return checked, invalid, err
}
