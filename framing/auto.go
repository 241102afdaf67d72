package framing

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nicwaller/gelfconv"
)

// Auto peeks at the start of the stream and picks yaml, lines or whole
// framing. Compressed and chunked GELF input is refused.
//
//goland:noinspection GoUnusedExportedFunction
func Auto() gelfconv.FramingPlugin {
	return &autoFraming{}
}

type autoFraming struct{}

// need to read enough to find index of the first \n in most cases
const peekSize = 240

func (p *autoFraming) Extract(ctx context.Context, rawInput io.Reader, output chan<- []byte) error {
	log := gelfconv.ContextLogger(ctx)

	input := bufio.NewReaderSize(rawInput, peekSize)
	peek, err := input.Peek(peekSize)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		close(output)
		return err
	}

	mode := detectFramingMode(peek)
	log.Debug("auto framing selected mode", "mode", mode)

	switch mode {
	case yamlFramingMode:
		return scanFrames(ctx, input, output, scanYaml)
	case linesFramingMode:
		return scanFrames(ctx, input, output, bufio.ScanLines)
	case wholeFramingMode:
		return (&whole{}).Extract(ctx, input, output)
	case gzipFramingMode:
		close(output)
		return errors.New("auto framing doesn't support compressed input")
	case chunkedGelfFramingMode:
		close(output)
		return errors.New("auto framing doesn't support chunked GELF")
	default:
		close(output)
		return fmt.Errorf("unknown framing mode %q", mode)
	}
}

type autoFramingMode string

const (
	wholeFramingMode       autoFramingMode = "whole"
	linesFramingMode       autoFramingMode = "lines"
	yamlFramingMode        autoFramingMode = "yaml"
	gzipFramingMode        autoFramingMode = "gzip"
	chunkedGelfFramingMode autoFramingMode = "chunked-gelf"
)

func detectFramingMode(peek []byte) autoFramingMode {
	switch {
	case bytes.HasPrefix(peek, []byte("---")):
		return yamlFramingMode
	case bytes.HasPrefix(peek, []byte{0x1f, 0x8b}):
		return gzipFramingMode
	case bytes.HasPrefix(peek, []byte{0x1e, 0x0f}):
		return chunkedGelfFramingMode
	case len(peek) > 0 && peek[0] == '{':
		// json-lines is a common pattern
		return linesFramingMode
	case bytes.IndexByte(peek, '\n') >= 0:
		return linesFramingMode
	case len(peek) < peekSize:
		// a short stream without a newline is a single line anyway
		return linesFramingMode
	default:
		return wholeFramingMode
	}
}
