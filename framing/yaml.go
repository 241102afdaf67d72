package framing

import (
	"bytes"
	"context"
	"io"

	"github.com/nicwaller/gelfconv"
)

// Yaml splits a multi-document YAML stream on "---" lines.
// Each frame keeps its own leading separator.
//
//goland:noinspection GoUnusedExportedFunction
func Yaml() gelfconv.FramingPlugin {
	return &yamlFraming{}
}

type yamlFraming struct{}

func (p *yamlFraming) Extract(ctx context.Context, input io.Reader, output chan<- []byte) error {
	return scanFrames(ctx, input, output, scanYaml)
}

var yamlSeparator = []byte("\n---")

// for use with bufio.Scanner .Split()
func scanYaml(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	// skip the first byte so a separator at the very start is not a frame of its own
	const offset = 1
	if len(data) > offset {
		if i := bytes.Index(data[offset:], yamlSeparator); i >= 0 {
			end := i + offset + 1 // the newline stays with the current document
			return end, data[:end], nil
		}
	}
	// If we're at EOF, we have a final, non-terminated document. Return it.
	if atEOF {
		return len(data), data, nil
	}
	// Request more data.
	return 0, nil, nil
}
