package framing

import (
	"bufio"
	"bytes"
	"context"
	"io"

	"github.com/nicwaller/gelfconv"
)

//goland:noinspection GoUnusedExportedFunction
func Lines() gelfconv.FramingPlugin {
	return &lines{}
}

type lines struct{}

func (p *lines) Extract(ctx context.Context, input io.Reader, output chan<- []byte) error {
	return scanFrames(ctx, input, output, bufio.ScanLines)
}

// scanFrames is shared by every framing built on bufio.Scanner
func scanFrames(ctx context.Context, input io.Reader, output chan<- []byte, split bufio.SplitFunc) error {
	defer close(output)
	log := gelfconv.ContextLogger(ctx)

	s := bufio.NewScanner(input)
	s.Buffer(make([]byte, 0, 64*1024), gelfconv.MaxFrameSize)
	s.Split(split)
	count := 0
	for s.Scan() {
		// why copy the frame? the scanner reuses its buffer for the next token
		frame := bytes.Clone(s.Bytes())
		select {
		case output <- frame:
			count++
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	log.Debug("framing reached end of input", "count", count)
	return s.Err()
}
