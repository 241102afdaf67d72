package framing

import (
	"context"
	"fmt"
	"io"

	"github.com/nicwaller/gelfconv"
)

//goland:noinspection GoUnusedExportedFunction
func Whole() gelfconv.FramingPlugin {
	return &whole{}
}

type whole struct{}

// Reads as much as possible and treats it as a single message
// It's the "no-op" of framing styles
func (p *whole) Extract(ctx context.Context, input io.Reader, output chan<- []byte) error {
	defer close(output)
	frame, err := io.ReadAll(io.LimitReader(input, gelfconv.MaxFrameSize+1))
	if err != nil {
		return err
	}
	if len(frame) > gelfconv.MaxFrameSize {
		return fmt.Errorf("input exceeds MaxFrameSize (%d bytes)", gelfconv.MaxFrameSize)
	}
	select {
	case output <- frame:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
