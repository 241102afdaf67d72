package gelfconv

import (
	"context"
	"io"
)

// MaxFrameSize bounds a single framed event.
const MaxFrameSize = 1024 * 1024

// DecoderPlugin turns one frame of input into a log event.
type DecoderPlugin interface {
	Decode([]byte) (LogEvent, error)
}

// FramingPlugin cuts a byte stream into frames. Implementations must close
// output when they return.
type FramingPlugin interface {
	Extract(ctx context.Context, input io.Reader, output chan<- []byte) error
}

type OutputPlugin interface {
	Run(context.Context, *Document) error
}

// FilterPlugin may modify an event before it is encoded, or call drop to
// discard it.
type FilterPlugin func(evt *LogEvent, drop func()) error
