package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/nicwaller/gelfconv"
)

// Writer writes each document as one line of JSON.
func Writer(opts WriterOptions) gelfconv.OutputPlugin {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	return &writerOutput{opts: opts}
}

type WriterOptions struct {
	// defaults to os.Stdout
	Writer io.Writer
}

type writerOutput struct {
	opts WriterOptions
	mu   sync.Mutex
}

func (p *writerOutput) Run(_ context.Context, doc *gelfconv.Document) error {
	dat, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal GELF document: %w", err)
	}
	dat = append(dat, '\n')

	// one Write per document so concurrent pipelines don't interleave lines
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err = p.opts.Writer.Write(dat)
	return err
}
