package gelfconv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

const ChanBufferSize = 2

type PipelineOptions struct {
	Facility string
	Framing  FramingPlugin
	Decoder  DecoderPlugin
	Output   OutputPlugin
	Filters  []FilterPlugin

	// defaults to an encoder resolving the OS host name on every event
	Encoder *Encoder

	// run every document through Document.Validate before output
	Validate bool
}

// Pipeline reads events from a byte stream and writes them out as GELF
// documents: input -> framing -> decoder -> encoder -> output.
type Pipeline struct {
	Name     string
	opts     PipelineOptions
	registry *prometheus.Registry
	metrics  *pipelineMetrics
}

func NewPipeline(name string, opts PipelineOptions) (*Pipeline, error) {
	if opts.Framing == nil || opts.Decoder == nil || opts.Output == nil {
		return nil, errors.New("pipeline needs framing, decoder and output plugins")
	}
	if opts.Encoder == nil {
		opts.Encoder = NewEncoder(EncoderOptions{})
	}
	registry := prometheus.NewRegistry()
	metrics, err := newPipelineMetrics(registry, name)
	if err != nil {
		return nil, fmt.Errorf("failed to register pipeline metrics: %w", err)
	}
	return &Pipeline{
		Name:     name,
		opts:     opts,
		registry: registry,
		metrics:  metrics,
	}, nil
}

// Gatherer exposes the pipeline counters.
func (p *Pipeline) Gatherer() prometheus.Gatherer {
	return p.registry
}

type PipelineResult struct {
	Total   int
	Success int
	Skipped int
	Invalid int
	Errors  int
	Start   time.Time
	Finish  time.Time
}

func (r *PipelineResult) Ok() bool {
	return r.Errors == 0 && r.Invalid == 0
}

func (r *PipelineResult) Summary() string {
	return fmt.Sprintf("Ok=%t Total=%d Success=%d Skipped=%d Invalid=%d Errors=%d",
		r.Ok(), r.Total, r.Success, r.Skipped, r.Invalid, r.Errors)
}

// Run consumes input until it is exhausted or ctx is cancelled.
// Frames that fail to decode, encode or validate are counted and skipped;
// an output failure stops the pipeline.
func (p *Pipeline) Run(ctx context.Context, input io.Reader) (*PipelineResult, error) {
	ctx = context.WithValue(ctx, ContextKeyPipelineName, p.Name)
	ctx = context.WithValue(ctx, ContextKeyFacility, p.opts.Facility)
	log := ContextLogger(ctx)

	result := &PipelineResult{Start: time.Now()}
	frames := make(chan []byte, ChanBufferSize)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fctx := context.WithValue(gctx, ContextKeyPluginType, "framing")
		return p.opts.Framing.Extract(fctx, input, frames)
	})
	g.Go(func() error {
		return PumpToFunction(gctx, frames, func(frame []byte) error {
			return p.handle(gctx, frame, result)
		})
	})
	err := g.Wait()

	result.Finish = time.Now()
	log.Info("pipeline finished", "summary", result.Summary(), "duration", result.Finish.Sub(result.Start))
	return result, err
}

func (p *Pipeline) handle(ctx context.Context, frame []byte, result *PipelineResult) error {
	if len(bytes.TrimSpace(frame)) == 0 {
		return nil
	}
	log := ContextLogger(ctx)
	result.Total++
	p.metrics.frames.Inc()

	evt, err := p.opts.Decoder.Decode(frame)
	if err != nil {
		result.Errors++
		p.metrics.decodeErrors.Inc()
		log.Warn("failed to decode event", "error", err)
		return nil
	}

	dropped := false
	for _, filter := range p.opts.Filters {
		if err := filter(&evt, func() { dropped = true }); err != nil {
			result.Errors++
			p.metrics.filterErrors.Inc()
			log.Warn("filter failed", "error", err)
			return nil
		}
		if dropped {
			result.Skipped++
			p.metrics.skipped.Inc()
			log.Debug("event dropped by filter")
			return nil
		}
	}

	doc, err := p.opts.Encoder.Encode(&evt, p.opts.Facility)
	if err != nil {
		result.Errors++
		p.metrics.encodeErrors.Inc()
		log.Error("failed to encode event", "error", err)
		return nil
	}
	if doc == nil {
		result.Skipped++
		p.metrics.skipped.Inc()
		log.Debug("event has no message; skipping")
		return nil
	}

	if dropped := countDroppedProperties(&evt); dropped > 0 {
		p.metrics.droppedFields.Add(float64(dropped))
		log.Debug("dropped properties without string values", "count", dropped)
	}

	if p.opts.Validate {
		if err := doc.Validate(); err != nil {
			result.Invalid++
			p.metrics.invalid.Inc()
			log.Warn("rejected GELF document", "error", err)
			return nil
		}
	}

	if err := p.opts.Output.Run(ctx, doc); err != nil {
		return fmt.Errorf("output failed: %w", err)
	}
	result.Success++
	p.metrics.encoded.Inc()
	return nil
}

func countDroppedProperties(evt *LogEvent) int {
	dropped := 0
	for _, prop := range evt.Properties {
		if _, ok := prop.Value.(string); !ok {
			dropped++
		}
	}
	return dropped
}
