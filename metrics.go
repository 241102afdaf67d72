package gelfconv

import (
	"github.com/prometheus/client_golang/prometheus"
)

type pipelineMetrics struct {
	frames        prometheus.Counter
	encoded       prometheus.Counter
	skipped       prometheus.Counter
	decodeErrors  prometheus.Counter
	encodeErrors  prometheus.Counter
	filterErrors  prometheus.Counter
	invalid       prometheus.Counter
	droppedFields prometheus.Counter
}

func newPipelineMetrics(reg prometheus.Registerer, pipeline string) (*pipelineMetrics, error) {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "gelfconv",
			Subsystem:   "pipeline",
			Name:        name,
			Help:        help,
			ConstLabels: prometheus.Labels{"pipeline": pipeline},
		})
	}
	m := &pipelineMetrics{
		frames:        counter("frames_total", "Frames read from the input."),
		encoded:       counter("events_encoded_total", "Events written out as GELF documents."),
		skipped:       counter("events_skipped_total", "Events without a message or dropped by a filter."),
		decodeErrors:  counter("decode_errors_total", "Frames that could not be decoded into an event."),
		encodeErrors:  counter("encode_errors_total", "Events that could not be encoded."),
		filterErrors:  counter("filter_errors_total", "Events skipped because a filter failed."),
		invalid:       counter("invalid_documents_total", "Documents rejected by GELF validation."),
		droppedFields: counter("dropped_fields_total", "Event properties dropped for not being strings."),
	}
	for _, c := range []prometheus.Collector{
		m.frames, m.encoded, m.skipped, m.decodeErrors, m.encodeErrors, m.filterErrors, m.invalid, m.droppedFields,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}
