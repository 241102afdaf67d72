package gelfconv

import (
	"time"
)

// LogEvent is a single record handed over by a logging framework.
// It is treated as read-only by everything in this module.
type LogEvent struct {
	// nil means there is nothing to send
	Message *string

	// seconds since the Unix epoch
	Timestamp float64

	Level      Level
	LoggerName string

	// call-site, when the framework captured it
	SourceFile *string
	SourceLine *int

	Exception  *Exception
	Properties []Property
}

type Exception struct {
	Source     *string
	Message    *string
	StackTrace *string
}

// Property is one entry of the event's ordered metadata.
// Only string values survive encoding.
type Property struct {
	Key   string
	Value any
}

func NewEvent(message string, level Level, when time.Time) LogEvent {
	return LogEvent{
		Message:   &message,
		Timestamp: EpochSeconds(when),
		Level:     level,
	}
}

// With appends a property, keeping the order in which they were added.
func (evt *LogEvent) With(key string, value any) *LogEvent {
	evt.Properties = append(evt.Properties, Property{Key: key, Value: value})
	return evt
}

// Property returns the last value stored under key.
func (evt *LogEvent) Property(key string) (any, bool) {
	for i := len(evt.Properties) - 1; i >= 0; i-- {
		if evt.Properties[i].Key == key {
			return evt.Properties[i].Value, true
		}
	}
	return nil, false
}

// EpochSeconds converts t into fractional seconds with microsecond precision,
// which is what GELF receivers expect in "timestamp".
func EpochSeconds(t time.Time) float64 {
	return float64(t.UnixMicro()) / 1e6
}
