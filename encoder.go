package gelfconv

import (
	"errors"
	"fmt"
	"strconv"
)

const ShortMessageMaxLength = 250

// additional field names, before the "_" prefix is applied
const (
	FieldFacility         = "facility"
	FieldLine             = "line"
	FieldFile             = "file"
	FieldLoggerName       = "LoggerName"
	FieldLogLevelName     = "LogLevelName"
	FieldExceptionSource  = "ExceptionSource"
	FieldExceptionMessage = "ExceptionMessage"
	FieldStackTrace       = "StackTrace"
)

type EncoderOptions struct {
	// defaults to OSHostname
	Hostname HostnameProvider
}

// Encoder turns log events into GELF 1.1 documents.
// It holds no mutable state and is safe for concurrent use.
type Encoder struct {
	hostname HostnameProvider
}

func NewEncoder(opts EncoderOptions) *Encoder {
	if opts.Hostname == nil {
		opts.Hostname = OSHostname
	}
	return &Encoder{hostname: opts.Hostname}
}

// Encode maps evt onto a GELF document tagged with facility.
//
// An event without a message yields (nil, nil): there is nothing to send.
// Failing to resolve the host name fails the call.
func (e *Encoder) Encode(evt *LogEvent, facility string) (*Document, error) {
	if evt == nil || evt.Message == nil {
		return nil, nil
	}
	message := *evt.Message

	host, err := e.hostname()
	if err != nil {
		if !errors.Is(err, ErrHostnameUnavailable) {
			err = fmt.Errorf("%w: %w", ErrHostnameUnavailable, err)
		}
		return nil, err
	}

	doc := &Document{}
	doc.Set(FieldVersion, GelfVersion)
	doc.Set(FieldHost, host)
	doc.Set(FieldShortMessage, ShortMessage(message))
	doc.Set(FieldFullMessage, message)
	doc.Set(FieldTimestamp, evt.Timestamp)
	doc.Set(FieldLevel, evt.Level.SyslogSeverity())

	doc.AddAdditionalField(FieldFacility, facility)
	if evt.SourceLine != nil {
		doc.AddAdditionalField(FieldLine, strconv.Itoa(*evt.SourceLine))
	}
	if evt.SourceFile != nil {
		doc.AddAdditionalField(FieldFile, *evt.SourceFile)
	}
	doc.AddAdditionalField(FieldLoggerName, evt.LoggerName)
	doc.AddAdditionalField(FieldLogLevelName, evt.Level.String())

	if ex := evt.Exception; ex != nil {
		addOptional(doc, FieldExceptionSource, ex.Source)
		addOptional(doc, FieldExceptionMessage, ex.Message)
		addOptional(doc, FieldStackTrace, ex.StackTrace)
	}

	for _, prop := range evt.Properties {
		doc.AddAdditionalField(prop.Key, prop.Value)
	}

	return doc, nil
}

func addOptional(doc *Document, key string, value *string) {
	if value != nil {
		doc.AddAdditionalField(key, *value)
	}
}

// ShortMessage cuts message down to its first ShortMessageMaxLength
// characters. No attempt is made to break on a word boundary.
func ShortMessage(message string) string {
	if len(message) <= ShortMessageMaxLength {
		// fewer bytes than the limit means fewer runes too
		return message
	}
	count := 0
	for i := range message {
		if count == ShortMessageMaxLength {
			return message[:i]
		}
		count++
	}
	return message
}
