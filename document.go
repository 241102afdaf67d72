package gelfconv

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const GelfVersion = "1.1"

const (
	FieldVersion      = "version"
	FieldHost         = "host"
	FieldShortMessage = "short_message"
	FieldFullMessage  = "full_message"
	FieldTimestamp    = "timestamp"
	FieldLevel        = "level"
)

var ErrInvalidDocument = errors.New("invalid GELF document")

// Document is a GELF message: a JSON object whose keys keep the order in
// which they were first set. The fixed GELF fields have typed accessors,
// everything else is an additional field.
//
// Setting a key that already exists overwrites the value in place.
type Document struct {
	keys   []string
	values map[string]any
}

func (d *Document) Set(key string, value any) {
	if d.values == nil {
		d.values = make(map[string]any)
	}
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

func (d *Document) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

func (d *Document) Len() int {
	return len(d.keys)
}

// Keys returns the document keys in output order.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.keys))
	copy(keys, d.keys)
	return keys
}

// AdditionalFields returns the "_"-prefixed fields in output order.
func (d *Document) AdditionalFields() []Property {
	fields := make([]Property, 0, len(d.keys))
	for _, k := range d.keys {
		if strings.HasPrefix(k, "_") {
			fields = append(fields, Property{Key: k, Value: d.values[k]})
		}
	}
	return fields
}

func (d *Document) Version() string      { return d.getString(FieldVersion) }
func (d *Document) Host() string         { return d.getString(FieldHost) }
func (d *Document) ShortMessage() string { return d.getString(FieldShortMessage) }
func (d *Document) FullMessage() string  { return d.getString(FieldFullMessage) }

func (d *Document) Timestamp() float64 {
	f, _ := toFloat(d.values[FieldTimestamp])
	return f
}

func (d *Document) Level() int {
	f, _ := toFloat(d.values[FieldLevel])
	return int(f)
}

func (d *Document) getString(key string) string {
	s, _ := d.values[key].(string)
	return s
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSON(&buf, d.values[k]); err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// log messages are full of <, > and &; leave them readable
func writeJSON(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode always terminates with a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}

func (d *Document) UnmarshalJSON(data []byte) error {
	parsed, err := ParseDocument(data)
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}

var additionalFieldPattern = regexp.MustCompile(`^_[\w.\-]*$`)

var fixedFields = map[string]bool{
	FieldVersion:      true,
	FieldHost:         true,
	FieldShortMessage: true,
	FieldFullMessage:  true,
	FieldTimestamp:    true,
	FieldLevel:        true,
}

// Validate checks the document against the GELF 1.1 payload rules.
// It reports every problem found, not just the first.
//
// See https://go2docs.graylog.org/current/getting_in_log_data/gelf.html
func (d *Document) Validate() error {
	var problems []error

	if v := d.Version(); v != GelfVersion {
		problems = append(problems, fmt.Errorf("version must be %q, got %q", GelfVersion, v))
	}
	if d.Host() == "" {
		problems = append(problems, errors.New("host must be a non-empty string"))
	}
	if d.ShortMessage() == "" {
		problems = append(problems, errors.New("short_message must be a non-empty string"))
	}
	if v, ok := d.values[FieldTimestamp]; ok {
		if _, isNumber := toFloat(v); !isNumber {
			problems = append(problems, errors.New("timestamp must be a number"))
		}
	}
	if v, ok := d.values[FieldLevel]; ok {
		if f, isNumber := toFloat(v); !isNumber || f < 0 || f > 7 || f != float64(int(f)) {
			problems = append(problems, fmt.Errorf("level must be an integer between 0 and 7, got %v", v))
		}
	}

	for _, k := range d.keys {
		if fixedFields[k] {
			continue
		}
		switch {
		case k == "_id":
			problems = append(problems, errors.New("additional field _id is reserved"))
		case !additionalFieldPattern.MatchString(k):
			problems = append(problems, fmt.Errorf("field %q is not a valid additional field name", k))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, errors.Join(problems...))
	}
	return nil
}
