package codec

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/nicwaller/gelfconv"
)

var ErrUnsupportedFormat = errors.New("unsupported input format")

// replaced in tests
var now = time.Now

// eventBuilder collects decoded key/value pairs into a LogEvent.
// Every decoder produces the same value shapes: string, int, int64,
// float64, bool, nil, time.Time, []any for lists and []gelfconv.Property
// for objects (which keeps their key order).
type eventBuilder struct {
	evt          gelfconv.LogEvent
	hasTimestamp bool
	hasLevel     bool
}

var timestampKeys = []string{"timestamp", "ts", "time", "@timestamp"}

func isTimestampKey(key string) bool {
	return slices.Contains(timestampKeys, strings.ToLower(key))
}

func (b *eventBuilder) set(key string, value any) error {
	switch strings.ToLower(key) {
	case "message", "msg":
		if value == nil {
			return nil
		}
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("[%s] must be a string, got %T", key, value)
		}
		b.evt.Message = &s
	case "timestamp", "ts", "time", "@timestamp":
		ts, err := epochSeconds(value)
		if err != nil {
			return fmt.Errorf("[%s]: %w", key, err)
		}
		b.evt.Timestamp = ts
		b.hasTimestamp = true
	case "level", "severity":
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("[%s] must be a level name, got %T", key, value)
		}
		level, err := gelfconv.ParseLevel(s)
		if err != nil {
			return err
		}
		b.evt.Level = level
		b.hasLevel = true
	case "logger", "logger_name", "loggername":
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("[%s] must be a string, got %T", key, value)
		}
		b.evt.LoggerName = s
	case "file", "source_file":
		if s, ok := value.(string); ok {
			b.evt.SourceFile = &s
		}
	case "line", "source_line":
		line, err := lineNumber(value)
		if err != nil {
			return fmt.Errorf("[%s]: %w", key, err)
		}
		b.evt.SourceLine = &line
	case "exception":
		if value == nil {
			return nil
		}
		fields, ok := value.([]gelfconv.Property)
		if !ok {
			return fmt.Errorf("[%s] must be an object, got %T", key, value)
		}
		b.evt.Exception = exception(fields)
	case "properties", "fields":
		fields, ok := value.([]gelfconv.Property)
		if !ok {
			return fmt.Errorf("[%s] must be an object, got %T", key, value)
		}
		b.evt.Properties = append(b.evt.Properties, fields...)
	default:
		b.evt.Properties = append(b.evt.Properties, gelfconv.Property{Key: key, Value: value})
	}
	return nil
}

func (b *eventBuilder) finish() gelfconv.LogEvent {
	if !b.hasTimestamp {
		b.evt.Timestamp = gelfconv.EpochSeconds(now())
	}
	if !b.hasLevel {
		b.evt.Level = gelfconv.LevelInfo
	}
	return b.evt
}

func epochSeconds(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case time.Time:
		return gelfconv.EpochSeconds(v), nil
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, nil
		}
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return gelfconv.EpochSeconds(t), nil
		}
		if t, ok := parseYamlTimestamp(v); ok {
			return gelfconv.EpochSeconds(t), nil
		}
		return 0, fmt.Errorf("expected epoch seconds or RFC3339 time, got %q", v)
	default:
		return 0, fmt.Errorf("expected epoch seconds or RFC3339 time, got %T", value)
	}
}

// YAML 1.1 timestamps, e.g. "2001-12-14 21:59:43.10 -5"
// https://yaml.org/type/timestamp.html
var yamlTimestampPattern = regexp.MustCompile(
	`^(\d{4})-(\d{1,2})-(\d{1,2})(?:(?:[Tt]|[ \t]+)(\d{1,2}):(\d{2}):(\d{2})(\.\d+)?[ \t]*(Z|[-+]\d{1,2}(?::?\d{2})?)?)?$`)

func parseYamlTimestamp(s string) (time.Time, bool) {
	m := yamlTimestampPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, false
	}
	atoi := func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	}
	var nanos int
	if m[7] != "" {
		frac := (m[7][1:] + "000000000")[:9]
		nanos = atoi(frac)
	}
	loc := time.UTC
	if zone := m[8]; zone != "" && zone != "Z" {
		sign, digits := 1, strings.ReplaceAll(zone[1:], ":", "")
		if zone[0] == '-' {
			sign = -1
		}
		// one or two hour digits, optionally followed by two minute digits
		hours, minutes := digits, "0"
		if len(digits) > 2 {
			hours, minutes = digits[:len(digits)-2], digits[len(digits)-2:]
		}
		loc = time.FixedZone("", sign*(atoi(hours)*3600+atoi(minutes)*60))
	}
	t := time.Date(atoi(m[1]), time.Month(atoi(m[2])), atoi(m[3]),
		atoi(m[4]), atoi(m[5]), atoi(m[6]), nanos, loc)
	return t, true
}

func lineNumber(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("line number %v is not an integer", v)
		}
		return int(v), nil
	case string:
		return strconv.Atoi(v)
	default:
		return 0, fmt.Errorf("expected a line number, got %T", value)
	}
}

func exception(fields []gelfconv.Property) *gelfconv.Exception {
	var ex gelfconv.Exception
	for _, f := range fields {
		s, ok := f.Value.(string)
		if !ok {
			continue
		}
		switch strings.ToLower(f.Key) {
		case "source":
			ex.Source = &s
		case "message":
			ex.Message = &s
		case "stack_trace", "stacktrace":
			ex.StackTrace = &s
		}
	}
	return &ex
}
