package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nicwaller/gelfconv"
)

// simple key/value pairs on a single line
// example:
//
//	ts=2023-10-15T21:27:56Z level=warn msg="disk almost full" volume=/var
//
// Quoted values are strings. Unquoted integers become ints, which the GELF
// encoder then drops, so quote any number that must reach the receiver.
// A bare word without "=" is a flag set to true.
//
// See also:
//   - Logstash calls this "kv"
//     https://www.elastic.co/guide/en/logstash/current/plugins-filters-kv.html
//   - Fluentd/Fluentbit calls this "logfmt"
//     https://docs.fluentbit.io/manual/pipeline/parsers/logfmt
func Kv() gelfconv.DecoderPlugin {
	return &kvCodec{}
}

type kvCodec struct{}

func (p *kvCodec) Decode(dat []byte) (gelfconv.LogEvent, error) {
	pairs, err := splitKv(string(dat))
	if err != nil {
		return gelfconv.LogEvent{}, fmt.Errorf("kv codec: %w", err)
	}
	if len(pairs) == 0 {
		return gelfconv.LogEvent{}, fmt.Errorf("kv codec: no fields found")
	}
	var b eventBuilder
	for _, pair := range pairs {
		if err := b.set(pair.Key, pair.Value); err != nil {
			return gelfconv.LogEvent{}, fmt.Errorf("kv codec: %w", err)
		}
	}
	return b.finish(), nil
}

func splitKv(line string) ([]gelfconv.Property, error) {
	var pairs []gelfconv.Property
	i := 0
	for i < len(line) {
		// is there a better way to .split ignoring repeating delimiters in Go?
		if line[i] == ' ' || line[i] == '\t' || line[i] == '\r' || line[i] == '\n' {
			i++
			continue
		}

		start := i
		for i < len(line) && line[i] != '=' && line[i] != ' ' && line[i] != '\t' {
			i++
		}
		key := line[start:i]
		if i >= len(line) || line[i] != '=' {
			pairs = append(pairs, gelfconv.Property{Key: key, Value: true})
			continue
		}
		i++ // skip '='

		if i < len(line) && line[i] == '"' {
			value, n, err := unquote(line[i:])
			if err != nil {
				return nil, fmt.Errorf("value of %q: %w", key, err)
			}
			i += n
			pairs = append(pairs, gelfconv.Property{Key: key, Value: value})
			continue
		}

		start = i
		for i < len(line) && line[i] != ' ' && line[i] != '\t' {
			i++
		}
		raw := line[start:i]
		if intVal, err := strconv.Atoi(raw); err == nil {
			pairs = append(pairs, gelfconv.Property{Key: key, Value: intVal})
		} else {
			pairs = append(pairs, gelfconv.Property{Key: key, Value: raw})
		}
	}
	return pairs, nil
}

// unquote reads a double-quoted value from the start of s and returns it
// along with the number of bytes consumed. Only \" and \\ are escapes.
func unquote(s string) (string, int, error) {
	var sb strings.Builder
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
				sb.WriteByte(s[i+1])
				i++
			} else {
				sb.WriteByte('\\')
			}
		case '"':
			return sb.String(), i + 1, nil
		default:
			sb.WriteByte(s[i])
		}
	}
	return "", 0, fmt.Errorf("unterminated quoted string")
}
