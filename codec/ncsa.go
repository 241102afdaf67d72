package codec

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nicwaller/gelfconv"
)

// NCSA Common Log format, optionally followed by referrer and user agent
// (the "combined" format)
// https://en.wikipedia.org/wiki/Common_Log_Format
//
// The request line becomes the message. Responses with status 5xx are
// errors, 4xx are warnings, everything else is info. All properties are
// strings so that they survive GELF encoding.
func NCSACommonLog() gelfconv.DecoderPlugin {
	return &ncsaCommonLog{}
}

type ncsaCommonLog struct{}

const ncsaTimeLayout = "02/Jan/2006:15:04:05 -0700"

func (p *ncsaCommonLog) Decode(dat []byte) (gelfconv.LogEvent, error) {
	s := bufio.NewScanner(bytes.NewReader(bytes.TrimSpace(dat)))
	s.Split(splitNcsa)

	var fields []string
	for s.Scan() {
		fields = append(fields, s.Text())
	}
	if err := s.Err(); err != nil {
		return gelfconv.LogEvent{}, fmt.Errorf("ncsa codec: %w", err)
	}
	if len(fields) < 7 {
		return gelfconv.LogEvent{}, fmt.Errorf("ncsa codec: expected at least 7 fields, got %d", len(fields))
	}
	host, identUser, authUser, datestamp, request, status, size := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5], fields[6]

	when, err := time.Parse(ncsaTimeLayout, datestamp)
	if err != nil {
		return gelfconv.LogEvent{}, fmt.Errorf("ncsa codec: bad timestamp %q", datestamp)
	}

	var b eventBuilder
	b.evt.Message = &request
	b.evt.Timestamp = gelfconv.EpochSeconds(when)
	b.hasTimestamp = true
	b.evt.Level = ncsaLevel(status)
	b.hasLevel = true

	method, rest, _ := strings.Cut(request, " ")
	path, proto, _ := strings.Cut(rest, " ")
	_, httpVersion, _ := strings.Cut(proto, "/")

	add := func(key, value string) {
		// "-" is how the format spells "not available"
		if value != "" && value != "-" {
			b.evt.Properties = append(b.evt.Properties, gelfconv.Property{Key: key, Value: value})
		}
	}
	add("client_ip", host)
	add("ident", identUser)
	add("user_name", authUser)
	add("http_method", method)
	add("url_path", path)
	add("http_version", httpVersion)
	add("http_status_code", status)
	add("bytes", size)
	if len(fields) >= 9 {
		add("http_referrer", fields[7])
		add("user_agent", fields[8])
	}

	return b.finish(), nil
}

func ncsaLevel(status string) gelfconv.Level {
	code, err := strconv.Atoi(status)
	switch {
	case err != nil:
		return gelfconv.LevelInfo
	case code >= 500:
		return gelfconv.LevelError
	case code >= 400:
		return gelfconv.LevelWarn
	default:
		return gelfconv.LevelInfo
	}
}

var (
	splitNcsa = func(data []byte, atEOF bool) (advance int, token []byte, err error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}
		if data[0] == '[' {
			if i := bytes.IndexByte(data, ']'); i >= 0 {
				return min(i+2, len(data)), data[1:i], nil
			}
			if atEOF {
				return 0, nil, fmt.Errorf("unterminated [")
			}
			return 0, nil, nil
		}
		if data[0] == '"' {
			offset := 1
			if i := bytes.IndexByte(data[offset:], '"'); i >= 0 {
				i += offset
				return min(i+2, len(data)), data[1:i], nil
			}
			if atEOF {
				return 0, nil, fmt.Errorf("unterminated quote")
			}
			return 0, nil, nil
		}
		if i := bytes.IndexByte(data, ' '); i >= 0 {
			return i + 1, data[0:i], nil
		}
		// If we're at EOF, we have a final, non-terminated field. Return it.
		if atEOF {
			return len(data), data, nil
		}
		// Request more data.
		return 0, nil, nil
	}
)
