package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"regexp"

	"github.com/nicwaller/gelfconv"
)

// Auto picks a decoder for every frame: JSON objects, YAML documents,
// NCSA access log lines, key=value lines, and plain text for anything else.
func Auto() gelfconv.DecoderPlugin {
	return &autoCodec{
		json:  Json(),
		yaml:  Yaml(),
		ncsa:  NCSACommonLog(),
		kv:    Kv(),
		plain: Plain(),
	}
}

type autoCodec struct {
	json  gelfconv.DecoderPlugin
	yaml  gelfconv.DecoderPlugin
	ncsa  gelfconv.DecoderPlugin
	kv    gelfconv.DecoderPlugin
	plain gelfconv.DecoderPlugin
}

var (
	apacheCommonLogPattern = regexp.MustCompile(`^(\S*).*\[(.*)\]\s"(\S*)\s(\S*)\s([^"]*)"\s(\S*)\s(\S*)`)
	kvPairPattern          = regexp.MustCompile(`(^|\s)[\w.@\-]+=`)
)

func (p *autoCodec) Decode(dat []byte) (gelfconv.LogEvent, error) {
	const magicNumberGzip = 0x1f8b
	const magicNumberChunkedGelf = 0x1e0f

	if len(dat) >= 2 {
		switch binary.BigEndian.Uint16(dat) {
		case magicNumberGzip:
			return gelfconv.LogEvent{}, fmt.Errorf("%w: gzip compressed input", ErrUnsupportedFormat)
		case magicNumberChunkedGelf:
			return gelfconv.LogEvent{}, fmt.Errorf("%w: chunked GELF", ErrUnsupportedFormat)
		}
	}

	trimmed := bytes.TrimSpace(dat)
	switch {
	case len(trimmed) == 0:
		return gelfconv.LogEvent{}, fmt.Errorf("%w: empty frame", ErrUnsupportedFormat)
	case trimmed[0] == '{':
		return p.json.Decode(trimmed)
	case bytes.HasPrefix(trimmed, []byte("---")):
		return p.yaml.Decode(trimmed)
	case apacheCommonLogPattern.Match(trimmed):
		return p.ncsa.Decode(trimmed)
	case kvPairPattern.Match(trimmed):
		return p.kv.Decode(trimmed)
	default:
		return p.plain.Decode(trimmed)
	}
}

// ByName returns the decoder registered under name.
func ByName(name string) (gelfconv.DecoderPlugin, error) {
	switch name {
	case "", "auto":
		return Auto(), nil
	case "json":
		return Json(), nil
	case "yaml":
		return Yaml(), nil
	case "kv", "logfmt":
		return Kv(), nil
	case "plain":
		return Plain(), nil
	case "ncsa":
		return NCSACommonLog(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}
