package codec

import (
	"fmt"

	"github.com/nicwaller/gelfconv"
	"github.com/valyala/fastjson"
)

// Json decodes one JSON object per frame, for example:
//
//	{"message": "disk full", "level": "error", "logger": "app.storage",
//	 "timestamp": 1385053862.3072, "properties": {"volume": "/var"}}
//
// Properties keep the order they have in the input.
func Json() gelfconv.DecoderPlugin {
	return &jsonCodec{}
}

type jsonCodec struct {
	parsers fastjson.ParserPool
}

func (p *jsonCodec) Decode(dat []byte) (gelfconv.LogEvent, error) {
	parser := p.parsers.Get()
	defer p.parsers.Put(parser)

	v, err := parser.ParseBytes(dat)
	if err != nil {
		return gelfconv.LogEvent{}, fmt.Errorf("json codec: %w", err)
	}
	obj, err := v.Object()
	if err != nil {
		return gelfconv.LogEvent{}, fmt.Errorf("json codec: expected an object, got %s", v.Type())
	}

	var b eventBuilder
	var failed error
	obj.Visit(func(key []byte, v *fastjson.Value) {
		if failed != nil {
			return
		}
		failed = b.set(string(key), jsonValue(v))
	})
	if failed != nil {
		return gelfconv.LogEvent{}, fmt.Errorf("json codec: %w", failed)
	}
	return b.finish(), nil
}

// values must not reference parser memory once it goes back to the pool
func jsonValue(v *fastjson.Value) any {
	switch v.Type() {
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeNumber:
		if i, err := v.Int64(); err == nil {
			return i
		}
		return v.GetFloat64()
	case fastjson.TypeTrue:
		return true
	case fastjson.TypeFalse:
		return false
	case fastjson.TypeObject:
		obj := v.GetObject()
		fields := make([]gelfconv.Property, 0, obj.Len())
		obj.Visit(func(key []byte, v *fastjson.Value) {
			fields = append(fields, gelfconv.Property{Key: string(key), Value: jsonValue(v)})
		})
		return fields
	case fastjson.TypeArray:
		items := v.GetArray()
		list := make([]any, 0, len(items))
		for _, item := range items {
			list = append(list, jsonValue(item))
		}
		return list
	default:
		return nil
	}
}
