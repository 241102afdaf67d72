package gelfconv

import (
	"encoding/json"
	"fmt"

	"github.com/valyala/fastjson"
)

var documentParsers fastjson.ParserPool

// ParseDocument reads a GELF JSON object, keeping its key order.
// A key repeated in the input keeps its first position and its last value.
func ParseDocument(data []byte) (*Document, error) {
	p := documentParsers.Get()
	defer documentParsers.Put(p)

	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	obj, err := v.Object()
	if err != nil {
		return nil, fmt.Errorf("%w: expected a JSON object, got %s", ErrInvalidDocument, v.Type())
	}

	doc := &Document{}
	obj.Visit(func(key []byte, v *fastjson.Value) {
		doc.Set(string(key), plainValue(v))
	})
	return doc, nil
}

// the parser owns v, so everything returned here must be a copy
func plainValue(v *fastjson.Value) any {
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
	case fastjson.TypeNull:
		return nil
	default:
		return json.RawMessage(v.MarshalTo(nil))
	}
}
