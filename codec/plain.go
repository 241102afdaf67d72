package codec

import (
	"strings"

	"github.com/nicwaller/gelfconv"
)

// Plain takes the whole frame as the message of an Info event.
//
//goland:noinspection GoUnusedExportedFunction
func Plain() gelfconv.DecoderPlugin {
	return &plainCodec{}
}

type plainCodec struct{}

func (p *plainCodec) Decode(dat []byte) (gelfconv.LogEvent, error) {
	var b eventBuilder
	message := strings.TrimRight(string(dat), "\r\n")
	b.evt.Message = &message
	return b.finish(), nil
}
