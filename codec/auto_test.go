package codec

import (
	"testing"

	"github.com/nicwaller/gelfconv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoCodec_DecodeJson(t *testing.T) {
	evt, err := Auto().Decode([]byte(`  {"message": "Hello, World!"}`))
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", *evt.Message)
}

func TestAutoCodec_DecodeYaml(t *testing.T) {
	evt, err := Auto().Decode([]byte(`---
message: Hello, World!`))
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", *evt.Message)
}

func TestAutoCodec_DecodeKv(t *testing.T) {
	evt, err := Auto().Decode([]byte(`msg="Hello, World!"`))
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", *evt.Message)
}

func TestAutoCodec_DecodePlainText(t *testing.T) {
	evt, err := Auto().Decode([]byte("disk almost full on /var\n"))
	require.NoError(t, err)
	require.NotNil(t, evt.Message)
	assert.Equal(t, "disk almost full on /var", *evt.Message)
	assert.Equal(t, gelfconv.LevelInfo, evt.Level)
	assert.Empty(t, evt.Properties)
}

func TestAutoCodec_DecodeCommonLog(t *testing.T) {
	line := `127.0.0.1 - frank [10/Oct/2000:13:55:36 -0700] "GET /apache_pb.gif HTTP/1.0" 500 2326`
	evt, err := Auto().Decode([]byte(line))
	require.NoError(t, err)
	require.NotNil(t, evt.Message)
	assert.Equal(t, "GET /apache_pb.gif HTTP/1.0", *evt.Message)
	assert.Equal(t, gelfconv.LevelError, evt.Level)
	status, _ := evt.Property("http_status_code")
	assert.Equal(t, "500", status)
}

func TestAutoCodec_RejectsBinary(t *testing.T) {
	for _, input := range [][]byte{
		{0x1f, 0x8b, 0x08, 0x00},
		{0x1e, 0x0f, 0x01, 0x02},
		[]byte("   "),
	} {
		_, err := Auto().Decode(input)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"", "auto", "json", "yaml", "kv", "logfmt", "plain", "ncsa"} {
		c, err := ByName(name)
		require.NoError(t, err, name)
		assert.NotNil(t, c)
	}
	_, err := ByName("xml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
