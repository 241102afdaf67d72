package codec

import (
	"testing"
	"time"

	"github.com/nicwaller/gelfconv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNCSACommonLog_Decode(t *testing.T) {
	line := `127.0.0.1 user-identifier frank [10/Oct/2000:13:55:36 -0700] "GET /apache_pb.gif HTTP/1.0" 200 2326`
	evt, err := NCSACommonLog().Decode([]byte(line))
	require.NoError(t, err)

	require.NotNil(t, evt.Message)
	assert.Equal(t, "GET /apache_pb.gif HTTP/1.0", *evt.Message)
	assert.Equal(t, gelfconv.LevelInfo, evt.Level)
	when := time.Date(2000, time.October, 10, 20, 55, 36, 0, time.UTC)
	assert.Equal(t, gelfconv.EpochSeconds(when), evt.Timestamp)

	expected := map[string]string{
		"client_ip":        "127.0.0.1",
		"ident":            "user-identifier",
		"user_name":        "frank",
		"http_method":      "GET",
		"url_path":         "/apache_pb.gif",
		"http_version":     "1.0",
		"http_status_code": "200",
		"bytes":            "2326",
	}
	for key, want := range expected {
		got, ok := evt.Property(key)
		assert.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}
}

func TestNCSACommonLog_Combined(t *testing.T) {
	line := `10.0.0.9 - - [10/Oct/2000:13:55:36 +0000] "POST /login HTTP/1.1" 503 - "https://example.com/" "curl/8.0"`
	evt, err := NCSACommonLog().Decode([]byte(line))
	require.NoError(t, err)

	assert.Equal(t, gelfconv.LevelError, evt.Level)
	referrer, _ := evt.Property("http_referrer")
	assert.Equal(t, "https://example.com/", referrer)
	agent, _ := evt.Property("user_agent")
	assert.Equal(t, "curl/8.0", agent)

	_, ok := evt.Property("ident")
	assert.False(t, ok, "dash means absent")
	_, ok = evt.Property("bytes")
	assert.False(t, ok)
}

func TestNCSACommonLog_ClientErrorIsWarning(t *testing.T) {
	line := `10.0.0.9 - - [10/Oct/2000:13:55:36 +0000] "GET /missing HTTP/1.1" 404 0`
	evt, err := NCSACommonLog().Decode([]byte(line))
	require.NoError(t, err)
	assert.Equal(t, gelfconv.LevelWarn, evt.Level)
}

func TestNCSACommonLog_Malformed(t *testing.T) {
	for _, line := range []string{
		`127.0.0.1 - -`,
		`127.0.0.1 - - [yesterday] "GET / HTTP/1.0" 200 1`,
		`127.0.0.1 - - [10/Oct/2000:13:55:36 -0700] "GET / HTTP/1.0 200 1`,
	} {
		_, err := NCSACommonLog().Decode([]byte(line))
		assert.Error(t, err, line)
	}
}
