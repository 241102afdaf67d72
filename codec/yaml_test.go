package codec

import (
	"testing"
	"time"

	"github.com/nicwaller/gelfconv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYamlCodec_Decode(t *testing.T) {
	evt, err := Yaml().Decode([]byte(`---
message: Hello, World!
level: error
timestamp: 2023-10-15T21:27:56Z
logger: app
line: "42"
exception:
  message: boom
properties:
  zone: eu-west-1
  replicas: 3
  enabled: true
  empty: ~
  version: "3"
`))
	require.NoError(t, err)

	assert.Equal(t, "Hello, World!", *evt.Message)
	assert.Equal(t, gelfconv.LevelError, evt.Level)
	assert.Equal(t, 1697405276.0, evt.Timestamp)
	assert.Equal(t, "app", evt.LoggerName)
	assert.Equal(t, 42, *evt.SourceLine)
	require.NotNil(t, evt.Exception)
	assert.Equal(t, "boom", *evt.Exception.Message)
	assert.Nil(t, evt.Exception.Source)

	assert.Equal(t, []gelfconv.Property{
		{Key: "zone", Value: "eu-west-1"},
		{Key: "replicas", Value: 3},
		{Key: "enabled", Value: true},
		{Key: "empty", Value: nil},
		{Key: "version", Value: "3"},
	}, evt.Properties)
}

func TestYamlCodec_Errors(t *testing.T) {
	for _, input := range []string{
		``,
		`- just
- a list`,
		`message: [unclosed`,
	} {
		_, err := Yaml().Decode([]byte(input))
		assert.Error(t, err, input)
	}
}

func TestYamlCodec_Timestamps(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected time.Time
	}{
		"date only": {
			input:    "timestamp: 2024-01-01",
			expected: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
		"canonical": {
			input:    "timestamp: 2001-12-15T02:59:43.1Z",
			expected: time.Date(2001, time.December, 15, 2, 59, 43, 100_000_000, time.UTC),
		},
		"space separated with short offset": {
			input:    "timestamp: 2001-12-14 21:59:43.10 -5",
			expected: time.Date(2001, time.December, 15, 2, 59, 43, 100_000_000, time.UTC),
		},
		"no zone means UTC": {
			input:    "ts: 2002-12-14 10:00:00",
			expected: time.Date(2002, time.December, 14, 10, 0, 0, 0, time.UTC),
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			evt, err := Yaml().Decode([]byte("message: hi\n" + tc.input + "\n"))
			require.NoError(t, err)
			assert.InDelta(t, gelfconv.EpochSeconds(tc.expected), evt.Timestamp, 1e-6)
		})
	}
}

func TestYamlCodec_DatePropertyStaysText(t *testing.T) {
	evt, err := Yaml().Decode([]byte("message: 2024-01-01\nrelease: 2024-02-03\n"))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", *evt.Message)
	release, _ := evt.Property("release")
	assert.Equal(t, "2024-02-03", release)
}
