package gelfconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"trace":    LevelTrace,
		"DEBUG":    LevelDebug,
		"Info":     LevelInfo,
		" info ":   LevelInfo,
		"warning":  LevelWarn,
		"warn":     LevelWarn,
		"error":    LevelError,
		"fatal":    LevelFatal,
		"critical": LevelFatal,
	}
	for name, expected := range tests {
		level, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, expected, level, name)
	}
}

func TestParseLevel_Unknown(t *testing.T) {
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestLevel_StringRoundTrip(t *testing.T) {
	for _, l := range []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal} {
		parsed, err := ParseLevel(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, parsed)
	}
}
