package codec

import (
	"testing"

	"github.com/nicwaller/gelfconv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainCodec_Decode(t *testing.T) {
	evt, err := Plain().Decode([]byte("Hello, World!\r\n"))
	require.NoError(t, err)
	require.NotNil(t, evt.Message)
	assert.Equal(t, "Hello, World!", *evt.Message)
	assert.Equal(t, gelfconv.LevelInfo, evt.Level)
	assert.NotZero(t, evt.Timestamp)
	assert.Empty(t, evt.Properties)
}

func TestPlainCodec_KeepsMarkup(t *testing.T) {
	evt, err := Plain().Decode([]byte(`level=error {"not": "parsed"}`))
	require.NoError(t, err)
	assert.Equal(t, `level=error {"not": "parsed"}`, *evt.Message)
	assert.Equal(t, gelfconv.LevelInfo, evt.Level)
}
