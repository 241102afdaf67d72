package filter

import (
	"testing"
	"time"

	"github.com/nicwaller/gelfconv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent() gelfconv.LogEvent {
	evt := gelfconv.NewEvent("hello", gelfconv.LevelInfo, time.Unix(1700000000, 0))
	evt.With("user", "alice").With("region", "us-east").With("user", "bob")
	return evt
}

func run(t *testing.T, f gelfconv.FilterPlugin, evt *gelfconv.LogEvent) bool {
	t.Helper()
	dropped := false
	require.NoError(t, f(evt, func() { dropped = true }))
	return dropped
}

func TestReplace(t *testing.T) {
	evt := testEvent()
	assert.False(t, run(t, Replace("user", "carol"), &evt))
	assert.Equal(t, []gelfconv.Property{
		{Key: "user", Value: "carol"},
		{Key: "region", Value: "us-east"},
		{Key: "user", Value: "carol"},
	}, evt.Properties)

	run(t, Replace("team", "payments"), &evt)
	team, ok := evt.Property("team")
	assert.True(t, ok)
	assert.Equal(t, "payments", team)
	assert.Len(t, evt.Properties, 4)
}

func TestRemove(t *testing.T) {
	evt := testEvent()
	run(t, Remove("user"), &evt)
	assert.Equal(t, []gelfconv.Property{{Key: "region", Value: "us-east"}}, evt.Properties)

	run(t, Remove("missing"), &evt)
	assert.Len(t, evt.Properties, 1)
}

func TestRename(t *testing.T) {
	evt := testEvent()
	evt.With("owner", "nobody")
	run(t, Rename("user", "owner"), &evt)
	assert.Equal(t, []gelfconv.Property{
		{Key: "owner", Value: "alice"},
		{Key: "region", Value: "us-east"},
		{Key: "owner", Value: "bob"},
	}, evt.Properties)
}

func TestRename_MissingKeyIsNoop(t *testing.T) {
	evt := testEvent()
	evt.With("owner", "nobody")
	run(t, Rename("missing", "owner"), &evt)
	owner, _ := evt.Property("owner")
	assert.Equal(t, "nobody", owner)
}

func TestMinLevel(t *testing.T) {
	evt := testEvent()
	assert.False(t, run(t, MinLevel(gelfconv.LevelInfo), &evt))
	assert.True(t, run(t, MinLevel(gelfconv.LevelWarn), &evt))
}
