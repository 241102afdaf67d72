package output

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/nicwaller/gelfconv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Run(t *testing.T) {
	var buf bytes.Buffer
	out := Writer(WriterOptions{Writer: &buf})

	var doc gelfconv.Document
	doc.Set("version", "1.1")
	doc.Set("_note", "a & b")
	require.NoError(t, out.Run(context.Background(), &doc))
	require.NoError(t, out.Run(context.Background(), &doc))

	expected := `{"version":"1.1","_note":"a & b"}` + "\n"
	assert.Equal(t, expected+expected, buf.String())
}

func TestWriter_ConcurrentLinesDoNotInterleave(t *testing.T) {
	var buf bytes.Buffer
	out := Writer(WriterOptions{Writer: &buf})

	var doc gelfconv.Document
	doc.Set("short_message", strings.Repeat("z", 4096))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, out.Run(context.Background(), &doc))
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 8)
	for _, line := range lines {
		_, err := gelfconv.ParseDocument([]byte(line))
		assert.NoError(t, err)
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestWriter_PropagatesWriteErrors(t *testing.T) {
	out := Writer(WriterOptions{Writer: brokenWriter{}})
	var doc gelfconv.Document
	assert.ErrorContains(t, out.Run(context.Background(), &doc), "broken pipe")
}
