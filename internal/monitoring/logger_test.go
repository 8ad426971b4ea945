package monitoring

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogfPrefixesLines(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })

	Logf("trains %s and %s too close", "A", "B")
	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasSuffix(line, Prefix+"trains A and B too close"), line)
}

func TestSetLoggerNilMutes(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })

	SetLogger(nil)
	Logf("dropped")
	assert.Empty(t, buf.String())

	var got []string
	SetLogger(func(format string, v ...any) { got = append(got, format) })
	Logf("kept")
	assert.Equal(t, []string{"kept"}, got)
}
