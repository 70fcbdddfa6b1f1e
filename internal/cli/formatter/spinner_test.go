package formatter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpinner_DrawsThenClearsLine(t *testing.T) {
	var buf bytes.Buffer
	stop := StartSpinner(&buf, "Thinking...")
	stop()
	stop()

	out := buf.String()
	assert.True(t, strings.HasPrefix(stripANSI(out), "\r  ⠋ Thinking..."), out)
	assert.True(t, strings.HasSuffix(out, "\r\033[K"), "the status line is cleared on stop")
}
