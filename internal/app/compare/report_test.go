package compare

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteReport(t *testing.T) {
	r := CompareWords([]string{"the", "cat", "sat"}, []string{"the", "dog", "sat", "down"})

	var buf bytes.Buffer
	WriteReport(&buf, r, -1)
	out := buf.String()
	assert.Contains(t, out, "Matching words:        2\n")
	assert.Contains(t, out, "Word error rate:       66.67%\n")
	assert.Contains(t, out, `"cat" -> "dog"`)
	assert.Contains(t, out, `+"down"`)

	buf.Reset()
	WriteReport(&buf, r, 1)
	assert.Contains(t, buf.String(), "... 1 more")

	buf.Reset()
	WriteReport(&buf, r, 0)
	assert.NotContains(t, buf.String(), "Differences:")
}
