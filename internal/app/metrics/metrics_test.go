package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveConversion(t *testing.T) {
	m := New()
	m.ObserveConversion("converted", 2*time.Second)
	m.ObserveConversion("converted", time.Second)
	m.ObserveConversion("failed", 0)
	m.ObserveConversion("skipped", 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.conversions.WithLabelValues("converted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.conversions.WithLabelValues("failed")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.conversionTime))

	expected := `
# HELP a2t_conversions_total Files handled by the converter, by outcome.
# TYPE a2t_conversions_total counter
a2t_conversions_total{status="converted"} 2
a2t_conversions_total{status="failed"} 1
a2t_conversions_total{status="skipped"} 1
`
	assert.NoError(t, testutil.CollectAndCompare(m.conversions, strings.NewReader(expected)))
}

func TestObserveTranscription(t *testing.T) {
	m := New()
	m.ObserveTranscription("openai", nil, time.Second)
	m.ObserveTranscription("openai", errors.New("boom"), time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.transcriptions.WithLabelValues("openai", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transcriptions.WithLabelValues("openai", "error")))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.ObserveConversion("converted", 1500*time.Millisecond)

	path := filepath.Join(t.TempDir(), "a2t.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `a2t_conversions_total{status="converted"} 1`)
	assert.Contains(t, string(data), "a2t_conversion_seconds_count 1")
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveConversion("converted", time.Second)
		m.ObserveTranscription("openai", nil, time.Second)
	})
	assert.NoError(t, m.WriteTextfile("/nonexistent/dir/file.prom"))
	assert.Nil(t, m.Registry())
}
