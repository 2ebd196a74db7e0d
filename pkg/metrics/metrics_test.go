package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/nebula-schemagen/pkg/errors"
)

func TestRecordSchema(t *testing.T) {
	c := NewCollector()

	c.RecordSchema("openapi", StatusSuccess, 120)
	c.RecordSchema("openapi", StatusSuccess, 80)
	c.RecordSchema("openapi", StatusFailure, 0)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.schemasGenerated.WithLabelValues("openapi", StatusSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.schemasGenerated.WithLabelValues("openapi", StatusFailure)))
	assert.Equal(t, float64(200), testutil.ToFloat64(c.bytesWritten.WithLabelValues("openapi")))
}

func TestCollectorsAreIndependent(t *testing.T) {
	a, b := NewCollector(), NewCollector()
	a.RecordSchema("avro", StatusSuccess, 1)

	assert.Equal(t, float64(1), testutil.ToFloat64(a.schemasGenerated.WithLabelValues("avro", StatusSuccess)))
	assert.Equal(t, float64(0), testutil.ToFloat64(b.schemasGenerated.WithLabelValues("avro", StatusSuccess)))
}

func TestObserveStage(t *testing.T) {
	c := NewCollector()
	timer := NewTimer(StageRender)
	time.Sleep(time.Millisecond)

	d := c.ObserveStage(timer)
	assert.GreaterOrEqual(t, d, time.Millisecond)
	assert.Equal(t, StageRender, timer.Name())

	count, err := testutil.GatherAndCount(c.Registry(), "schemagen_stage_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestWriteTextfile(t *testing.T) {
	c := NewCollector()
	c.RecordSchema("arrow", StatusSuccess, 42)

	path := filepath.Join(t.TempDir(), "schemagen.prom")
	require.NoError(t, c.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `schemagen_schemas_generated_total{format="arrow",status="success"} 1`))
	assert.True(t, strings.Contains(string(data), `schemagen_bytes_written_total{format="arrow"} 42`))
}

func TestWriteTextfileFailure(t *testing.T) {
	err := NewCollector().WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeWrite))
}
