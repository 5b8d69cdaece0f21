package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorTimings(t *testing.T) {
	c := NewCollector()

	c.RecordTiming(OpCanvasFetch, 100*time.Millisecond)
	c.RecordTiming(OpCanvasFetch, 300*time.Millisecond)
	c.RecordError(OpCanvasFetch)

	snap := c.Snapshot()
	require.NotNil(t, snap.CanvasFetch)
	assert.Equal(t, int64(2), snap.CanvasFetch.Count)
	assert.Equal(t, int64(1), snap.CanvasFetch.Errors)
	assert.Equal(t, int64(100), snap.CanvasFetch.MinTimeMs)
	assert.Equal(t, int64(300), snap.CanvasFetch.MaxTimeMs)
	assert.Equal(t, float64(200), snap.CanvasFetch.AvgTimeMs)

	assert.Nil(t, snap.LLMExtract, "untouched operations stay nil")
}

func TestCollectorErrorOnlyOperation(t *testing.T) {
	c := NewCollector()
	c.RecordError(OpLLMExtract)

	snap := c.Snapshot()
	require.NotNil(t, snap.LLMExtract)
	assert.Equal(t, int64(0), snap.LLMExtract.Count)
	assert.Equal(t, int64(1), snap.LLMExtract.Errors)
	assert.Zero(t, snap.LLMExtract.MinTimeMs)
}

func TestCollectorCacheCounters(t *testing.T) {
	c := NewCollector()
	c.RecordCacheHit()
	c.RecordCacheHit()
	c.RecordCacheMiss()

	snap := c.Snapshot()
	assert.Equal(t, int64(2), snap.PageCacheHits)
	assert.Equal(t, int64(1), snap.PageCacheMisses)
}
