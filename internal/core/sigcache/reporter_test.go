package sigcache

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter_Flush(t *testing.T) {
	f := newFixture(t, 0, "hello")
	c, _ := newTestCache(t, 8)

	r, err := NewReporter(c, nil, nil, 0)
	require.NoError(t, err)

	c.Verify(f.pk, f.sig, f.msg)
	c.Verify(f.pk, f.sig, f.msg)

	hits, misses := r.Flush()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Hits()))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Misses()))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Entries()))

	// 计数器累加增量
	c.Verify(f.pk, f.sig, f.msg)
	r.Flush()
	assert.Equal(t, 2.0, testutil.ToFloat64(r.Hits()))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Misses()))

	// 缓存自身的计数器已被清零
	hits, misses = c.FlushCounts()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
}

func TestReporter_Periodic(t *testing.T) {
	f := newFixture(t, 0, "hello")
	c, _ := newTestCache(t, 8)
	mock := clock.NewMock()

	r, err := NewReporter(c, nil, mock, time.Second)
	require.NoError(t, err)
	require.NoError(t, r.Start())
	defer r.Stop()

	c.Verify(f.pk, f.sig, f.msg)
	c.Verify(f.pk, f.sig, f.msg)
	assert.Zero(t, testutil.ToFloat64(r.Hits()))

	mock.Add(time.Second)

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(r.Hits()) == 1 && testutil.ToFloat64(r.Misses()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestReporter_StartStop(t *testing.T) {
	f := newFixture(t, 5, "hello")
	c, _ := newTestCache(t, 8)

	r, err := NewReporter(c, nil, clock.NewMock(), time.Minute)
	require.NoError(t, err)

	require.NoError(t, r.Start())
	assert.ErrorIs(t, r.Start(), ErrReporterStarted)

	c.Verify(f.pk, f.sig, f.msg)

	// Stop 做最后一次导出
	r.Stop()
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Misses()))

	// 停止后可以重新启动
	require.NoError(t, r.Start())
	r.Stop()
}

func TestReporter_Disabled(t *testing.T) {
	f := newFixture(t, 6, "hello")
	c, _ := newTestCache(t, 8)

	r, err := NewReporter(c, nil, clock.NewMock(), 0)
	require.NoError(t, err)
	require.NoError(t, r.Start())

	c.Verify(f.pk, f.sig, f.msg)
	assert.Zero(t, testutil.ToFloat64(r.Misses()))

	r.Stop()
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Misses()))
}

func TestReporter_Registry(t *testing.T) {
	c, _ := newTestCache(t, 8)
	reg := prometheus.NewRegistry()

	r1, err := NewReporter(c, reg, nil, 0)
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(reg,
		"keycore_sigcache_hits_total",
		"keycore_sigcache_misses_total",
		"keycore_sigcache_entries",
	)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// 同一 registry 上的第二个导出器复用已注册的指标
	r2, err := NewReporter(c, reg, nil, 0)
	require.NoError(t, err)
	assert.True(t, r1.Hits() == r2.Hits())
	assert.True(t, r1.Misses() == r2.Misses())
	assert.True(t, r1.Entries() == r2.Entries())
}
