package sigcache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dep2p/go-keycore/pkg/lib/log"
)

var logger = log.Logger("sigcache")

// 指标名称
const (
	metricNamespace = "keycore"
	metricSubsystem = "sigcache"
)

// ============================================================================
//                              Reporter
// ============================================================================

// Reporter 周期性导出缓存命中/未命中计数
//
// 每次导出调用 Cache.FlushCounts，将增量累加到 prometheus 计数器，
// 并更新条目数 gauge。interval 为 0 时不启动周期导出，只在 Stop 时导出一次。
type Reporter struct {
	cache    *Cache
	clock    clock.Clock
	interval time.Duration

	hits    prometheus.Counter
	misses  prometheus.Counter
	entries prometheus.Gauge

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

// NewReporter 创建导出器
//
// reg 为 nil 时指标不注册，仍然可以通过 Hits/Misses 读取。
// clk 为 nil 时使用真实时钟。
func NewReporter(cache *Cache, reg prometheus.Registerer, clk clock.Clock, interval time.Duration) (*Reporter, error) {
	if clk == nil {
		clk = clock.New()
	}

	r := &Reporter{
		cache:    cache,
		clock:    clk,
		interval: interval,
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: metricSubsystem,
			Name:      "hits_total",
			Help:      "Signature verifications answered from the cache.",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: metricSubsystem,
			Name:      "misses_total",
			Help:      "Signature verifications that called the signature primitive.",
		}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: metricSubsystem,
			Name:      "entries",
			Help:      "Entries held by the verification cache at the last flush.",
		}),
	}

	if reg != nil {
		var err error
		if r.hits, err = register(reg, r.hits); err != nil {
			return nil, err
		}
		if r.misses, err = register(reg, r.misses); err != nil {
			return nil, err
		}
		if r.entries, err = register(reg, r.entries); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// register 注册 collector，已注册同名 collector 时复用已有实例
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Start 启动周期导出
func (r *Reporter) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return ErrReporterStarted
	}
	r.started = true
	if r.interval <= 0 {
		return nil
	}

	// ticker 在返回前创建，保证 mock 时钟推进时已经生效
	ticker := r.clock.Ticker(r.interval)
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})

	go r.loop(ctx, ticker, r.done)

	logger.Debug("verify cache reporter started", "interval", r.interval)
	return nil
}

func (r *Reporter) loop(ctx context.Context, ticker *clock.Ticker, done chan<- struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.Flush()
		case <-ctx.Done():
			return
		}
	}
}

// Stop 停止周期导出并做最后一次导出
func (r *Reporter) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.started = false
	r.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	r.Flush()
}

// Flush 立即导出一次，返回本次导出的增量
func (r *Reporter) Flush() (hits, misses uint64) {
	hits, misses = r.cache.FlushCounts()
	entries := r.cache.Len()

	r.hits.Add(float64(hits))
	r.misses.Add(float64(misses))
	r.entries.Set(float64(entries))

	if hits > 0 || misses > 0 {
		logger.Debug("verify cache counters",
			"hits", hits,
			"misses", misses,
			"entries", entries,
			"capacity", r.cache.Capacity())
	}
	return hits, misses
}

// Hits 返回命中计数器
func (r *Reporter) Hits() prometheus.Counter {
	return r.hits
}

// Misses 返回未命中计数器
func (r *Reporter) Misses() prometheus.Counter {
	return r.misses
}

// Entries 返回条目数 gauge
func (r *Reporter) Entries() prometheus.Gauge {
	return r.entries
}
