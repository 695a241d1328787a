package keycore

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/fx"

	"github.com/dep2p/go-keycore/config"
	"github.com/dep2p/go-keycore/internal/core/sigcache"
	"github.com/dep2p/go-keycore/pkg/lib/crypto"
	"github.com/dep2p/go-keycore/pkg/lib/log"
)

var logger = log.Logger("keycore")

// Service 密钥核心服务
//
// 持有签名验证缓存和计数器导出器。New 之后即可验证签名；
// Start 启动周期性计数器导出，Stop 停止并做最后一次导出。
type Service struct {
	mu      sync.Mutex
	cfg     *config.Config
	app     *fx.App
	logFile io.Closer

	cache    *sigcache.Cache
	reporter *sigcache.Reporter

	started bool
	closed  bool
}

// New 创建服务
//
// 示例：
//
//	svc, err := keycore.New(
//	    keycore.WithCacheCapacity(4096),
//	    keycore.WithFlushInterval(10*time.Second),
//	)
func New(opts ...Option) (*Service, error) {
	o := newOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	cfg, err := o.toConfig()
	if err != nil {
		return nil, fmt.Errorf("apply option: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	svc := &Service{cfg: cfg}

	// 日志必须在 Fx 应用构建之前生效
	if svc.logFile, err = applyLogConfig(cfg.Log); err != nil {
		return nil, err
	}

	app, err := buildFxApp(cfg, o, svc)
	if err != nil {
		svc.closeLogFile()
		return nil, fmt.Errorf("build fx app: %w", err)
	}
	svc.app = app
	return svc, nil
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrServiceClosed
	}
	if s.started {
		return ErrAlreadyStarted
	}

	if err := s.app.Start(ctx); err != nil {
		logger.Error("service start failed", "error", err)
		return fmt.Errorf("start fx app: %w", err)
	}
	s.started = true

	logger.Info("keycore service started",
		"capacity", s.cache.Capacity(),
		"key_digest", string(s.cache.KeyDigest()))
	return nil
}

// Stop 停止服务，停止前做最后一次计数器导出
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrServiceClosed
	}
	if !s.started {
		return ErrNotStarted
	}
	return s.stopLocked(ctx)
}

func (s *Service) stopLocked(ctx context.Context) error {
	s.started = false
	if err := s.app.Stop(ctx); err != nil {
		logger.Error("service stop failed", "error", err)
		return fmt.Errorf("stop fx app: %w", err)
	}
	logger.Info("keycore service stopped")
	return nil
}

// Close 停止服务并释放资源，可重复调用
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var err error
	if s.started {
		err = s.stopLocked(context.Background())
	}
	s.closeLogFile()
	return err
}

func (s *Service) closeLogFile() {
	if s.logFile == nil {
		return
	}
	_ = s.logFile.Close()
	s.logFile = nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              签名验证
// ════════════════════════════════════════════════════════════════════════════

// VerifySignature 验证签名，结果经过缓存
//
// 签名长度错误时返回 false；返回值总与未缓存的验证一致。
func (s *Service) VerifySignature(pk crypto.PublicKey, sig crypto.Signature, msg []byte) bool {
	return s.cache.Verify(pk, sig, msg)
}

// VerifyBatch 并发验证一组签名，结果与 items 一一对应
func (s *Service) VerifyBatch(ctx context.Context, items []sigcache.Item, parallelism int) ([]bool, error) {
	return s.cache.VerifyBatch(ctx, items, parallelism)
}

// ClearVerifyCache 清空签名验证缓存
func (s *Service) ClearVerifyCache() {
	s.cache.Clear()
	logger.Debug("verify cache cleared")
}

// FlushVerifyCacheCounts 读取并清零命中/未命中计数
//
// 读取的增量同时累加到已注册的指标。Start 之后周期导出也会清零同一组计数，
// 此时返回的只是上次导出以来的增量；需要完整计数时将 FlushInterval 设为 0。
func (s *Service) FlushVerifyCacheCounts() (hits, misses uint64) {
	return s.reporter.Flush()
}

// Cache 返回签名验证缓存
func (s *Service) Cache() *sigcache.Cache {
	return s.cache
}

// Config 返回生效配置的副本
func (s *Service) Config() *config.Config {
	return s.cfg.Clone()
}
