package sigcache

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-keycore/config"
	"github.com/dep2p/go-keycore/pkg/lib/crypto"
)

// Config 模块配置
type Config struct {
	Options

	// EnableMetrics 是否注册 prometheus 指标
	EnableMetrics bool

	// FlushInterval 计数器导出间隔，0 表示不周期导出
	FlushInterval config.Duration
}

// DefaultConfig 返回默认模块配置
func DefaultConfig() Config {
	return ConfigFromUnified(nil)
}

// ConfigFromUnified 从统一配置创建模块配置
func ConfigFromUnified(cfg *config.Config) Config {
	sc := config.DefaultSigCacheConfig()
	if cfg != nil {
		sc = cfg.SigCache
	}
	return Config{
		Options: Options{
			Capacity:  sc.Capacity,
			KeyDigest: crypto.HashAlgorithm(sc.KeyDigest),
		},
		EnableMetrics: sc.EnableMetrics,
		FlushInterval: sc.FlushInterval,
	}
}

// Params 模块依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config        `optional:"true"`
	Registerer prometheus.Registerer `optional:"true"`
	Clock      clock.Clock           `optional:"true"`
	Verify     VerifyFunc            `optional:"true"`
}

// Module 返回 Fx 模块
//
// 提供 Config、*Cache 和 *Reporter，并将 Reporter 挂到生命周期上。
func Module() fx.Option {
	return fx.Module("sigcache",
		fx.Provide(
			ProvideConfig,
			ProvideCache,
			ProvideReporter,
		),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideConfig 从统一配置提供模块配置
func ProvideConfig(p Params) Config {
	cfg := ConfigFromUnified(p.UnifiedCfg)
	cfg.Verify = p.Verify
	return cfg
}

// ProvideCache 提供缓存实例
func ProvideCache(cfg Config) (*Cache, error) {
	return New(cfg.Options)
}

// ProvideReporter 提供导出器
//
// 启用指标但没有注入 Registerer 时使用 prometheus.DefaultRegisterer。
func ProvideReporter(cfg Config, cache *Cache, p Params) (*Reporter, error) {
	var reg prometheus.Registerer
	if cfg.EnableMetrics {
		reg = p.Registerer
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
	}
	return NewReporter(cache, reg, p.Clock, cfg.FlushInterval.Duration())
}

// lifecycleInput 生命周期注册输入
type lifecycleInput struct {
	fx.In

	LC       fx.Lifecycle
	Reporter *Reporter
}

// registerLifecycle 注册生命周期钩子
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return input.Reporter.Start()
		},
		OnStop: func(_ context.Context) error {
			input.Reporter.Stop()
			return nil
		},
	})
}
