package keycore

import (
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-keycore/config"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	// 基础配置（WithConfig / WithConfigFile）
	config *config.Config

	// 预设
	preset string

	// 覆盖项，在预设之后应用
	cacheCapacity *int
	keyDigest     *string
	flushInterval *time.Duration
	logFile       *string

	// 依赖注入
	registerer prometheus.Registerer
	clock      clock.Clock

	// 用户自定义 Fx 选项
	fxOptions []fx.Option
}

// newOptions 创建默认选项
func newOptions() *options {
	return &options{}
}

// toConfig 合并为最终配置
//
// 顺序：基础配置 → 预设 → 单项覆盖。
func (o *options) toConfig() (*config.Config, error) {
	cfg := o.config.Clone()
	if cfg == nil {
		cfg = config.NewConfig()
	}

	if err := config.ApplyPreset(cfg, o.preset); err != nil {
		return nil, err
	}

	if o.cacheCapacity != nil {
		cfg.SigCache.Capacity = *o.cacheCapacity
	}
	if o.keyDigest != nil {
		cfg.SigCache.KeyDigest = *o.keyDigest
	}
	if o.flushInterval != nil {
		cfg.SigCache.FlushInterval = config.Duration(*o.flushInterval)
	}
	if o.registerer != nil {
		cfg.SigCache.EnableMetrics = true
	}
	if o.logFile != nil {
		cfg.Log.File = *o.logFile
	}
	return cfg, nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              配置来源
// ════════════════════════════════════════════════════════════════════════════

// WithConfig 使用完整配置作为基础
//
// 配置会被复制，之后修改 cfg 不影响服务。
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return errors.New("config is nil")
		}
		o.config = cfg.Clone()
		return nil
	}
}

// WithConfigFile 从 JSON 文件加载基础配置
func WithConfigFile(path string) Option {
	return func(o *options) error {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		o.config = cfg
		return nil
	}
}

// WithPreset 应用预设（default / minimal / server）
func WithPreset(name string) Option {
	return func(o *options) error {
		switch name {
		case "", "default", "minimal", "server":
			o.preset = name
			return nil
		default:
			return fmt.Errorf("unknown preset: %s", name)
		}
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              签名验证缓存
// ════════════════════════════════════════════════════════════════════════════

// WithCacheCapacity 设置签名验证缓存容量
func WithCacheCapacity(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("cache capacity must be positive, got %d", n)
		}
		o.cacheCapacity = &n
		return nil
	}
}

// WithKeyDigest 设置缓存键摘要算法（sha256、blake3 或 blake2b）
func WithKeyDigest(alg string) Option {
	return func(o *options) error {
		o.keyDigest = &alg
		return nil
	}
}

// WithFlushInterval 设置计数器导出间隔，0 表示只在停止时导出
func WithFlushInterval(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return fmt.Errorf("flush interval must not be negative, got %s", d)
		}
		o.flushInterval = &d
		return nil
	}
}

// WithMetrics 将缓存指标注册到 reg，同时启用指标
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) error {
		if reg == nil {
			return errors.New("registerer is nil")
		}
		o.registerer = reg
		return nil
	}
}

// WithClock 替换计数器导出使用的时钟（测试用）
func WithClock(clk clock.Clock) Option {
	return func(o *options) error {
		o.clock = clk
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              其他
// ════════════════════════════════════════════════════════════════════════════

// WithLogFile 将日志输出重定向到指定文件
//
// 文件在 Close 时关闭。
//
// 示例：
//
//	keycore.New(keycore.WithLogFile("keycore.log"))
func WithLogFile(path string) Option {
	return func(o *options) error {
		o.logFile = &path
		return nil
	}
}

// WithFxOptions 追加自定义 Fx 选项
func WithFxOptions(opts ...fx.Option) Option {
	return func(o *options) error {
		o.fxOptions = append(o.fxOptions, opts...)
		return nil
	}
}
