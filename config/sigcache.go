package config

import (
	"fmt"
	"slices"
	"time"

	"go.uber.org/multierr"

	"github.com/dep2p/go-keycore/pkg/lib/crypto"
)

// 签名验证缓存默认值
const (
	// DefaultSigCacheCapacity 默认缓存容量（条目数）
	DefaultSigCacheCapacity = 0xffff

	// DefaultSigCacheFlushInterval 默认计数器导出间隔
	DefaultSigCacheFlushInterval = time.Second
)

// SigCacheConfig 签名验证缓存配置
type SigCacheConfig struct {
	// Capacity 缓存容量（条目数），达到容量后按 LRU 淘汰
	Capacity int `json:"capacity"`

	// KeyDigest 缓存键摘要算法
	// 可选值: "sha256"（默认）, "blake3", "blake2b"
	KeyDigest string `json:"key_digest"`

	// FlushInterval 命中/未命中计数器导出间隔
	// 0 表示不启动周期导出，只在停止时导出一次
	FlushInterval Duration `json:"flush_interval"`

	// EnableMetrics 是否将计数器注册到 prometheus
	EnableMetrics bool `json:"enable_metrics"`
}

// DefaultSigCacheConfig 返回默认签名验证缓存配置
func DefaultSigCacheConfig() SigCacheConfig {
	return SigCacheConfig{
		Capacity:      DefaultSigCacheCapacity,
		KeyDigest:     "sha256",
		FlushInterval: Duration(DefaultSigCacheFlushInterval),
		EnableMetrics: false,
	}
}

// Validate 验证签名验证缓存配置
func (c SigCacheConfig) Validate() error {
	var err error
	if c.Capacity <= 0 {
		err = multierr.Append(err, fmt.Errorf("sig_cache.capacity must be positive, got %d", c.Capacity))
	}
	if c.KeyDigest != "" && !slices.Contains(crypto.HashAlgorithms, crypto.HashAlgorithm(c.KeyDigest)) {
		err = multierr.Append(err, fmt.Errorf("sig_cache.key_digest must be one of %v, got %q", crypto.HashAlgorithms, c.KeyDigest))
	}
	if c.FlushInterval < 0 {
		err = multierr.Append(err, fmt.Errorf("sig_cache.flush_interval must not be negative, got %s", c.FlushInterval))
	}
	return err
}

// WithCapacity 设置缓存容量
func (c SigCacheConfig) WithCapacity(n int) SigCacheConfig {
	c.Capacity = n
	return c
}

// WithKeyDigest 设置缓存键摘要算法
func (c SigCacheConfig) WithKeyDigest(alg string) SigCacheConfig {
	c.KeyDigest = alg
	return c
}

// WithFlushInterval 设置计数器导出间隔
func (c SigCacheConfig) WithFlushInterval(d time.Duration) SigCacheConfig {
	c.FlushInterval = Duration(d)
	return c
}

// WithMetrics 设置是否启用 prometheus 指标
func (c SigCacheConfig) WithMetrics(enabled bool) SigCacheConfig {
	c.EnableMetrics = enabled
	return c
}
