// Package config 提供统一的配置管理
//
// 主 Config 结构体嵌入所有子配置，每个子配置在独立文件中定义，
// 支持从 JSON 加载和保存，支持预设（default/minimal/server）。
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.SigCache.EnableMetrics = true
//
//	// 从文件加载
//	cfg, err := config.LoadFile("keycore.json")
//
//	// 应用预设
//	config.ApplyPreset(cfg, "server")
package config

import (
	"go.uber.org/multierr"
)

// Config 是 keycore 的完整配置结构
//
// 配置按照功能模块组织：
//   - SigCache: 签名验证缓存
//   - Log: 日志输出
type Config struct {
	// SigCache 签名验证缓存配置
	SigCache SigCacheConfig `json:"sig_cache"`

	// Log 日志配置
	Log LogConfig `json:"log"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		SigCache: DefaultSigCacheConfig(),
		Log:      DefaultLogConfig(),
	}
}

// Validate 验证配置的有效性
//
// 所有子配置的错误会被合并返回，可用 multierr.Errors 拆分。
func (c *Config) Validate() error {
	return multierr.Combine(
		c.SigCache.Validate(),
		c.Log.Validate(),
	)
}

// Clone 返回配置的副本
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}
