package config

import (
	"errors"
	"fmt"
)

// ValidateAll 验证整个配置的有效性
func ValidateAll(c *Config) error {
	if c == nil {
		return errors.New("config is nil")
	}
	return c.Validate()
}

// ValidateAndFix 验证配置并修复可自动修复的问题
//
// 可修复的问题：
//   - 缓存容量非正 -> 使用默认容量
//   - 摘要算法为空 -> sha256
//   - 导出间隔为负 -> 使用默认间隔
func ValidateAndFix(c *Config) (*Config, error) {
	if c == nil {
		return NewConfig(), nil
	}

	if c.SigCache.Capacity <= 0 {
		c.SigCache.Capacity = DefaultSigCacheCapacity
	}
	if c.SigCache.KeyDigest == "" {
		c.SigCache.KeyDigest = "sha256"
	}
	if c.SigCache.FlushInterval < 0 {
		c.SigCache.FlushInterval = Duration(DefaultSigCacheFlushInterval)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed after fixes: %w", err)
	}
	return c, nil
}

// MustValidate 验证配置，失败时 panic
//
// 仅用于初始化阶段或测试代码。
func MustValidate(c *Config) {
	if err := ValidateAll(c); err != nil {
		panic(fmt.Sprintf("invalid config: %v", err))
	}
}
