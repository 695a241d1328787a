package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// FromJSON 从 JSON 数据创建配置
//
// 未出现的字段保留默认值。
//
// 示例 JSON:
//
//	{
//	  "sig_cache": {"capacity": 4096, "flush_interval": "5s"},
//	  "log": {"level": "sigcache=debug,info"}
//	}
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// LoadFile 从 JSON 文件加载配置并验证
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := FromJSON(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// ToJSON 将配置序列化为带缩进的 JSON
func (c *Config) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// ApplyPreset 应用预设配置
//
// 支持的预设：
//   - "default": 默认值
//   - "minimal": 小容量缓存，不周期导出计数器，不启用指标
//   - "server": 启用指标，JSON 日志
func ApplyPreset(cfg *Config, presetName string) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	switch presetName {
	case "default":
		*cfg = *NewConfig()
	case "minimal":
		cfg.SigCache.Capacity = 1024
		cfg.SigCache.FlushInterval = 0
		cfg.SigCache.EnableMetrics = false
	case "server":
		cfg.SigCache.Capacity = DefaultSigCacheCapacity
		cfg.SigCache.FlushInterval = Duration(10 * time.Second)
		cfg.SigCache.EnableMetrics = true
		cfg.Log.Format = "json"
	case "":
		// 空预设，不做任何操作
	default:
		return fmt.Errorf("unknown preset: %s", presetName)
	}
	return nil
}
