package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

// 环境变量
//
// 完整名称为 EnvPrefix + 名称，例如 KEYCORE_SIGCACHE_CAPACITY。
const (
	// EnvPrefix 环境变量前缀
	EnvPrefix = "KEYCORE_"

	// EnvPreset 预设名称
	EnvPreset = "PRESET"

	// EnvSigCacheCapacity 签名验证缓存容量
	EnvSigCacheCapacity = "SIGCACHE_CAPACITY"

	// EnvSigCacheKeyDigest 缓存键摘要算法
	EnvSigCacheKeyDigest = "SIGCACHE_KEY_DIGEST"

	// EnvSigCacheFlushInterval 计数器导出间隔
	EnvSigCacheFlushInterval = "SIGCACHE_FLUSH_INTERVAL"

	// EnvSigCacheMetrics 是否启用指标
	EnvSigCacheMetrics = "SIGCACHE_METRICS"

	// EnvLogLevel 日志级别
	EnvLogLevel = "LOG_LEVEL"

	// EnvLogFormat 日志格式
	EnvLogFormat = "LOG_FORMAT"

	// EnvLogFile 日志文件路径
	EnvLogFile = "LOG_FILE"
)

// ApplyEnv 应用 KEYCORE_* 环境变量覆盖
//
// 预设最先应用，其余变量覆盖预设的结果。无法解析的值会被合并返回，
// 对应字段保持不变。
func ApplyEnv(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	var err error

	if v, ok := lookupEnv(EnvPreset); ok {
		err = multierr.Append(err, ApplyPreset(cfg, v))
	}

	if v, ok := lookupEnv(EnvSigCacheCapacity); ok {
		n, e := strconv.Atoi(v)
		if e != nil {
			err = multierr.Append(err, fmt.Errorf("%s%s: %w", EnvPrefix, EnvSigCacheCapacity, e))
		} else {
			cfg.SigCache.Capacity = n
		}
	}

	if v, ok := lookupEnv(EnvSigCacheKeyDigest); ok {
		cfg.SigCache.KeyDigest = strings.ToLower(v)
	}

	if v, ok := lookupEnv(EnvSigCacheFlushInterval); ok {
		d, e := ParseDuration(v)
		if e != nil {
			err = multierr.Append(err, fmt.Errorf("%s%s: %w", EnvPrefix, EnvSigCacheFlushInterval, e))
		} else {
			cfg.SigCache.FlushInterval = d
		}
	}

	if v, ok := lookupEnv(EnvSigCacheMetrics); ok {
		b, e := strconv.ParseBool(v)
		if e != nil {
			err = multierr.Append(err, fmt.Errorf("%s%s: %w", EnvPrefix, EnvSigCacheMetrics, e))
		} else {
			cfg.SigCache.EnableMetrics = b
		}
	}

	if v, ok := lookupEnv(EnvLogLevel); ok {
		cfg.Log.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok {
		cfg.Log.Format = v
	}
	if v, ok := lookupEnv(EnvLogFile); ok {
		cfg.Log.File = v
	}

	return err
}

// lookupEnv 读取带前缀的环境变量，空值视为未设置
func lookupEnv(name string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(EnvPrefix + name))
	return v, v != ""
}
