package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

// TestApplyEnv 测试环境变量覆盖
func TestApplyEnv(t *testing.T) {
	t.Setenv("KEYCORE_PRESET", "server")
	t.Setenv("KEYCORE_SIGCACHE_CAPACITY", "512")
	t.Setenv("KEYCORE_SIGCACHE_KEY_DIGEST", "BLAKE3")
	t.Setenv("KEYCORE_SIGCACHE_FLUSH_INTERVAL", "3s")
	t.Setenv("KEYCORE_SIGCACHE_METRICS", "false")
	t.Setenv("KEYCORE_LOG_LEVEL", "sigcache=debug,warn")
	t.Setenv("KEYCORE_LOG_FORMAT", "text")
	t.Setenv("KEYCORE_LOG_FILE", "/var/log/keycore.log")

	cfg := NewConfig()
	require.NoError(t, ApplyEnv(cfg))

	assert.Equal(t, 512, cfg.SigCache.Capacity)
	assert.Equal(t, "blake3", cfg.SigCache.KeyDigest)
	assert.Equal(t, 3*time.Second, cfg.SigCache.FlushInterval.Duration())
	// 单项覆盖优先于预设
	assert.False(t, cfg.SigCache.EnableMetrics)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "sigcache=debug,warn", cfg.Log.Level)
	assert.Equal(t, "/var/log/keycore.log", cfg.Log.File)
	assert.NoError(t, cfg.Validate())
}

// TestApplyEnv_Empty 测试未设置时保持不变
func TestApplyEnv_Empty(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, ApplyEnv(cfg))
	assert.Equal(t, NewConfig(), cfg)

	assert.Error(t, ApplyEnv(nil))
}

// TestApplyEnv_Invalid 测试无法解析的值
func TestApplyEnv_Invalid(t *testing.T) {
	t.Setenv("KEYCORE_PRESET", "mobile")
	t.Setenv("KEYCORE_SIGCACHE_CAPACITY", "many")
	t.Setenv("KEYCORE_SIGCACHE_FLUSH_INTERVAL", "-1s")
	t.Setenv("KEYCORE_SIGCACHE_METRICS", "perhaps")

	cfg := NewConfig()
	err := ApplyEnv(cfg)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 4)
	assert.Contains(t, err.Error(), "KEYCORE_SIGCACHE_CAPACITY")

	// 字段保持不变
	assert.Equal(t, DefaultSigCacheCapacity, cfg.SigCache.Capacity)
	assert.Equal(t, DefaultSigCacheFlushInterval, cfg.SigCache.FlushInterval.Duration())
}
