package config

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/dep2p/go-keycore/pkg/lib/log"
)

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，支持按子系统配置
	// 格式: 子系统=级别,子系统=级别,默认级别
	// 示例: "sigcache=debug,info"
	Level string `json:"level"`

	// Format 输出格式: "text"（默认）或 "json"
	Format string `json:"format"`

	// File 日志文件路径，为空时输出到 stderr
	File string `json:"file,omitempty"`
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  "info",
		Format: "text",
	}
}

// Validate 验证日志配置
func (c LogConfig) Validate() error {
	var err error
	if _, e := log.DefaultOptions().WithLevelSpec(c.Level); e != nil {
		err = multierr.Append(err, fmt.Errorf("log.level: %w", e))
	}
	if _, e := log.ParseFormat(c.Format); e != nil {
		err = multierr.Append(err, fmt.Errorf("log.format: %w", e))
	}
	return err
}

// Options 转换为日志选项
func (c LogConfig) Options() (log.Options, error) {
	opts, err := log.DefaultOptions().WithLevelSpec(c.Level)
	if err != nil {
		return log.DefaultOptions(), fmt.Errorf("log.level: %w", err)
	}
	if opts.Format, err = log.ParseFormat(c.Format); err != nil {
		return log.DefaultOptions(), fmt.Errorf("log.format: %w", err)
	}
	return opts, nil
}

// WithLevel 设置日志级别
func (c LogConfig) WithLevel(level string) LogConfig {
	c.Level = level
	return c
}

// WithFormat 设置输出格式
func (c LogConfig) WithFormat(format string) LogConfig {
	c.Format = format
	return c
}

// WithFile 设置日志文件路径
func (c LogConfig) WithFile(path string) LogConfig {
	c.File = path
	return c
}
