package log

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// 环境变量
const (
	// EnvLevel 日志级别，格式: 子系统=级别,子系统=级别,默认级别
	EnvLevel = "KEYCORE_LOG_LEVEL"
	// EnvFormat 日志格式（text 或 json）
	EnvFormat = "KEYCORE_LOG_FORMAT"
	// EnvAddSource 是否输出源码位置（true 或 false）
	EnvAddSource = "KEYCORE_LOG_ADD_SOURCE"
)

// Format 日志输出格式
type Format int

const (
	// FormatText 文本格式（默认）
	FormatText Format = iota
	// FormatJSON JSON 格式
	FormatJSON
)

// String 返回格式名称
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "text"
}

// ParseFormat 解析格式名称，空字符串视为 text
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown log format %q", name)
	}
}

// ParseLevel 解析日志级别名称
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// Options 日志选项
type Options struct {
	// Level 默认日志级别
	Level slog.Level

	// SubsystemLevels 各子系统的日志级别
	SubsystemLevels map[string]slog.Level

	// Format 输出格式
	Format Format

	// AddSource 是否添加源码位置
	AddSource bool
}

// DefaultOptions 返回默认日志选项：info 级别，文本格式
func DefaultOptions() Options {
	return Options{
		Level:  slog.LevelInfo,
		Format: FormatText,
	}
}

// LevelFor 返回指定子系统生效的日志级别
func (o Options) LevelFor(subsystem string) slog.Level {
	if level, ok := o.SubsystemLevels[subsystem]; ok {
		return level
	}
	return o.Level
}

// WithLevelSpec 在 o 的基础上应用级别配置字符串
//
// 格式: subsystem=level,subsystem=level,defaultLevel
// 示例: sigcache=debug,warn
func (o Options) WithLevelSpec(spec string) (Options, error) {
	out := o.clone()
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		subsystem, levelName, ok := strings.Cut(part, "=")
		if !ok {
			level, err := ParseLevel(part)
			if err != nil {
				return o, err
			}
			out.Level = level
			continue
		}

		subsystem = strings.TrimSpace(subsystem)
		if subsystem == "" {
			return o, fmt.Errorf("empty subsystem in log level %q", part)
		}
		level, err := ParseLevel(levelName)
		if err != nil {
			return o, err
		}
		if out.SubsystemLevels == nil {
			out.SubsystemLevels = make(map[string]slog.Level)
		}
		out.SubsystemLevels[subsystem] = level
	}
	return out, nil
}

// OptionsFromEnv 在默认选项上应用 KEYCORE_LOG_* 环境变量
func OptionsFromEnv() (Options, error) {
	opts := DefaultOptions()

	if spec := os.Getenv(EnvLevel); spec != "" {
		var err error
		if opts, err = opts.WithLevelSpec(spec); err != nil {
			return DefaultOptions(), fmt.Errorf("%s: %w", EnvLevel, err)
		}
	}

	if name := os.Getenv(EnvFormat); name != "" {
		format, err := ParseFormat(name)
		if err != nil {
			return DefaultOptions(), fmt.Errorf("%s: %w", EnvFormat, err)
		}
		opts.Format = format
	}

	if v := os.Getenv(EnvAddSource); v != "" {
		opts.AddSource = v != "false" && v != "0"
	}

	return opts, nil
}

func (o Options) clone() Options {
	out := o
	if o.SubsystemLevels != nil {
		out.SubsystemLevels = make(map[string]slog.Level, len(o.SubsystemLevels))
		for k, v := range o.SubsystemLevels {
			out.SubsystemLevels[k] = v
		}
	}
	return out
}
