// Package log 提供统一日志接口
//
// 基于 Go 标准库 log/slog 封装，支持按子系统配置日志级别，
// 运行时切换输出目标、级别和格式。
//
// 使用示例:
//
//	var logger = log.Logger("sigcache")
//
//	func flush() {
//	    logger.Debug("verify cache counters", "hits", hits, "misses", misses)
//	}
//
// 环境变量配置（见 OptionsFromEnv）:
//
//	KEYCORE_LOG_LEVEL=sigcache=debug,info
//	KEYCORE_LOG_FORMAT=json
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

// 日志级别常量（从 slog 导出，方便使用）
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// ============================================================================
//                              全局状态
// ============================================================================

var (
	stateMu   sync.RWMutex
	output    io.Writer = os.Stderr
	options             = DefaultOptions()
	discarded bool
)

// Configure 替换全部日志选项
func Configure(opts Options) {
	stateMu.Lock()
	defer stateMu.Unlock()
	options = opts.clone()
	discarded = false
}

// CurrentOptions 返回当前日志选项的副本
func CurrentOptions() Options {
	stateMu.RLock()
	defer stateMu.RUnlock()
	return options.clone()
}

// SetOutput 设置日志输出目标
//
// 已经创建的 LazyLogger 立即生效。
//
// 示例：
//
//	file, _ := os.OpenFile("keycore.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
//	log.SetOutput(file)
func SetOutput(w io.Writer) {
	stateMu.Lock()
	defer stateMu.Unlock()
	output = w
	discarded = false
}

// SetLevel 设置默认日志级别
func SetLevel(level slog.Level) {
	stateMu.Lock()
	defer stateMu.Unlock()
	options.Level = level
}

// SetSubsystemLevel 设置指定子系统的日志级别
func SetSubsystemLevel(subsystem string, level slog.Level) {
	stateMu.Lock()
	defer stateMu.Unlock()
	if options.SubsystemLevels == nil {
		options.SubsystemLevels = make(map[string]slog.Level)
	}
	options.SubsystemLevels[subsystem] = level
}

// Discard 丢弃所有日志，直到下一次 Configure 或 SetOutput
//
// 主要用于测试和命令行工具的静默模式。
func Discard() {
	stateMu.Lock()
	defer stateMu.Unlock()
	discarded = true
}

// New 按当前配置创建子系统 Logger
//
// 返回的 *slog.Logger 固定了创建时的级别和格式，输出目标仍然动态跟随 SetOutput。
func New(subsystem string) *slog.Logger {
	stateMu.RLock()
	opts := options
	off := discarded
	stateMu.RUnlock()

	if off {
		return slog.New(discardHandler{})
	}
	return slog.New(newHandler(subsystem, opts))
}

// ============================================================================
//                              LazyLogger
// ============================================================================

// LazyLogger 懒加载 logger
//
// 每次日志调用时都按当前全局配置构建 handler，
// 因此可以作为包级变量在 init 之前声明。
//
//	var logger = log.Logger("sigcache")
type LazyLogger struct {
	subsystem string
}

// Logger 返回带子系统名的 LazyLogger
func Logger(subsystem string) *LazyLogger {
	return &LazyLogger{subsystem: subsystem}
}

// Subsystem 返回子系统名
func (l *LazyLogger) Subsystem() string {
	return l.subsystem
}

// Enabled 检查指定级别在当前配置下是否输出
func (l *LazyLogger) Enabled(level slog.Level) bool {
	return New(l.subsystem).Enabled(context.Background(), level)
}

// Debug 输出 Debug 级别日志
func (l *LazyLogger) Debug(msg string, args ...any) {
	New(l.subsystem).Debug(msg, args...)
}

// Info 输出 Info 级别日志
func (l *LazyLogger) Info(msg string, args ...any) {
	New(l.subsystem).Info(msg, args...)
}

// Warn 输出 Warn 级别日志
func (l *LazyLogger) Warn(msg string, args ...any) {
	New(l.subsystem).Warn(msg, args...)
}

// Error 输出 Error 级别日志
func (l *LazyLogger) Error(msg string, args ...any) {
	New(l.subsystem).Error(msg, args...)
}

// DebugContext 带 context 的 Debug 日志
func (l *LazyLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	New(l.subsystem).DebugContext(ctx, msg, args...)
}

// InfoContext 带 context 的 Info 日志
func (l *LazyLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	New(l.subsystem).InfoContext(ctx, msg, args...)
}

// With 添加额外的属性
func (l *LazyLogger) With(args ...any) *slog.Logger {
	return New(l.subsystem).With(args...)
}
