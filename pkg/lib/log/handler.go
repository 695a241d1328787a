package log

import (
	"context"
	"log/slog"
)

// dynamicWriter 每次写入时读取当前输出目标
type dynamicWriter struct{}

func (dynamicWriter) Write(p []byte) (int, error) {
	stateMu.RLock()
	w := output
	stateMu.RUnlock()
	return w.Write(p)
}

// newHandler 创建带 subsystem 属性的 handler
func newHandler(subsystem string, opts Options) slog.Handler {
	hopts := &slog.HandlerOptions{
		Level:     opts.LevelFor(subsystem),
		AddSource: opts.AddSource,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				a.Key = "ts"
			case slog.LevelKey:
				if lvl, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(levelName(lvl))
				}
			}
			return a
		},
	}

	var h slog.Handler
	if opts.Format == FormatJSON {
		h = slog.NewJSONHandler(dynamicWriter{}, hopts)
	} else {
		h = slog.NewTextHandler(dynamicWriter{}, hopts)
	}
	return h.WithAttrs([]slog.Attr{slog.String("subsystem", subsystem)})
}

// levelName 将日志级别转换为小写名称
func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warn"
	case level >= slog.LevelInfo:
		return "info"
	default:
		return "debug"
	}
}

// discardHandler 丢弃所有日志
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
