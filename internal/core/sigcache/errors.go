package sigcache

import "errors"

var (
	// ErrInvalidCapacity 缓存容量非正
	ErrInvalidCapacity = errors.New("sigcache: capacity must be positive")

	// ErrReporterStarted 导出器重复启动
	ErrReporterStarted = errors.New("sigcache: reporter already started")
)
