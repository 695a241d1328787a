package keycore

import (
	"fmt"
	"io"
	"os"

	"github.com/dep2p/go-keycore/config"
	"github.com/dep2p/go-keycore/pkg/lib/log"
)

// applyLogConfig 按配置设置全局日志
//
// 配置了日志文件时返回需要在关闭时释放的文件句柄。
func applyLogConfig(cfg config.LogConfig) (io.Closer, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	if cfg.File == "" {
		log.Configure(opts)
		return nil, nil
	}

	file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.Configure(opts)
	log.SetOutput(file)
	return file, nil
}
