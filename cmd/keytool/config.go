package main

import (
	"flag"
	"fmt"

	"github.com/dep2p/go-keycore/config"
	"github.com/dep2p/go-keycore/pkg/lib/log"
)

// ============================================================================
//                              配置加载（CLI 专用）
// ============================================================================

// globalFlags 全局选项
type globalFlags struct {
	configFile string
	preset     string
	logLevel   string
	verbose    bool
}

func registerGlobalFlags(fs *flag.FlagSet) *globalFlags {
	g := &globalFlags{}
	fs.StringVar(&g.configFile, "config", "", "配置文件路径")
	fs.StringVar(&g.preset, "preset", "", "预设配置 (default/minimal/server)")
	fs.StringVar(&g.logLevel, "log-level", "", "日志级别，覆盖配置文件和环境变量")
	fs.BoolVar(&g.verbose, "v", false, "输出 debug 日志")
	return g
}

// loadConfig 合并配置
//
// 优先级（从高到低）：
//  1. 命令行参数
//  2. 环境变量（KEYCORE_* 前缀）
//  3. 配置文件
//  4. 默认值
func (g *globalFlags) loadConfig() (*config.Config, error) {
	cfg := config.NewConfig()
	if g.configFile != "" {
		var err error
		if cfg, err = config.LoadFile(g.configFile); err != nil {
			return nil, fmt.Errorf("加载配置文件失败: %w", err)
		}
	}

	if err := config.ApplyEnv(cfg); err != nil {
		return nil, fmt.Errorf("环境变量无效: %w", err)
	}

	if g.preset != "" {
		if err := config.ApplyPreset(cfg, g.preset); err != nil {
			return nil, err
		}
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if g.verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("配置错误: %w", err)
	}
	return cfg, nil
}

// setupLogging 设置命令行工具的日志
//
// 日志写到 stderr，不混入命令输出。
func (g *globalFlags) setupLogging() error {
	opts, err := log.OptionsFromEnv()
	if err != nil {
		return err
	}
	if g.logLevel != "" {
		if opts, err = opts.WithLevelSpec(g.logLevel); err != nil {
			return err
		}
	}
	if g.verbose {
		opts.Level = log.LevelDebug
	}
	log.Configure(opts)
	return nil
}
