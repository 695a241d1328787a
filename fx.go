package keycore

import (
	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-keycore/config"
	"github.com/dep2p/go-keycore/internal/core/sigcache"
	"github.com/dep2p/go-keycore/pkg/lib/log"
)

var fxLogger = log.Logger("keycore/fx")

// buildFxApp 构建 Fx 应用
//
// 加载顺序：
//  1. 配置（调用方已验证）
//  2. 可选依赖：prometheus Registerer、时钟
//  3. sigcache 模块
//  4. 用户自定义 Fx 选项
func buildFxApp(cfg *config.Config, o *options, svc *Service) (*fx.App, error) {
	modules := []fx.Option{
		fx.Supply(cfg),
	}

	if o.registerer != nil {
		reg := o.registerer
		modules = append(modules, fx.Provide(func() prometheus.Registerer { return reg }))
	}
	if o.clock != nil {
		clk := o.clock
		modules = append(modules, fx.Provide(func() clock.Clock { return clk }))
	}

	modules = append(modules,
		sigcache.Module(),
		fx.Populate(&svc.cache, &svc.reporter),
	)
	modules = append(modules, o.fxOptions...)

	// fx 自身的事件日志静默
	modules = append(modules,
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
	)

	app := fx.New(modules...)
	if err := app.Err(); err != nil {
		return nil, err
	}

	fxLogger.Debug("fx app built",
		"capacity", cfg.SigCache.Capacity,
		"key_digest", cfg.SigCache.KeyDigest,
		"flush_interval", cfg.SigCache.FlushInterval.String(),
		"metrics", cfg.SigCache.EnableMetrics)
	return app, nil
}
