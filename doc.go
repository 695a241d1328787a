// Package keycore 提供账本节点的身份密钥核心
//
// keycore 把 Ed25519 密钥原语、文本编码和带缓存的签名验证组装成一个
// 可启动、可停止的 Service。密钥本身的操作在 pkg/lib/crypto 中，
// 不需要 Service 也可以直接使用；Service 负责进程级的共享状态：
// 签名验证缓存、计数器导出和日志配置。
//
// # 快速开始
//
//	svc, err := keycore.New(
//	    keycore.WithPreset("server"),
//	    keycore.WithMetrics(prometheus.DefaultRegisterer),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := svc.Start(ctx); err != nil {
//	    return err
//	}
//	defer svc.Close()
//
//	sk, err := crypto.GenerateSecretKey()
//	if err != nil {
//	    return err
//	}
//	defer sk.Destroy()
//
//	sig := sk.MustSign(msg)
//	ok := svc.VerifySignature(sk.MustPublicKey(), sig, msg)
//
// # 文件组织
//
//   - keycore.go: Service 及其生命周期
//   - options.go: 用户选项
//   - fx.go: Fx 应用组装
//   - logging.go: 日志配置
//   - errors.go: 错误定义
package keycore
