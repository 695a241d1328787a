// Package sigcache 实现签名验证缓存
//
// Cache 是一个有界 LRU 存储，将 (公钥, 签名, 消息) 三元组的摘要映射到
// Ed25519 验证结果。验证函数是纯函数，因此缓存只影响延迟，不影响结果。
//
// # 验证流程
//
//  1. 签名长度不是 64 字节时直接返回 false，不访问缓存
//  2. 计算缓存键 digest(pk || sig || msg)
//  3. 加锁查询，命中则命中计数加一并返回缓存结果
//  4. 未命中则未命中计数加一，释放锁后调用签名原语验证，
//     再加锁写入结果
//
// 两个 goroutine 可能同时验证同一个未缓存的签名，各自调用一次原语；
// 写入顺序不影响正确性。
//
// # 计数器
//
// 命中/未命中计数由 FlushCounts 原子地读取并清零。Reporter 周期性地
// 调用 FlushCounts 并将结果累加到 prometheus 计数器。
//
// # Fx 模块
//
//	app := fx.New(
//	    sigcache.Module(),
//	    fx.Invoke(func(c *sigcache.Cache) { ... }),
//	)
package sigcache
