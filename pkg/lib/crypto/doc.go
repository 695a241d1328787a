// Package crypto 提供账本节点的身份密码学原语
//
// 本包提供密钥表示、私钥生命周期管理（含安全清零）、确定性签名，
// 以及带版本校验的文本编码。签名验证的缓存层位于 internal/core/sigcache。
//
// # 支持的密钥类型
//
//   - Ed25519（目前唯一支持的类型）
//
// # 快速开始
//
// 生成密钥并签名：
//
//	sk, err := crypto.GenerateSecretKey()
//	defer sk.Destroy()
//	pk, err := sk.PublicKey()
//	sig, err := sk.Sign([]byte("hello"))
//
// 从种子文本恢复：
//
//	sk, err := crypto.SecretKeyFromStrKeySeed("SAAAA...")
//	defer sk.Destroy()
//
// 诊断输出：
//
//	crypto.LogKey(os.Stdout, "GA5WUJ54...")
//
// # 安全特性
//
//   - SecretKey / Seed / SecretValue 独占其存储，Destroy() 清零
//   - 忘记 Destroy 时由 finalizer 兜底清零
//   - 私钥不提供原始字节访问器，只有派生操作
//   - String() 不输出秘密内容
//
// # 架构层
//
//   - 层级：pkg（公共包）
//   - 依赖：pkg/lib/strkey
//   - 位置：Level 0（基础类型，无循环依赖）
package crypto
