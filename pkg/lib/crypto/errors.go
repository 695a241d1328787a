// Package crypto 提供账本节点的身份密码学原语
package crypto

import "errors"

// ============================================================================
//                              错误定义
// ============================================================================

var (
	// ErrInvalidInput 调用方提供的输入长度或格式错误（可恢复，不会内部重试）
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedKeyType 不支持的密钥类型
	ErrUnsupportedKeyType = errors.New("unsupported key type")

	// ErrInternalCrypto 底层签名原语在合法输入上失败
	//
	// 表示内存损坏或原语实现损坏，调用方应视为不可恢复。
	ErrInternalCrypto = errors.New("internal crypto error")

	// ErrInvalidSeed 种子文本无效
	ErrInvalidSeed = errors.New("invalid seed")

	// ErrInvalidPublicKey 公钥文本无效
	ErrInvalidPublicKey = errors.New("invalid public key")
)

// mustNotFail 将 ErrInternalCrypto 类错误升级为 panic
//
// 用于 Must* 系列辅助函数。
func mustNotFail(err error) {
	if err != nil {
		panic(err)
	}
}
