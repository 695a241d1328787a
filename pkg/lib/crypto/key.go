// Package crypto 提供账本节点的身份密码学原语
package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/dep2p/go-keycore/pkg/lib/strkey"
)

// ============================================================================
//                              密钥类型定义
// ============================================================================

// KeyType 密钥类型
//
// 值与账本协议中的 PublicKeyType 枚举对齐：
//   - PUBLIC_KEY_TYPE_ED25519 = 0
type KeyType int

const (
	// KeyTypeEd25519 Ed25519 密钥
	KeyTypeEd25519 KeyType = 0
)

// 固定长度常量
const (
	// PublicKeySize 公钥大小（32 字节）
	PublicKeySize = 32
	// SecretKeySize 私钥大小（64 字节，种子 + 公钥）
	SecretKeySize = 64
	// SeedSize 种子大小（32 字节）
	SeedSize = 32
	// SignatureSize 签名大小（64 字节）
	SignatureSize = 64
	// DigestSize 摘要大小（32 字节）
	DigestSize = 32
)

// String 返回密钥类型名称
func (kt KeyType) String() string {
	switch kt {
	case KeyTypeEd25519:
		return "Ed25519"
	default:
		return "Unknown"
	}
}

// Validate 检查密钥类型是否被实现
func (kt KeyType) Validate() error {
	switch kt {
	case KeyTypeEd25519:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedKeyType, int(kt))
	}
}

// KeyTypes 支持的密钥类型列表
var KeyTypes = []KeyType{
	KeyTypeEd25519,
}

// ============================================================================
//                              版本字节映射
// ============================================================================

// PublicKeyVersion 返回公钥类型对应的文本编码版本
func PublicKeyVersion(kt KeyType) (strkey.VersionByte, error) {
	switch kt {
	case KeyTypeEd25519:
		return strkey.VersionPublicKeyEd25519, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedKeyType, int(kt))
	}
}

// KeyTypeFromPublicKeyVersion 返回文本编码版本对应的公钥类型
func KeyTypeFromPublicKeyVersion(v strkey.VersionByte) (KeyType, error) {
	switch v {
	case strkey.VersionPublicKeyEd25519:
		return KeyTypeEd25519, nil
	default:
		return 0, fmt.Errorf("%w: version %s", ErrUnsupportedKeyType, v)
	}
}

// SeedVersion 返回种子类型对应的文本编码版本
func SeedVersion(kt KeyType) (strkey.VersionByte, error) {
	switch kt {
	case KeyTypeEd25519:
		return strkey.VersionSeedEd25519, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedKeyType, int(kt))
	}
}

// ============================================================================
//                              随机数工具
// ============================================================================

// RandomBytes 生成指定长度的加密安全随机字节
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if err := secureRandomBytes(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}

// secureRandomBytes 用 src 填满 buf
func secureRandomBytes(src io.Reader, buf []byte) error {
	if _, err := io.ReadFull(src, buf); err != nil {
		return fmt.Errorf("%w: random source: %v", ErrInternalCrypto, err)
	}
	return nil
}
