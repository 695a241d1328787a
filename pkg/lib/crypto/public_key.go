package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/dep2p/go-keycore/pkg/lib/strkey"
)

// ============================================================================
//                              PublicKey
// ============================================================================

// PublicKey 公钥
//
// 值类型，可比较，可作为 map 键。非秘密，可自由复制和记录日志。
// 零值是全零的 Ed25519 公钥。
type PublicKey struct {
	keyType KeyType
	key     [PublicKeySize]byte
}

// NewPublicKey 从原始字节创建公钥
func NewPublicKey(kt KeyType, raw []byte) (PublicKey, error) {
	if err := kt.Validate(); err != nil {
		return PublicKey{}, err
	}
	if len(raw) != PublicKeySize {
		return PublicKey{}, fmt.Errorf("%w: public key expected %d bytes, got %d", ErrInvalidInput, PublicKeySize, len(raw))
	}
	pk := PublicKey{keyType: kt}
	copy(pk.key[:], raw)
	return pk, nil
}

// PublicKeyFromBytes 从原始字节创建 Ed25519 公钥
func PublicKeyFromBytes(raw []byte) (PublicKey, error) {
	return NewPublicKey(KeyTypeEd25519, raw)
}

// PublicKeyFromStrKey 解码公钥文本
//
// 版本字节不是公钥版本（例如种子文本）时按编码错误处理。
func PublicKeyFromStrKey(text string) (PublicKey, error) {
	version, payload, err := strkey.Decode(text)
	if err != nil {
		return PublicKey{}, fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}
	kt, err := KeyTypeFromPublicKeyVersion(version)
	if err != nil {
		return PublicKey{}, fmt.Errorf("%w: %w: version %s", ErrInvalidPublicKey, strkey.ErrMalformedEncoding, version)
	}
	if len(text) != strkey.EncodedSize(PublicKeySize) || len(payload) != PublicKeySize {
		return PublicKey{}, fmt.Errorf("%w: %w: payload %d bytes", ErrInvalidPublicKey, strkey.ErrMalformedEncoding, len(payload))
	}
	return NewPublicKey(kt, payload)
}

// RandomPublicKey 生成随机公钥（不对应任何私钥，用于测试）
func RandomPublicKey() (PublicKey, error) {
	pk := PublicKey{keyType: KeyTypeEd25519}
	if err := secureRandomBytes(rand.Reader, pk.key[:]); err != nil {
		return PublicKey{}, err
	}
	return pk, nil
}

// Type 返回密钥类型
func (pk PublicKey) Type() KeyType {
	return pk.keyType
}

// Bytes 返回原始公钥字节的副本
func (pk PublicKey) Bytes() []byte {
	buf := make([]byte, PublicKeySize)
	copy(buf, pk.key[:])
	return buf
}

// Ed25519 返回 Ed25519 公钥数组
func (pk PublicKey) Ed25519() [PublicKeySize]byte {
	return pk.key
}

// Equal 比较两个公钥
func (pk PublicKey) Equal(other PublicKey) bool {
	return pk == other
}

// IsZero 检查公钥是否全零
func (pk PublicKey) IsZero() bool {
	return isZero(pk.key[:])
}

// Hash 返回用于哈希表分桶的短哈希（前 4 字节，大端序）
func (pk PublicKey) Hash() uint64 {
	return uint64(binary.BigEndian.Uint32(pk.key[:4]))
}

// Hex 返回十六进制表示
func (pk PublicKey) Hex() string {
	return hex.EncodeToString(pk.key[:])
}

// StrKey 返回公钥文本编码
func (pk PublicKey) StrKey() (string, error) {
	version, err := PublicKeyVersion(pk.keyType)
	if err != nil {
		return "", err
	}
	return strkey.Encode(version, pk.key[:]), nil
}

// String 实现 fmt.Stringer，返回文本编码
func (pk PublicKey) String() string {
	s, err := pk.StrKey()
	if err != nil {
		return fmt.Sprintf("PublicKey(%s, %s)", pk.keyType, pk.Hex())
	}
	return s
}

// MarshalText 实现 encoding.TextMarshaler
func (pk PublicKey) MarshalText() ([]byte, error) {
	s, err := pk.StrKey()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (pk *PublicKey) UnmarshalText(text []byte) error {
	parsed, err := PublicKeyFromStrKey(string(text))
	if err != nil {
		return err
	}
	*pk = parsed
	return nil
}
