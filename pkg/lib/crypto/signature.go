package crypto

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// Signature 签名
//
// 非秘密。长度可变以便承载外部输入；只有长度为 SignatureSize 的签名可能验证通过。
type Signature []byte

// SignatureFromHex 从十六进制解析签名
func SignatureFromHex(s string) (Signature, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return Signature(b), nil
}

// Hex 返回十六进制表示
func (s Signature) Hex() string {
	return hex.EncodeToString(s)
}

// Equal 比较两个签名
func (s Signature) Equal(other Signature) bool {
	return bytes.Equal(s, other)
}

// HasValidLength 检查签名长度是否符合 Ed25519
func (s Signature) HasValidLength() bool {
	return len(s) == SignatureSize
}

// Verify 直接验证签名（不经过缓存）
//
// 需要缓存时使用 internal/core/sigcache。
func (pk PublicKey) Verify(sig Signature, msg []byte) bool {
	if pk.keyType.Validate() != nil {
		return false
	}
	return VerifyDetached(sig, msg, &pk.key)
}
