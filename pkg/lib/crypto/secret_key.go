package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/dep2p/go-keycore/pkg/lib/strkey"
)

// ============================================================================
//                              SecretKey
// ============================================================================

// SecretKey Ed25519 私钥（64 字节扩展格式：种子 + 公钥）
//
// SecretKey 独占其存储，只能以指针形式持有。使用完毕必须调用 Destroy()，
// 存储会被清零；推荐写法：
//
//	sk, err := crypto.GenerateSecretKey()
//	if err != nil {
//	    return err
//	}
//	defer sk.Destroy()
//
// 跨 goroutine 传递时所有权必须显式转移，构造后存储只读（Destroy 除外）。
type SecretKey struct {
	keyType KeyType
	key     [SecretKeySize]byte

	destroyOnce sync.Once
}

// newSecretKey 分配私钥并注册兜底清零
func newSecretKey() *SecretKey {
	sk := &SecretKey{keyType: KeyTypeEd25519}
	runtime.SetFinalizer(sk, func(k *SecretKey) { k.wipe() })
	return sk
}

// GenerateSecretKey 使用系统随机源生成私钥
func GenerateSecretKey() (*SecretKey, error) {
	return GenerateSecretKeyWithReader(rand.Reader)
}

// GenerateSecretKeyWithReader 使用指定的随机源生成私钥
//
// 随机源失败视为 ErrInternalCrypto。
func GenerateSecretKeyWithReader(src io.Reader) (*SecretKey, error) {
	var pk [PublicKeySize]byte
	sk := newSecretKey()
	if err := keypair(src, &pk, &sk.key); err != nil {
		sk.Destroy()
		return nil, fmt.Errorf("generating random secret key: %w", err)
	}
	return sk, nil
}

// MustGenerateSecretKey 生成私钥，原语失败时 panic
func MustGenerateSecretKey() *SecretKey {
	sk, err := GenerateSecretKey()
	mustNotFail(err)
	return sk
}

// SecretKeyFromSeed 由 32 字节种子确定性地构造私钥
//
// 同一种子总是得到同一密钥对。seed 不会被修改或保留。
func SecretKeyFromSeed(seed []byte) (*SecretKey, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("%w: seed expected %d bytes, got %d", ErrInvalidInput, SeedSize, len(seed))
	}

	var s [SeedSize]byte
	defer Wipe(s[:])
	copy(s[:], seed)

	var pk [PublicKeySize]byte
	sk := newSecretKey()
	if err := seedKeypair(&pk, &sk.key, &s); err != nil {
		sk.Destroy()
		return nil, fmt.Errorf("generating secret key from seed: %w", err)
	}
	return sk, nil
}

// SecretKeyFromStrKeySeed 由种子文本构造私钥
//
// 版本不是 Ed25519 种子、载荷长度或文本长度不符时返回 ErrInvalidSeed。
func SecretKeyFromStrKeySeed(text string) (*SecretKey, error) {
	if len(text) != strkey.EncodedSize(SeedSize) {
		return nil, fmt.Errorf("%w: %w: expected %d chars", ErrInvalidSeed, strkey.ErrMalformedEncoding, strkey.EncodedSize(SeedSize))
	}
	seed, err := strkey.DecodeVersion(strkey.VersionSeedEd25519, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSeed, err)
	}
	defer Wipe(seed)

	return SecretKeyFromSeed(seed)
}

// UseSecretKey 在 fn 执行期间持有 sk，返回（包括 panic）时一定清零
func UseSecretKey(sk *SecretKey, fn func(*SecretKey) error) error {
	defer sk.Destroy()
	return fn(sk)
}

// Type 返回密钥类型
func (sk *SecretKey) Type() KeyType {
	return sk.keyType
}

// PublicKey 派生公钥
func (sk *SecretKey) PublicKey() (PublicKey, error) {
	if err := sk.keyType.Validate(); err != nil {
		return PublicKey{}, err
	}
	pk := PublicKey{keyType: sk.keyType}
	if err := skToPK(&pk.key, &sk.key); err != nil {
		return PublicKey{}, err
	}
	return pk, nil
}

// MustPublicKey 派生公钥，原语失败时 panic
func (sk *SecretKey) MustPublicKey() PublicKey {
	pk, err := sk.PublicKey()
	mustNotFail(err)
	return pk
}

// Seed 派生种子
//
// 返回的 Seed 由调用方拥有，需要单独 Destroy()。
func (sk *SecretKey) Seed() (*Seed, error) {
	if err := sk.keyType.Validate(); err != nil {
		return nil, err
	}
	seed := newSeed(sk.keyType)
	if err := skToSeed(&seed.value, &sk.key); err != nil {
		seed.Destroy()
		return nil, err
	}
	return seed, nil
}

// Sign 对消息生成确定性签名
func (sk *SecretKey) Sign(msg []byte) (Signature, error) {
	if err := sk.keyType.Validate(); err != nil {
		return nil, err
	}
	sig, err := signDetached(msg, &sk.key)
	if err != nil {
		return nil, fmt.Errorf("signing: %w", err)
	}
	return Signature(sig), nil
}

// MustSign 签名，原语失败时 panic
func (sk *SecretKey) MustSign(msg []byte) Signature {
	sig, err := sk.Sign(msg)
	mustNotFail(err)
	return sig
}

// IsZero 检查私钥存储是否全零（未初始化或已销毁）
func (sk *SecretKey) IsZero() bool {
	return isZero(sk.key[:])
}

// Equal 常量时间比较两个私钥
func (sk *SecretKey) Equal(other *SecretKey) bool {
	if other == nil {
		return false
	}
	return sk.keyType == other.keyType && constantTimeEqual(sk.key[:], other.key[:])
}

// StrKeySeed 返回种子文本编码
//
// 返回值含秘密，使用后调用 Destroy()。
func (sk *SecretKey) StrKeySeed() (*SecretValue, error) {
	seed, err := sk.Seed()
	if err != nil {
		return nil, err
	}
	defer seed.Destroy()
	return seed.StrKey()
}

// StrKeyPublic 返回公钥文本编码
func (sk *SecretKey) StrKeyPublic() (string, error) {
	pk, err := sk.PublicKey()
	if err != nil {
		return "", err
	}
	return pk.StrKey()
}

// Destroy 清零私钥存储
//
// 可重复调用。
func (sk *SecretKey) Destroy() {
	if sk == nil {
		return
	}
	sk.destroyOnce.Do(func() {
		sk.wipe()
		runtime.SetFinalizer(sk, nil)
	})
}

func (sk *SecretKey) wipe() {
	Wipe(sk.key[:])
}

// String 实现 fmt.Stringer，不输出秘密
func (sk *SecretKey) String() string {
	return fmt.Sprintf("SecretKey(%s, redacted)", sk.keyType)
}

// GoString 实现 fmt.GoStringer，不输出秘密
func (sk *SecretKey) GoString() string {
	return sk.String()
}
