package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash"

	sha256 "github.com/minio/sha256-simd"
	"golang.org/x/crypto/blake2b"
	"lukechampine.com/blake3"
)

// ============================================================================
//                              摘要
// ============================================================================

// Digest 32 字节摘要，用作内容哈希和验证缓存键
type Digest [DigestSize]byte

// Hex 返回十六进制表示
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

// String 实现 fmt.Stringer
func (d Digest) String() string {
	return d.Hex()
}

// IsZero 检查摘要是否全零
func (d Digest) IsZero() bool {
	return isZero(d[:])
}

// Hash 返回用于哈希表分桶的短哈希（前 4 字节，大端序）
func (d Digest) Hash() uint64 {
	return uint64(binary.BigEndian.Uint32(d[:4]))
}

// SHA256 计算 data 的 SHA-256 摘要
func SHA256(data []byte) Digest {
	return Digest(sha256.Sum256(data))
}

// RandomDigest 生成随机摘要
func RandomDigest() (Digest, error) {
	var d Digest
	if err := secureRandomBytes(rand.Reader, d[:]); err != nil {
		return Digest{}, err
	}
	return d, nil
}

// ============================================================================
//                              摘要提供者
// ============================================================================

// HashAlgorithm 摘要算法
type HashAlgorithm string

const (
	// HashSHA256 SHA-256（默认，跨实现缓存键一致）
	HashSHA256 HashAlgorithm = "sha256"
	// HashBLAKE3 BLAKE3-256
	HashBLAKE3 HashAlgorithm = "blake3"
	// HashBLAKE2b BLAKE2b-256
	HashBLAKE2b HashAlgorithm = "blake2b"
)

// HashAlgorithms 所有支持的摘要算法
var HashAlgorithms = []HashAlgorithm{HashSHA256, HashBLAKE3, HashBLAKE2b}

// Hasher 可复用的增量摘要计算器
//
// 非并发安全：每个 goroutine 使用自己的实例。
type Hasher interface {
	// Reset 重置内部状态
	Reset()

	// Add 追加输入
	Add(p []byte)

	// Finish 输出摘要并重置，之后可以直接复用
	Finish() Digest
}

// NewHasher 创建指定算法的 Hasher
func NewHasher(alg HashAlgorithm) (Hasher, error) {
	switch alg {
	case HashSHA256, "":
		return NewSHA256Hasher(), nil
	case HashBLAKE3:
		return NewBLAKE3Hasher(), nil
	case HashBLAKE2b:
		return NewBLAKE2bHasher(), nil
	default:
		return nil, fmt.Errorf("%w: hash algorithm %q", ErrInvalidInput, string(alg))
	}
}

// NewSHA256Hasher 创建 SHA-256 Hasher
func NewSHA256Hasher() Hasher {
	return &digestHasher{h: sha256.New()}
}

// NewBLAKE3Hasher 创建 BLAKE3-256 Hasher
func NewBLAKE3Hasher() Hasher {
	return &digestHasher{h: blake3.New(DigestSize, nil)}
}

// NewBLAKE2bHasher 创建 BLAKE2b-256 Hasher
func NewBLAKE2bHasher() Hasher {
	// 不带密钥时 New256 不会失败
	h, err := blake2b.New256(nil)
	mustNotFail(err)
	return &digestHasher{h: h}
}

// digestHasher 基于 hash.Hash 的 Hasher
type digestHasher struct {
	h   hash.Hash
	buf [DigestSize]byte
}

func (d *digestHasher) Reset() {
	d.h.Reset()
}

func (d *digestHasher) Add(p []byte) {
	// hash.Hash.Write 永不返回错误
	_, _ = d.h.Write(p)
}

func (d *digestHasher) Finish() Digest {
	var out Digest
	copy(out[:], d.h.Sum(d.buf[:0]))
	d.h.Reset()
	return out
}
