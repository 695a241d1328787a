package crypto

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/dep2p/go-keycore/pkg/lib/strkey"
)

// Seed 私钥种子
//
// 与 SecretKey 相同的清零约束：独占存储，使用完毕调用 Destroy()。
type Seed struct {
	keyType KeyType
	value   [SeedSize]byte

	destroyOnce sync.Once
}

func newSeed(kt KeyType) *Seed {
	s := &Seed{keyType: kt}
	runtime.SetFinalizer(s, func(x *Seed) { Wipe(x.value[:]) })
	return s
}

// Type 返回密钥类型
func (s *Seed) Type() KeyType {
	return s.keyType
}

// Bytes 返回种子存储的视图
//
// 返回的切片与 Seed 共享存储，Destroy() 之后读到全零。
func (s *Seed) Bytes() []byte {
	return s.value[:]
}

// SecretKey 由种子构造私钥
func (s *Seed) SecretKey() (*SecretKey, error) {
	if err := s.keyType.Validate(); err != nil {
		return nil, err
	}
	return SecretKeyFromSeed(s.value[:])
}

// StrKey 返回种子文本编码
func (s *Seed) StrKey() (*SecretValue, error) {
	version, err := SeedVersion(s.keyType)
	if err != nil {
		return nil, err
	}
	return newSecretValue(strkey.EncodeBytes(version, s.value[:])), nil
}

// IsZero 检查种子存储是否全零
func (s *Seed) IsZero() bool {
	return isZero(s.value[:])
}

// Equal 常量时间比较两个种子
func (s *Seed) Equal(other *Seed) bool {
	if other == nil {
		return false
	}
	return s.keyType == other.keyType && constantTimeEqual(s.value[:], other.value[:])
}

// Destroy 清零种子存储
func (s *Seed) Destroy() {
	if s == nil {
		return
	}
	s.destroyOnce.Do(func() {
		Wipe(s.value[:])
		runtime.SetFinalizer(s, nil)
	})
}

// String 实现 fmt.Stringer，不输出秘密
func (s *Seed) String() string {
	return fmt.Sprintf("Seed(%s, redacted)", s.keyType)
}
