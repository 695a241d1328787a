package sigcache

import (
	"sync"

	"github.com/dep2p/go-keycore/pkg/lib/crypto"
)

// ============================================================================
//                              进程级共享实例
// ============================================================================

var (
	defaultOnce  sync.Once
	defaultCache *Cache
)

// Default 返回进程级共享缓存（默认容量，sha256 缓存键）
//
// 需要独立实例或自定义容量时使用 New 或 Module。
func Default() *Cache {
	defaultOnce.Do(func() {
		c, err := New(DefaultOptions())
		if err != nil {
			panic(err)
		}
		defaultCache = c
	})
	return defaultCache
}

// VerifySignature 使用共享缓存验证签名
func VerifySignature(pk crypto.PublicKey, sig crypto.Signature, msg []byte) bool {
	return Default().Verify(pk, sig, msg)
}

// ClearVerifyCache 清空共享缓存
func ClearVerifyCache() {
	Default().Clear()
}

// FlushVerifyCacheCounts 读取并清零共享缓存的计数器
func FlushVerifyCacheCounts() (hits, misses uint64) {
	return Default().FlushCounts()
}
