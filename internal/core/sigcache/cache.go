package sigcache

import (
	"fmt"
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"

	"github.com/dep2p/go-keycore/pkg/lib/crypto"
)

// DefaultCapacity 默认缓存容量
//
// 跨实现的命中/未命中计数比对依赖这个值，不要随意修改。
const DefaultCapacity = 0xffff

// VerifyFunc 未缓存的签名验证函数
type VerifyFunc func(pk crypto.PublicKey, sig crypto.Signature, msg []byte) bool

// directVerify 直接调用签名原语
func directVerify(pk crypto.PublicKey, sig crypto.Signature, msg []byte) bool {
	return pk.Verify(sig, msg)
}

// Options 缓存构造选项
type Options struct {
	// Capacity 最大条目数
	Capacity int

	// KeyDigest 缓存键摘要算法，空值为 sha256
	KeyDigest crypto.HashAlgorithm

	// Verify 未命中时调用的验证函数，nil 使用 crypto.PublicKey.Verify
	Verify VerifyFunc
}

// DefaultOptions 返回默认构造选项
func DefaultOptions() Options {
	return Options{
		Capacity:  DefaultCapacity,
		KeyDigest: crypto.HashSHA256,
	}
}

// ============================================================================
//                              Cache
// ============================================================================

// Cache 签名验证缓存
//
// 并发安全。存储和计数器由同一把锁保护，锁只在查询或写入期间持有，
// 不会跨越签名原语调用。
type Cache struct {
	mu     sync.Mutex
	store  *simplelru.LRU[crypto.Digest, bool]
	hits   uint64
	misses uint64

	capacity int
	alg      crypto.HashAlgorithm
	hashers  sync.Pool
	verify   VerifyFunc
}

// New 创建签名验证缓存
func New(opts Options) (*Cache, error) {
	if opts.Capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, opts.Capacity)
	}
	if opts.KeyDigest == "" {
		opts.KeyDigest = crypto.HashSHA256
	}
	// 提前检查算法，池中的构造函数不会失败
	if _, err := crypto.NewHasher(opts.KeyDigest); err != nil {
		return nil, fmt.Errorf("sigcache: %w", err)
	}
	if opts.Verify == nil {
		opts.Verify = directVerify
	}

	store, err := simplelru.NewLRU[crypto.Digest, bool](opts.Capacity, nil)
	if err != nil {
		return nil, fmt.Errorf("sigcache: %w", err)
	}

	c := &Cache{
		store:    store,
		capacity: opts.Capacity,
		alg:      opts.KeyDigest,
		verify:   opts.Verify,
	}
	alg := opts.KeyDigest
	c.hashers.New = func() any {
		h, _ := crypto.NewHasher(alg)
		return h
	}
	return c, nil
}

// Key 计算缓存键：digest(pk || sig || msg)
func (c *Cache) Key(pk crypto.PublicKey, sig crypto.Signature, msg []byte) crypto.Digest {
	h := c.hashers.Get().(crypto.Hasher)
	defer c.hashers.Put(h)

	raw := pk.Ed25519()
	h.Add(raw[:])
	h.Add(sig)
	h.Add(msg)
	return h.Finish()
}

// Verify 验证签名，结果经过缓存
//
// 返回值与 pk.Verify(sig, msg) 完全一致。
func (c *Cache) Verify(pk crypto.PublicKey, sig crypto.Signature, msg []byte) bool {
	if !sig.HasValidLength() {
		return false
	}

	key := c.Key(pk, sig, msg)

	c.mu.Lock()
	if valid, ok := c.store.Get(key); ok {
		c.hits++
		c.mu.Unlock()
		return valid
	}
	c.misses++
	c.mu.Unlock()

	valid := c.verify(pk, sig, msg)

	c.mu.Lock()
	c.store.Add(key, valid)
	c.mu.Unlock()
	return valid
}

// Lookup 查询缓存键，命中时刷新该条目的最近使用时间
//
// 不影响命中/未命中计数。
func (c *Cache) Lookup(key crypto.Digest) (valid, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Get(key)
}

// Insert 写入缓存键，超出容量时淘汰最久未使用的条目
func (c *Cache) Insert(key crypto.Digest, valid bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Add(key, valid)
}

// Contains 检查缓存键是否存在，不刷新最近使用时间
func (c *Cache) Contains(key crypto.Digest) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Contains(key)
}

// Len 返回当前条目数
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Len()
}

// Capacity 返回最大条目数
func (c *Cache) Capacity() int {
	return c.capacity
}

// KeyDigest 返回缓存键摘要算法
func (c *Cache) KeyDigest() crypto.HashAlgorithm {
	return c.alg
}

// Clear 清空所有条目，计数器不受影响
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Purge()
}

// FlushCounts 读取并清零命中/未命中计数
func (c *Cache) FlushCounts() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	hits, misses = c.hits, c.misses
	c.hits, c.misses = 0, 0
	return hits, misses
}
