package sigcache

import (
	"bytes"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-keycore/pkg/lib/crypto"
)

// 全零种子签名 "hello" 的缓存键：sha256(pk || sig || "hello")
const zeroSeedHelloKeyHex = "c6da38d8618c785115261bf737633f23e2b60becea9251aa3dc18838551471aa"

// fixture 一组固定的签名三元组
type fixture struct {
	sk  *crypto.SecretKey
	pk  crypto.PublicKey
	sig crypto.Signature
	msg []byte
}

func newFixture(t *testing.T, seed byte, msg string) fixture {
	t.Helper()
	sk, err := crypto.SecretKeyFromSeed(bytes.Repeat([]byte{seed}, crypto.SeedSize))
	require.NoError(t, err)
	t.Cleanup(sk.Destroy)

	return fixture{
		sk:  sk,
		pk:  sk.MustPublicKey(),
		sig: sk.MustSign([]byte(msg)),
		msg: []byte(msg),
	}
}

// countingVerify 统计原语调用次数
type countingVerify struct {
	calls atomic.Int64
}

func (c *countingVerify) verify(pk crypto.PublicKey, sig crypto.Signature, msg []byte) bool {
	c.calls.Add(1)
	return pk.Verify(sig, msg)
}

func newTestCache(t *testing.T, capacity int) (*Cache, *countingVerify) {
	t.Helper()
	counter := &countingVerify{}
	c, err := New(Options{Capacity: capacity, Verify: counter.verify})
	require.NoError(t, err)
	return c, counter
}

func digestOf(i int) crypto.Digest {
	return crypto.SHA256([]byte(fmt.Sprintf("entry-%d", i)))
}

// ============================================================================
// 构造
// ============================================================================

func TestNew(t *testing.T) {
	c, err := New(DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 65535, c.Capacity())
	assert.Equal(t, crypto.HashSHA256, c.KeyDigest())
	assert.Zero(t, c.Len())

	c, err = New(Options{Capacity: 8})
	require.NoError(t, err)
	assert.Equal(t, crypto.HashSHA256, c.KeyDigest())
}

func TestNew_Invalid(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := New(Options{Capacity: n})
		assert.ErrorIs(t, err, ErrInvalidCapacity)
	}

	_, err := New(Options{Capacity: 8, KeyDigest: "md5"})
	assert.ErrorIs(t, err, crypto.ErrInvalidInput)
}

// ============================================================================
// 缓存键
// ============================================================================

func TestCache_Key(t *testing.T) {
	f := newFixture(t, 0, "hello")
	c, _ := newTestCache(t, 8)

	key := c.Key(f.pk, f.sig, f.msg)
	assert.Equal(t, zeroSeedHelloKeyHex, key.Hex())

	// 顺序固定为 pk || sig || msg
	var concat []byte
	concat = append(concat, f.pk.Bytes()...)
	concat = append(concat, f.sig...)
	concat = append(concat, f.msg...)
	assert.Equal(t, crypto.SHA256(concat), key)

	// 重复计算结果一致（hasher 复用）
	assert.Equal(t, key, c.Key(f.pk, f.sig, f.msg))
	assert.NotEqual(t, key, c.Key(f.pk, f.sig, []byte("hello!")))
}

func TestCache_KeyBLAKE3(t *testing.T) {
	f := newFixture(t, 0, "hello")

	c, err := New(Options{Capacity: 8, KeyDigest: crypto.HashBLAKE3})
	require.NoError(t, err)

	key := c.Key(f.pk, f.sig, f.msg)
	assert.NotEqual(t, zeroSeedHelloKeyHex, key.Hex())

	h := crypto.NewBLAKE3Hasher()
	h.Add(f.pk.Bytes())
	h.Add(f.sig)
	h.Add(f.msg)
	assert.Equal(t, h.Finish(), key)

	assert.True(t, c.Verify(f.pk, f.sig, f.msg))
}

// ============================================================================
// 验证
// ============================================================================

func TestCache_Verify_HitAndMiss(t *testing.T) {
	f := newFixture(t, 7, "hello")
	c, counter := newTestCache(t, 8)

	assert.True(t, c.Verify(f.pk, f.sig, f.msg))
	assert.True(t, c.Verify(f.pk, f.sig, f.msg))

	hits, misses := c.FlushCounts()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
	assert.Equal(t, int64(1), counter.calls.Load())

	// 读取后清零
	hits, misses = c.FlushCounts()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
}

func TestCache_Verify_EndToEnd(t *testing.T) {
	c, _ := newTestCache(t, DefaultCapacity)

	sk := crypto.MustGenerateSecretKey()
	defer sk.Destroy()
	pk := sk.MustPublicKey()
	sig := sk.MustSign([]byte("hello"))

	assert.True(t, c.Verify(pk, sig, []byte("hello")))
	assert.False(t, c.Verify(pk, sig, []byte("hello!")))
}

func TestCache_Verify_Transparent(t *testing.T) {
	f := newFixture(t, 1, "payload")
	other := newFixture(t, 2, "payload")

	tampered := append(crypto.Signature(nil), f.sig...)
	tampered[0] ^= 0x01

	cases := []struct {
		name string
		pk   crypto.PublicKey
		sig  crypto.Signature
		msg  []byte
	}{
		{"valid", f.pk, f.sig, f.msg},
		{"wrong message", f.pk, f.sig, []byte("payload!")},
		{"wrong key", other.pk, f.sig, f.msg},
		{"tampered signature", f.pk, tampered, f.msg},
		{"empty message", f.pk, f.sig, nil},
	}

	c, _ := newTestCache(t, 16)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			want := tc.pk.Verify(tc.sig, tc.msg)

			cold := c.Verify(tc.pk, tc.sig, tc.msg)
			assert.True(t, c.Contains(c.Key(tc.pk, tc.sig, tc.msg)))
			warm := c.Verify(tc.pk, tc.sig, tc.msg)

			assert.Equal(t, want, cold)
			assert.Equal(t, want, warm)
		})
	}

	hits, misses := c.FlushCounts()
	assert.Equal(t, uint64(len(cases)), hits)
	assert.Equal(t, uint64(len(cases)), misses)
}

func TestCache_Verify_WrongLength(t *testing.T) {
	f := newFixture(t, 3, "hello")
	c, counter := newTestCache(t, 8)

	for _, sig := range []crypto.Signature{nil, f.sig[:crypto.SignatureSize-1], append(append(crypto.Signature(nil), f.sig...), 0)} {
		assert.False(t, c.Verify(f.pk, sig, f.msg))
	}

	hits, misses := c.FlushCounts()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
	assert.Zero(t, c.Len())
	assert.Zero(t, counter.calls.Load())
}

// ============================================================================
// 容量与淘汰
// ============================================================================

func TestCache_Bound(t *testing.T) {
	const capacity = 4
	c, _ := newTestCache(t, capacity)

	for i := 0; i < capacity; i++ {
		c.Insert(digestOf(i), i%2 == 0)
	}
	require.Equal(t, capacity, c.Len())

	// 读取 0 号，最久未使用的变为 1 号
	valid, ok := c.Lookup(digestOf(0))
	require.True(t, ok)
	assert.True(t, valid)

	c.Insert(digestOf(capacity), true)

	assert.Equal(t, capacity, c.Len())
	assert.False(t, c.Contains(digestOf(1)), "least recently used entry must be evicted")
	for _, i := range []int{0, 2, 3, capacity} {
		assert.True(t, c.Contains(digestOf(i)), "entry %d", i)
	}
}

func TestCache_Bound_NoLookup(t *testing.T) {
	const capacity = 3
	c, _ := newTestCache(t, capacity)

	for i := 0; i <= capacity; i++ {
		c.Insert(digestOf(i), true)
	}
	assert.Equal(t, capacity, c.Len())
	assert.False(t, c.Contains(digestOf(0)))

	// Contains 不刷新最近使用时间
	assert.True(t, c.Contains(digestOf(1)))
	c.Insert(digestOf(capacity+1), true)
	assert.False(t, c.Contains(digestOf(1)))
}

func TestCache_Bound_ThroughVerify(t *testing.T) {
	c, counter := newTestCache(t, 2)

	a := newFixture(t, 10, "a")
	b := newFixture(t, 11, "b")
	d := newFixture(t, 12, "d")

	c.Verify(a.pk, a.sig, a.msg)
	c.Verify(b.pk, b.sig, b.msg)
	c.Verify(a.pk, a.sig, a.msg) // 命中，a 变为最近使用
	c.Verify(d.pk, d.sig, d.msg) // 淘汰 b

	assert.Equal(t, 2, c.Len())
	assert.True(t, c.Contains(c.Key(a.pk, a.sig, a.msg)))
	assert.False(t, c.Contains(c.Key(b.pk, b.sig, b.msg)))
	assert.Equal(t, int64(3), counter.calls.Load())

	c.Verify(b.pk, b.sig, b.msg)
	assert.Equal(t, int64(4), counter.calls.Load())
}

func TestCache_InsertOverwrites(t *testing.T) {
	c, _ := newTestCache(t, 4)
	key := digestOf(1)

	c.Insert(key, false)
	c.Insert(key, true)

	valid, ok := c.Lookup(key)
	assert.True(t, ok)
	assert.True(t, valid)
	assert.Equal(t, 1, c.Len())

	_, ok = c.Lookup(digestOf(2))
	assert.False(t, ok)
}

func TestCache_Clear(t *testing.T) {
	f := newFixture(t, 4, "hello")
	c, counter := newTestCache(t, 8)

	c.Verify(f.pk, f.sig, f.msg)
	c.Clear()
	assert.Zero(t, c.Len())

	c.Verify(f.pk, f.sig, f.msg)
	assert.Equal(t, int64(2), counter.calls.Load())

	// Clear 不清零计数器
	hits, misses := c.FlushCounts()
	assert.Zero(t, hits)
	assert.Equal(t, uint64(2), misses)
}

// ============================================================================
// 并发
// ============================================================================

func TestCache_Concurrent(t *testing.T) {
	const (
		workers    = 16
		iterations = 200
	)

	fixtures := []fixture{
		newFixture(t, 20, "m0"),
		newFixture(t, 21, "m1"),
		newFixture(t, 22, "m2"),
	}
	bad := fixtures[0]
	bad.msg = []byte("forged")
	fixtures = append(fixtures, bad)

	c, _ := newTestCache(t, 2)

	var (
		wg       sync.WaitGroup
		failures atomic.Int64
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				f := fixtures[(w+i)%len(fixtures)]
				want := !bytes.Equal(f.msg, []byte("forged"))
				if c.Verify(f.pk, f.sig, f.msg) != want {
					failures.Add(1)
				}
				if i%50 == 0 {
					c.Len()
				}
			}
		}(w)
	}
	wg.Wait()

	assert.Zero(t, failures.Load())
	assert.LessOrEqual(t, c.Len(), 2)

	hits, misses := c.FlushCounts()
	assert.Equal(t, uint64(workers*iterations), hits+misses)
}

// ============================================================================
// 共享实例
// ============================================================================

func TestDefault(t *testing.T) {
	f := newFixture(t, 0, "hello")

	ClearVerifyCache()
	FlushVerifyCacheCounts()

	assert.Same(t, Default(), Default())
	assert.Equal(t, DefaultCapacity, Default().Capacity())

	assert.True(t, VerifySignature(f.pk, f.sig, f.msg))
	assert.True(t, VerifySignature(f.pk, f.sig, f.msg))
	assert.False(t, VerifySignature(f.pk, f.sig, []byte("hello!")))

	hits, misses := FlushVerifyCacheCounts()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(2), misses)

	ClearVerifyCache()
	assert.Zero(t, Default().Len())
}
