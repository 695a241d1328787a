package sigcache

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/dep2p/go-keycore/pkg/lib/crypto"
)

// Item 一条待验证的签名
type Item struct {
	PublicKey crypto.PublicKey
	Signature crypto.Signature
	Message   []byte
}

// VerifyBatch 并发验证一组签名，结果与 items 一一对应
//
// parallelism <= 0 时使用 GOMAXPROCS。每条签名都经过缓存，计数规则与 Verify 相同。
// ctx 取消后未开始的条目不再验证，返回 ctx 的错误。
func (c *Cache) VerifyBatch(ctx context.Context, items []Item, parallelism int) ([]bool, error) {
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	results := make([]bool, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i := range items {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			it := &items[i]
			results[i] = c.Verify(it.PublicKey, it.Signature, it.Message)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
