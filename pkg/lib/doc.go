// Package lib 包含与服务装配无关的基础库
//
//   - crypto: 密钥、种子、签名和摘要
//   - strkey: 带版本字节和校验和的密钥文本编码
//   - log: 按子系统分级的日志封装
//
// 这些包不依赖 fx，也不依赖 internal/ 下的任何组件，可以单独使用。
//
// # 使用示例
//
//	import (
//	    "github.com/dep2p/go-keycore/pkg/lib/crypto"
//	    "github.com/dep2p/go-keycore/pkg/lib/log"
//	    "github.com/dep2p/go-keycore/pkg/lib/strkey"
//	)
package lib
