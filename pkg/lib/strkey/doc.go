// Package strkey 提供带版本字节和校验和的密钥文本编码
//
// 编码格式：
//
//	base32( version || payload || crc16(version || payload) )
//
// 其中 base32 为 RFC 4648 标准字母表（无填充），crc16 为 CRC-16/XMODEM，
// 以小端序追加在载荷之后。版本字节决定了文本的首字母：
//
//   - VersionPublicKeyEd25519 (6 << 3)：以 'G' 开头的 Ed25519 公钥
//   - VersionSeedEd25519 (18 << 3)：以 'S' 开头的 Ed25519 种子
//
// # 快速开始
//
//	text := strkey.Encode(strkey.VersionPublicKeyEd25519, pub[:])
//	payload, err := strkey.DecodeVersion(strkey.VersionPublicKeyEd25519, text)
//
// # 校验规则
//
//   - 校验和必须匹配
//   - 文本必须是规范编码（重新编码后与输入逐字符一致）
//   - DecodeVersion 额外检查版本字节与载荷长度
//
// 任何校验失败都返回 ErrMalformedEncoding（可用 errors.Is 判断），不返回部分结果。
//
// # 架构层
//
//   - 层级：pkg（公共包）
//   - 依赖：无
package strkey
