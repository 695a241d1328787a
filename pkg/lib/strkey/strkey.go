package strkey

import (
	"crypto/subtle"
	"encoding/base32"
	"encoding/binary"
	"fmt"
)

// VersionByte 版本字节，标识载荷的语义
type VersionByte byte

const (
	// VersionPublicKeyEd25519 Ed25519 公钥（'G'）
	VersionPublicKeyEd25519 VersionByte = 6 << 3
	// VersionSeedEd25519 Ed25519 种子（'S'）
	VersionSeedEd25519 VersionByte = 18 << 3
)

// checksumSize 校验和长度（字节）
const checksumSize = 2

// encoding 无填充的标准 base32
var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// String 返回版本名称
func (v VersionByte) String() string {
	switch v {
	case VersionPublicKeyEd25519:
		return "PublicKeyEd25519"
	case VersionSeedEd25519:
		return "SeedEd25519"
	default:
		return fmt.Sprintf("VersionByte(%d)", byte(v))
	}
}

// PayloadSize 返回版本对应的载荷长度
//
// 未识别的版本返回 (0, false)。
func PayloadSize(v VersionByte) (int, bool) {
	switch v {
	case VersionPublicKeyEd25519, VersionSeedEd25519:
		return 32, true
	default:
		return 0, false
	}
}

// EncodedSize 返回 payloadLen 字节载荷编码后的文本长度
func EncodedSize(payloadLen int) int {
	return ((payloadLen+1+checksumSize)*8 + 4) / 5
}

// Encode 编码 (version, payload)
//
// 结果完全确定，长度只取决于载荷长度。
func Encode(version VersionByte, payload []byte) string {
	return string(EncodeBytes(version, payload))
}

// EncodeBytes 与 Encode 相同，但结果写入调用方拥有的字节切片
//
// 载荷为秘密（种子）时使用，结果可以被清零。
func EncodeBytes(version VersionByte, payload []byte) []byte {
	raw := make([]byte, 0, 1+len(payload)+checksumSize)
	raw = append(raw, byte(version))
	raw = append(raw, payload...)
	raw = binary.LittleEndian.AppendUint16(raw, checksum(raw))
	defer wipe(raw)

	out := make([]byte, encoding.EncodedLen(len(raw)))
	encoding.Encode(out, raw)
	return out
}

// Decode 解码文本，返回版本字节和载荷
//
// 只检查校验和与规范性，不检查版本是否被识别。
// 需要限定版本时使用 DecodeVersion。
func Decode(text string) (VersionByte, []byte, error) {
	if len(text) < EncodedSize(0) {
		return 0, nil, fmt.Errorf("%w: text too short (%d chars)", ErrMalformedEncoding, len(text))
	}
	switch len(text) % 8 {
	case 1, 3, 6:
		return 0, nil, fmt.Errorf("%w: invalid text length %d", ErrMalformedEncoding, len(text))
	}

	raw, err := encoding.DecodeString(text)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}
	defer wipe(raw)

	// 拒绝非规范文本（例如末尾多余比特非零），确保每个字符都受校验
	canonical := encoding.EncodeToString(raw)
	if subtle.ConstantTimeCompare([]byte(canonical), []byte(text)) != 1 {
		return 0, nil, fmt.Errorf("%w: non-canonical text", ErrMalformedEncoding)
	}

	body := raw[:len(raw)-checksumSize]
	want := binary.LittleEndian.Uint16(raw[len(raw)-checksumSize:])
	if checksum(body) != want {
		return 0, nil, fmt.Errorf("%w: checksum mismatch", ErrMalformedEncoding)
	}

	payload := make([]byte, len(body)-1)
	copy(payload, body[1:])
	return VersionByte(body[0]), payload, nil
}

// DecodeVersion 解码文本并要求版本为 expected
//
// 同时检查载荷长度与版本定义一致。
func DecodeVersion(expected VersionByte, text string) ([]byte, error) {
	size, ok := PayloadSize(expected)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidVersion, expected)
	}
	if len(text) != EncodedSize(size) {
		return nil, fmt.Errorf("%w: expected %d chars, got %d", ErrMalformedEncoding, EncodedSize(size), len(text))
	}

	version, payload, err := Decode(text)
	if err != nil {
		return nil, err
	}
	if version != expected {
		wipe(payload)
		return nil, fmt.Errorf("%w: version %s, want %s", ErrMalformedEncoding, version, expected)
	}
	if len(payload) != size {
		wipe(payload)
		return nil, fmt.Errorf("%w: payload %d bytes, want %d", ErrMalformedEncoding, len(payload), size)
	}
	return payload, nil
}

// IsValid 检查文本是否为 expected 版本的有效编码
func IsValid(expected VersionByte, text string) bool {
	payload, err := DecodeVersion(expected, text)
	if err != nil {
		return false
	}
	wipe(payload)
	return true
}

// wipe 清零中间缓冲区（可能含种子）
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
