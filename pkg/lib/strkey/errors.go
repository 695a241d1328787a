package strkey

import "errors"

var (
	// ErrMalformedEncoding 编码文本无效（校验和、长度、字母表或版本不匹配）
	ErrMalformedEncoding = errors.New("malformed strkey encoding")

	// ErrInvalidVersion 版本字节未被识别
	ErrInvalidVersion = errors.New("invalid strkey version byte")
)
