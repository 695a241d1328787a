package crypto

import (
	"io"
	"runtime"
	"sync"
)

// SecretValue 秘密文本（如种子编码）
//
// 内容保存在可清零的字节缓冲区中，而不是不可变的 string。
type SecretValue struct {
	value []byte

	destroyOnce sync.Once
}

func newSecretValue(b []byte) *SecretValue {
	v := &SecretValue{value: b}
	runtime.SetFinalizer(v, func(x *SecretValue) { Wipe(x.value) })
	return v
}

// Bytes 返回内容视图，Destroy() 之后读到全零
func (v *SecretValue) Bytes() []byte {
	return v.value
}

// Len 返回内容长度
func (v *SecretValue) Len() int {
	return len(v.value)
}

// Reveal 返回内容的 string 副本
//
// string 无法清零，只在必须交给外部接口时使用。
func (v *SecretValue) Reveal() string {
	return string(v.value)
}

// WriteTo 实现 io.WriterTo，直接写出内容，不经过 string
func (v *SecretValue) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(v.value)
	return int64(n), err
}

// Equal 常量时间比较内容与 text
func (v *SecretValue) Equal(text string) bool {
	return constantTimeEqual(v.value, []byte(text))
}

// Destroy 清零内容
func (v *SecretValue) Destroy() {
	if v == nil {
		return
	}
	v.destroyOnce.Do(func() {
		Wipe(v.value)
		runtime.SetFinalizer(v, nil)
	})
}

// String 实现 fmt.Stringer，不输出秘密
func (v *SecretValue) String() string {
	return "SecretValue(redacted)"
}
