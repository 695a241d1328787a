package crypto

import "runtime"

// Wipe 将缓冲区清零
//
// 尽力而为：阻止内联并保持 b 存活，避免编译器消除写入。
//
//go:noinline
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(&b)
}

// isZero 检查缓冲区是否全零
//
// 不要求常量时间：结果不依赖秘密内容的具体取值。
func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
