package crypto

import "testing"

func TestWipe(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5}
	Wipe(b)
	if !isZero(b) {
		t.Errorf("Wipe() left %v", b)
	}

	// 空切片和 nil 安全
	Wipe(nil)
	Wipe([]byte{})
}
