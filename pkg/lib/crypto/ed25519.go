package crypto

import (
	"crypto/ed25519"
	"crypto/subtle"
	"fmt"
	"io"
)

// ============================================================================
//                              Ed25519 原语边界
// ============================================================================
//
// 以下函数是本包与签名原语之间唯一的接触面，全部基于定长缓冲区。
// 长度检查由调用方在进入前完成。

// keypair 从随机源生成密钥对
func keypair(src io.Reader, pk *[PublicKeySize]byte, sk *[SecretKeySize]byte) error {
	var seed [SeedSize]byte
	defer Wipe(seed[:])

	if err := secureRandomBytes(src, seed[:]); err != nil {
		return err
	}
	return seedKeypair(pk, sk, &seed)
}

// seedKeypair 由种子确定性地派生密钥对
func seedKeypair(pk *[PublicKeySize]byte, sk *[SecretKeySize]byte, seed *[SeedSize]byte) error {
	priv := ed25519.NewKeyFromSeed(seed[:])
	defer Wipe(priv)

	if len(priv) != SecretKeySize {
		return fmt.Errorf("%w: derived secret key has %d bytes", ErrInternalCrypto, len(priv))
	}
	copy(sk[:], priv)
	copy(pk[:], priv[SeedSize:])
	return nil
}

// skToPK 从扩展私钥中提取公钥
func skToPK(pk *[PublicKeySize]byte, sk *[SecretKeySize]byte) error {
	pub, ok := ed25519.PrivateKey(sk[:]).Public().(ed25519.PublicKey)
	if !ok || len(pub) != PublicKeySize {
		return fmt.Errorf("%w: extracting public key from secret key", ErrInternalCrypto)
	}
	copy(pk[:], pub)
	return nil
}

// skToSeed 从扩展私钥中提取种子
func skToSeed(seed *[SeedSize]byte, sk *[SecretKeySize]byte) error {
	s := ed25519.PrivateKey(sk[:]).Seed()
	defer Wipe(s)

	if len(s) != SeedSize {
		return fmt.Errorf("%w: extracting seed from secret key", ErrInternalCrypto)
	}
	copy(seed[:], s)
	return nil
}

// signDetached 生成分离签名
func signDetached(msg []byte, sk *[SecretKeySize]byte) ([]byte, error) {
	sig := ed25519.Sign(ed25519.PrivateKey(sk[:]), msg)
	if len(sig) != SignatureSize {
		return nil, fmt.Errorf("%w: signature has %d bytes", ErrInternalCrypto, len(sig))
	}
	return sig, nil
}

// VerifyDetached 直接调用签名原语验证分离签名（不经过缓存）
//
// 签名长度不为 SignatureSize 时返回 false。
func VerifyDetached(sig Signature, msg []byte, pk *[PublicKeySize]byte) bool {
	if len(sig) != SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pk[:]), msg, sig)
}

// constantTimeEqual 常量时间比较
func constantTimeEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
