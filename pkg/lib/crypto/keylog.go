package crypto

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// ============================================================================
//                              诊断输出
// ============================================================================

// keyReport 一次成功解释的结果
type keyReport struct {
	publicKey *PublicKey
	secretKey *SecretKey
}

// keyParser 尝试一种解释，不适用时返回 false
type keyParser func(text string) (keyReport, bool)

// keyParsers 按顺序尝试：十六进制、公钥文本、种子文本
var keyParsers = []keyParser{
	parseHexKey,
	parseStrKeyPublic,
	parseStrKeySeed,
}

// LogKey 以人类可读的形式输出 text 表示的密钥
//
// text 可以是 64 位十六进制、公钥文本或种子文本。十六进制同时按公钥和种子两种
// 方式解释。无法解释时输出 "Unknown key type"。只返回写入错误。
//
// 输出示例：
//
//	PublicKey:
//	  strKey: GA5WUJ54Z23KILLCUOUNAKTPBVZWKMQVO4O6EQ5GHLAERIMLLHNCSKYH
//	  hex: 3b6a27bcceb6a42d62a3a8d02a6f0d73653215771de243a63ac048a18b59da29
func LogKey(w io.Writer, text string) error {
	text = strings.TrimSpace(text)
	for _, parse := range keyParsers {
		report, ok := parse(text)
		if !ok {
			continue
		}
		defer report.secretKey.Destroy()
		return report.write(w)
	}
	_, err := io.WriteString(w, "Unknown key type\n")
	return err
}

func parseHexKey(text string) (keyReport, bool) {
	if len(text) != 2*PublicKeySize {
		return keyReport{}, false
	}
	raw, err := hex.DecodeString(text)
	if err != nil {
		return keyReport{}, false
	}
	defer Wipe(raw)

	pk, err := PublicKeyFromBytes(raw)
	if err != nil {
		return keyReport{}, false
	}
	sk, err := SecretKeyFromSeed(raw)
	if err != nil {
		return keyReport{}, false
	}
	return keyReport{publicKey: &pk, secretKey: sk}, true
}

func parseStrKeyPublic(text string) (keyReport, bool) {
	pk, err := PublicKeyFromStrKey(text)
	if err != nil {
		return keyReport{}, false
	}
	return keyReport{publicKey: &pk}, true
}

func parseStrKeySeed(text string) (keyReport, bool) {
	sk, err := SecretKeyFromStrKeySeed(text)
	if err != nil {
		return keyReport{}, false
	}
	return keyReport{secretKey: sk}, true
}

func (r keyReport) write(w io.Writer) error {
	if r.publicKey != nil {
		if err := WritePublicKey(w, *r.publicKey); err != nil {
			return err
		}
	}
	if r.secretKey != nil {
		if err := WriteSecretKey(w, r.secretKey); err != nil {
			return err
		}
	}
	return nil
}

// WritePublicKey 以 LogKey 的格式输出公钥块
func WritePublicKey(w io.Writer, pk PublicKey) error {
	s, err := pk.StrKey()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "PublicKey:\n  strKey: %s\n  hex: %s\n", s, pk.Hex())
	return err
}

// WriteSecretKey 以 LogKey 的格式输出种子块及其公钥块
//
// 种子文本直接写入 w，不经过 string。
func WriteSecretKey(w io.Writer, sk *SecretKey) error {
	seed, err := sk.StrKeySeed()
	if err != nil {
		return err
	}
	defer seed.Destroy()

	if _, err := io.WriteString(w, "Seed:\n  strKey: "); err != nil {
		return err
	}
	if _, err := seed.WriteTo(w); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	pk, err := sk.PublicKey()
	if err != nil {
		return err
	}
	return WritePublicKey(w, pk)
}
