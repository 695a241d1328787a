package crypto

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-keycore/pkg/lib/strkey"
)

func TestPublicKey_FromBytes(t *testing.T) {
	raw, _ := hex.DecodeString(zeroSeedPublicHex)

	pk, err := PublicKeyFromBytes(raw)
	if err != nil {
		t.Fatalf("PublicKeyFromBytes() error = %v", err)
	}
	if pk.Type() != KeyTypeEd25519 {
		t.Errorf("Type() = %v, want %v", pk.Type(), KeyTypeEd25519)
	}
	if !bytes.Equal(pk.Bytes(), raw) {
		t.Error("Bytes() mismatch")
	}

	// Bytes 返回副本
	b := pk.Bytes()
	b[0] ^= 0xff
	if pk.Bytes()[0] == b[0] {
		t.Error("Bytes() aliases internal storage")
	}

	for _, n := range []int{0, 31, 33, 64} {
		if _, err := PublicKeyFromBytes(make([]byte, n)); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("PublicKeyFromBytes(%d bytes) error = %v, want ErrInvalidInput", n, err)
		}
	}

	if _, err := NewPublicKey(KeyType(3), raw); !errors.Is(err, ErrUnsupportedKeyType) {
		t.Errorf("NewPublicKey(unknown type) error = %v, want ErrUnsupportedKeyType", err)
	}
}

func TestPublicKey_StrKey(t *testing.T) {
	pk, err := PublicKeyFromStrKey(zeroSeedPublicStrKey)
	require.NoError(t, err)
	assert.Equal(t, zeroSeedPublicHex, pk.Hex())

	s, err := pk.StrKey()
	require.NoError(t, err)
	assert.Equal(t, zeroSeedPublicStrKey, s)
	assert.Equal(t, zeroSeedPublicStrKey, pk.String())

	var zero PublicKey
	assert.Equal(t, "GAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAWHF", zero.String())
	assert.True(t, zero.IsZero())
}

func TestPublicKeyFromStrKey_Invalid(t *testing.T) {
	t.Run("seed text", func(t *testing.T) {
		_, err := PublicKeyFromStrKey(zeroSeedStrKey)
		assert.ErrorIs(t, err, ErrInvalidPublicKey)
		assert.ErrorIs(t, err, strkey.ErrMalformedEncoding)
		assert.NotErrorIs(t, err, ErrUnsupportedKeyType)
	})

	t.Run("unknown version", func(t *testing.T) {
		text := strkey.Encode(strkey.VersionByte(8), make([]byte, PublicKeySize))
		_, err := PublicKeyFromStrKey(text)
		assert.ErrorIs(t, err, ErrInvalidPublicKey)
		assert.ErrorIs(t, err, strkey.ErrMalformedEncoding)
	})

	t.Run("corrupted", func(t *testing.T) {
		bad := []byte(zeroSeedPublicStrKey)
		bad[10] = 'A'
		_, err := PublicKeyFromStrKey(string(bad))
		assert.ErrorIs(t, err, ErrInvalidPublicKey)
		assert.ErrorIs(t, err, strkey.ErrMalformedEncoding)
	})

	t.Run("wrong payload size", func(t *testing.T) {
		text := strkey.Encode(strkey.VersionPublicKeyEd25519, make([]byte, 16))
		_, err := PublicKeyFromStrKey(text)
		assert.ErrorIs(t, err, ErrInvalidPublicKey)
	})
}

func TestPublicKey_Comparable(t *testing.T) {
	a, err := RandomPublicKey()
	require.NoError(t, err)
	b, err := RandomPublicKey()
	require.NoError(t, err)

	assert.False(t, a.Equal(b))

	copyA, err := PublicKeyFromBytes(a.Bytes())
	require.NoError(t, err)
	assert.True(t, a.Equal(copyA))

	set := map[PublicKey]int{a: 1, b: 2}
	assert.Equal(t, 1, set[copyA])
}

func TestPublicKey_Hash(t *testing.T) {
	raw := make([]byte, PublicKeySize)
	copy(raw, []byte{0x01, 0x02, 0x03, 0x04, 0xff})

	pk, err := PublicKeyFromBytes(raw)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x01020304), pk.Hash())
}

func TestPublicKey_JSON(t *testing.T) {
	pk, err := PublicKeyFromStrKey(zeroSeedPublicStrKey)
	require.NoError(t, err)

	type envelope struct {
		Key PublicKey `json:"key"`
	}

	data, err := json.Marshal(envelope{Key: pk})
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"`+zeroSeedPublicStrKey+`"}`, string(data))

	var decoded envelope
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, pk, decoded.Key)

	assert.Error(t, json.Unmarshal([]byte(`{"key":"GBAD"}`), &decoded))
}

func TestSignature_Helpers(t *testing.T) {
	sig, err := SignatureFromHex(zeroSeedHelloSigHex)
	require.NoError(t, err)
	assert.True(t, sig.HasValidLength())
	assert.Equal(t, zeroSeedHelloSigHex, sig.Hex())

	pk, err := PublicKeyFromStrKey(zeroSeedPublicStrKey)
	require.NoError(t, err)
	assert.True(t, pk.Verify(sig, []byte("hello")))

	key := pk.Ed25519()
	assert.True(t, VerifyDetached(sig, []byte("hello"), &key))
	assert.False(t, VerifyDetached(sig[:SignatureSize-1], []byte("hello"), &key))

	_, err = SignatureFromHex("zz")
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.False(t, Signature(nil).HasValidLength())
	assert.True(t, Signature(nil).Equal(Signature{}))
}

func TestKeyType(t *testing.T) {
	assert.Equal(t, "Ed25519", KeyTypeEd25519.String())
	assert.Equal(t, "Unknown", KeyType(9).String())
	assert.NoError(t, KeyTypeEd25519.Validate())
	assert.ErrorIs(t, KeyType(9).Validate(), ErrUnsupportedKeyType)

	for _, kt := range KeyTypes {
		pv, err := PublicKeyVersion(kt)
		require.NoError(t, err)
		back, err := KeyTypeFromPublicKeyVersion(pv)
		require.NoError(t, err)
		assert.Equal(t, kt, back)

		sv, err := SeedVersion(kt)
		require.NoError(t, err)
		assert.NotEqual(t, pv, sv)
	}

	_, err := KeyTypeFromPublicKeyVersion(strkey.VersionSeedEd25519)
	assert.ErrorIs(t, err, ErrUnsupportedKeyType)
}

func TestRandomBytes(t *testing.T) {
	b, err := RandomBytes(48)
	require.NoError(t, err)
	assert.Len(t, b, 48)
	assert.False(t, isZero(b))
}
