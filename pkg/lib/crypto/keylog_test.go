package crypto

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogKey(t *testing.T) {
	zeroHex := strings.Repeat("00", SeedSize)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "public key text",
			input: zeroSeedPublicStrKey,
			want: "PublicKey:\n" +
				"  strKey: " + zeroSeedPublicStrKey + "\n" +
				"  hex: " + zeroSeedPublicHex + "\n",
		},
		{
			name:  "seed text",
			input: zeroSeedStrKey,
			want: "Seed:\n" +
				"  strKey: " + zeroSeedStrKey + "\n" +
				"PublicKey:\n" +
				"  strKey: " + zeroSeedPublicStrKey + "\n" +
				"  hex: " + zeroSeedPublicHex + "\n",
		},
		{
			name:  "hex is read as public key and seed",
			input: zeroHex,
			want: "PublicKey:\n" +
				"  strKey: GAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAWHF\n" +
				"  hex: " + zeroHex + "\n" +
				"Seed:\n" +
				"  strKey: " + zeroSeedStrKey + "\n" +
				"PublicKey:\n" +
				"  strKey: " + zeroSeedPublicStrKey + "\n" +
				"  hex: " + zeroSeedPublicHex + "\n",
		},
		{
			name:  "surrounding whitespace",
			input: "  " + zeroSeedPublicStrKey + "\n",
			want: "PublicKey:\n" +
				"  strKey: " + zeroSeedPublicStrKey + "\n" +
				"  hex: " + zeroSeedPublicHex + "\n",
		},
		{"garbage", "not a key", "Unknown key type\n"},
		{"empty", "", "Unknown key type\n"},
		{"short hex", "abcd", "Unknown key type\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, LogKey(&buf, tt.input))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestLogKey_WriteError(t *testing.T) {
	assert.Error(t, LogKey(brokenWriter{}, zeroSeedStrKey))
	assert.Error(t, LogKey(brokenWriter{}, "nope"))
}
