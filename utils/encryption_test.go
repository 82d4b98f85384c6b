package utils

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCipher_RoundTrip(t *testing.T) {
	c, err := NewTokenCipher("secret")
	require.NoError(t, err)

	enc, err := c.EncryptToken("1//refresh-token")
	require.NoError(t, err)
	assert.NotContains(t, enc, "refresh-token")

	again, err := c.EncryptToken("1//refresh-token")
	require.NoError(t, err)
	assert.NotEqual(t, enc, again, "nonce must differ per encryption")

	plain, err := c.DecryptToken(enc)
	require.NoError(t, err)
	assert.Equal(t, "1//refresh-token", plain)
}

func TestTokenCipher_Rejects(t *testing.T) {
	c, err := NewTokenCipher("secret")
	require.NoError(t, err)
	other, err := NewTokenCipher("other-secret")
	require.NoError(t, err)

	enc, err := c.EncryptToken("token")
	require.NoError(t, err)

	_, err = other.DecryptToken(enc)
	assert.Error(t, err, "foreign key")

	raw, _ := base64.StdEncoding.DecodeString(enc)
	raw[len(raw)-1] ^= 0xff
	_, err = c.DecryptToken(base64.StdEncoding.EncodeToString(raw))
	assert.Error(t, err, "tampered")

	_, err = c.DecryptToken("%%%")
	assert.Error(t, err, "not base64")

	_, err = c.DecryptToken(base64.StdEncoding.EncodeToString([]byte("short")))
	assert.Error(t, err, "too short")

	_, err = NewTokenCipher("")
	assert.Error(t, err)
}
