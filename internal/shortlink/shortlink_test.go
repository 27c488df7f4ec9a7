package shortlink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec("mysecret", 3)
	require.NoError(t, err)
	return c
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	c := newTestCodec(t)

	ids := []int64{1, 2, 7, 42, 999, 123456, 98765432101}
	for _, id := range ids {
		token, err := c.Encode(id)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(token), 3)

		decoded, ok := c.Decode(token)
		assert.True(t, ok)
		assert.Equal(t, id, decoded)
	}
}

func TestEncode_Deterministic(t *testing.T) {
	c := newTestCodec(t)

	first, err := c.Encode(77)
	require.NoError(t, err)
	second, err := c.Encode(77)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEncode_RejectsNonPositive(t *testing.T) {
	c := newTestCodec(t)

	_, err := c.Encode(0)
	assert.Error(t, err)
	_, err = c.Encode(-5)
	assert.Error(t, err)
}

func TestDecode_Garbage(t *testing.T) {
	c := newTestCodec(t)

	for _, token := range []string{"", "!!!", "not a token", "абв", "....", "a b c"} {
		_, ok := c.Decode(token)
		assert.False(t, ok, "token %q should not decode", token)
	}
}

func TestDecode_ForeignSalt(t *testing.T) {
	c := newTestCodec(t)
	other, err := NewCodec("differentsalt", 3)
	require.NoError(t, err)

	token, err := other.Encode(42)
	require.NoError(t, err)

	// token from another deployment must not resolve here
	decoded, ok := c.Decode(token)
	if ok {
		assert.NotEqual(t, int64(42), decoded)
	}
}
