package credentials

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService(t *testing.T) *Service {
	t.Helper()
	key := bytes.Repeat([]byte{0x42}, 32)
	svc, err := NewService(nil, key)
	require.NoError(t, err)
	return svc
}

func TestNewService(t *testing.T) {
	_, err := NewService(nil, []byte("too short"))
	assert.ErrorIs(t, err, ErrBadSealKey)
}

func TestSealOpen(t *testing.T) {
	svc := testService(t)

	t.Run("TestRoundTrip", func(t *testing.T) {
		sealed, err := svc.Seal("super-secret")
		require.NoError(t, err)
		assert.NotContains(t, string(sealed), "super-secret")

		plain, err := svc.Open(sealed)
		require.NoError(t, err)
		assert.Equal(t, "super-secret", plain)
	})

	t.Run("TestNoncesDiffer", func(t *testing.T) {
		a, err := svc.Seal("same")
		require.NoError(t, err)
		b, err := svc.Seal("same")
		require.NoError(t, err)
		assert.NotEqual(t, a, b, "sealing twice must never produce the same bytes")
	})

	t.Run("TestTamperedCiphertextIsRejected", func(t *testing.T) {
		sealed, err := svc.Seal("super-secret")
		require.NoError(t, err)
		sealed[len(sealed)-1] ^= 0xff

		_, err = svc.Open(sealed)
		assert.Error(t, err)
	})

	t.Run("TestWrongKeyIsRejected", func(t *testing.T) {
		sealed, err := svc.Seal("super-secret")
		require.NoError(t, err)

		other, err := NewService(nil, bytes.Repeat([]byte{0x43}, 32))
		require.NoError(t, err)
		_, err = other.Open(sealed)
		assert.Error(t, err)
	})

	t.Run("TestTruncatedBlobIsRejected", func(t *testing.T) {
		_, err := svc.Open([]byte{1, 2, 3})
		assert.Error(t, err)
	})
}
