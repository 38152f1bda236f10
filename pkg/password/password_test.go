package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher(t *testing.T) {
	h, err := NewHasher(bcrypt.MinCost)
	require.NoError(t, err)

	hash, err := h.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, h.Verify(hash, "s3cret-pass"))
	assert.ErrorIs(t, h.Verify(hash, "wrong"), ErrMismatch)
}

func TestNewHasher_Range(t *testing.T) {
	_, err := NewHasher(2)
	assert.Error(t, err)
	_, err = NewHasher(40)
	assert.Error(t, err)
}
