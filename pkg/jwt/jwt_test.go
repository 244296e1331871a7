package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	tok, err := Generate("s3cret", "u-1", "testuser", "bodeguero", "inventario-insumos", 5)
	require.NoError(t, err)

	userID, username, role, err := Parse("s3cret", tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "testuser", username)
	assert.Equal(t, "bodeguero", role)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := Generate("s3cret", "u-1", "testuser", "admin", "", 5)
	require.NoError(t, err)

	_, _, _, err = Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	tok, err := Generate("s3cret", "u-1", "testuser", "admin", "", -1)
	require.NoError(t, err)

	_, _, _, err = Parse("s3cret", tok)
	assert.Error(t, err)
}

func TestEmptySecret(t *testing.T) {
	_, err := Generate("", "u-1", "x", "admin", "", 5)
	assert.ErrorIs(t, err, ErrEmptySecret)

	_, _, _, err = Parse("", "abc")
	assert.ErrorIs(t, err, ErrEmptySecret)
}
