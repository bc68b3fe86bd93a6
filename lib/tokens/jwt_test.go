package tokens

import (
	"testing"

	"github.com/guardiancapital/ledgerhub/db/models"
	"github.com/stretchr/testify/assert"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	user := &models.User{ID: 42}

	token, err := GenerateAccessToken(secret, 3600, user)
	assert.NoError(t, err)

	id, err := ParseToken(secret, token)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestTokenRejectedWithWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken([]byte("secret-a"), 3600, &models.User{ID: 1})
	assert.NoError(t, err)

	_, err = ParseToken([]byte("secret-b"), token)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateAccessToken(secret, -10, &models.User{ID: 1})
	assert.NoError(t, err)

	_, err = ParseToken(secret, token)
	assert.Error(t, err)
}
