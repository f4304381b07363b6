package password_test

import (
	"errors"
	"strings"
	"testing"

	"edurooms/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	hash, err := password.Hash("Admin123@")
	require.NoError(t, err)

	assert.NotEqual(t, "Admin123@", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	_, err = password.Hash("")
	assert.Error(t, err)
}

func TestHash_Salted(t *testing.T) {
	first, err := password.Hash("Profesor1!")
	require.NoError(t, err)

	second, err := password.Hash("Profesor1!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NoError(t, password.Verify("Profesor1!", first))
	assert.NoError(t, password.Verify("Profesor1!", second))
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("Admin123@")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  error
	}{
		{name: "matching password", password: "Admin123@", hash: hash},
		{name: "wrong password", password: "admin123@", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty hash", password: "Admin123@", hash: "", wantErr: password.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			if tt.wantErr == nil {
				assert.NoError(t, err)

				return
			}

			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	err := password.Verify("Admin123@", "not-a-bcrypt-hash")

	assert.Error(t, err)
	assert.False(t, errors.Is(err, password.ErrInvalidPassword))
}

func TestHash_TooLong(t *testing.T) {
	_, err := password.Hash(strings.Repeat("a", 73))

	assert.Error(t, err)
}
