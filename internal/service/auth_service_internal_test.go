package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/markbook/internal/pkg/jwt"
	"github.com/xxxsen/markbook/internal/pkg/password"
)

func TestNewAuthService_BuildsUsableDummyHash(t *testing.T) {
	issuer, err := jwt.NewIssuer([]byte("0123456789abcdef0123456789abcdef"), jwt.TokenTTL)
	require.NoError(t, err)

	s, err := NewAuthService(nil, issuer)
	require.NoError(t, err)
	require.NotEmpty(t, s.dummyHash)
	require.Contains(t, s.dummyHash, "$argon2id$")
	require.True(t, password.Verify(s.dummyHash, "markbook-timing-equalizer"))
}
