package cryptox_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/propcheck/inspections/pkg/cryptox"
)

func setPepper(t *testing.T) {
	t.Helper()
	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))
}

func TestHashAndVerifyPassword(t *testing.T) {
	setPepper(t)

	hash, err := cryptox.HashPassword("Sup3rSecret!")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	require.NoError(t, cryptox.VerifyPassword("Sup3rSecret!", hash))
	require.ErrorIs(t, cryptox.VerifyPassword("wrong", hash), cryptox.ErrPasswordMismatch)
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	setPepper(t)

	a, err := cryptox.HashPassword("same")
	require.NoError(t, err)
	b, err := cryptox.HashPassword("same")
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	require.NoError(t, cryptox.VerifyPassword("same", a))
	require.NoError(t, cryptox.VerifyPassword("same", b))
}

// A malformed stored hash is an infrastructure error, never a mere mismatch.
func TestVerifyPasswordMalformedHash(t *testing.T) {
	setPepper(t)

	cases := []string{
		"",
		"plaintext",
		"$bcrypt$whatever",
		"$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA",
	}
	for _, malformed := range cases {
		err := cryptox.VerifyPassword("pw", malformed)
		require.Error(t, err)
		require.NotErrorIs(t, err, cryptox.ErrPasswordMismatch)
	}
}
