package jwtx_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/propcheck/inspections/pkg/cryptox"
	"github.com/propcheck/inspections/pkg/jwtx"
)

const issuer = "jwtx-test"

func newSigner(t *testing.T) *jwtx.Signer {
	t.Helper()
	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSigner("k1", pemKey)
	require.NoError(t, err)
	return signer
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	signer := newSigner(t)
	verifier := jwtx.NewVerifier(signer.Public(), issuer)

	claims := jwtx.NewSessionClaims(
		"acct-1", "owner@example.com", true, nil, false,
		issuer, time.Hour, time.Now().UTC())

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "acct-1", got.Subject)
	require.Equal(t, "owner@example.com", got.Email)
	require.True(t, got.Admin)
	require.Equal(t, issuer, got.Issuer)
	require.NotEmpty(t, got.ID, "jti must be set")
}

func TestVerifyRejectsExpired(t *testing.T) {
	signer := newSigner(t)
	verifier := jwtx.NewVerifier(signer.Public(), issuer)

	claims := jwtx.NewSessionClaims(
		"acct-1", "owner@example.com", false, nil, false,
		issuer, time.Minute, time.Now().UTC().Add(-time.Hour))

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	signer := newSigner(t)
	verifier := jwtx.NewVerifier(signer.Public(), issuer)

	claims := jwtx.NewSessionClaims(
		"acct-1", "owner@example.com", false, nil, false,
		"someone-else", time.Hour, time.Now().UTC())

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	signer := newSigner(t)
	other := newSigner(t)
	verifier := jwtx.NewVerifier(other.Public(), issuer)

	claims := jwtx.NewSessionClaims(
		"acct-1", "owner@example.com", false, nil, false,
		issuer, time.Hour, time.Now().UTC())

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalid)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	signer := newSigner(t)
	verifier := jwtx.NewVerifier(signer.Public(), issuer)

	_, err := verifier.Verify("not.a.jwt")
	require.ErrorIs(t, err, jwtx.ErrInvalid)
}

func TestJTIUnique(t *testing.T) {
	a := jwtx.NewJTI()
	b := jwtx.NewJTI()
	require.NotEqual(t, a, b)
}
