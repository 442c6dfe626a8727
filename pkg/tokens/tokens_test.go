package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssuer_IssueAndVerify(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer([]byte("test-jwt-secret"), 0)
	p := Principal{ID: uuid.NewString(), Email: "a@x.com", Role: "customer"}

	token, exp, err := issuer.Issue(p)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, 5*time.Second)

	got, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, p, *got)
}

func TestIssuer_Verify_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewIssuer([]byte("test-jwt-secret"), 24*time.Hour).WithClock(fixedClock(issuedAt))

	token, exp, err := issuer.Issue(Principal{ID: "u-1", Email: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(24*time.Hour), exp)

	_, err = issuer.WithClock(fixedClock(issuedAt.Add(23 * time.Hour))).Verify(token)
	require.NoError(t, err)

	_, err = issuer.WithClock(fixedClock(issuedAt.Add(25 * time.Hour))).Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExpired)
	assert.NotErrorIs(t, err, ErrUnauthenticated)
}

func TestIssuer_Verify_Rejects(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer([]byte("test-jwt-secret"), time.Hour)
	token, _, err := issuer.Issue(Principal{ID: "u-1"})
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u-1"},
	}).SignedString([]byte("test-jwt-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		v     *Issuer
	}{
		{name: "empty", token: "", v: issuer},
		{name: "malformed", token: "not-a-valid-jwt", v: issuer},
		{name: "rotated key", token: token, v: NewIssuer([]byte("another-secret"), time.Hour)},
		{name: "alg none", token: noneToken, v: issuer},
		{name: "no expiry", token: noExp, v: issuer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.v.Verify(tt.token)
			require.Error(t, err)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, ErrUnauthenticated)
		})
	}
}

func TestIssuer_Issue_RequiresID(t *testing.T) {
	_, _, err := NewIssuer([]byte("s"), time.Hour).Issue(Principal{Email: "a@x.com"})
	require.Error(t, err)
}
