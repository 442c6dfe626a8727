package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/farm_shop/internal/catalog"
	"github.com/Skotchmaster/farm_shop/internal/repo"
	"github.com/Skotchmaster/farm_shop/internal/testutil"
	"github.com/Skotchmaster/farm_shop/pkg/tokens"
)

var testStart = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	Repo    *repo.GormRepo
	Clock   *testutil.Clock
	Events  *testutil.Publisher
	Auth    *AuthService
	Orders  *OrderService
	Profile *ProfileService
	Admin   *AdminService
}

func newTestEnv(t *testing.T, admins ...string) *testEnv {
	t.Helper()
	r := repo.New(testutil.NewDB(t))
	clock := testutil.NewClock(testStart)
	pub := &testutil.Publisher{}

	return &testEnv{
		Repo:   r,
		Clock:  clock,
		Events: pub,
		Auth: &AuthService{
			Repo:        r,
			Tokens:      tokens.NewIssuer([]byte("test-secret"), tokens.DefaultTTL).WithClock(clock.Now),
			Events:      pub,
			AdminEmails: NewAdminSet(admins...),
			Now:         clock.Now,
		},
		Orders: &OrderService{
			Repo:    r,
			Catalog: catalog.FarmBoxes(),
			Events:  pub,
			Now:     clock.Now,
		},
		Profile: &ProfileService{Repo: r},
		Admin:   &AdminService{Repo: r},
	}
}

// signup registers a customer and returns the principal its token speaks for.
func (env *testEnv) signup(t *testing.T, email string) tokens.Principal {
	t.Helper()
	res, err := env.Auth.Signup(context.Background(), email, "password")
	require.NoError(t, err)
	p, err := env.Auth.Tokens.Verify(res.Token)
	require.NoError(t, err)
	return *p
}
