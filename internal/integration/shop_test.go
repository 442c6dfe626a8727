package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/farm_shop/internal/catalog"
	"github.com/Skotchmaster/farm_shop/internal/repo"
	"github.com/Skotchmaster/farm_shop/internal/service"
	"github.com/Skotchmaster/farm_shop/internal/testutil"
	"github.com/Skotchmaster/farm_shop/internal/transport"
	"github.com/Skotchmaster/farm_shop/pkg/db"
	"github.com/Skotchmaster/farm_shop/pkg/tokens"
)

type integrationEnv struct {
	clock  *testutil.Clock
	auth   *service.AuthService
	orders *service.OrderService
	admin  *service.AdminService
}

func newIntegrationEnv(t *testing.T) *integrationEnv {
	t.Helper()

	dsn := os.Getenv("SHOP_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("SHOP_TEST_DATABASE_URL is required for tests")
	}

	ctx := context.Background()
	gdb, err := db.Open(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(gdb))
	require.NoError(t, db.Truncate(ctx, gdb, "orders", "profiles", "users"))

	t.Cleanup(func() {
		_ = db.Truncate(ctx, gdb, "orders", "profiles", "users")
		_ = db.Close(gdb)
	})

	r := repo.New(gdb)
	clock := testutil.NewClock(time.Now().UTC().Truncate(time.Second))

	return &integrationEnv{
		clock: clock,
		auth: &service.AuthService{
			Repo:   r,
			Tokens: tokens.NewIssuer([]byte("integration-secret"), tokens.DefaultTTL).WithClock(clock.Now),
			Now:    clock.Now,
		},
		orders: &service.OrderService{Repo: r, Catalog: catalog.FarmBoxes(), Now: clock.Now},
		admin:  &service.AdminService{Repo: r},
	}
}

func TestPostgresOrderFlow(t *testing.T) {
	env := newIntegrationEnv(t)
	ctx := context.Background()

	_, err := env.auth.Signup(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	_, err = env.auth.Signup(ctx, "a@x.com", "secret1")
	require.ErrorIs(t, err, service.ErrDuplicateEmail)

	res, err := env.auth.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	p, err := env.auth.Tokens.Verify(res.Token)
	require.NoError(t, err)

	order, err := env.orders.CreateOrder(ctx, *p, transport.CreateOrderRequest{
		ProductID:  "1",
		Quantity:   2,
		TotalPrice: decimal.RequireFromString("9000.00"),
	})
	require.NoError(t, err)

	orders, err := env.orders.ListOrders(ctx, *p)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "9000.00", orders[0].TotalPrice.StringFixed(2))

	all, err := env.admin.ListAllOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	env.clock.Advance(30 * time.Second)
	require.NoError(t, env.orders.CancelOrder(ctx, *p, order.ID.String()))

	orders, err = env.orders.ListOrders(ctx, *p)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPostgresProfilesJoin(t *testing.T) {
	env := newIntegrationEnv(t)
	ctx := context.Background()

	_, err := env.auth.Signup(ctx, "first@x.com", "pw")
	require.NoError(t, err)
	env.clock.Advance(time.Second)
	_, err = env.auth.Signup(ctx, "second@x.com", "pw")
	require.NoError(t, err)

	profiles, err := env.admin.ListAllProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "second@x.com", profiles[0].Email)
	assert.Equal(t, "first@x.com", profiles[1].Email)
}
