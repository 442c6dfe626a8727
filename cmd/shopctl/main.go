// Command shopctl runs the manual maintenance tasks of the farm shop:
// seeding admin accounts and moving orders between statuses.
package main

import (
	"context"
	"os"

	"github.com/Skotchmaster/farm_shop/internal/repo"
	pkgconfig "github.com/Skotchmaster/farm_shop/pkg/config"
	"github.com/Skotchmaster/farm_shop/pkg/db"
	"github.com/Skotchmaster/farm_shop/pkg/logging"
)

func main() {
	pkgconfig.LoadDotEnv(".env")
	cfg := pkgconfig.Load()
	logger := logging.New(cfg.LogLevel).With("service", "shopctl")

	var closeDB func()
	open := func(ctx context.Context, dsn string) (*repo.GormRepo, error) {
		gdb, err := db.Open(ctx, dsn)
		if err != nil {
			return nil, err
		}
		if err := repo.Migrate(gdb); err != nil {
			_ = db.Close(gdb)
			return nil, err
		}
		closeDB = func() { _ = db.Close(gdb) }
		return repo.New(gdb), nil
	}

	root := newRootCmd(open, cfg.DatabaseURL)
	err := root.ExecuteContext(logging.IntoContext(context.Background(), logger))
	if closeDB != nil {
		closeDB()
	}
	if err != nil {
		os.Exit(1)
	}
}
