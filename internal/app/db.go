package app

import (
	"context"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	cfgpkg "github.com/taoyao-code/ubx-gateway/internal/config"
	"github.com/taoyao-code/ubx-gateway/internal/migrate"
	pgstorage "github.com/taoyao-code/ubx-gateway/internal/storage/pg"
)

// ConnectDBAndMigrate 建立数据库连接并执行迁移。
// migrations 非 nil 时使用内嵌迁移，否则读取 cfg.MigrationsDir
func ConnectDBAndMigrate(ctx context.Context, cfg cfgpkg.DatabaseConfig, migrations fs.FS, log *zap.Logger) (*pgxpool.Pool, error) {
	dbpool, err := pgstorage.NewPool(ctx, cfg, log)
	if err != nil {
		log.Error("db connect error", zap.Error(err))
		return nil, err
	}
	applied, err := (migrate.Runner{Dir: cfg.MigrationsDir, FS: migrations, Logger: log}).Up(ctx, dbpool)
	if err != nil {
		log.Error("db migrate error", zap.Error(err))
		dbpool.Close()
		return nil, err
	}
	log.Info("db migrations applied", zap.Int64s("versions", applied))
	return dbpool, nil
}
