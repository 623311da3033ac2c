// Command seed creates the schema and the fixed wallets of the configured
// backend. With -reset it also zeroes every balance and drops the
// transaction history, which is what load tests expect between runs.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"ledger/internal/config"
	"ledger/internal/repositories"
	"ledger/internal/repositories/cache"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	reset := flag.Bool("reset", false, "zero balances and delete transactions after seeding")
	timeout := flag.Duration("timeout", 30*time.Second, "overall deadline")
	flag.Parse()

	cfg := config.Load()
	log := config.NewLogger(cfg)
	slog.SetDefault(log)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	backend, err := repositories.ParseBackend(cfg.Backend)
	if err != nil {
		log.Error("invalid backend", "error", err)
		os.Exit(1)
	}

	switch backend {
	case repositories.BackendMemory:
		log.Info("memory backend is seeded at startup, nothing to do")
		return
	case repositories.BackendMongo:
		err = seedMongo(ctx, cfg.Mongo, *reset)
	default:
		err = seedPostgres(ctx, cfg, backend, *reset)
	}
	if err != nil {
		log.Error("seed failed", "backend", backend, "error", err)
		os.Exit(1)
	}
	log.Info("seed complete", "backend", backend, "reset", *reset)
}

func seedPostgres(ctx context.Context, cfg config.Config, backend repositories.Backend, reset bool) error {
	db, err := repositories.OpenPostgres(cfg.Postgres)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := repositories.MigratePostgres(ctx, db); err != nil {
		return err
	}
	if !reset {
		return nil
	}
	if err := repositories.ResetPostgres(ctx, db); err != nil {
		return err
	}

	if backend == repositories.BackendCached {
		client := cache.NewRedisClient(&cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		defer client.Close()
		return cache.NewBalanceCache(client).Flush(ctx)
	}
	return nil
}

func seedMongo(ctx context.Context, cfg config.MongoConfig, reset bool) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(cfg.Database)
	if err := repositories.SetupMongo(ctx, db); err != nil {
		return err
	}
	if reset {
		return repositories.ResetMongo(ctx, db)
	}
	return nil
}
