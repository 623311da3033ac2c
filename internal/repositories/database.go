package repositories

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ledger/internal/config"
	"ledger/internal/models"
	"ledger/internal/repositories/cache"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Backend names one of the storage variants.
type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendMongo    Backend = "mongo"
	BackendCached   Backend = "cached"
	BackendMemory   Backend = "memory"
)

var ErrUnknownBackend = errors.New("unknown database backend")

// ParseBackend maps a configuration value to a Backend.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(s); b {
	case BackendPostgres, BackendMongo, BackendCached, BackendMemory:
		return b, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
}

// Database is the active backend chosen at startup, plus the handles
// it owns so they can be checked and closed.
type Database struct {
	Backend Backend
	repo    TransactionRepository
	pingers []func(context.Context) error
	closers []func(context.Context) error
}

// NewDatabase wraps an already built repository.
func NewDatabase(backend Backend, repo TransactionRepository) *Database {
	return &Database{Backend: backend, repo: repo}
}

func (d *Database) AddTransaction(ctx context.Context, id uint32, tx models.Transaction) (models.Balance, error) {
	return d.repo.AddTransaction(ctx, id, tx)
}

func (d *Database) GetStatement(ctx context.Context, id uint32) (models.Statement, error) {
	return d.repo.GetStatement(ctx, id)
}

// Ping checks every store the backend depends on.
func (d *Database) Ping(ctx context.Context) error {
	for _, ping := range d.pingers {
		if err := ping(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Close releases every handle, in reverse order of opening.
func (d *Database) Close(ctx context.Context) error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Open connects the backend named in cfg, prepares its schema and
// returns it ready to serve.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Database, error) {
	backend, err := ParseBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	switch backend {
	case BackendMemory:
		return NewDatabase(backend, NewMemoryRepository(models.SeedWallets()...)), nil
	case BackendMongo:
		return openMongo(ctx, cfg.Mongo)
	default:
		return openPostgres(ctx, backend, cfg, logger)
	}
}

func openPostgres(ctx context.Context, backend Backend, cfg config.Config, logger *slog.Logger) (*Database, error) {
	db, err := OpenPostgres(cfg.Postgres)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	d := &Database{Backend: backend}
	d.pingers = append(d.pingers, sqlDB.PingContext)
	d.closers = append(d.closers, func(context.Context) error { return sqlDB.Close() })

	if err := MigratePostgres(ctx, db); err != nil {
		_ = d.Close(ctx)
		return nil, err
	}

	var repo TransactionRepository = NewPostgresRepository(db)
	if backend == BackendCached {
		client := cache.NewRedisClient(&cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		balances := cache.NewBalanceCache(client)
		d.pingers = append(d.pingers, balances.HealthCheck)
		d.closers = append(d.closers, func(context.Context) error { return client.Close() })

		// A cache left over from an earlier run would only cause resyncs.
		if err := balances.Flush(ctx); err != nil {
			logger.Warn("failed to flush balance cache", "error", err)
		} else {
			logger.Info("balance cache flushed on startup")
		}
		repo = NewCachedRepository(balances, repo, logger)
	}

	d.repo = repo
	return d, nil
}

func openMongo(ctx context.Context, cfg config.MongoConfig) (*Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	d := &Database{Backend: BackendMongo}
	d.pingers = append(d.pingers, func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	})
	d.closers = append(d.closers, client.Disconnect)

	db := client.Database(cfg.Database)
	if err := SetupMongo(ctx, db); err != nil {
		_ = d.Close(ctx)
		return nil, err
	}

	d.repo = NewMongoRepository(db)
	return d, nil
}
