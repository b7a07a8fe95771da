package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/99minutos/auth-service/internal/core/ports"
	"github.com/99minutos/auth-service/internal/infrastructure/config"
	mongostore "github.com/99minutos/auth-service/internal/infrastructure/db/mongo"
	pgstore "github.com/99minutos/auth-service/internal/infrastructure/db/postgres"
	redisstore "github.com/99minutos/auth-service/internal/infrastructure/db/redis"
	"github.com/99minutos/auth-service/internal/infrastructure/http/handlers"
)

// infra holds the live connections the configuration asks for. Unused
// backends stay nil.
type infra struct {
	mongo *mongostore.Store
	pg    *pgxpool.Pool
	redis *goredis.Client
}

func connectInfra(ctx context.Context, cfg *config.Config, withCache bool) (*infra, error) {
	in := &infra{}

	if cfg.UsesMongo() {
		store, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		in.mongo = store
	}

	if cfg.Directory.Backend == config.BackendPostgres {
		pool, err := pgstore.Connect(ctx, pgstore.Config{DSN: cfg.Postgres.DSN})
		if err != nil {
			in.close(ctx)
			return nil, err
		}
		in.pg = pool
	}

	if withCache && cfg.Directory.CacheEnabled {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			in.close(ctx)
			return nil, err
		}
		in.redis = rdb
	}

	return in, nil
}

func (in *infra) close(ctx context.Context) {
	if in.redis != nil {
		_ = in.redis.Close()
	}
	if in.pg != nil {
		in.pg.Close()
	}
	if in.mongo != nil {
		_ = in.mongo.Close(ctx)
	}
}

// userStore returns the configured backend and prepares its indexes or schema.
func (in *infra) userStore(ctx context.Context, cfg *config.Config) (ports.UserStore, error) {
	switch cfg.Directory.Backend {
	case config.BackendPostgres:
		if in.pg == nil {
			return nil, errors.New("postgres user directory selected but not connected")
		}
		dir := pgstore.NewUserDirectory(in.pg)
		return dir, dir.EnsureSchema(ctx)
	case config.BackendMongo:
		if in.mongo == nil {
			return nil, errors.New("mongo user directory selected but not connected")
		}
		dir := mongostore.NewUserDirectory(in.mongo.DB)
		return dir, dir.EnsureIndexes(ctx)
	default:
		return nil, fmt.Errorf("DIRECTORY_BACKEND %q is not one of %s, %s",
			cfg.Directory.Backend, config.BackendMongo, config.BackendPostgres)
	}
}

// directory returns the store, behind the Redis cache when one is connected.
func (in *infra) directory(store ports.UserDirectory, cfg *config.Config, log zerolog.Logger) ports.UserDirectory {
	if in.redis == nil {
		return store
	}
	return redisstore.NewCachedDirectory(store, in.redis, cfg.Directory.CacheTTL, log)
}

func (in *infra) pingers() map[string]handlers.PingFunc {
	deps := make(map[string]handlers.PingFunc)
	if in.mongo != nil {
		deps["mongodb"] = in.mongo.Ping
	}
	if in.pg != nil {
		deps["postgres"] = in.pg.Ping
	}
	if in.redis != nil {
		deps["redis"] = func(ctx context.Context) error { return in.redis.Ping(ctx).Err() }
	}
	return deps
}
