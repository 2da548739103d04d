// Package container builds the application's components once at startup
// and hands them to the router.
package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-auth-service/config"
	"github.com/oksasatya/go-auth-service/internal/application"
	"github.com/oksasatya/go-auth-service/internal/domain/repository"
	"github.com/oksasatya/go-auth-service/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-auth-service/internal/infrastructure/postgres"
	"github.com/oksasatya/go-auth-service/internal/infrastructure/redisstore"
	"github.com/oksasatya/go-auth-service/pkg/helpers"
	"github.com/oksasatya/go-auth-service/pkg/metrics"
)

type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	PGPool    *pgxpool.Pool
	Redis     *redis.Client
	Publisher *helpers.RabbitPublisher

	JWT    *helpers.JWTManager
	Hasher *helpers.BcryptHasher

	// Registry is nil when metrics are disabled.
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	Users   repository.UserRepository
	Service *application.Service
}

// New connects the configured store and wires the service. cfg must
// already have passed Validate. On error everything opened so far is closed.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (c *Container, err error) {
	c = &Container{Config: cfg, Logger: logger}
	defer func() {
		if err != nil {
			c.Close()
			c = nil
		}
	}()

	c.JWT, err = helpers.NewJWTManager(cfg.JWTSecret, helpers.WithTTL(cfg.JWTTTL))
	if err != nil {
		return c, fmt.Errorf("jwt: %w", err)
	}
	c.Hasher = helpers.NewBcryptHasher(cfg.BcryptCost)
	if c.Hasher.Cost() != cfg.BcryptCost {
		logger.WithField("bcrypt_cost", cfg.BcryptCost).Warn("BCRYPT_COST out of range, using default")
	}

	if cfg.MetricsEnabled {
		c.Registry = prometheus.NewRegistry()
		c.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		c.Metrics = metrics.New(c.Registry)
	}

	if c.Users, err = c.openStore(ctx); err != nil {
		return c, err
	}

	opts := []application.Option{application.WithMetrics(c.Metrics)}
	if !cfg.UserNameCaseSensitive {
		opts = append(opts, application.WithCaseInsensitiveUserNames())
	}
	if cfg.UnifyLoginErrors {
		opts = append(opts, application.WithUnifiedLoginErrors())
	}
	if cfg.EventsEnabled {
		pub, perr := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQUserEventQueue, cfg.AppName)
		if perr != nil {
			logger.WithError(perr).Warn("rabbitmq unavailable, user events disabled")
		} else {
			c.Publisher = pub
			opts = append(opts, application.WithEvents(pub))
		}
	}

	c.Service = application.NewService(c.Users, c.Hasher, c.JWT, logger, opts...)
	return c, nil
}

func (c *Container) openStore(ctx context.Context) (repository.UserRepository, error) {
	cfg := c.Config
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{
			DSN:             cfg.PostgresDSN(),
			MaxConns:        cfg.DBMaxConns,
			MinConns:        cfg.DBMinConns,
			MaxConnLifetime: cfg.DBMaxConnLife,
		})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		c.PGPool = pool
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), c.Logger); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return pginfra.NewUserRepository(pool), nil

	case config.DriverRedis:
		c.Redis = helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := helpers.PingRedis(ctx, c.Redis, 5*time.Second); err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return redisstore.NewUserRepository(c.Redis), nil

	case config.DriverMemory:
		c.Logger.Warn("using in-memory user store, data is lost on restart")
		return memory.NewUserRepository(), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// Close releases every connection the container opened. Safe on a partial container.
func (c *Container) Close() {
	if c == nil {
		return
	}
	c.Publisher.Close()
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.PGPool != nil {
		c.PGPool.Close()
	}
}
