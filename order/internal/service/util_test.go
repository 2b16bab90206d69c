package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	testRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/malchin/market/internal/repository"
)

var (
	customerId = uuid.MustParse("6c64fa8a-3f72-4dbd-8ef2-1e2f5f1f6e01")
	herderId   = uuid.MustParse("8a1db0a1-52a1-4c52-9d8a-2f3e6a2b7e02")
	adminId    = uuid.MustParse("f3b0c8d2-71c3-4f63-8f9b-3a4f7b3c8e03")

	muttonId     = uuid.MustParse("0d5b7a9c-9a31-4a14-9a6e-4b5c8d4e9f04")
	outOfStockId = uuid.MustParse("1e6c8bad-ab42-4b25-ab7f-5c6d9e5fa005")
	pendingId    = uuid.MustParse("2f7d9cbe-bc53-4c36-bc80-6d7eaf60b106")
)

type fixture struct {
	pool           *pgxpool.Pool
	cache          *redis.Client
	pgContainer    *postgres.PostgresContainer
	redisContainer *testRedis.RedisContainer
	queries        *repository.Queries
	service        OrderService
}

func setup(t *testing.T, c context.Context) fixture {
	pgContainer, err := postgres.Run(
		c,
		"postgres:16.6-alpine3.21",
		testcontainers.WithEnv(map[string]string{
			"POSTGRES_DB":       "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_PORT":     "5432",
			"POSTGRES_USER":     "postgres",
		}),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.WithDatabase("postgres"),
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			filepath.Join("..", "..", "..", "migrations", "000001_init.up.sql"),
			filepath.Join("seed", "users.seed.sql"),
			filepath.Join("seed", "products.seed.sql"),
		),
	)
	if err != nil {
		t.Fatalf("failed running postgres container with error: %s", err)
	}

	pgConnStr, err := pgContainer.ConnectionString(c)
	if err != nil {
		t.Fatalf("failed getting postgres connection string with error: %s", err)
	}

	pgConfig, err := pgxpool.ParseConfig(pgConnStr)
	if err != nil {
		t.Fatalf("failed parsing pgconfig with error: %s", err)
	}

	pool, err := pgxpool.NewWithConfig(c, pgConfig)
	if err != nil {
		t.Fatalf("failed creating postgres pool with error: %s", err)
	}

	if err = pool.Ping(c); err != nil {
		t.Fatalf("failed ping postgres pool with error: %s", err)
	}

	redisContainer, err := testRedis.Run(
		c,
		"redis:7.4.2-alpine3.21",
		testRedis.WithLogLevel(testRedis.LogLevelVerbose),
	)
	if err != nil {
		t.Fatalf("failed running redis container with error: %s", err)
	}

	redisConnStr, err := redisContainer.ConnectionString(c)
	if err != nil {
		t.Fatalf("failed getting redis connection string with error: %s", err)
	}

	redisOpt, err := redis.ParseURL(redisConnStr)
	if err != nil {
		t.Fatalf("failed parsing redis connection string with error: %s", err)
	}

	redisClient := redis.NewClient(redisOpt)
	if err = redisClient.Ping(c).Err(); err != nil {
		t.Fatalf("failed ping redis client with error: %s", err)
	}

	queries := repository.New(pool)
	return fixture{
		pool:           pool,
		cache:          redisClient,
		pgContainer:    pgContainer,
		redisContainer: redisContainer,
		queries:        queries,
		service:        NewOrderService(pool, queries, redisClient),
	}
}

func (f fixture) teardown(t *testing.T) {
	f.cache.Close()
	f.pool.Close()
	if err := testcontainers.TerminateContainer(f.pgContainer); err != nil {
		t.Fatalf("failed to terminate container: %s", err)
	}
	if err := testcontainers.TerminateContainer(f.redisContainer); err != nil {
		t.Fatalf("failed to terminate container: %s", err)
	}
}
