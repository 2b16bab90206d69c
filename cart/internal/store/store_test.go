package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	testRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func setupStore(t *testing.T, c context.Context) (Store, *redis.Client, func()) {
	redisContainer, err := testRedis.Run(c, "redis/redis-stack-server:7.4.0-v3")
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

	teardown := func() {
		redisClient.Close()
		if err := testcontainers.TerminateContainer(redisContainer); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}
	return NewStore(redisClient), redisClient, teardown
}

func TestSaveAndLoadRoundtrip(t *testing.T) {
	c := context.Background()
	s, _, teardown := setupStore(t, c)
	defer teardown()

	key := Key(uuid.New())
	product := newProduct("12000")

	err := s.Save(c, key, Items{}.Add(product, 2))
	assert.NoError(t, err)

	items, err := s.Load(c, key)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, product.ID, items[0].Product.ID)
	assert.EqualValues(t, 2, items[0].Quantity)
}

func TestSaveEmptyCartDeletesKey(t *testing.T) {
	c := context.Background()
	s, cache, teardown := setupStore(t, c)
	defer teardown()

	key := Key(uuid.New())

	err := s.Save(c, key, Items{}.Add(newProduct("5000"), 1))
	assert.NoError(t, err)
	exists, err := cache.Exists(c, key).Result()
	assert.NoError(t, err)
	assert.EqualValues(t, 1, exists)

	err = s.Save(c, key, Items{})
	assert.NoError(t, err)
	exists, err = cache.Exists(c, key).Result()
	assert.NoError(t, err)
	assert.EqualValuesf(t, 0, exists, "saving an empty cart should delete the key")
}

func TestClearDeletesKey(t *testing.T) {
	c := context.Background()
	s, cache, teardown := setupStore(t, c)
	defer teardown()

	key := Key(uuid.New())

	err := s.Save(c, key, Items{}.Add(newProduct("5000"), 1))
	assert.NoError(t, err)

	err = s.Clear(c, key)
	assert.NoError(t, err)
	exists, err := cache.Exists(c, key).Result()
	assert.NoError(t, err)
	assert.EqualValues(t, 0, exists)
}

func TestLoadMissingKeyReturnsEmptyCart(t *testing.T) {
	c := context.Background()
	s, _, teardown := setupStore(t, c)
	defer teardown()

	items, err := s.Load(c, Key(uuid.New()))
	assert.NoError(t, err)
	assert.Empty(t, items)
}
