package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/malchin/market/cart/internal/otel"
	"github.com/malchin/market/internal/log"
	inOtel "github.com/malchin/market/internal/otel"
)

// Key returns the cache key holding the cart of the given user. The nil
// uuid maps to the shared anonymous cart key.
func Key(userId uuid.UUID) string {
	if userId == uuid.Nil {
		return "cart"
	}
	return "cart_" + userId.String()
}

// Store persists carts as json arrays of cart items. An empty cart is
// represented by the absence of its key.
type Store struct {
	cache *redis.Client
}

func NewStore(cache *redis.Client) Store {
	return Store{cache: cache}
}

func (s Store) Load(c context.Context, key string) (Items, error) {
	c, span := otel.Tracer.Start(c, "Store Load")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Store Load").
		Str(log.KeyCartKey, key).
		Str(log.KeyProcess, "loading cart").
		Logger()

	logger.Trace().Msg("loading cart")
	jsonCache, err := s.cache.JSONGet(c, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			logger.Info().Msg("cart is empty")
			return Items{}, nil
		}
		err = fmt.Errorf("failed loading cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	if jsonCache == "" {
		logger.Info().Msg("cart is empty")
		return Items{}, nil
	}

	items := Items{}
	if err := json.Unmarshal([]byte(jsonCache), &items); err != nil {
		err = fmt.Errorf("failed unmarshalling cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Int(log.KeyCartItems, len(items)).Msg("loaded cart")

	return items, nil
}

func (s Store) Save(c context.Context, key string, items Items) error {
	c, span := otel.Tracer.Start(c, "Store Save")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Store Save").
		Str(log.KeyCartKey, key).
		Int(log.KeyCartItems, len(items)).
		Str(log.KeyProcess, "saving cart").
		Logger()

	if len(items) == 0 {
		logger.Info().Msg("cart is empty, deleting key")
		if err := s.cache.Del(c, key).Err(); err != nil {
			err = fmt.Errorf("failed deleting cart with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return err
		}
		logger.Info().Msg("deleted cart key")
		return nil
	}

	logger.Trace().Msg("saving cart")
	if err := s.cache.JSONSet(c, key, "$", items).Err(); err != nil {
		err = fmt.Errorf("failed saving cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("saved cart")

	return nil
}

func (s Store) Clear(c context.Context, key string) error {
	c, span := otel.Tracer.Start(c, "Store Clear")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Store Clear").
		Str(log.KeyCartKey, key).
		Str(log.KeyProcess, "clearing cart").
		Logger()

	logger.Info().Msg("clearing cart")
	if err := s.cache.Del(c, key).Err(); err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("cleared cart")

	return nil
}
