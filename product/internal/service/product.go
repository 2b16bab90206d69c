package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/malchin/market/internal/constants"
	inErrors "github.com/malchin/market/internal/errors"
	"github.com/malchin/market/internal/log"
	inOtel "github.com/malchin/market/internal/otel"
	"github.com/malchin/market/internal/repository"
	"github.com/malchin/market/product/internal/cache"
	"github.com/malchin/market/product/internal/imghost"
	"github.com/malchin/market/product/internal/otel"
	"github.com/malchin/market/product/pkg/request"
	"github.com/malchin/market/product/pkg/response"
)

const defaultPageSize = 20

type ProductService struct {
	queries *repository.Queries
	cache   *redis.Client
	imghost imghost.Client
}

func NewProductService(
	queries *repository.Queries,
	cache *redis.Client,
	imghost imghost.Client,
) ProductService {
	return ProductService{queries: queries, cache: cache, imghost: imghost}
}

func (svc ProductService) InsertProduct(
	c context.Context,
	herderId uuid.UUID,
	param request.Product,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService InsertProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService InsertProduct").
		Str(log.KeyUserID, herderId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding herder").Logger()
	logger.Info().Msg("finding herder")
	span.AddEvent("finding herder")
	herder, err := svc.queries.FindUserById(c, herderId)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msgf("failed finding herder with error=%s", err.Error())
		return response.Product{}, errors.Join(err, inErrors.ErrUserNotFound)
	}
	if herder.Role != repository.UserRoleHerder && herder.Role != repository.UserRoleAdmin {
		err = inErrors.ErrForbidden
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	span.AddEvent("found herder")
	logger.Info().Msg("found herder")

	logger = logger.With().Str(log.KeyProcess, "inserting product").Logger()
	logger.Info().Msg("inserting product")
	span.AddEvent("inserting product")
	product, err := svc.queries.InsertProduct(c, repository.InsertProductParams{
		HerderID:    herder.ID,
		HerderName:  herder.Name,
		Title:       param.Title,
		Description: param.Description,
		Price: pgtype.Numeric{
			Exp:              param.Price.Exponent(),
			InfinityModifier: pgtype.Finite,
			Int:              param.Price.Coefficient(),
			NaN:              false,
			Valid:            true,
		},
		Unit:        param.Unit,
		Category:    repository.ProductCategory(param.Category),
		SubCategory: param.SubCategory,
		Images:      param.Images,
		Quantity:    param.Quantity,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting product with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	span.AddEvent("inserted product")
	logger = logger.With().Str(log.KeyProductID, product.ID.String()).Logger()
	logger.Info().Msg("inserted product")

	cacheKey := cache.KEY_PRODUCTS + product.ID.String()
	logger = logger.With().
		Str(log.KeyProcess, "inserting product to cache").
		Str(log.KeyCacheKey, cacheKey).
		Logger()
	logger.Info().Msg("inserting product to cache")
	span.AddEvent("inserting product to cache")
	err = svc.cache.JSONSet(c, cacheKey, "$", product.Response()).Err()
	if err != nil {
		err = fmt.Errorf("failed inserting product to cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return product.Response(), nil
	}
	span.AddEvent("inserted product to cache")
	logger.Info().Msg("inserted product to cache")

	return product.Response(), nil
}

func (svc ProductService) FindApprovedProducts(
	c context.Context,
	param request.FindProducts,
) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindApprovedProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindApprovedProducts").
		Str(log.KeyProcess, "finding approved products").
		Logger()

	arg := repository.FindApprovedProductsParams{Limit: param.Limit}
	if arg.Limit <= 0 {
		arg.Limit = defaultPageSize
	}
	if param.Category != "" {
		arg.Category = repository.NullProductCategory{
			ProductCategory: repository.ProductCategory(param.Category),
			Valid:           true,
		}
	}
	if param.SubCategory != "" {
		arg.SubCategory = pgtype.Text{String: param.SubCategory, Valid: true}
	}
	if param.Search != "" {
		arg.Search = pgtype.Text{String: param.Search, Valid: true}
	}
	if !param.CreatedBefore.IsZero() {
		arg.CreatedBefore = pgtype.Timestamptz{Time: param.CreatedBefore, Valid: true}
	}

	logger.Info().Msg("finding approved products")
	span.AddEvent("finding approved products")
	products, err := svc.queries.FindApprovedProducts(c, arg)
	if err != nil {
		err = fmt.Errorf("failed finding approved products with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	span.AddEvent("found approved products")
	logger.Info().Msgf("found %d approved products", len(products))

	result := make([]response.Product, len(products))
	for i, product := range products {
		result[i] = product.Response()
	}
	return result, nil
}

func (svc ProductService) FindProductById(
	c context.Context,
	id uuid.UUID,
) (product response.Product, err error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductById")
	defer span.End()

	cacheKey := cache.KEY_PRODUCTS + id.String()
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductById").
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product in cache").Logger()
	logger.Trace().Msg("finding product in cache")
	jsonCache, err := svc.cache.JSONGet(c, cacheKey).Result()
	if err != nil || jsonCache == "" {
		logger.Info().Msg("product is not in cache")

		logger = logger.With().Str(log.KeyProcess, "finding product in database").Logger()
		logger.Trace().Msg("finding product in database")
		span.AddEvent("finding product in database")
		dbProduct, err := svc.queries.FindProductById(c, id)
		if err != nil {
			inOtel.RecordError(err, span)
			logger.Error().
				Err(err).
				Msgf("failed finding product in database with error=%s", err.Error())
			return response.Product{}, errors.Join(err, inErrors.ErrProductNotFound)
		}
		span.AddEvent("found product in database")
		logger.Info().Msg("found product in database")

		logger = logger.With().Str(log.KeyProcess, "inserting product to cache").Logger()
		logger.Trace().Msg("inserting product to cache")
		if err := svc.cache.JSONSet(c, cacheKey, "$", dbProduct.Response()).Err(); err != nil {
			err = fmt.Errorf("failed inserting product to cache with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
		}
		logger.Trace().Msg("inserted product to cache")

		return dbProduct.Response(), nil
	}
	span.AddEvent("found product in cache")
	logger = logger.With().Str(log.KeyJsonCache, jsonCache).Logger()
	logger.Debug().Msg("found product in cache")

	logger.Trace().Msg("unmarshalling product from cache")
	err = json.Unmarshal([]byte(jsonCache), &product)
	if err != nil {
		err = fmt.Errorf("failed unmarshalling product from cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("found product in cache")

	return product, nil
}

func (svc ProductService) FindProductsByHerderId(
	c context.Context,
	herderId uuid.UUID,
) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductsByHerderId")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductsByHerderId").
		Str(log.KeyUserID, herderId.String()).
		Str(log.KeyProcess, "finding products by herderId").
		Logger()

	logger.Info().Msg("finding products by herderId")
	products, err := svc.queries.FindProductsByHerderId(c, herderId)
	if err != nil {
		err = fmt.Errorf("failed finding products by herderId with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d products by herderId", len(products))

	result := make([]response.Product, len(products))
	for i, product := range products {
		result[i] = product.Response()
	}
	return result, nil
}

func (svc ProductService) FindProductsByStatus(
	c context.Context,
	callerId uuid.UUID,
	status repository.ProductStatus,
) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductsByStatus")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductsByStatus").
		Str(log.KeyStatus, string(status)).
		Logger()

	if err := svc.requireAdmin(c, callerId); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding products by status").Logger()
	logger.Info().Msg("finding products by status")
	products, err := svc.queries.FindProductsByStatus(c, status)
	if err != nil {
		err = fmt.Errorf("failed finding products by status with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d products by status", len(products))

	result := make([]response.Product, len(products))
	for i, product := range products {
		result[i] = product.Response()
	}
	return result, nil
}

func (svc ProductService) FindProducts(
	c context.Context,
	callerId uuid.UUID,
) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProducts").
		Logger()

	if err := svc.requireAdmin(c, callerId); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding products").Logger()
	logger.Info().Msg("finding products")
	products, err := svc.queries.FindProducts(c)
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d products", len(products))

	result := make([]response.Product, len(products))
	for i, product := range products {
		result[i] = product.Response()
	}
	return result, nil
}

func (svc ProductService) UpdateProduct(
	c context.Context,
	callerId uuid.UUID,
	id uuid.UUID,
	param request.Product,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService UpdateProduct")
	defer span.End()

	cacheKey := cache.KEY_PRODUCTS + id.String()
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService UpdateProduct").
		Str(log.KeyProductID, id.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	if err := svc.requireOwnerOrAdmin(c, callerId, id); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "updating product").Logger()
	logger.Info().Msg("updating product")
	span.AddEvent("updating product")
	product, err := svc.queries.UpdateProduct(c, repository.UpdateProductParams{
		Title:       param.Title,
		Description: param.Description,
		Price: pgtype.Numeric{
			Exp:              param.Price.Exponent(),
			InfinityModifier: pgtype.Finite,
			Int:              param.Price.Coefficient(),
			NaN:              false,
			Valid:            true,
		},
		Unit:        param.Unit,
		Category:    repository.ProductCategory(param.Category),
		SubCategory: param.SubCategory,
		Images:      param.Images,
		Quantity:    param.Quantity,
		ID:          id,
	})
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msgf("failed updating product with error=%s", err.Error())
		return response.Product{}, errors.Join(err, inErrors.ErrProductNotFound)
	}
	span.AddEvent("updated product")
	logger.Info().Msg("updated product")

	logger = logger.With().Str(log.KeyProcess, "updating product in cache").Logger()
	logger.Info().Msg("updating product in cache")
	span.AddEvent("updating product in cache")
	err = svc.cache.JSONSet(c, cacheKey, "$", product.Response()).Err()
	if err != nil {
		err = fmt.Errorf("failed updating product in cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}
	span.AddEvent("updated product in cache")
	logger.Info().Msg("updated product in cache")

	return product.Response(), nil
}

func (svc ProductService) UpdateProductStatus(
	c context.Context,
	callerId uuid.UUID,
	id uuid.UUID,
	param request.UpdateStatus,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService UpdateProductStatus")
	defer span.End()

	cacheKey := cache.KEY_PRODUCTS + id.String()
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService UpdateProductStatus").
		Str(log.KeyProductID, id.String()).
		Str(log.KeyStatus, param.Status).
		Logger()

	if err := svc.requireAdmin(c, callerId); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Info().Msg("finding product")
	product, err := svc.queries.FindProductById(c, id)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msgf("failed finding product with error=%s", err.Error())
		return response.Product{}, errors.Join(err, inErrors.ErrProductNotFound)
	}
	logger.Info().Msg("found product")

	if product.Status != repository.ProductStatusPending {
		err = fmt.Errorf(
			"product status=%s cannot change to status=%s with error=%w",
			product.Status,
			param.Status,
			inErrors.ErrModerationState,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "updating product status").Logger()
	logger.Info().Msg("updating product status")
	span.AddEvent("updating product status")
	product, err = svc.queries.UpdateProductStatus(c, repository.UpdateProductStatusParams{
		Status: repository.ProductStatus(param.Status),
		ID:     id,
	})
	if err != nil {
		err = fmt.Errorf("failed updating product status with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	span.AddEvent("updated product status")
	logger.Info().Msg("updated product status")

	logger = logger.With().Str(log.KeyProcess, "updating product in cache").Logger()
	logger.Info().Msg("updating product in cache")
	err = svc.cache.JSONSet(c, cacheKey, "$", product.Response()).Err()
	if err != nil {
		err = fmt.Errorf("failed updating product in cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("updated product in cache")

	return product.Response(), nil
}

func (svc ProductService) RemoveProduct(
	c context.Context,
	callerId uuid.UUID,
	id uuid.UUID,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService RemoveProduct")
	defer span.End()

	cacheKey := cache.KEY_PRODUCTS + id.String()
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService RemoveProduct").
		Str(log.KeyProductID, id.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	if err := svc.requireOwnerOrAdmin(c, callerId, id); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "removing product in cache").Logger()
	logger.Info().Msg("removing product in cache")
	span.AddEvent("removing product in cache")
	err := svc.cache.JSONDel(c, cacheKey, "$").Err()
	if err != nil {
		err = fmt.Errorf("failed removing product in cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}
	span.AddEvent("removed product in cache")
	logger.Info().Msg("removed product in cache")

	logger = logger.With().Str(log.KeyProcess, "removing product in database").Logger()
	logger.Info().Msg("removing product in database")
	span.AddEvent("removing product in database")
	product, err := svc.queries.DeleteProduct(c, id)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().
			Err(err).
			Msgf("failed removing product in database with error=%s", err.Error())
		return response.Product{}, errors.Join(err, inErrors.ErrProductNotFound)
	}
	span.AddEvent("removed product in database")
	logger.Info().Msg("removed product in database")

	return product.Response(), nil
}

func (svc ProductService) UploadImage(
	c context.Context,
	param request.UploadImage,
) (response.UploadedImage, error) {
	c, span := otel.Tracer.Start(c, "ProductService UploadImage")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService UploadImage").
		Str(log.KeyProcess, "uploading image").
		Logger()

	logger.Info().Msg("uploading image")
	url, err := svc.imghost.Upload(c, param.Image)
	if err != nil {
		err = fmt.Errorf("failed uploading image with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.UploadedImage{}, err
	}
	logger.Info().Msg("uploaded image")

	return response.UploadedImage{URL: url}, nil
}

type quantityUpdate struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int32     `json:"quantity"`
}

// ListenQuantityUpdate refreshes cached products when the order service
// publishes a stock change. Blocks until the context is cancelled.
func (svc ProductService) ListenQuantityUpdate(c context.Context) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService ListenQuantityUpdate").
		Str(log.KeyProcess, "listening quantity update").
		Logger()

	pubsub := svc.cache.Subscribe(c, constants.CHANNEL_PRODUCT_QUANTITY)
	defer pubsub.Close()

	logger.Info().Msgf("subscribed to channel=%s", constants.CHANNEL_PRODUCT_QUANTITY)
	for {
		select {
		case <-c.Done():
			logger.Info().Msg("stopped listening quantity update")
			return
		case message, ok := <-pubsub.Channel():
			if !ok {
				logger.Info().Msg("subscription channel closed")
				return
			}
			svc.handleQuantityUpdate(c, message.Payload)
		}
	}
}

func (svc ProductService) handleQuantityUpdate(c context.Context, payload string) {
	c, span := otel.Tracer.Start(c, "ProductService handleQuantityUpdate")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService handleQuantityUpdate").
		Str(log.KeyProcess, "handling quantity update").
		Logger()

	update := quantityUpdate{}
	if err := json.Unmarshal([]byte(payload), &update); err != nil {
		err = fmt.Errorf("failed unmarshalling quantity update with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger = logger.With().
		Str(log.KeyProductID, update.ProductID.String()).
		Int32(log.KeyQuantity, update.Quantity).
		Logger()

	logger.Info().Msg("refreshing cached product")
	product, err := svc.queries.FindProductById(c, update.ProductID)
	if err != nil {
		err = fmt.Errorf("failed finding product with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}

	cacheKey := cache.KEY_PRODUCTS + update.ProductID.String()
	if err := svc.cache.JSONSet(c, cacheKey, "$", product.Response()).Err(); err != nil {
		err = fmt.Errorf("failed updating product in cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("refreshed cached product")
}

func (svc ProductService) requireAdmin(c context.Context, callerId uuid.UUID) error {
	caller, err := svc.queries.FindUserById(c, callerId)
	if err != nil {
		return errors.Join(err, inErrors.ErrUserNotFound)
	}
	if caller.Role != repository.UserRoleAdmin {
		return inErrors.ErrForbidden
	}
	return nil
}

func (svc ProductService) requireOwnerOrAdmin(
	c context.Context,
	callerId uuid.UUID,
	productId uuid.UUID,
) error {
	caller, err := svc.queries.FindUserById(c, callerId)
	if err != nil {
		return errors.Join(err, inErrors.ErrUserNotFound)
	}
	if caller.Role == repository.UserRoleAdmin {
		return nil
	}
	product, err := svc.queries.FindProductById(c, productId)
	if err != nil {
		return errors.Join(err, inErrors.ErrProductNotFound)
	}
	if product.HerderID != callerId {
		return inErrors.ErrForbidden
	}
	return nil
}
