package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/malchin/market/internal/constants"
	inErrors "github.com/malchin/market/internal/errors"
	"github.com/malchin/market/internal/log"
	inOtel "github.com/malchin/market/internal/otel"
	"github.com/malchin/market/internal/repository"
	"github.com/malchin/market/order/internal/cache"
	"github.com/malchin/market/order/internal/otel"
	"github.com/malchin/market/order/internal/status"
	"github.com/malchin/market/order/pkg/request"
	"github.com/malchin/market/order/pkg/response"
)

type OrderService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewOrderService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) OrderService {
	return OrderService{pool: pool, queries: queries, cache: cache}
}

type quantityUpdate struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int32     `json:"quantity"`
}

func (svc OrderService) CreateOrder(
	c context.Context,
	customerId uuid.UUID,
	param request.Checkout,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService CreateOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService CreateOrder").
		Str(log.KeyUserID, customerId.String()).
		Int(log.KeyOrderItems, len(param.Items)).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding customer").Logger()
	logger.Info().Msg("finding customer")
	span.AddEvent("finding customer")
	customer, err := svc.queries.FindUserById(c, customerId)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msgf("failed finding customer with error=%s", err.Error())
		return response.Order{}, errors.Join(err, inErrors.ErrUserNotFound)
	}
	span.AddEvent("found customer")
	logger.Info().Msg("found customer")

	logger = logger.With().Str(log.KeyProcess, "merging order items").Logger()
	logger.Info().Msg("merging order items")
	span.AddEvent("merging order items")
	merged := map[uuid.UUID]int32{}
	ordered := []uuid.UUID{}
	for _, item := range param.Items {
		if _, ok := merged[item.ProductId]; !ok {
			ordered = append(ordered, item.ProductId)
		}
		merged[item.ProductId] += item.Quantity
	}
	span.AddEvent("merged order items")
	logger.Info().Msgf("merged order items into %d products", len(ordered))

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := svc.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("initialized transaction")
	defer func(lg zerolog.Logger) {
		l := lg.With().Str(log.KeyProcess, "rolling back transaction").Logger()
		l.Info().Msg("rolling back transaction")
		err := tx.Rollback(c)
		if err != nil {
			if errors.Is(err, pgx.ErrTxClosed) {
				return
			}
			err = fmt.Errorf("failed rolling back transaction with error=%w", err)
			inOtel.RecordError(err, span)
			l.Error().Err(err).Msg(err.Error())
			return
		}
		l.Info().Msg("rolled back transaction")
	}(logger)
	queries := svc.queries.WithTx(tx)

	logger = logger.With().Str(log.KeyProcess, "loading products").Logger()
	logger.Info().Msg("loading products")
	span.AddEvent("loading products")
	totalAmount := decimal.Zero
	herderId := uuid.Nil
	items := make([]repository.InsertOrderItemsParams, 0, len(ordered))
	decrements := []quantityUpdate{}
	for _, productId := range ordered {
		quantity := merged[productId]
		lg := logger.With().
			Str(log.KeyProductID, productId.String()).
			Int32(log.KeyQuantity, quantity).
			Logger()

		product, err := queries.FindProductById(c, productId)
		if err != nil {
			inOtel.RecordError(err, span)
			lg.Error().Err(err).Msgf("failed finding product with error=%s", err.Error())
			return response.Order{}, errors.Join(err, inErrors.ErrProductNotFound)
		}
		if product.Status != repository.ProductStatusApproved {
			err = fmt.Errorf(
				"product with id=%s is not available with error=%w",
				productId.String(),
				inErrors.ErrProductNotFound,
			)
			inOtel.RecordError(err, span)
			lg.Error().Err(err).Msg(err.Error())
			return response.Order{}, err
		}
		if product.Quantity <= 0 {
			err = fmt.Errorf(
				"product with id=%s with error=%w",
				productId.String(),
				inErrors.ErrOutOfStock,
			)
			inOtel.RecordError(err, span)
			lg.Error().Err(err).Msg(err.Error())
			return response.Order{}, err
		}
		if herderId == uuid.Nil {
			herderId = product.HerderID
		}

		price := decimal.NewFromBigInt(product.Price.Int, product.Price.Exp)
		totalAmount = totalAmount.Add(price.Mul(decimal.NewFromInt32(quantity)))
		items = append(items, repository.InsertOrderItemsParams{
			ID:        uuid.New(),
			ProductID: product.ID,
			Title:     product.Title,
			Price:     product.Price,
			Quantity:  quantity,
		})
		decrements = append(decrements, quantityUpdate{ProductID: product.ID, Quantity: quantity})
		lg.Info().Msg("loaded product")
	}
	span.AddEvent("loaded products")
	logger.Info().Msg("loaded products")

	logger = logger.With().Str(log.KeyProcess, "inserting order").Logger()
	logger.Info().Msg("inserting order")
	span.AddEvent("inserting order")
	order, err := queries.InsertOrder(c, repository.InsertOrderParams{
		ID:           uuid.New(),
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		HerderID:     herderId,
		TotalAmount: pgtype.Numeric{
			Exp:              totalAmount.Exponent(),
			InfinityModifier: pgtype.Finite,
			Int:              totalAmount.Coefficient(),
			NaN:              false,
			Valid:            true,
		},
		ContactPhone:    param.ContactPhone,
		DeliveryAddress: param.DeliveryAddress,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting order with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	span.AddEvent("inserted order")
	logger = logger.With().Str(log.KeyOrderID, order.ID.String()).Logger()
	logger.Info().Msg("inserted order")

	logger = logger.With().Str(log.KeyProcess, "inserting order items").Logger()
	logger.Info().Msg("inserting order items")
	span.AddEvent("inserting order items")
	for i := range items {
		items[i].OrderID = order.ID
	}
	insertedCount, err := queries.InsertOrderItems(c, items)
	if err != nil {
		err = fmt.Errorf("failed inserting order items with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	span.AddEvent("inserted order items")
	logger.Info().Msgf("inserted %d order items", insertedCount)

	logger = logger.With().Str(log.KeyProcess, "decrementing product quantity").Logger()
	logger.Info().Msg("decrementing product quantity")
	span.AddEvent("decrementing product quantity")
	remaining := make([]quantityUpdate, 0, len(decrements))
	for _, decrement := range decrements {
		product, err := queries.DecrementProductQuantity(
			c,
			repository.DecrementProductQuantityParams{
				Quantity: decrement.Quantity,
				ID:       decrement.ProductID,
			},
		)
		if err != nil {
			err = fmt.Errorf(
				"failed decrementing quantity of productId=%s with error=%w",
				decrement.ProductID.String(),
				err,
			)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Order{}, err
		}
		remaining = append(
			remaining,
			quantityUpdate{ProductID: product.ID, Quantity: product.Quantity},
		)
	}
	span.AddEvent("decremented product quantity")
	logger.Info().Msg("decremented product quantity")

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Info().Msg("committing transaction")
	err = tx.Commit(c)
	if err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("committed transaction")

	logger = logger.With().Str(log.KeyProcess, "publishing quantity update").Logger()
	logger.Info().Msg("publishing quantity update")
	span.AddEvent("publishing quantity update")
	for _, update := range remaining {
		payload, err := json.Marshal(update)
		if err != nil {
			err = fmt.Errorf("failed marshalling quantity update with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			continue
		}
		err = svc.cache.Publish(c, constants.CHANNEL_PRODUCT_QUANTITY, payload).Err()
		if err != nil {
			err = fmt.Errorf("failed publishing quantity update with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
		}
	}
	span.AddEvent("published quantity update")
	logger.Info().Msg("published quantity update")

	orderItems := make([]repository.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = repository.OrderItem{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}
	orderResponse := order.Response(orderItems)

	cacheKey := cache.KEY_ORDERS + order.ID.String()
	logger = logger.With().
		Str(log.KeyProcess, "inserting order to cache").
		Str(log.KeyCacheKey, cacheKey).
		Logger()
	logger.Info().Msg("inserting order to cache")
	err = svc.cache.JSONSet(c, cacheKey, "$", orderResponse).Err()
	if err != nil {
		err = fmt.Errorf("failed inserting order to cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("inserted order to cache")

	return orderResponse, nil
}

func (svc OrderService) FindOrderById(
	c context.Context,
	callerId uuid.UUID,
	id uuid.UUID,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrderById")
	defer span.End()

	cacheKey := cache.KEY_ORDERS + id.String()
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrderById").
		Str(log.KeyOrderID, id.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	caller, err := svc.queries.FindUserById(c, callerId)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msgf("failed finding caller with error=%s", err.Error())
		return response.Order{}, errors.Join(err, inErrors.ErrUserNotFound)
	}

	logger = logger.With().Str(log.KeyProcess, "finding order in cache").Logger()
	logger.Trace().Msg("finding order in cache")
	jsonCache, err := svc.cache.JSONGet(c, cacheKey).Result()
	if err == nil && jsonCache != "" {
		order := response.Order{}
		if err := json.Unmarshal([]byte(jsonCache), &order); err == nil {
			logger.Info().Msg("found order in cache")
			if err := authorizeOrderAccess(caller, order.CustomerID, order.HerderID); err != nil {
				inOtel.RecordError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				return response.Order{}, err
			}
			return order, nil
		}
	}
	logger.Info().Msg("order is not in cache")

	logger = logger.With().Str(log.KeyProcess, "finding order in database").Logger()
	logger.Info().Msg("finding order in database")
	span.AddEvent("finding order in database")
	order, err := svc.queries.FindOrderById(c, id)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().
			Err(err).
			Msgf("failed finding order in database with error=%s", err.Error())
		return response.Order{}, errors.Join(err, inErrors.ErrOrderNotFound)
	}
	span.AddEvent("found order in database")
	logger.Info().Msg("found order in database")

	if err := authorizeOrderAccess(caller, order.CustomerID, order.HerderID); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding order items").Logger()
	logger.Info().Msg("finding order items")
	items, err := svc.queries.FindOrderItemsByOrderId(c, order.ID)
	if err != nil {
		err = fmt.Errorf("failed finding order items with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msgf("found %d order items", len(items))

	orderResponse := order.Response(items)

	logger = logger.With().Str(log.KeyProcess, "inserting order to cache").Logger()
	logger.Trace().Msg("inserting order to cache")
	if err := svc.cache.JSONSet(c, cacheKey, "$", orderResponse).Err(); err != nil {
		err = fmt.Errorf("failed inserting order to cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}
	logger.Trace().Msg("inserted order to cache")

	return orderResponse, nil
}

// FindOrders returns the orders visible to the caller: customers see the
// orders they placed, herders the orders placed against their products,
// admins every order.
func (svc OrderService) FindOrders(
	c context.Context,
	callerId uuid.UUID,
) ([]response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrders").
		Str(log.KeyUserID, callerId.String()).
		Logger()

	caller, err := svc.queries.FindUserById(c, callerId)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msgf("failed finding caller with error=%s", err.Error())
		return nil, errors.Join(err, inErrors.ErrUserNotFound)
	}
	logger = logger.With().
		Str(log.KeyUserRole, string(caller.Role)).
		Str(log.KeyProcess, "finding orders").
		Logger()

	logger.Info().Msg("finding orders")
	span.AddEvent("finding orders")
	var orders []repository.Order
	switch caller.Role {
	case repository.UserRoleHerder:
		orders, err = svc.queries.FindOrdersByHerderId(c, callerId)
	case repository.UserRoleAdmin:
		orders, err = svc.queries.FindOrders(c)
	default:
		orders, err = svc.queries.FindOrdersByCustomerId(c, callerId)
	}
	if err != nil {
		err = fmt.Errorf("failed finding orders with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	span.AddEvent("found orders")
	logger.Info().Msgf("found %d orders", len(orders))

	result := make([]response.Order, len(orders))
	for i, order := range orders {
		items, err := svc.queries.FindOrderItemsByOrderId(c, order.ID)
		if err != nil {
			err = fmt.Errorf(
				"failed finding items of orderId=%s with error=%w",
				order.ID.String(),
				err,
			)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		result[i] = order.Response(items)
	}
	return result, nil
}

func (svc OrderService) UpdateOrderStatus(
	c context.Context,
	callerId uuid.UUID,
	id uuid.UUID,
	param request.UpdateStatus,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService UpdateOrderStatus")
	defer span.End()

	cacheKey := cache.KEY_ORDERS + id.String()
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService UpdateOrderStatus").
		Str(log.KeyOrderID, id.String()).
		Str(log.KeyStatus, param.Status).
		Logger()

	caller, err := svc.queries.FindUserById(c, callerId)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msgf("failed finding caller with error=%s", err.Error())
		return response.Order{}, errors.Join(err, inErrors.ErrUserNotFound)
	}
	logger = logger.With().Str(log.KeyUserRole, string(caller.Role)).Logger()

	logger = logger.With().Str(log.KeyProcess, "finding order").Logger()
	logger.Info().Msg("finding order")
	order, err := svc.queries.FindOrderById(c, id)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msgf("failed finding order with error=%s", err.Error())
		return response.Order{}, errors.Join(err, inErrors.ErrOrderNotFound)
	}
	logger.Info().Msg("found order")

	if caller.Role == repository.UserRoleHerder && order.HerderID != caller.ID {
		err = inErrors.ErrForbidden
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	to := repository.OrderStatus(param.Status)
	if !status.CanTransition(caller.Role, order.Status, to) {
		err = fmt.Errorf(
			"role=%s cannot move order from status=%s to status=%s with error=%w",
			caller.Role,
			order.Status,
			to,
			inErrors.ErrStatusTransition,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "updating order status").Logger()
	logger.Info().Msg("updating order status")
	span.AddEvent("updating order status")
	order, err = svc.queries.UpdateOrderStatus(c, repository.UpdateOrderStatusParams{
		Status: to,
		ID:     id,
	})
	if err != nil {
		err = fmt.Errorf("failed updating order status with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	span.AddEvent("updated order status")
	logger.Info().Msg("updated order status")

	logger = logger.With().Str(log.KeyProcess, "finding order items").Logger()
	items, err := svc.queries.FindOrderItemsByOrderId(c, order.ID)
	if err != nil {
		err = fmt.Errorf("failed finding order items with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	orderResponse := order.Response(items)

	logger = logger.With().
		Str(log.KeyProcess, "updating order in cache").
		Str(log.KeyCacheKey, cacheKey).
		Logger()
	logger.Info().Msg("updating order in cache")
	if err := svc.cache.JSONSet(c, cacheKey, "$", orderResponse).Err(); err != nil {
		err = fmt.Errorf("failed updating order in cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("updated order in cache")

	return orderResponse, nil
}

func authorizeOrderAccess(
	caller repository.User,
	customerId uuid.UUID,
	herderId uuid.UUID,
) error {
	if caller.Role == repository.UserRoleAdmin {
		return nil
	}
	if caller.ID == customerId || caller.ID == herderId {
		return nil
	}
	return inErrors.ErrForbidden
}
