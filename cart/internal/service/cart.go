package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/malchin/market/cart/internal/otel"
	"github.com/malchin/market/cart/internal/store"
	"github.com/malchin/market/cart/pkg/request"
	"github.com/malchin/market/cart/pkg/response"
	"github.com/malchin/market/internal/constants"
	inErrors "github.com/malchin/market/internal/errors"
	inHttp "github.com/malchin/market/internal/http"
	"github.com/malchin/market/internal/log"
	inOtel "github.com/malchin/market/internal/otel"
	orderRequest "github.com/malchin/market/order/pkg/request"
	orderResponse "github.com/malchin/market/order/pkg/response"
	productResponse "github.com/malchin/market/product/pkg/response"
)

type CartService struct {
	store store.Store
}

func NewCartService(store store.Store) CartService {
	return CartService{store: store}
}

type productEnvelope struct {
	Data struct {
		Product productResponse.Product `json:"product"`
	} `json:"data"`
	Message string `json:"message"`
}

type orderEnvelope struct {
	Data struct {
		Order orderResponse.Order `json:"order"`
	} `json:"data"`
	Message string `json:"message"`
}

func (svc CartService) AddItem(
	c context.Context,
	userId uuid.UUID,
	param request.AddItem,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService AddItem")
	defer span.End()

	key := store.Key(userId)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddItem").
		Str(log.KeyCartKey, key).
		Str(log.KeyProductID, param.ProductId.String()).
		Int32(log.KeyQuantity, param.Quantity).
		Logger()

	logger = logger.With().
		Str(log.KeyProcess, fmt.Sprintf("finding product in %s", constants.APP_PRODUCT_SERVICE)).
		Logger()
	logger.Info().Msg("finding product")
	span.AddEvent("finding product")
	product, err := svc.findProduct(c, param.ProductId)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	span.AddEvent("found product")
	logger.Info().Msg("found product")

	logger = logger.With().Str(log.KeyProcess, "adding item to cart").Logger()
	logger.Info().Msg("adding item to cart")
	items, err := svc.store.Load(c, key)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	items = items.Add(product, param.Quantity)
	if err := svc.store.Save(c, key, items); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("added item to cart")

	return items.Response(), nil
}

func (svc CartService) GetCart(c context.Context, userId uuid.UUID) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService GetCart")
	defer span.End()

	key := store.Key(userId)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService GetCart").
		Str(log.KeyCartKey, key).
		Str(log.KeyProcess, "loading cart").
		Logger()

	logger.Info().Msg("loading cart")
	items, err := svc.store.Load(c, key)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Int(log.KeyCartItems, len(items)).Msg("loaded cart")

	return items.Response(), nil
}

func (svc CartService) UpdateItem(
	c context.Context,
	userId uuid.UUID,
	productId uuid.UUID,
	param request.UpdateItem,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService UpdateItem")
	defer span.End()

	key := store.Key(userId)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService UpdateItem").
		Str(log.KeyCartKey, key).
		Str(log.KeyProductID, productId.String()).
		Int32(log.KeyQuantity, param.Quantity).
		Str(log.KeyProcess, "updating cart item").
		Logger()

	logger.Info().Msg("updating cart item")
	items, err := svc.store.Load(c, key)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	items = items.UpdateQuantity(productId, param.Quantity)
	if err := svc.store.Save(c, key, items); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("updated cart item")

	return items.Response(), nil
}

func (svc CartService) RemoveItem(
	c context.Context,
	userId uuid.UUID,
	productId uuid.UUID,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService RemoveItem")
	defer span.End()

	key := store.Key(userId)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveItem").
		Str(log.KeyCartKey, key).
		Str(log.KeyProductID, productId.String()).
		Str(log.KeyProcess, "removing cart item").
		Logger()

	logger.Info().Msg("removing cart item")
	items, err := svc.store.Load(c, key)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	items = items.Remove(productId)
	if err := svc.store.Save(c, key, items); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("removed cart item")

	return items.Response(), nil
}

func (svc CartService) ClearCart(c context.Context, userId uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "CartService ClearCart")
	defer span.End()

	key := store.Key(userId)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ClearCart").
		Str(log.KeyCartKey, key).
		Str(log.KeyProcess, "clearing cart").
		Logger()

	logger.Info().Msg("clearing cart")
	if err := svc.store.Clear(c, key); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("cleared cart")

	return nil
}

// Checkout sends the cart content to the order service and clears the
// cart once the order is accepted.
func (svc CartService) Checkout(
	c context.Context,
	jwtToken *jwt.Token,
	userId uuid.UUID,
	param request.Checkout,
) (orderResponse.Order, error) {
	c, span := otel.Tracer.Start(c, "CartService Checkout")
	defer span.End()

	key := store.Key(userId)
	requestId := log.RequestIDFromContext(c)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService Checkout").
		Str(log.KeyCartKey, key).
		Str(log.KeyUserID, userId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "loading cart").Logger()
	logger.Info().Msg("loading cart")
	items, err := svc.store.Load(c, key)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}
	if len(items) == 0 {
		err = inErrors.ErrEmptyCart
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}
	logger.Info().Int(log.KeyCartItems, len(items)).Msg("loaded cart")

	logger = logger.With().Str(log.KeyProcess, "creating checkout request").Logger()
	logger.Info().Msg("creating checkout request to order-service")
	span.AddEvent("creating checkout request to order-service")
	checkout := orderRequest.Checkout{
		Items:           make([]orderRequest.CheckoutItem, len(items)),
		ContactPhone:    param.ContactPhone,
		DeliveryAddress: param.DeliveryAddress,
	}
	for i, item := range items {
		checkout.Items[i] = orderRequest.CheckoutItem{
			ProductId: item.Product.ID,
			Quantity:  item.Quantity,
		}
	}
	checkoutJson, err := json.Marshal(checkout)
	if err != nil {
		err = fmt.Errorf("failed marshalling checkout request with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}
	req, err := http.NewRequestWithContext(
		c,
		http.MethodPost,
		constants.URL_ORDER_SERVICE+"/checkout",
		bytes.NewBuffer(checkoutJson),
	)
	if err != nil {
		err = fmt.Errorf("failed creating checkout request with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}
	req.Header.Add("Authorization", "Bearer "+jwtToken.Raw)
	req.Header.Add(inHttp.KEY_HEADER_REQUEST_ID, requestId)
	logger.Info().Msg("created checkout request to order-service")
	span.AddEvent("created checkout request to order-service")

	logger = logger.With().Str(log.KeyProcess, "sending checkout request").Logger()
	logger.Info().Msg("sending checkout request to order-service")
	span.AddEvent("sending checkout request to order-service")
	resp, err := otelhttp.DefaultClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed sending checkout request with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}
	defer resp.Body.Close()
	span.AddEvent("sent checkout request to order-service")
	logger.Info().Msg("sent checkout request to order-service")

	envelope := orderEnvelope{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		err = fmt.Errorf("failed decoding checkout response with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}
	if resp.StatusCode != http.StatusCreated {
		err = fmt.Errorf(
			"order service returned status code=%d with message=%s",
			resp.StatusCode,
			envelope.Message,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}
	span.AddEvent("cart successfully checked out")
	logger.Info().Msg("cart successfully checked out")

	logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
	logger.Info().Msg("clearing cart")
	span.AddEvent("clearing cart")
	if err := svc.store.Clear(c, key); err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}
	span.AddEvent("cleared cart")
	logger.Info().Msg("cleared cart")

	return envelope.Data.Order, nil
}

func (svc CartService) findProduct(
	c context.Context,
	productId uuid.UUID,
) (productResponse.Product, error) {
	c, span := otel.Tracer.Start(c, "CartService findProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService findProduct").
		Str(log.KeyProductID, productId.String()).
		Logger()

	req, err := http.NewRequestWithContext(
		c,
		http.MethodGet,
		constants.URL_PRODUCT_SERVICE+"/"+productId.String(),
		nil,
	)
	if err != nil {
		err = fmt.Errorf("failed creating product request with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return productResponse.Product{}, err
	}
	req.Header.Add(inHttp.KEY_HEADER_REQUEST_ID, log.RequestIDFromContext(c))
	resp, err := otelhttp.DefaultClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed finding product with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return productResponse.Product{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf(
			"product with id=%s with error=%w",
			productId.String(),
			inErrors.ErrProductNotFound,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return productResponse.Product{}, err
	}

	envelope := productEnvelope{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		err = fmt.Errorf("failed decoding product response with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return productResponse.Product{}, err
	}

	return envelope.Data.Product, nil
}
