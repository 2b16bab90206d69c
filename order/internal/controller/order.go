package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/malchin/market/internal/common"
	inErrors "github.com/malchin/market/internal/errors"
	inHttp "github.com/malchin/market/internal/http"
	"github.com/malchin/market/internal/log"
	"github.com/malchin/market/internal/middleware"
	inOtel "github.com/malchin/market/internal/otel"
	"github.com/malchin/market/order/internal/otel"
	"github.com/malchin/market/order/internal/service"
	"github.com/malchin/market/order/pkg/request"
)

type OrderController struct {
	service service.OrderService
}

func AttachOrderController(c context.Context, router *mux.Router, service service.OrderService) {
	controller := OrderController{service: service}

	protected := router.PathPrefix("/orders").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/checkout", controller.Checkout).Methods(http.MethodPost)
	protected.HandleFunc("", controller.FindOrders).Methods(http.MethodGet)
	protected.HandleFunc("/{id}", controller.FindOrderById).Methods(http.MethodGet)
	protected.HandleFunc("/{id}/status", controller.UpdateOrderStatus).Methods(http.MethodPut)
}

func (o OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController Checkout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController Checkout").
		Logger()
	c = logger.WithContext(c)

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.Checkout{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Any(log.KeyRequestBody, reqBody).Logger()
	c = logger.WithContext(c)
	logger.Info().Msg("decoded request body")

	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "creating order").Logger()
	c = logger.WithContext(c)
	logger.Info().Msg("creating order")
	order, err := o.service.CreateOrder(c, userId, reqBody)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrProductNotFound) ||
			errors.Is(err, inErrors.ErrUserNotFound) {
			statusCode = http.StatusNotFound
		} else if errors.Is(err, inErrors.ErrOutOfStock) {
			statusCode = http.StatusConflict
		}
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msgf("failed creating order with error=%s", err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Str(log.KeyOrderID, order.ID.String()).Msg("created order")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    fmt.Sprintf("order with id=%s is created", order.ID.String()),
		"data":       map[string]interface{}{"order": order},
	})
}

func (o OrderController) FindOrders(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindOrders").
		Logger()
	c = logger.WithContext(c)

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}

	logger = logger.With().Str(log.KeyProcess, "finding orders").Logger()
	c = logger.WithContext(c)
	logger.Info().Msg("finding orders")
	orders, err := o.service.FindOrders(c, userId)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrUserNotFound) {
			statusCode = http.StatusNotFound
		}
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msgf("failed finding orders with error=%s", err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("found %d orders", len(orders))

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "orders found",
		"data":       map[string]interface{}{"orders": orders},
	})
}

func (o OrderController) FindOrderById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindOrderById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindOrderById").
		Logger()
	c = logger.WithContext(c)

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		err = fmt.Errorf("failed parsing id with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}

	logger = logger.With().
		Str(log.KeyOrderID, id.String()).
		Str(log.KeyProcess, "finding order by id").
		Logger()
	c = logger.WithContext(c)
	logger.Info().Msg("finding order by id")
	order, err := o.service.FindOrderById(c, userId, id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrOrderNotFound) {
			statusCode = http.StatusNotFound
		} else if errors.Is(err, inErrors.ErrForbidden) {
			statusCode = http.StatusForbidden
		}
		inOtel.RecordError(err, span)
		logger.Error().
			Err(err).
			Msgf("failed finding order by id=%s with error=%s", id.String(), err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("found order by id")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("order with id=%s found", id.String()),
		"data":       map[string]interface{}{"order": order},
	})
}

func (o OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController UpdateOrderStatus")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController UpdateOrderStatus").
		Logger()
	c = logger.WithContext(c)

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		err = fmt.Errorf("failed parsing id with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.UpdateStatus{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Any(log.KeyRequestBody, reqBody).Logger()
	c = logger.WithContext(c)
	logger.Info().Msg("decoded request body")

	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().
		Str(log.KeyOrderID, id.String()).
		Str(log.KeyStatus, reqBody.Status).
		Str(log.KeyProcess, "updating order status").
		Logger()
	c = logger.WithContext(c)
	logger.Info().Msg("updating order status")
	order, err := o.service.UpdateOrderStatus(c, userId, id, reqBody)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrOrderNotFound) ||
			errors.Is(err, inErrors.ErrUserNotFound) {
			statusCode = http.StatusNotFound
		} else if errors.Is(err, inErrors.ErrForbidden) {
			statusCode = http.StatusForbidden
		} else if errors.Is(err, inErrors.ErrStatusTransition) {
			statusCode = http.StatusConflict
		}
		inOtel.RecordError(err, span)
		logger.Error().
			Err(err).
			Msgf("failed updating order status with error=%s", err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("updated order status")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("order with id=%s status is updated", id.String()),
		"data":       map[string]interface{}{"order": order},
	})
}
