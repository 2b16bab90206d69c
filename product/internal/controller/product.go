package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

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
	"github.com/malchin/market/internal/repository"
	"github.com/malchin/market/product/internal/otel"
	"github.com/malchin/market/product/internal/service"
	"github.com/malchin/market/product/pkg/request"
)

const defaultPageSize = 20

type ProductController struct {
	service service.ProductService
}

func AttachProductController(
	c context.Context,
	router *mux.Router,
	service service.ProductService,
) {
	controller := ProductController{service: service}

	protected := router.PathPrefix("/products").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("", controller.InsertProduct).Methods(http.MethodPost)
	protected.HandleFunc("/images", controller.UploadImage).Methods(http.MethodPost)
	protected.HandleFunc("/mine", controller.FindMyProducts).Methods(http.MethodGet)
	protected.HandleFunc("/pending", controller.FindPendingProducts).Methods(http.MethodGet)
	protected.HandleFunc("/all", controller.FindAllProducts).Methods(http.MethodGet)
	protected.HandleFunc("/{id}", controller.UpdateProduct).Methods(http.MethodPut)
	protected.HandleFunc("/{id}/status", controller.UpdateProductStatus).Methods(http.MethodPut)
	protected.HandleFunc("/{id}", controller.RemoveProduct).Methods(http.MethodDelete)

	public := router.PathPrefix("/products").Subrouter()
	public.HandleFunc("", controller.FindApprovedProducts).Methods(http.MethodGet)
	public.HandleFunc("/{id}", controller.FindProductById).Methods(http.MethodGet)
}

func (p ProductController) InsertProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController InsertProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController InsertProduct").
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
	reqBody := request.Product{}
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

	logger = logger.With().Str(log.KeyProcess, "inserting product").Logger()
	c = logger.WithContext(c)
	logger.Info().Msg("inserting product")
	product, err := p.service.InsertProduct(c, userId, reqBody)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrForbidden) {
			statusCode = http.StatusForbidden
		} else if errors.Is(err, inErrors.ErrUserNotFound) {
			statusCode = http.StatusNotFound
		}
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msgf("failed inserting product with error=%s", err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Str(log.KeyProductID, product.ID.String()).Msg("inserted product")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    fmt.Sprintf("product with id=%s is created", product.ID.String()),
		"data":       map[string]interface{}{"product": product},
	})
}

func (p ProductController) FindApprovedProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindApprovedProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindApprovedProducts").
		Logger()
	c = logger.WithContext(c)

	query := r.URL.Query()
	param := request.FindProducts{
		Category:    query.Get("category"),
		SubCategory: query.Get("subCategory"),
		Search:      query.Get("search"),
		Limit:       defaultPageSize,
	}
	if limit := query.Get("limit"); limit != "" {
		parsed, err := strconv.ParseInt(limit, 10, 32)
		if err != nil {
			err = fmt.Errorf("failed parsing limit=%s with error=%w", limit, err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
				"status":     "failed",
				"statusCode": http.StatusBadRequest,
				"message":    err.Error(),
			})
			return
		}
		param.Limit = int32(parsed)
	}
	if cursor := query.Get("createdBefore"); cursor != "" {
		parsed, err := time.Parse(time.RFC3339, cursor)
		if err != nil {
			err = fmt.Errorf("failed parsing createdBefore=%s with error=%w", cursor, err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
				"status":     "failed",
				"statusCode": http.StatusBadRequest,
				"message":    err.Error(),
			})
			return
		}
		param.CreatedBefore = parsed
	}

	logger = logger.With().Str(log.KeyProcess, "finding approved products").Logger()
	c = logger.WithContext(c)
	logger.Info().Msg("finding approved products")
	products, err := p.service.FindApprovedProducts(c, param)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().
			Err(err).
			Msgf("failed finding approved products with error=%s", err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("found %d approved products", len(products))

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "products found",
		"data":       map[string]interface{}{"products": products},
	})
}

func (p ProductController) FindProductById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindProductById").
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

	logger = logger.With().
		Str(log.KeyProductID, id.String()).
		Str(log.KeyProcess, "finding product by id").
		Logger()
	c = logger.WithContext(c)
	logger.Info().Msg("finding product by id")
	product, err := p.service.FindProductById(c, id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrProductNotFound) {
			statusCode = http.StatusNotFound
		}
		inOtel.RecordError(err, span)
		logger.Error().
			Err(err).
			Msgf("failed finding product by id=%s with error=%s", id.String(), err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("found product by id")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("product with id=%s found", id.String()),
		"data":       map[string]interface{}{"product": product},
	})
}

func (p ProductController) FindMyProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindMyProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindMyProducts").
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

	logger = logger.With().
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProcess, "finding products by herderId").
		Logger()
	c = logger.WithContext(c)
	logger.Info().Msg("finding products by herderId")
	products, err := p.service.FindProductsByHerderId(c, userId)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().
			Err(err).
			Msgf("failed finding products by herderId with error=%s", err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("found %d products by herderId", len(products))

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "products found",
		"data":       map[string]interface{}{"products": products},
	})
}

func (p ProductController) FindPendingProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindPendingProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindPendingProducts").
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

	logger = logger.With().Str(log.KeyProcess, "finding pending products").Logger()
	c = logger.WithContext(c)
	logger.Info().Msg("finding pending products")
	products, err := p.service.FindProductsByStatus(c, userId, repository.ProductStatusPending)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrForbidden) {
			statusCode = http.StatusForbidden
		}
		inOtel.RecordError(err, span)
		logger.Error().
			Err(err).
			Msgf("failed finding pending products with error=%s", err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("found %d pending products", len(products))

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "products found",
		"data":       map[string]interface{}{"products": products},
	})
}

func (p ProductController) FindAllProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindAllProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindAllProducts").
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

	logger = logger.With().Str(log.KeyProcess, "finding products").Logger()
	c = logger.WithContext(c)
	logger.Info().Msg("finding products")
	products, err := p.service.FindProducts(c, userId)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrForbidden) {
			statusCode = http.StatusForbidden
		}
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msgf("failed finding products with error=%s", err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("found %d products", len(products))

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "products found",
		"data":       map[string]interface{}{"products": products},
	})
}

func (p ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController UpdateProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController UpdateProduct").
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
	reqBody := request.Product{}
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
		Str(log.KeyProductID, id.String()).
		Str(log.KeyProcess, "updating product").
		Logger()
	c = logger.WithContext(c)
	logger.Info().Msg("updating product")
	product, err := p.service.UpdateProduct(c, userId, id, reqBody)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrForbidden) {
			statusCode = http.StatusForbidden
		} else if errors.Is(err, inErrors.ErrProductNotFound) {
			statusCode = http.StatusNotFound
		}
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msgf("failed updating product with error=%s", err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("updated product")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("product with id=%s is updated", id.String()),
		"data":       map[string]interface{}{"product": product},
	})
}

func (p ProductController) UpdateProductStatus(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController UpdateProductStatus")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController UpdateProductStatus").
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
		Str(log.KeyProductID, id.String()).
		Str(log.KeyStatus, reqBody.Status).
		Str(log.KeyProcess, "updating product status").
		Logger()
	c = logger.WithContext(c)
	logger.Info().Msg("updating product status")
	product, err := p.service.UpdateProductStatus(c, userId, id, reqBody)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrForbidden) {
			statusCode = http.StatusForbidden
		} else if errors.Is(err, inErrors.ErrProductNotFound) {
			statusCode = http.StatusNotFound
		} else if errors.Is(err, inErrors.ErrModerationState) {
			statusCode = http.StatusConflict
		}
		inOtel.RecordError(err, span)
		logger.Error().
			Err(err).
			Msgf("failed updating product status with error=%s", err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("updated product status")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("product with id=%s status is updated", id.String()),
		"data":       map[string]interface{}{"product": product},
	})
}

func (p ProductController) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController RemoveProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController RemoveProduct").
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
		Str(log.KeyProductID, id.String()).
		Str(log.KeyProcess, "removing product").
		Logger()
	c = logger.WithContext(c)
	logger.Info().Msg("removing product")
	product, err := p.service.RemoveProduct(c, userId, id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrForbidden) {
			statusCode = http.StatusForbidden
		} else if errors.Is(err, inErrors.ErrProductNotFound) {
			statusCode = http.StatusNotFound
		}
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msgf("failed removing product with error=%s", err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("removed product")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("product with id=%s is removed", id.String()),
		"data":       map[string]interface{}{"product": product},
	})
}

func (p ProductController) UploadImage(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController UploadImage")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController UploadImage").
		Logger()
	c = logger.WithContext(c)

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.UploadImage{}
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

	logger = logger.With().Str(log.KeyProcess, "uploading image").Logger()
	c = logger.WithContext(c)
	logger.Info().Msg("uploading image")
	uploaded, err := p.service.UploadImage(c, reqBody)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msgf("failed uploading image with error=%s", err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadGateway,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("uploaded image")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    "image uploaded",
		"data":       map[string]interface{}{"image": uploaded},
	})
}
