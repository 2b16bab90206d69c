package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/malchin/market/internal/config"
	"github.com/malchin/market/internal/constants"
	"github.com/malchin/market/internal/infra"
	"github.com/malchin/market/internal/log"
	"github.com/malchin/market/internal/middleware"
	"github.com/malchin/market/internal/otel"
	"github.com/malchin/market/internal/repository"
	"github.com/malchin/market/user/internal/controller"
	"github.com/malchin/market/user/internal/service"
)

func RunUserService(c context.Context) {
	logger := log.InitLogger(fmt.Sprintf("/var/log/%s.log", constants.APP_USER_SERVICE)).
		With().
		Str(log.KeyAppName, constants.APP_USER_SERVICE).
		Str(log.KeyTag, "main RunUserService").
		Logger()
	c = logger.WithContext(c)

	logger.Info().Str(log.KeyProcess, "init config").Msg("initializing config")
	cfg := config.InitConfig(c, constants.APP_USER_SERVICE)
	logger = logger.With().Any(log.KeyConfig, cfg).Logger()
	c = logger.WithContext(c)
	logger.Info().Str(log.KeyProcess, "init config").Msg("initialized config")

	logger.Info().Str(log.KeyProcess, "init otel").Msg("initializing otel sdk")
	otelShutdowns, err := otel.InitOtelSdk(c, constants.APP_USER_SERVICE, cfg.Otel.Endpoint)
	if err != nil {
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "init otel").
			Msgf("failed initializing otel sdk with error=%s", err.Error())
	}
	logger.Info().Str(log.KeyProcess, "init otel").Msg("initialized otel sdk")

	logger.Info().Str(log.KeyProcess, "init database").Msg("initializing database")
	db := infra.NewDatabaseClient(c, cfg.Database)
	defer db.Close()
	logger.Info().Str(log.KeyProcess, "init database").Msg("initialized database")

	logger.Info().Str(log.KeyProcess, "init router").Msg("initializing router")
	router := mux.NewRouter()
	router.Use(otelmux.Middleware(constants.APP_USER_SERVICE))
	router.Use(middleware.Logging)
	router.Use(middleware.RecoverPanic)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	logger.Info().Str(log.KeyProcess, "init router").Msg("initialized router")

	logger.Info().Str(log.KeyProcess, "init userService").Msg("initializing userService")
	queries := repository.New(db)
	userService := service.NewUserService(queries, cfg.Application)
	controller.AttachUserController(c, router, userService)
	logger.Info().Str(log.KeyProcess, "init userService").Msg("initialized userService")

	logger.Info().Str(log.KeyProcess, "start server").Msg("initializing server")
	server := http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Application.Host, cfg.Application.Port),
		BaseContext:  func(net.Listener) context.Context { return c },
		Handler:      router,
		ReadTimeout:  45 * time.Second,
		WriteTimeout: 45 * time.Second,
	}
	logger.Info().Str(log.KeyProcess, "start server").Msg("initialized server")

	go func() {
		logger.Info().
			Str(log.KeyProcess, "start server").
			Msgf("start listening request at %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().
				Err(err).
				Str(log.KeyProcess, "shutdown server").
				Msgf("error=%s occured while server is running", err.Error())
			if err := otel.ShutdownOtel(c, otelShutdowns); err != nil {
				logger.Error().
					Err(err).
					Str(log.KeyProcess, "shutdown server").
					Msgf("failed shutting down otel with error=%s", err.Error())
			}
		}
		logger.Info().Str(log.KeyProcess, "shutdown server").Msg("shutdown server")
	}()

	<-c.Done()
	logger.Info().
		Str(log.KeyProcess, "shutdown server").
		Msg("received interruption signal shutting down")

	err = otel.ShutdownOtel(c, otelShutdowns)
	if err != nil {
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "shutdown server").
			Msgf("failed shutting down otel with error=%s", err.Error())
	}
	logger.Info().Str(log.KeyProcess, "shutdown server").Msg("shutdown otel")

	err = server.Shutdown(c)
	if err != nil {
		logger.Error().
			Err(err).
			Str(log.KeyProcess, "shutdown server").
			Msgf("failed shutting down http server with error=%s", err.Error())
	}
	logger.Info().Str(log.KeyProcess, "shutdown server").Msg("shutdown http server")
}
