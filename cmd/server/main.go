package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/botanicglows/backend/internal/config"
	"github.com/botanicglows/backend/internal/es"
	"github.com/botanicglows/backend/internal/events"
	"github.com/botanicglows/backend/internal/handlers"
	"github.com/botanicglows/backend/internal/logging"
	"github.com/botanicglows/backend/internal/middleware"
	"github.com/botanicglows/backend/internal/payments"
	"github.com/botanicglows/backend/internal/service/order"
	"github.com/botanicglows/backend/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)
	slog.SetDefault(logger)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	if len(jwtSecret) == 0 {
		log.Fatal("JWT_SECRET is required")
	}

	var producer *events.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = events.NewProducer([]string{configuration.KAFKA_ADDRESS})
	} else {
		logger.Warn("KAFKA_ADDRESS not set, domain events disabled")
	}

	var gateway payments.Gateway
	if sg := payments.NewStripeGateway(configuration.STRIPE_SECRET_KEY, configuration.STRIPE_WEBHOOK_SECRET); sg != nil {
		gateway = sg
	} else {
		logger.Warn("STRIPE_SECRET_KEY not set, payment processing disabled")
	}

	engine := &order.Engine{DB: db, Gateway: gateway, Producer: producer}
	auth := &middleware.Auth{DB: db, JWTSecret: jwtSecret}

	deps := &httpserver.Deps{
		Auth:             auth,
		AuthHandler:      &handlers.AuthHandler{DB: db, JWTSecret: jwtSecret},
		PublicHandler:    &handlers.PublicHandler{DB: db, Engine: engine},
		ProductHandler:   &handlers.ProductHandler{DB: db, Producer: producer},
		OrderHandler:     &handlers.OrderHandler{DB: db, Engine: engine},
		PaymentHandler:   &handlers.PaymentHandler{DB: db, Engine: engine},
		CustomerHandler:  &handlers.CustomerHandler{DB: db},
		ContentHandler:   &handlers.ContentHandler{DB: db},
		ShippingHandler:  &handlers.ShippingHandler{DB: db},
		DashboardHandler: &handlers.DashboardHandler{DB: db},
	}

	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		deps.SearchHandler = &handlers.SearchHandler{ES: esClient, Index: "products"}
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID(), echomw.CORS(), echomw.BodyLimit("10M"))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := logging.IntoContext(req.Context(), logger.With(
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			))
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	})

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "err", err)
		}
	}()
	logger.Info("Botanic Glows API running", "port", configuration.PORT)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "err", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "err", err)
		}
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close error", "err", err)
		}
	}

	logger.Info("shutdown complete")
}
