package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"shopease-main/internal/app"
	handlersContact "shopease-main/internal/handlers/contact"
	handlersCart "shopease-main/internal/handlers/shopping_cart"
	"shopease-main/internal/kafka"
	"shopease-main/internal/middleware"
	"shopease-main/internal/shopping_cart"
	"shopease-main/internal/storage"

	_ "github.com/lib/pq"
)

const (
	cfgPath = "config/config.yaml"
)

func main() {
	// init logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}

	logger := zapLogger.Sugar()
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			logger.Warnf("error to sync logger: %v", err)
		}
	}()

	// парсим конфиг
	c, err := app.NewConfig(cfgPath)
	if err != nil {
		logger.Fatalf("error to parsing config: %v", err)
	}

	// init store
	var store storage.Store
	switch c.Store {
	case app.StorePostgres:
		dsn := fmt.Sprintf(
			"host=%s port=%d user=%s "+"password=%s dbname=%s sslmode=disable",
			c.CfgDB.Host, c.CfgDB.Port, c.CfgDB.Login, c.CfgDB.Password, c.CfgDB.Database,
		)

		db, err := sql.Open("postgres", dsn)
		if err != nil {
			logger.Fatalf("error to database start: %v", err)
		}
		defer db.Close()

		db.SetMaxOpenConns(c.MaxOpenConns)
		if err := db.Ping(); err != nil {
			logger.Infof("Failed to get response to ping: %v", err)
		}

		store = storage.NewPostgresStore(db, logger)
	case app.StoreRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:         c.CfgRedis.Addr,
			Password:     c.CfgRedis.Password,
			DB:           c.CfgRedis.DB,
			DialTimeout:  c.StoreTimeout,
			ReadTimeout:  c.StoreTimeout,
			WriteTimeout: c.StoreTimeout,
		})
		defer redisClient.Close()

		ctx, cancel := context.WithTimeout(context.Background(), c.StoreTimeout)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Infof("Failed to get response to redis ping: %v", err)
		}
		cancel()

		store = storage.NewRedisStore(redisClient, logger)
	default:
		logger.Fatalf("unknown store %q", c.Store)
	}

	// init order sink
	var (
		producer kafka.EventProducer
		sink     shopping_cart.OrderSink
	)
	if len(c.CfgKafka.Brokers) > 0 {
		p := kafka.NewProducer(c.CfgKafka.Brokers, c.CfgKafka.Topic, logger)
		defer func() {
			if err := p.Close(); err != nil {
				logger.Warnf("error to close kafka producer: %v", err)
			}
		}()
		producer, sink = p, p
	} else {
		logger.Infof("kafka brokers are not configured, checkout is simulated")
	}

	limits := shopping_cart.Limits{
		MaxSessions: c.MaxSessions,
		IdleTTL:     c.SessionTTL,
	}
	carts := shopping_cart.NewRegistry(c.CartKey, limits, store, sink, logger)

	// init handlers
	cartHandlers := handlersCart.NewShoppingCartHandler(logger, carts, producer)
	contactHandlers := handlersContact.NewContactHandler(logger)

	// init router
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Shopper)

	api.HandleFunc("/cart", cartHandlers.GetCart).Methods("GET")
	api.HandleFunc("/cart/items", cartHandlers.AddToShoppingCart).Methods("POST")
	api.HandleFunc("/cart/items/{id}/increment", cartHandlers.IncrementItem).Methods("POST")
	api.HandleFunc("/cart/items/{id}/decrement", cartHandlers.DecrementItem).Methods("POST")
	api.HandleFunc("/cart/items/{id}", cartHandlers.DeleteFromShoppingCart).Methods("DELETE")
	api.HandleFunc("/cart/open", cartHandlers.OpenCart).Methods("POST")
	api.HandleFunc("/cart/close", cartHandlers.CloseCart).Methods("POST")
	api.HandleFunc("/cart/checkout", cartHandlers.Checkout).Methods("POST")

	api.HandleFunc("/contact", contactHandlers.Submit).Methods("POST")

	logger.Infow("starting server",
		"type", "START",
		"addr", c.ServerPort,
		"store", c.Store,
	)

	srv := &http.Server{
		Addr:         c.ServerPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		logger.Fatalf("can't start server: %v", err)
	}
}
