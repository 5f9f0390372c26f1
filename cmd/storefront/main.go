package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/dwikikusuma/rajah-storefront/internal/catalog/infra/jsonfile"
	identityapp "github.com/dwikikusuma/rajah-storefront/internal/identity/app"
	"github.com/dwikikusuma/rajah-storefront/internal/identity/infra/yamlfile"
	orderapp "github.com/dwikikusuma/rajah-storefront/internal/order/app"
	"github.com/dwikikusuma/rajah-storefront/internal/order/infra/amqp"
	"github.com/dwikikusuma/rajah-storefront/pkg/config"
	"github.com/dwikikusuma/rajah-storefront/pkg/kvstore"
	"github.com/dwikikusuma/rajah-storefront/pkg/logger"
	"github.com/dwikikusuma/rajah-storefront/pkg/shutdown"
	"github.com/dwikikusuma/rajah-storefront/pkg/tracing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

const service = "storefront"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   service,
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	if err := run(cfg, log); err != nil {
		log.Error("storefront stopped", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("bye")
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	stopTracing, err := tracing.Setup(tracing.Options{Service: service, Enabled: cfg.TracingEnabled})
	if err != nil {
		return err
	}
	defer func() {
		tctx, tcancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer tcancel()
		if err := stopTracing(tctx); err != nil {
			log.Error("tracer shutdown error", slog.Any("err", err))
		}
	}()

	catalog, err := jsonfile.Open(cfg.CatalogFile)
	if err != nil {
		return err
	}
	accounts, err := yamlfile.Open(cfg.AccountsFile)
	if err != nil {
		return err
	}
	log.Info("accounts loaded", slog.String("file", cfg.AccountsFile), slog.Int("count", accounts.Len()))

	secret, err := jwtSecret(cfg, log)
	if err != nil {
		return err
	}

	store, err := kvstore.Open(ctx, kvstore.Config{
		Driver:      cfg.StoreDriver,
		BadgerPath:  cfg.BadgerPath,
		RedisURL:    cfg.RedisURL,
		RedisPrefix: cfg.RedisPrefix,
	})
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()
	log.Info("store opened", slog.String("driver", cfg.StoreDriver))

	publisher, closePublisher, err := orderPublisher(cfg, log)
	if err != nil {
		return err
	}
	defer closePublisher()

	svcs := wire(deps{
		Log:      log,
		Store:    store,
		Catalog:  catalog,
		Accounts: accounts,
		Tokens: identityapp.TokenConfig{
			Issuer: cfg.JWTIssuer,
			Secret: secret,
			TTL:    time.Duration(cfg.SessionTTLMin) * time.Minute,
		},
		Publisher: publisher,
	})

	gin.SetMode(gin.ReleaseMode)
	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           newRouter(svcs, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// jwtSecret returns the configured signing secret. Outside dev a secret is required;
// in dev a random one is generated, so sessions do not survive a restart.
func jwtSecret(cfg config.Config, log *slog.Logger) (string, error) {
	if cfg.JWTSecret != "" {
		return cfg.JWTSecret, nil
	}
	if cfg.AppEnv != "dev" {
		return "", errors.New("JWT_SECRET is required outside dev")
	}
	log.Warn("JWT_SECRET not set, using a random per-process secret")
	return uuid.NewString() + uuid.NewString(), nil
}

// orderPublisher dials RabbitMQ when RABBITMQ_URI is set and falls back to logging
// order events otherwise.
func orderPublisher(cfg config.Config, log *slog.Logger) (orderapp.Publisher, func(), error) {
	if cfg.RabbitMQURI == "" {
		log.Info("RABBITMQ_URI not set, order events are logged only")
		return amqp.NewLogPublisher(log), func() {}, nil
	}

	p, err := amqp.Dial(cfg.RabbitMQURI, cfg.OrdersQueue)
	if err != nil {
		return nil, nil, err
	}
	log.Info("publishing order events", slog.String("queue", cfg.OrdersQueue))
	return p, func() {
		if err := p.Close(); err != nil {
			log.Error("rabbitmq close error", slog.Any("err", err))
		}
	}, nil
}
