package bulletin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/daily-bulletin/internal/config"
	"github.com/magabrotheeeer/daily-bulletin/internal/events"
	"github.com/magabrotheeeer/daily-bulletin/internal/lib/jwt"
	"github.com/magabrotheeeer/daily-bulletin/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/daily-bulletin/internal/lib/sl"
	"github.com/magabrotheeeer/daily-bulletin/internal/metrics"
	"github.com/magabrotheeeer/daily-bulletin/internal/migrations"
	"github.com/magabrotheeeer/daily-bulletin/internal/paymentprovider"
	articleservice "github.com/magabrotheeeer/daily-bulletin/internal/services/article"
	paymentservice "github.com/magabrotheeeer/daily-bulletin/internal/services/payment"
	publisherservice "github.com/magabrotheeeer/daily-bulletin/internal/services/publisher"
	userservice "github.com/magabrotheeeer/daily-bulletin/internal/services/user"
	"github.com/magabrotheeeer/daily-bulletin/internal/storage/mongodb"
)

// App - HTTP-сервер вместе с хранилищем и брокером.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *mongodb.Storage
	amqp   *amqp.Connection
}

// New подключает хранилище, применяет миграции, поднимает публикацию
// событий (если задан брокер) и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.bulletin.New"

	db, err := mongodb.New(ctx, cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.Client, cfg.Database, cfg.MigrationsCollection, cfg.MigrationsPath); err != nil {
		_ = db.Close(context.Background())
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var publisher events.Publisher = events.Noop{}
	var conn *amqp.Connection
	if cfg.RabbitMQ.URL != "" {
		conn, err = rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.Retries, cfg.Delay)
		if err != nil {
			_ = db.Close(context.Background())
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange, rabbitmq.GetEventQueues())
		if err != nil {
			_ = conn.Close()
			_ = db.Close(context.Background())
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		publisher = rabbitmq.NewPublisher(ch, cfg.Exchange)
		logger.Info("domain events enabled", slog.String("exchange", cfg.Exchange))
	} else {
		logger.Info("rabbitmq url is empty, domain events disabled")
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	paymentService := paymentservice.New(paymentprovider.NewClient(cfg.StripeSecretKey, cfg.Currency), logger)
	var verifier userservice.PaymentVerifier
	if cfg.VerifyIntents {
		verifier = paymentService
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Deps{
		Tokens:     jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL),
		Users:      userservice.New(db, verifier, publisher, m, logger),
		Articles:   articleservice.New(db, publisher, m, logger),
		Publishers: publisherservice.New(db, logger),
		Payments:   paymentService,
		DB:         db,
		Metrics:    m,
		RateLimit:  cfg.RateLimit,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		amqp:   conn,
	}, nil
}

// Run запускает сервер и блокируется до ошибки или отмены ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.amqp != nil {
		if err := a.amqp.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.db.Close(ctx); err != nil {
		a.logger.Warn("failed to close storage", sl.Err(err))
	}
}
