// Package bulletin собирает HTTP-приложение новостной платформы: маршруты,
// middleware и зависимости.
package bulletin

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/daily-bulletin/internal/config"
	"github.com/magabrotheeeer/daily-bulletin/internal/http/handlers/article/articleedit"
	"github.com/magabrotheeeer/daily-bulletin/internal/http/handlers/article/articlelist"
	"github.com/magabrotheeeer/daily-bulletin/internal/http/handlers/article/articlemine"
	"github.com/magabrotheeeer/daily-bulletin/internal/http/handlers/article/articleread"
	"github.com/magabrotheeeer/daily-bulletin/internal/http/handlers/article/articleremove"
	"github.com/magabrotheeeer/daily-bulletin/internal/http/handlers/article/articlestats"
	"github.com/magabrotheeeer/daily-bulletin/internal/http/handlers/article/articlestatus"
	"github.com/magabrotheeeer/daily-bulletin/internal/http/handlers/article/articlesubmit"
	"github.com/magabrotheeeer/daily-bulletin/internal/http/handlers/auth/token"
	"github.com/magabrotheeeer/daily-bulletin/internal/http/handlers/health"
	"github.com/magabrotheeeer/daily-bulletin/internal/http/handlers/payment/paymentintent"
	"github.com/magabrotheeeer/daily-bulletin/internal/http/handlers/publisher/publishercreate"
	"github.com/magabrotheeeer/daily-bulletin/internal/http/handlers/publisher/publisherlist"
	"github.com/magabrotheeeer/daily-bulletin/internal/http/handlers/publisher/publisherread"
	"github.com/magabrotheeeer/daily-bulletin/internal/http/handlers/publisher/publisherremove"
	"github.com/magabrotheeeer/daily-bulletin/internal/http/handlers/publisher/publisherupdate"
	"github.com/magabrotheeeer/daily-bulletin/internal/http/handlers/user/userlist"
	"github.com/magabrotheeeer/daily-bulletin/internal/http/handlers/user/userpayments"
	"github.com/magabrotheeeer/daily-bulletin/internal/http/handlers/user/userprofile"
	"github.com/magabrotheeeer/daily-bulletin/internal/http/handlers/user/userremove"
	"github.com/magabrotheeeer/daily-bulletin/internal/http/handlers/user/usersubscribe"
	"github.com/magabrotheeeer/daily-bulletin/internal/http/handlers/user/userupdate"
	"github.com/magabrotheeeer/daily-bulletin/internal/http/handlers/user/userupsert"
	"github.com/magabrotheeeer/daily-bulletin/internal/http/middlewarectx"
	"github.com/magabrotheeeer/daily-bulletin/internal/lib/jwt"
	"github.com/magabrotheeeer/daily-bulletin/internal/metrics"
	articleservice "github.com/magabrotheeeer/daily-bulletin/internal/services/article"
	paymentservice "github.com/magabrotheeeer/daily-bulletin/internal/services/payment"
	publisherservice "github.com/magabrotheeeer/daily-bulletin/internal/services/publisher"
	userservice "github.com/magabrotheeeer/daily-bulletin/internal/services/user"
)

// Pinger проверяет доступность хранилища для /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps - зависимости, нужные маршрутам.
type Deps struct {
	Tokens     jwt.Maker
	Users      *userservice.Service
	Articles   *articleservice.Service
	Publishers *publisherservice.Service
	Payments   *paymentservice.Service
	DB         Pinger
	Metrics    *metrics.Metrics
	RateLimit  config.RateLimit
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, d Deps) {
	// Глобальные middleware. URLFormat не подключается: он отрезал бы ".com" у email в пути.
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.MetricsMiddleware(d.Metrics),
	)

	auth := middlewarectx.JWTMiddleware(d.Tokens, logger)
	admin := middlewarectx.AdminMiddleware(d.Users, logger)

	r.With(middlewarectx.RateLimitMiddleware(d.RateLimit.RPS, d.RateLimit.Burst, logger)).
		Post("/jwt", token.New(logger, d.Tokens).ServeHTTP)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", userlist.New(logger, d.Users).ServeHTTP)
		r.Post("/", userupsert.New(logger, d.Users).ServeHTTP)
		r.With(auth).Patch("/subscribe", usersubscribe.New(logger, d.Users).ServeHTTP)
		r.With(auth).Get("/payments", userpayments.New(logger, d.Users).ServeHTTP)
		r.Get("/{email}", userprofile.New(logger, d.Users).ServeHTTP)
		r.Patch("/{email}", userupdate.New(logger, d.Users).ServeHTTP)
		r.With(auth, admin).Delete("/{email}", userremove.New(logger, d.Users).ServeHTTP)
	})

	r.Route("/article", func(r chi.Router) {
		r.Get("/", articlelist.NewPending(logger, d.Articles).ServeHTTP)
		r.Get("/approved", articlelist.NewApproved(logger, d.Articles).ServeHTTP)
		r.With(auth).Get("/my-article", articlemine.New(logger, d.Articles).ServeHTTP)
		r.With(auth).Get("/user-stats/{email}", articlestats.New(logger, d.Articles).ServeHTTP)
		r.With(auth).Post("/", articlesubmit.New(logger, d.Articles).ServeHTTP)
		r.Patch("/status/{id}", articlestatus.New(logger, d.Articles).ServeHTTP)
		r.Get("/{id}", articleread.New(logger, d.Articles).ServeHTTP)
		r.Put("/{id}", articleedit.New(logger, d.Articles).ServeHTTP)
		r.With(auth).Delete("/{id}", articleremove.New(logger, d.Articles).ServeHTTP)
	})

	r.Route("/publishers", func(r chi.Router) {
		r.Get("/", publisherlist.New(logger, d.Publishers).ServeHTTP)
		r.Get("/{id}", publisherread.New(logger, d.Publishers).ServeHTTP)
		r.Group(func(r chi.Router) {
			r.Use(auth, admin)
			r.Post("/", publishercreate.New(logger, d.Publishers).ServeHTTP)
			r.Patch("/{id}", publisherupdate.New(logger, d.Publishers).ServeHTTP)
			r.Delete("/{id}", publisherremove.New(logger, d.Publishers).ServeHTTP)
		})
	})

	r.With(middlewarectx.RateLimitMiddleware(d.RateLimit.RPS, d.RateLimit.Burst, logger)).
		Post("/payment/create-payment-intent", paymentintent.New(logger, d.Payments).ServeHTTP)

	r.Get("/health", health.New(logger, d.DB).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
