package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/daily-bulletin/internal/http/response"
	"github.com/magabrotheeeer/daily-bulletin/internal/lib/sl"
	"github.com/magabrotheeeer/daily-bulletin/internal/services/guard"
)

// AdminMiddleware пропускает запрос только администратору. Должен стоять после JWTMiddleware.
func AdminMiddleware(lookup guard.RoleLookup, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AdminMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			caller := CallerEmail(r.Context())
			if err := guard.Chain(r.Context(), caller, guard.AdminVia(lookup)); err != nil {
				log.Warn("admin access denied", sl.Email("email", caller), sl.Err(err))
				response.Fail(w, r, err, "failed to check role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
