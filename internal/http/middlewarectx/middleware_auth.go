// Package middlewarectx содержит HTTP middleware для проверки токенов и ролей.
//
// JWTMiddleware проверяет bearer-токен в заголовке Authorization и кладёт
// email вызывающего в контекст запроса. Отсутствующий токен даёт 401,
// недействительный или просроченный даёт 403.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/daily-bulletin/internal/http/response"
	"github.com/magabrotheeeer/daily-bulletin/internal/lib/apperr"
	"github.com/magabrotheeeer/daily-bulletin/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// Email - ключ для email вызывающего в контексте.
const Email Key = "email"

// TokenVerifier проверяет токен и возвращает email из него.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
func JWTMiddleware(verifier TokenVerifier, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			// Без заголовка - 401, заголовок не по схеме Bearer - 403.
			authHeader := r.Header.Get("Authorization")
			var tokenStr string
			if authHeader != "" {
				scheme, token, _ := strings.Cut(strings.TrimSpace(authHeader), " ")
				tokenStr = strings.TrimSpace(token)
				if !strings.EqualFold(scheme, "Bearer") || tokenStr == "" {
					log.Warn("malformed authorization header")
					render.Status(r, http.StatusForbidden)
					render.JSON(w, r, response.Error("invalid or expired token"))
					return
				}
			}

			email, err := verifier.Verify(tokenStr)
			if err != nil {
				log.Warn("token rejected", sl.Err(err))
				msg := "invalid or expired token"
				if apperr.HTTPStatus(err) == http.StatusUnauthorized {
					msg = "missing authorization token"
				}
				render.Status(r, apperr.HTTPStatus(err))
				render.JSON(w, r, response.Error(msg))
				return
			}

			ctx := context.WithValue(r.Context(), Email, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerEmail возвращает email, положенный JWTMiddleware.
func CallerEmail(ctx context.Context) string {
	email, _ := ctx.Value(Email).(string)
	return email
}
