// Package articlemine реализует HTTP-обработчик списка статей автора.
//
// Автор видит только свои статьи: email из запроса должен совпасть с email из токена.
package articlemine

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/daily-bulletin/internal/http/middlewarectx"
	"github.com/magabrotheeeer/daily-bulletin/internal/http/response"
	"github.com/magabrotheeeer/daily-bulletin/internal/lib/sl"
	"github.com/magabrotheeeer/daily-bulletin/internal/models"
	"github.com/magabrotheeeer/daily-bulletin/internal/services/guard"
)

// Handler отдаёт статьи автора.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение статей автора.
type Service interface {
	ListByAuthor(ctx context.Context, email string) ([]*models.Article, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Мои статьи
// @Tags Articles
// @Produce  json
// @Security BearerAuth
// @Param email query string false "Email автора, по умолчанию из токена"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse "Чужой email"
// @Router /article/my-article [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.mine"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	caller := middlewarectx.CallerEmail(r.Context())
	email := r.URL.Query().Get("email")
	if email == "" {
		email = caller
	}
	if err := guard.Owner(caller, email); err != nil {
		log.Warn("access denied", sl.Email("caller", caller), sl.Email("email", email))
		response.Fail(w, r, err, "access denied")
		return
	}

	articles, err := h.service.ListByAuthor(r.Context(), email)
	if err != nil {
		log.Error("failed to list author articles", sl.Err(err))
		response.Fail(w, r, err, "could not list articles")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"articles": articles,
	}))
}
