// Package articlestats реализует HTTP-обработчик статистики автора.
package articlestats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/daily-bulletin/internal/http/middlewarectx"
	"github.com/magabrotheeeer/daily-bulletin/internal/http/response"
	"github.com/magabrotheeeer/daily-bulletin/internal/lib/sl"
	"github.com/magabrotheeeer/daily-bulletin/internal/models"
	"github.com/magabrotheeeer/daily-bulletin/internal/services/guard"
)

// Handler отдаёт статистику.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает подсчёт статистики.
type Service interface {
	Stats(ctx context.Context, email string) (models.AuthorStats, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Статистика автора
// @Description Количество статей по статусам и сумма просмотров.
// @Tags Articles
// @Produce  json
// @Security BearerAuth
// @Param email path string true "Email автора"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /article/user-stats/{email} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.stats"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	caller := middlewarectx.CallerEmail(r.Context())
	email := chi.URLParam(r, "email")
	if err := guard.Owner(caller, email); err != nil {
		log.Warn("access denied", sl.Email("caller", caller), sl.Email("email", email))
		response.Fail(w, r, err, "access denied")
		return
	}

	stats, err := h.service.Stats(r.Context(), email)
	if err != nil {
		log.Error("failed to compute stats", sl.Err(err))
		response.Fail(w, r, err, "could not compute stats")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"stats": stats,
	}))
}
