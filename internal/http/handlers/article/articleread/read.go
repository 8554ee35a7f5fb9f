// Package articleread реализует HTTP-обработчик чтения статьи по ID.
//
// Каждое чтение увеличивает счётчик просмотров статьи.
package articleread

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/daily-bulletin/internal/http/response"
	"github.com/magabrotheeeer/daily-bulletin/internal/lib/sl"
	"github.com/magabrotheeeer/daily-bulletin/internal/models"
)

// Handler отдаёт статью.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение статьи.
type Service interface {
	Get(ctx context.Context, id string) (*models.Article, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Статья по ID
// @Tags Articles
// @Produce  json
// @Param id path string true "ID статьи"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse
// @Router /article/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	article, err := h.service.Get(r.Context(), id)
	if err != nil {
		log.Error("failed to read article", slog.String("id", id), sl.Err(err))
		response.Fail(w, r, err, "could not read article")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"article": article,
	}))
}
