// Package articlelist реализует HTTP-обработчики лент статей: на модерации и опубликованных.
package articlelist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/daily-bulletin/internal/http/response"
	"github.com/magabrotheeeer/daily-bulletin/internal/lib/sl"
	"github.com/magabrotheeeer/daily-bulletin/internal/models"
)

// Handler отдаёт статьи одного статуса.
type Handler struct {
	log      *slog.Logger
	service  Service
	approved bool
}

// Service описывает чтение лент.
type Service interface {
	ListPending(ctx context.Context) ([]*models.Article, error)
	ListApproved(ctx context.Context) ([]*models.Article, error)
}

// NewPending создает Handler ленты статей на модерации.
func NewPending(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// NewApproved создает Handler ленты опубликованных статей.
func NewApproved(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, approved: true}
}

// ServeHTTP godoc
// @Summary Лента статей
// @Description /article отдаёт статьи на модерации, /article/approved опубликованные.
// @Tags Articles
// @Produce  json
// @Success 200 {object} response.Response
// @Failure 500 {object} response.ErrorResponse
// @Router /article [get]
// @Router /article/approved [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var (
		articles []*models.Article
		err      error
	)
	if h.approved {
		articles, err = h.service.ListApproved(r.Context())
	} else {
		articles, err = h.service.ListPending(r.Context())
	}
	if err != nil {
		log.Error("failed to list articles", slog.Bool("approved", h.approved), sl.Err(err))
		response.Fail(w, r, err, "could not list articles")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"articles": articles,
	}))
}
