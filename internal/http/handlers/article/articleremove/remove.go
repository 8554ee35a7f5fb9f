// Package articleremove реализует HTTP-обработчик удаления статьи.
package articleremove

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
)

// Handler удаляет статью.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает удаление.
type Service interface {
	Remove(ctx context.Context, id string) error
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить статью
// @Tags Articles
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID статьи"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /article/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if err := h.service.Remove(r.Context(), id); err != nil {
		log.Error("failed to remove article", slog.String("id", id), sl.Err(err))
		response.Fail(w, r, err, "could not remove article")
		return
	}

	log.Info("article removed", slog.String("id", id), slog.String("by", middlewarectx.CallerEmail(r.Context())))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"deleted": id,
	}))
}
