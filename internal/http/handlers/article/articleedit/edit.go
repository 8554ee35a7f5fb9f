// Package articleedit реализует HTTP-обработчик редактирования содержимого статьи.
package articleedit

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/daily-bulletin/internal/http/response"
	"github.com/magabrotheeeer/daily-bulletin/internal/lib/sl"
	"github.com/magabrotheeeer/daily-bulletin/internal/models"
)

// Handler редактирует статью.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает редактирование.
type Service interface {
	Edit(ctx context.Context, id string, edit models.ArticleEdit) (*models.Article, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Редактировать статью
// @Tags Articles
// @Accept  json
// @Produce  json
// @Param id path string true "ID статьи"
// @Param request body models.ArticleEdit true "Поля статьи"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /article/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.edit"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.ArticleEdit
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		response.Invalid(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	article, err := h.service.Edit(r.Context(), id, req)
	if err != nil {
		log.Error("failed to edit article", slog.String("id", id), sl.Err(err))
		response.Fail(w, r, err, "could not edit article")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"article": article,
	}))
}
