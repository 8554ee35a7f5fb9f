// Package publisherupdate реализует HTTP-обработчик изменения издателя.
package publisherupdate

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

// Handler меняет издателя. Роль проверяет AdminMiddleware.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает изменение издателя.
type Service interface {
	Update(ctx context.Context, id string, upd models.PublisherUpdate) (*models.Publisher, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Изменить издателя
// @Tags Publishers
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID издателя"
// @Param request body models.PublisherUpdate true "Поля издателя"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /publishers/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.publisher.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.PublisherUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		response.Invalid(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	p, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		log.Error("failed to update publisher", slog.String("id", id), sl.Err(err))
		response.Fail(w, r, err, "could not update publisher")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"publisher": p,
	}))
}
