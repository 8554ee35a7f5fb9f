// Package publisherread реализует HTTP-обработчик чтения издателя по ID.
package publisherread

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

// Handler отдаёт издателя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение издателя.
type Service interface {
	Get(ctx context.Context, id string) (*models.Publisher, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Издатель по ID
// @Tags Publishers
// @Produce  json
// @Param id path string true "ID издателя"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /publishers/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.publisher.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		log.Error("failed to read publisher", slog.String("id", id), sl.Err(err))
		response.Fail(w, r, err, "could not read publisher")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"publisher": p,
	}))
}
