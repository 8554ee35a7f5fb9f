// Package publisherlist реализует HTTP-обработчик справочника издателей.
package publisherlist

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

// Handler отдаёт издателей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение справочника.
type Service interface {
	List(ctx context.Context) ([]*models.Publisher, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список издателей
// @Tags Publishers
// @Produce  json
// @Success 200 {object} response.Response
// @Router /publishers [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.publisher.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	list, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list publishers", sl.Err(err))
		response.Fail(w, r, err, "could not list publishers")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"publishers": list,
	}))
}
