// Package userprofile реализует HTTP-обработчик чтения роли и профиля пользователя.
//
// При чтении истёкший премиум-доступ снимается, поэтому клиент всегда видит
// актуальный флаг isPremium.
package userprofile

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

// Handler отдаёт профиль по email.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение профиля.
type Service interface {
	Profile(ctx context.Context, email string) (models.Profile, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Роль и профиль пользователя
// @Tags Users
// @Produce  json
// @Param email path string true "Email пользователя"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /users/{email} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.profile"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email := chi.URLParam(r, "email")
	profile, err := h.service.Profile(r.Context(), email)
	if err != nil {
		log.Error("failed to read profile", sl.Email("email", email), sl.Err(err))
		response.Fail(w, r, err, "could not read profile")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": profile,
	}))
}
