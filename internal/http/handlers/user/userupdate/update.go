// Package userupdate реализует HTTP-обработчик частичного обновления профиля.
package userupdate

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

// Handler обновляет профиль.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает обновление профиля.
type Service interface {
	UpdateProfile(ctx context.Context, email string, upd models.ProfileUpdate) (*models.User, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Обновить профиль
// @Description Меняет только переданные поля: имя, био, фото.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param email path string true "Email пользователя"
// @Param request body models.ProfileUpdate true "Поля профиля"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /users/{email} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		response.Invalid(w, r, err)
		return
	}

	email := chi.URLParam(r, "email")
	user, err := h.service.UpdateProfile(r.Context(), email, req)
	if err != nil {
		log.Error("failed to update profile", sl.Email("email", email), sl.Err(err))
		response.Fail(w, r, err, "could not update profile")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": user,
	}))
}
