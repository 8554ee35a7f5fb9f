// Package userupsert реализует HTTP-обработчик регистрации при входе.
//
// Новый email создаёт пользователя, известный обновляет lastLogin.
package userupsert

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/daily-bulletin/internal/http/response"
	"github.com/magabrotheeeer/daily-bulletin/internal/lib/sl"
	"github.com/magabrotheeeer/daily-bulletin/internal/models"
)

// Handler обрабатывает вход пользователя.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает регистрацию при входе.
type Service interface {
	UpsertOnLogin(ctx context.Context, payload models.LoginPayload) (*models.User, bool, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация при входе
// @Description Создаёт пользователя при первом входе или обновляет время последнего входа.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body models.LoginPayload true "Данные пользователя"
// @Success 200 {object} response.Response "Пользователь уже существовал"
// @Success 201 {object} response.Response "Пользователь создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Router /users [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.upsert"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		response.Invalid(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		response.Invalid(w, r, err)
		return
	}

	user, inserted, err := h.service.UpsertOnLogin(r.Context(), req)
	if err != nil {
		log.Error("failed to upsert user", sl.Err(err))
		response.Fail(w, r, err, "could not register user")
		return
	}

	log.Info("user logged in", sl.Email("email", user.Email), slog.Bool("inserted", inserted))
	if inserted {
		render.Status(r, http.StatusCreated)
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user":     user,
		"inserted": inserted,
	}))
}
