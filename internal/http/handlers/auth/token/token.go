// Package token реализует HTTP-обработчик выдачи bearer-токена.
//
// Handler принимает email, подписывает токен на семь дней и возвращает его клиенту.
package token

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/daily-bulletin/internal/http/response"
	"github.com/magabrotheeeer/daily-bulletin/internal/lib/sl"
)

// Handler выдаёт токены.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает выпуск токена.
type Service interface {
	GenerateToken(email string) (string, error)
}

// Request - тело запроса на выдачу токена.
type Request struct {
	Email string `json:"email" validate:"required,email"`
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
// @Summary Выдать токен
// @Description Подписывает токен для email на 7 дней.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Email пользователя"
// @Success 200 {object} response.Response "Токен выдан"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Router /jwt [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.token"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	token, err := h.service.GenerateToken(req.Email)
	if err != nil {
		log.Error("failed to issue token", sl.Err(err))
		response.Fail(w, r, err, "could not issue token")
		return
	}

	log.Info("token issued", sl.Email("email", req.Email))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"token": token,
	}))
}
