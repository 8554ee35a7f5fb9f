// Package usersubscribe реализует HTTP-обработчик выдачи премиума после оплаты.
//
// Handler проверяет тело запроса и передаёт его сервису, который обновляет
// пользователя и записывает квитанцию.
package usersubscribe

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/daily-bulletin/internal/http/response"
	"github.com/magabrotheeeer/daily-bulletin/internal/lib/sl"
	"github.com/magabrotheeeer/daily-bulletin/internal/models"
)

// Handler выдаёт премиум.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает выдачу премиума.
type Service interface {
	GrantPremium(ctx context.Context, g models.PremiumGrant) (time.Time, error)
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
// @Summary Оформить премиум
// @Description Выдаёт премиум на duration минут и записывает квитанцию об оплате.
// @Tags Users
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.PremiumGrant true "Данные оплаты"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Нет email или длительности"
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse "Оплата не подтверждена"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /users/subscribe [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.subscribe"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.PremiumGrant
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

	expiresAt, err := h.service.GrantPremium(r.Context(), req)
	if err != nil {
		log.Error("failed to grant premium", sl.Email("email", req.Email), sl.Err(err))
		response.Fail(w, r, err, "could not grant premium")
		return
	}

	log.Info("premium granted", sl.Email("email", req.Email), slog.String("plan", req.Plan))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"premiumExpiresAt": expiresAt,
	}))
}
