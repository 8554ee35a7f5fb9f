// Package userpayments реализует HTTP-обработчик истории оплат владельца.
package userpayments

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/daily-bulletin/internal/http/middlewarectx"
	"github.com/magabrotheeeer/daily-bulletin/internal/http/response"
	"github.com/magabrotheeeer/daily-bulletin/internal/lib/sl"
	"github.com/magabrotheeeer/daily-bulletin/internal/models"
	"github.com/magabrotheeeer/daily-bulletin/internal/services/guard"
)

// Handler отдаёт квитанции пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение квитанций.
type Service interface {
	Payments(ctx context.Context, email string) ([]*models.PaymentRecord, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary История оплат
// @Description Доступна только владельцу. Без параметра email берётся email из токена.
// @Tags Users
// @Produce  json
// @Security BearerAuth
// @Param email query string false "Email владельца"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /users/payments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.payments"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	caller := middlewarectx.CallerEmail(r.Context())
	email := r.URL.Query().Get("email")
	if email == "" {
		email = caller
	}
	if err := guard.Owner(caller, email); err != nil {
		log.Warn("access denied", sl.Email("caller", caller), sl.Email("email", email))
		response.Fail(w, r, err, "access denied")
		return
	}

	records, err := h.service.Payments(r.Context(), email)
	if err != nil {
		log.Error("failed to list payments", sl.Err(err))
		response.Fail(w, r, err, "could not list payments")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"payments": records,
	}))
}
