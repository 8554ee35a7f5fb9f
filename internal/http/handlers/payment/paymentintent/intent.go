// Package paymentintent реализует HTTP-обработчик создания платёжного намерения.
//
// Цена переводится в центы, намерение создаётся у процессора, клиент получает
// client secret для подтверждения оплаты на своей стороне.
package paymentintent

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
)

// Handler создаёт намерения.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает создание намерения.
type Service interface {
	CreateIntent(ctx context.Context, price float64) (string, error)
}

// Request - цена тарифа в основной валюте.
type Request struct {
	Price float64 `json:"price" validate:"required"`
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
// @Summary Создать платёжное намерение
// @Tags Payment
// @Accept  json
// @Produce  json
// @Param request body Request true "Цена"
// @Success 200 {object} response.Response "clientSecret"
// @Failure 400 {object} response.ErrorResponse "Цена отсутствует или не положительна"
// @Failure 429 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /payment/create-payment-intent [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.intent"
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

	secret, err := h.service.CreateIntent(r.Context(), req.Price)
	if err != nil {
		log.Error("failed to create payment intent", slog.Float64("price", req.Price), sl.Err(err))
		response.Fail(w, r, err, "could not create payment intent")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"clientSecret": secret,
	}))
}
