// Package payment создаёт и проверяет платёжные намерения у процессора.
package payment

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/magabrotheeeer/daily-bulletin/internal/lib/apperr"
	"github.com/magabrotheeeer/daily-bulletin/internal/paymentprovider"
)

// Provider - клиент платёжного процессора.
type Provider interface {
	CreatePaymentIntent(ctx context.Context, req paymentprovider.CreateIntentRequest) (*paymentprovider.CreateIntentResponse, error)
	GetPaymentIntent(ctx context.Context, id string) (*paymentprovider.IntentStatus, error)
}

// Service - платёжные операции.
type Service struct {
	provider Provider
	log      *slog.Logger
}

// New создаёт Service.
func New(provider Provider, log *slog.Logger) *Service {
	return &Service{provider: provider, log: log}
}

// ToMinorUnits переводит цену в центы с округлением до ближайшего.
func ToMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CreateIntent создаёт намерение на сумму price и возвращает client secret.
func (s *Service) CreateIntent(ctx context.Context, price float64) (string, error) {
	const op = "services.payment.CreateIntent"
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return "", fmt.Errorf("%s: %w: price must be positive", op, apperr.ErrInvalidInput)
	}
	amount := ToMinorUnits(price)
	if amount <= 0 {
		return "", fmt.Errorf("%s: %w: price is below the minimal unit", op, apperr.ErrInvalidInput)
	}

	resp, err := s.provider.CreatePaymentIntent(ctx, paymentprovider.CreateIntentRequest{Amount: amount})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Debug("payment intent created", slog.String("op", op), slog.String("intent_id", resp.ID), slog.Int64("amount", amount))
	return resp.ClientSecret, nil
}

// VerifyIntent проверяет, что намерение transactionID оплачено на сумму price.
func (s *Service) VerifyIntent(ctx context.Context, transactionID string, price float64) error {
	const op = "services.payment.VerifyIntent"
	if transactionID == "" {
		return fmt.Errorf("%s: %w: transaction id is required", op, apperr.ErrForbidden)
	}
	st, err := s.provider.GetPaymentIntent(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", op, apperr.ErrForbidden, err)
	}
	if !st.Succeeded {
		return fmt.Errorf("%s: %w: payment not completed", op, apperr.ErrForbidden)
	}
	if st.Amount != ToMinorUnits(price) {
		return fmt.Errorf("%s: %w: amount mismatch", op, apperr.ErrForbidden)
	}
	return nil
}
