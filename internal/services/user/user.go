// Package user управляет учётными записями читателей и премиум-подпиской.
package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/daily-bulletin/internal/events"
	"github.com/magabrotheeeer/daily-bulletin/internal/lib/apperr"
	"github.com/magabrotheeeer/daily-bulletin/internal/lib/sl"
	"github.com/magabrotheeeer/daily-bulletin/internal/metrics"
	"github.com/magabrotheeeer/daily-bulletin/internal/models"
)

// Repository определяет методы хранилища пользователей и квитанций.
type Repository interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpsertOnLogin(ctx context.Context, payload models.LoginPayload, now time.Time) (*models.User, bool, error)
	UpdateProfile(ctx context.Context, email string, upd models.ProfileUpdate, now time.Time) (*models.User, error)
	// GrantPremium обновляет пользователя и пишет квитанцию в одной транзакции.
	GrantPremium(ctx context.Context, email, plan string, takenAt, expiresAt time.Time, record models.PaymentRecord) error
	RevokePremium(ctx context.Context, email string, now time.Time) error
	DeleteUser(ctx context.Context, email string) error
	ListPayments(ctx context.Context, email string) ([]*models.PaymentRecord, error)
}

// PaymentVerifier подтверждает, что транзакция действительно оплачена.
type PaymentVerifier interface {
	VerifyIntent(ctx context.Context, transactionID string, price float64) error
}

// Service - бизнес-логика пользователей.
type Service struct {
	repo     Repository
	verifier PaymentVerifier
	events   events.Publisher
	metrics  *metrics.Metrics
	log      *slog.Logger
	now      func() time.Time
}

// New создаёт Service. Если verifier равен nil, оплата перед выдачей премиума
// не проверяется.
func New(repo Repository, verifier PaymentVerifier, pub events.Publisher, m *metrics.Metrics, log *slog.Logger) *Service {
	if pub == nil {
		pub = events.Noop{}
	}
	return &Service{
		repo:     repo,
		verifier: verifier,
		events:   pub,
		metrics:  m,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// UpsertOnLogin регистрирует пользователя при первом входе или обновляет lastLogin.
// Второе значение true, если запись была создана.
func (s *Service) UpsertOnLogin(ctx context.Context, payload models.LoginPayload) (*models.User, bool, error) {
	const op = "services.user.UpsertOnLogin"
	payload.Email = strings.TrimSpace(payload.Email)
	if payload.Email == "" {
		return nil, false, fmt.Errorf("%s: %w: email is required", op, apperr.ErrInvalidInput)
	}
	user, inserted, err := s.repo.UpsertOnLogin(ctx, payload, s.now())
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return user, inserted, nil
}

// GrantPremium выдаёт премиум на g.DurationMinutes и фиксирует квитанцию.
// Возвращает момент окончания доступа.
func (s *Service) GrantPremium(ctx context.Context, g models.PremiumGrant) (time.Time, error) {
	const op = "services.user.GrantPremium"
	if strings.TrimSpace(g.Email) == "" || g.DurationMinutes <= 0 {
		return time.Time{}, fmt.Errorf("%s: %w: email and duration are required", op, apperr.ErrInvalidInput)
	}

	if s.verifier != nil {
		if err := s.verifier.VerifyIntent(ctx, g.TransactionID, g.Price); err != nil {
			return time.Time{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	now := s.now()
	expiresAt := now.Add(time.Duration(g.DurationMinutes) * time.Minute)
	record := models.PaymentRecord{
		Email:         g.Email,
		Price:         g.Price,
		TransactionID: g.TransactionID,
		Plan:          g.Plan,
		PaidAt:        now,
	}
	if err := s.repo.GrantPremium(ctx, g.Email, g.Plan, now, expiresAt, record); err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.PremiumGranted(g.Plan)

	event := events.PaymentRecorded{
		Email:         g.Email,
		Plan:          g.Plan,
		Price:         g.Price,
		TransactionID: g.TransactionID,
		ExpiresAt:     expiresAt,
		At:            now,
	}
	if err := s.events.Publish(ctx, events.RoutePaymentRecorded, event); err != nil {
		s.log.Warn("failed to publish payment event", slog.String("op", op), sl.Email("email", g.Email), sl.Err(err))
	}
	return expiresAt, nil
}

// RevokePremium снимает премиум-доступ.
func (s *Service) RevokePremium(ctx context.Context, email string) error {
	const op = "services.user.RevokePremium"
	if err := s.repo.RevokePremium(ctx, email, s.now()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateProfile применяет только переданные поля профиля.
func (s *Service) UpdateProfile(ctx context.Context, email string, upd models.ProfileUpdate) (*models.User, error) {
	const op = "services.user.UpdateProfile"
	user, err := s.repo.UpdateProfile(ctx, email, upd, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// List возвращает всех пользователей.
func (s *Service) List(ctx context.Context) ([]*models.User, error) {
	const op = "services.user.List"
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// Profile возвращает роль и профиль пользователя. Истёкший премиум снимается
// при чтении.
func (s *Service) Profile(ctx context.Context, email string) (models.Profile, error) {
	const op = "services.user.Profile"
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return models.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	if user.PremiumExpired(now) {
		if err := s.repo.RevokePremium(ctx, email, now); err != nil {
			return models.Profile{}, fmt.Errorf("%s: %w", op, err)
		}
		user.IsPremium = false
		user.CurrentPlan = ""
		s.log.Info("premium expired", slog.String("op", op), sl.Email("email", email))
	}
	return models.ProfileOf(user), nil
}

// Remove удаляет пользователя.
func (s *Service) Remove(ctx context.Context, email string) error {
	const op = "services.user.Remove"
	if err := s.repo.DeleteUser(ctx, email); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Payments возвращает квитанции пользователя, новые первыми.
func (s *Service) Payments(ctx context.Context, email string) ([]*models.PaymentRecord, error) {
	const op = "services.user.Payments"
	records, err := s.repo.ListPayments(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return records, nil
}

// GetUserByEmail нужен guard.Admin для проверки роли.
func (s *Service) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repo.GetUserByEmail(ctx, email)
}
