// Package guard содержит предикаты авторизации. Каждый предикат принимает
// проверенную личность вызывающего и контекст ресурса и возвращает nil либо
// ошибку из apperr. Middleware и хендлеры только адаптируют их к HTTP.
package guard

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/daily-bulletin/internal/lib/apperr"
	"github.com/magabrotheeeer/daily-bulletin/internal/models"
)

// Guard - предикат доступа для вызывающего caller.
type Guard func(ctx context.Context, caller string) error

// RoleLookup ищет пользователя, чтобы узнать его роль.
type RoleLookup interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Owner разрешает операцию, только если caller совпадает с владельцем ресурса.
func Owner(caller, owner string) error {
	const op = "guard.Owner"
	if caller == "" {
		return fmt.Errorf("%s: %w", op, apperr.ErrUnauthorized)
	}
	if caller != owner {
		return fmt.Errorf("%s: %w: caller is not the owner", op, apperr.ErrForbidden)
	}
	return nil
}

// Admin разрешает операцию только администратору.
// Отсутствующий пользователь считается не-администратором.
func Admin(ctx context.Context, lookup RoleLookup, caller string) error {
	const op = "guard.Admin"
	if caller == "" {
		return fmt.Errorf("%s: %w", op, apperr.ErrUnauthorized)
	}
	user, err := lookup.GetUserByEmail(ctx, caller)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return fmt.Errorf("%s: %w: unknown user", op, apperr.ErrForbidden)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if user == nil || user.Role != models.RoleAdmin {
		return fmt.Errorf("%s: %w: admin role required", op, apperr.ErrForbidden)
	}
	return nil
}

// OwnerOf превращает Owner в Guard для конкретного владельца.
func OwnerOf(owner string) Guard {
	return func(_ context.Context, caller string) error {
		return Owner(caller, owner)
	}
}

// AdminVia превращает Admin в Guard поверх lookup.
func AdminVia(lookup RoleLookup) Guard {
	return func(ctx context.Context, caller string) error {
		return Admin(ctx, lookup, caller)
	}
}

// Chain проверяет guards по порядку и останавливается на первой ошибке.
func Chain(ctx context.Context, caller string, guards ...Guard) error {
	for _, g := range guards {
		if err := g(ctx, caller); err != nil {
			return err
		}
	}
	return nil
}
