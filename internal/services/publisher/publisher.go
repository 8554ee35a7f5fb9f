// Package publisher ведёт справочник издателей.
package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/daily-bulletin/internal/lib/apperr"
	"github.com/magabrotheeeer/daily-bulletin/internal/models"
)

// Repository определяет методы хранилища издателей.
type Repository interface {
	CreatePublisher(ctx context.Context, p models.Publisher) (string, error)
	ListPublishers(ctx context.Context) ([]*models.Publisher, error)
	GetPublisher(ctx context.Context, id string) (*models.Publisher, error)
	UpdatePublisher(ctx context.Context, id string, upd models.PublisherUpdate) (*models.Publisher, error)
	DeletePublisher(ctx context.Context, id string) error
}

// Service - бизнес-логика справочника.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создаёт Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create добавляет издателя. Имя и изображение обязательны.
func (s *Service) Create(ctx context.Context, in models.PublisherInput) (string, error) {
	const op = "services.publisher.Create"
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Image) == "" {
		return "", fmt.Errorf("%s: %w: name and image are required", op, apperr.ErrInvalidInput)
	}
	id, err := s.repo.CreatePublisher(ctx, models.Publisher{
		Name:      in.Name,
		Image:     in.Image,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// List возвращает всех издателей.
func (s *Service) List(ctx context.Context) ([]*models.Publisher, error) {
	const op = "services.publisher.List"
	list, err := s.repo.ListPublishers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// Get возвращает издателя по id.
func (s *Service) Get(ctx context.Context, id string) (*models.Publisher, error) {
	const op = "services.publisher.Get"
	p, err := s.repo.GetPublisher(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// Update меняет переданные поля. Пустое имя или изображение не допускаются.
func (s *Service) Update(ctx context.Context, id string, upd models.PublisherUpdate) (*models.Publisher, error) {
	const op = "services.publisher.Update"
	if (upd.Name != nil && strings.TrimSpace(*upd.Name) == "") || (upd.Image != nil && strings.TrimSpace(*upd.Image) == "") {
		return nil, fmt.Errorf("%s: %w: name and image must not be empty", op, apperr.ErrInvalidInput)
	}
	p, err := s.repo.UpdatePublisher(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// Remove удаляет издателя.
func (s *Service) Remove(ctx context.Context, id string) error {
	const op = "services.publisher.Remove"
	if err := s.repo.DeletePublisher(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
