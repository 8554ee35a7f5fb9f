// Package article реализует редакционный процесс: приём статей, смену статуса
// и статистику автора.
package article

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/daily-bulletin/internal/events"
	"github.com/magabrotheeeer/daily-bulletin/internal/lib/apperr"
	"github.com/magabrotheeeer/daily-bulletin/internal/lib/sl"
	"github.com/magabrotheeeer/daily-bulletin/internal/metrics"
	"github.com/magabrotheeeer/daily-bulletin/internal/models"
)

// Repository определяет методы хранилища статей.
type Repository interface {
	CreateArticle(ctx context.Context, article models.Article) (string, error)
	ListArticlesByStatus(ctx context.Context, status string) ([]*models.Article, error)
	ListArticlesByAuthor(ctx context.Context, email string) ([]*models.Article, error)
	// ViewArticle возвращает статью и увеличивает счётчик просмотров.
	ViewArticle(ctx context.Context, id string) (*models.Article, error)
	SetArticleStatus(ctx context.Context, id, status, reason string, now time.Time) error
	UpdateArticle(ctx context.Context, id string, edit models.ArticleEdit, now time.Time) (*models.Article, error)
	DeleteArticle(ctx context.Context, id string) error
}

// Service - бизнес-логика статей.
type Service struct {
	repo    Repository
	events  events.Publisher
	metrics *metrics.Metrics
	log     *slog.Logger
	now     func() time.Time
}

// New создаёт Service. pub и m могут быть nil.
func New(repo Repository, pub events.Publisher, m *metrics.Metrics, log *slog.Logger) *Service {
	if pub == nil {
		pub = events.Noop{}
	}
	return &Service{
		repo:    repo,
		events:  pub,
		metrics: m,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Submit сохраняет статью от имени caller. Без явного статуса статья попадает в pending.
func (s *Service) Submit(ctx context.Context, in models.ArticleInput, caller string) (string, error) {
	const op = "services.article.Submit"
	if caller == "" {
		return "", fmt.Errorf("%s: %w", op, apperr.ErrUnauthorized)
	}
	status := in.Status
	if status == "" {
		status = models.StatusPending
	}
	if !models.ValidStatus(status) {
		return "", fmt.Errorf("%s: %w: unknown status %q", op, apperr.ErrInvalidInput, status)
	}

	id, err := s.repo.CreateArticle(ctx, models.Article{
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		Publisher:   in.Publisher,
		Tags:        in.Tags,
		IsPremium:   in.IsPremium,
		AuthorName:  in.AuthorName,
		AuthorPhoto: in.AuthorPhoto,
		AuthorEmail: caller,
		Status:      status,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// Transition переводит статью в approved или rejected. Предыдущий статус не
// проверяется: повторный перевод всегда перезаписывает состояние.
// Причина сохраняется только при отклонении.
func (s *Service) Transition(ctx context.Context, id, status, reason string) error {
	const op = "services.article.Transition"
	if status != models.StatusApproved && status != models.StatusRejected {
		return fmt.Errorf("%s: %w: status must be approved or rejected", op, apperr.ErrInvalidInput)
	}
	if status != models.StatusRejected {
		reason = ""
	}

	now := s.now()
	if err := s.repo.SetArticleStatus(ctx, id, status, reason, now); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.ArticleTransition(status)

	event := events.ArticleStatusChanged{ArticleID: id, Status: status, Reason: reason, At: now}
	if err := s.events.Publish(ctx, events.RouteArticleStatus, event); err != nil {
		s.log.Warn("failed to publish article status event", slog.String("op", op), slog.String("article_id", id), sl.Err(err))
	}
	return nil
}

// Stats пересчитывает статистику автора при каждом вызове.
func (s *Service) Stats(ctx context.Context, email string) (models.AuthorStats, error) {
	const op = "services.article.Stats"
	articles, err := s.repo.ListArticlesByAuthor(ctx, email)
	if err != nil {
		return models.AuthorStats{}, fmt.Errorf("%s: %w", op, err)
	}
	return ComputeStats(articles), nil
}

// ComputeStats агрегирует статусы и просмотры статей.
func ComputeStats(articles []*models.Article) models.AuthorStats {
	var st models.AuthorStats
	for _, a := range articles {
		if a == nil {
			continue
		}
		st.Total++
		switch a.Status {
		case models.StatusApproved:
			st.Approved++
		case models.StatusPending:
			st.Pending++
		case models.StatusRejected:
			st.Rejected++
		}
		st.TotalViews += a.Views
	}
	return st
}

// ListPending возвращает статьи на модерации.
func (s *Service) ListPending(ctx context.Context) ([]*models.Article, error) {
	return s.listByStatus(ctx, "services.article.ListPending", models.StatusPending)
}

// ListApproved возвращает опубликованные статьи.
func (s *Service) ListApproved(ctx context.Context) ([]*models.Article, error) {
	return s.listByStatus(ctx, "services.article.ListApproved", models.StatusApproved)
}

func (s *Service) listByStatus(ctx context.Context, op, status string) ([]*models.Article, error) {
	articles, err := s.repo.ListArticlesByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return articles, nil
}

// ListByAuthor возвращает статьи автора.
func (s *Service) ListByAuthor(ctx context.Context, email string) ([]*models.Article, error) {
	const op = "services.article.ListByAuthor"
	articles, err := s.repo.ListArticlesByAuthor(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return articles, nil
}

// Get возвращает статью, засчитывая просмотр.
func (s *Service) Get(ctx context.Context, id string) (*models.Article, error) {
	const op = "services.article.Get"
	article, err := s.repo.ViewArticle(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return article, nil
}

// Edit меняет содержимое статьи. Автор и статус не редактируются.
func (s *Service) Edit(ctx context.Context, id string, edit models.ArticleEdit) (*models.Article, error) {
	const op = "services.article.Edit"
	article, err := s.repo.UpdateArticle(ctx, id, edit, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return article, nil
}

// Remove удаляет статью.
func (s *Service) Remove(ctx context.Context, id string) error {
	const op = "services.article.Remove"
	if err := s.repo.DeleteArticle(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
