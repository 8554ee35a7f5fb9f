package article

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/daily-bulletin/internal/events"
	"github.com/magabrotheeeer/daily-bulletin/internal/lib/apperr"
	"github.com/magabrotheeeer/daily-bulletin/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateArticle(ctx context.Context, article models.Article) (string, error) {
	args := m.Called(ctx, article)
	return args.String(0), args.Error(1)
}

func (m *RepoMock) ListArticlesByStatus(ctx context.Context, status string) ([]*models.Article, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Article), args.Error(1)
}

func (m *RepoMock) ListArticlesByAuthor(ctx context.Context, email string) ([]*models.Article, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Article), args.Error(1)
}

func (m *RepoMock) ViewArticle(ctx context.Context, id string) (*models.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *RepoMock) SetArticleStatus(ctx context.Context, id, status, reason string, now time.Time) error {
	return m.Called(ctx, id, status, reason, now).Error(0)
}

func (m *RepoMock) UpdateArticle(ctx context.Context, id string, edit models.ArticleEdit, now time.Time) (*models.Article, error) {
	args := m.Called(ctx, id, edit, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *RepoMock) DeleteArticle(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, event any) error {
	return m.Called(ctx, routingKey, event).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newService(repo *RepoMock, pub events.Publisher) *Service {
	s := New(repo, pub, nil, newNoopLogger())
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	return s
}

func TestService_Submit(t *testing.T) {
	tests := []struct {
		name       string
		in         models.ArticleInput
		caller     string
		setupMocks func(r *RepoMock)
		wantID     string
		wantErr    error
	}{
		{
			name:   "default status is pending",
			in:     models.ArticleInput{Title: "Hello"},
			caller: "author@bulletin.com",
			setupMocks: func(r *RepoMock) {
				r.On("CreateArticle", mock.Anything, mock.MatchedBy(func(a models.Article) bool {
					return a.Status == models.StatusPending && a.AuthorEmail == "author@bulletin.com" && a.Title == "Hello"
				})).Return("64b000000000000000000001", nil).Once()
			},
			wantID: "64b000000000000000000001",
		},
		{
			name:   "explicit status kept",
			in:     models.ArticleInput{Title: "Hello", Status: models.StatusApproved},
			caller: "author@bulletin.com",
			setupMocks: func(r *RepoMock) {
				r.On("CreateArticle", mock.Anything, mock.MatchedBy(func(a models.Article) bool {
					return a.Status == models.StatusApproved
				})).Return("id2", nil).Once()
			},
			wantID: "id2",
		},
		{
			name:       "unknown status",
			in:         models.ArticleInput{Title: "Hello", Status: "published"},
			caller:     "author@bulletin.com",
			setupMocks: func(_ *RepoMock) {},
			wantErr:    apperr.ErrInvalidInput,
		},
		{
			name:       "no caller",
			in:         models.ArticleInput{Title: "Hello"},
			setupMocks: func(_ *RepoMock) {},
			wantErr:    apperr.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			s := newService(repo, nil)

			id, err := s.Submit(context.Background(), tt.in, tt.caller)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "CreateArticle", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Transition(t *testing.T) {
	t.Run("approve then reject overwrites", func(t *testing.T) {
		repo := new(RepoMock)
		pub := new(PublisherMock)
		s := newService(repo, pub)

		repo.On("SetArticleStatus", mock.Anything, "a1", models.StatusApproved, "", mock.Anything).Return(nil).Once()
		repo.On("SetArticleStatus", mock.Anything, "a1", models.StatusRejected, "off topic", mock.Anything).Return(nil).Once()
		pub.On("Publish", mock.Anything, events.RouteArticleStatus, mock.MatchedBy(func(e events.ArticleStatusChanged) bool {
			return e.ArticleID == "a1"
		})).Return(nil).Twice()

		require.NoError(t, s.Transition(context.Background(), "a1", models.StatusApproved, "ignored"))
		require.NoError(t, s.Transition(context.Background(), "a1", models.StatusRejected, "off topic"))
		repo.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("invalid target status", func(t *testing.T) {
		repo := new(RepoMock)
		s := newService(repo, nil)

		for _, st := range []string{"", models.StatusPending, "archived"} {
			err := s.Transition(context.Background(), "a1", st, "")
			assert.ErrorIs(t, err, apperr.ErrInvalidInput)
		}
		repo.AssertNotCalled(t, "SetArticleStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown article", func(t *testing.T) {
		repo := new(RepoMock)
		pub := new(PublisherMock)
		s := newService(repo, pub)
		repo.On("SetArticleStatus", mock.Anything, "missing", models.StatusApproved, "", mock.Anything).
			Return(apperr.ErrNotFound).Once()

		err := s.Transition(context.Background(), "missing", models.StatusApproved, "")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("broker failure does not fail transition", func(t *testing.T) {
		repo := new(RepoMock)
		pub := new(PublisherMock)
		s := newService(repo, pub)
		repo.On("SetArticleStatus", mock.Anything, "a1", models.StatusApproved, "", mock.Anything).Return(nil).Once()
		pub.On("Publish", mock.Anything, events.RouteArticleStatus, mock.Anything).Return(errors.New("channel closed")).Once()

		assert.NoError(t, s.Transition(context.Background(), "a1", models.StatusApproved, ""))
	})
}

func TestComputeStats(t *testing.T) {
	articles := []*models.Article{
		{Status: models.StatusApproved, Views: 10},
		{Status: models.StatusApproved, Views: 5},
		{Status: models.StatusPending},
		{Status: models.StatusRejected, Views: 1},
		nil,
	}
	st := ComputeStats(articles)
	assert.Equal(t, models.AuthorStats{Total: 4, Approved: 2, Pending: 1, Rejected: 1, TotalViews: 16}, st)
	assert.Equal(t, st.Total, st.Approved+st.Pending+st.Rejected)

	assert.Equal(t, models.AuthorStats{}, ComputeStats(nil))
}

func TestService_Stats(t *testing.T) {
	repo := new(RepoMock)
	s := newService(repo, nil)

	repo.On("ListArticlesByAuthor", mock.Anything, "author@bulletin.com").Return([]*models.Article{
		{Status: models.StatusPending, Views: 3},
		{Status: models.StatusApproved, Views: 7},
	}, nil).Once()
	repo.On("ListArticlesByAuthor", mock.Anything, "broken@bulletin.com").Return(nil, errors.New("db down")).Once()

	st, err := s.Stats(context.Background(), "author@bulletin.com")
	require.NoError(t, err)
	assert.Equal(t, 2, st.Total)
	assert.Equal(t, int64(10), st.TotalViews)

	_, err = s.Stats(context.Background(), "broken@bulletin.com")
	assert.Error(t, err)
}

func TestService_ReadAndMutate(t *testing.T) {
	repo := new(RepoMock)
	s := newService(repo, nil)
	ctx := context.Background()

	repo.On("ListArticlesByStatus", mock.Anything, models.StatusPending).Return([]*models.Article{{Title: "p"}}, nil).Once()
	repo.On("ListArticlesByStatus", mock.Anything, models.StatusApproved).Return([]*models.Article{}, nil).Once()
	repo.On("ViewArticle", mock.Anything, "a1").Return(&models.Article{Title: "x", Views: 1}, nil).Once()
	title := "New"
	repo.On("UpdateArticle", mock.Anything, "a1", models.ArticleEdit{Title: &title}, mock.Anything).
		Return(&models.Article{Title: title}, nil).Once()
	repo.On("DeleteArticle", mock.Anything, "gone").Return(apperr.ErrNotFound).Once()

	pending, err := s.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	approved, err := s.ListApproved(ctx)
	require.NoError(t, err)
	assert.Empty(t, approved)

	a, err := s.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.Views)

	edited, err := s.Edit(ctx, "a1", models.ArticleEdit{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, edited.Title)

	assert.ErrorIs(t, s.Remove(ctx, "gone"), apperr.ErrNotFound)
	repo.AssertExpectations(t)
}
