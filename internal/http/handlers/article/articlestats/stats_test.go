package articlestats

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/daily-bulletin/internal/http/middlewarectx"
	"github.com/magabrotheeeer/daily-bulletin/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Stats(ctx context.Context, email string) (models.AuthorStats, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.AuthorStats), args.Error(1)
}

func TestStatsHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		email          string
		caller         string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "своя статистика",
			email:  "a@bulletin.com",
			caller: "a@bulletin.com",
			setupMock: func(m *MockService) {
				m.On("Stats", mock.Anything, "a@bulletin.com").
					Return(models.AuthorStats{Total: 3, Approved: 1, Pending: 1, Rejected: 1, TotalViews: 42}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"totalViews":42`,
		},
		{
			name:           "чужая статистика",
			email:          "b@bulletin.com",
			caller:         "a@bulletin.com",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodGet, "/article/user-stats/"+tt.email, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("email", tt.email)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middlewarectx.Email, tt.caller)
			req = req.WithContext(ctx)
			w := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
