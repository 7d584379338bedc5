package userstats

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/djmanager/internal/analytics"
	"github.com/magabrotheeeer/djmanager/internal/errs"
)

// MockService реализует интерфейс userstats.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Stats(ctx context.Context) (analytics.UserStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(analytics.UserStats), args.Error(1)
}

func TestUserStatsHandler(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "статистика пользователей",
			setupMock: func(m *MockService) {
				m.On("Stats", mock.Anything).Return(analytics.UserStats{Total: 3, Active: 2, Inactive: 1}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"total":3,"active":2,"inactive":1`,
		},
		{
			name: "ошибка хранилища",
			setupMock: func(m *MockService) {
				m.On("Stats", mock.Anything).Return(analytics.UserStats{}, errors.Join(errs.ErrStoreUnavailable, errors.New("timeout")))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Error interno del servidor.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)
			handler := New(slog.New(slog.NewTextHandler(io.Discard, nil)), mockService)

			req := httptest.NewRequest(http.MethodGet, "/admin/users/stats", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
