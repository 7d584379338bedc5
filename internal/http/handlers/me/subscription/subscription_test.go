package subscription

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

	"github.com/magabrotheeeer/djmanager/internal/errs"
	"github.com/magabrotheeeer/djmanager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/djmanager/internal/models"
)

// MockService реализует интерфейс subscription.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Subscription(ctx context.Context, userID string) (models.SubscriptionWarning, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.SubscriptionWarning), args.Error(1)
}

func TestSubscriptionHandler(t *testing.T) {
	tests := []struct {
		name           string
		withUser       bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "подписка скоро истекает",
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("Subscription", mock.Anything, "u1").Return(models.SubscriptionWarning{
					Level:         models.WarningUrgent,
					DaysRemaining: 2,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"level":"urgent"`,
		},
		{
			name:           "нет пользователя в контексте",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Sesión no válida o expirada.",
		},
		{
			name:     "пользователь удалён",
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("Subscription", mock.Anything, "u1").Return(models.SubscriptionWarning{}, errs.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "Recurso no encontrado.",
		},
		{
			name:     "ошибка хранилища",
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("Subscription", mock.Anything, "u1").Return(models.SubscriptionWarning{}, errors.Join(errs.ErrStoreUnavailable, errors.New("timeout")))
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

			req := httptest.NewRequest(http.MethodGet, "/me/subscription", nil)
			if tt.withUser {
				req = req.WithContext(middlewarectx.WithUser(req.Context(), &models.User{ID: "u1"}))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
