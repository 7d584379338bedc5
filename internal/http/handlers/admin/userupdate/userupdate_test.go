package userupdate

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/djmanager/internal/errs"
	"github.com/magabrotheeeer/djmanager/internal/models"
)

// MockService реализует интерфейс userupdate.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Update(ctx context.Context, patch models.UserPatch) (*models.User, error) {
	args := m.Called(ctx, patch)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func TestUserUpdateHandler(t *testing.T) {
	until := time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name           string
		id             string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "продление подписки",
			id:   "u2",
			body: `{"active_until":"2025-03-31","subscription_tier":"Anual"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, mock.MatchedBy(func(p models.UserPatch) bool {
					return p.ID == "u2" && p.ActiveUntil != nil && p.ActiveUntil.Equal(until) &&
						p.SubscriptionTier != nil && *p.SubscriptionTier == "Anual" && p.Password == nil
				})).Return(&models.User{ID: "u2", Username: "dj", ActiveUntil: until}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"username":"dj"`,
		},
		{
			name:           "некорректный JSON",
			id:             "u2",
			body:           `{"is_active":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Solicitud no válida.",
		},
		{
			name:           "короткий пароль",
			id:             "u2",
			body:           `{"password":"abc"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "es demasiado corto",
		},
		{
			name:           "отрицательная сумма платежа",
			id:             "u2",
			body:           `{"last_payment_amount":-1}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "no puede ser negativo",
		},
		{
			name:           "неизвестный план",
			id:             "u2",
			body:           `{"subscription_tier":"Semanal"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "no es un plan válido",
		},
		{
			name:           "неверный формат даты",
			id:             "u2",
			body:           `{"active_until":"31/03/2025"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "Fecha no válida, use el formato AAAA-MM-DD.",
		},
		{
			name: "пользователь не найден",
			id:   "missing",
			body: `{"is_active":false}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, mock.MatchedBy(func(p models.UserPatch) bool {
					return p.ID == "missing"
				})).Return(nil, errs.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "Recurso no encontrado.",
		},
		{
			name: "ошибка хранилища",
			id:   "u2",
			body: `{"is_active":true}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, mock.Anything).Return(nil, errors.Join(errs.ErrStoreUnavailable, errors.New("timeout")))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Error interno del servidor.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			r := chi.NewRouter()
			r.Patch("/admin/users/{id}", New(slog.New(slog.NewTextHandler(io.Discard, nil)), mockService).ServeHTTP)

			req := httptest.NewRequest(http.MethodPatch, "/admin/users/"+tt.id, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
