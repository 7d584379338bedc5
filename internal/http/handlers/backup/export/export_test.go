package export

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/djmanager/internal/errs"
	"github.com/magabrotheeeer/djmanager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/djmanager/internal/models"
)

// MockService реализует интерфейс export.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Export(ctx context.Context, userID string) (models.Backup, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.Backup), args.Error(1)
}

func TestExportHandler(t *testing.T) {
	tests := []struct {
		name                string
		withUser            bool
		setupMock           func(*MockService)
		expectedStatus      int
		expectedBody        string
		expectedDisposition string
	}{
		{
			name:     "выгрузка копии",
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("Export", mock.Anything, "u1").Return(models.Backup{
					Events:  []models.Event{{ID: "e1", Name: "Boda", ClientID: "c1"}},
					Clients: []models.Client{{ID: "c1", Name: "Ana"}},
				}, nil)
			},
			expectedStatus:      http.StatusOK,
			expectedBody:        `"clients":[{"id":"c1"`,
			expectedDisposition: `attachment; filename="djmanager_backup_2024-06-15.json"`,
		},
		{
			name:           "нет пользователя в контексте",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Sesión no válida o expirada.",
		},
		{
			name:     "ошибка хранилища",
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("Export", mock.Anything, "u1").Return(models.Backup{}, errors.Join(errs.ErrStoreUnavailable, errors.New("timeout")))
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
			handler.now = func() time.Time { return time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC) }

			req := httptest.NewRequest(http.MethodGet, "/backup/export", nil)
			if tt.withUser {
				req = req.WithContext(middlewarectx.WithUser(req.Context(), &models.User{ID: "u1"}))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			assert.Equal(t, tt.expectedDisposition, rec.Header().Get("Content-Disposition"))
			mockService.AssertExpectations(t)
		})
	}
}

func TestExportHandler_BodyIsNotWrapped(t *testing.T) {
	mockService := new(MockService)
	mockService.On("Export", mock.Anything, "u1").Return(models.Backup{Events: []models.Event{}, Clients: []models.Client{}}, nil)
	handler := New(slog.New(slog.NewTextHandler(io.Discard, nil)), mockService)

	req := httptest.NewRequest(http.MethodGet, "/backup/export", nil)
	req = req.WithContext(middlewarectx.WithUser(req.Context(), &models.User{ID: "u1"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"events":[],"clients":[]}`, rec.Body.String())
}
