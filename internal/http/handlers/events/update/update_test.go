package update

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/djmanager/internal/errs"
	"github.com/magabrotheeeer/djmanager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/djmanager/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Save(ctx context.Context, userID string, cmd models.EventCommand) (*models.Event, error) {
	args := m.Called(ctx, userID, cmd)
	e, _ := args.Get(0).(*models.Event)
	return e, args.Error(1)
}

func TestUpdateHandler(t *testing.T) {
	body, _ := json.Marshal(models.DummyEvent{
		Name: "Club", Date: "2024-06-01", ClientID: "c1", IncomeCategory: "Discoteca/Club", AmountCharged: 300,
	})
	isUpdate := func(id string) any {
		return mock.MatchedBy(func(cmd models.EventCommand) bool {
			u, ok := cmd.(models.UpdateEvent)
			return ok && u.ID == id && u.Event.Name == "Club"
		})
	}

	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное обновление",
			id:   "e1",
			setupMock: func(m *MockService) {
				m.On("Save", mock.Anything, "u1", isUpdate("e1")).Return(&models.Event{ID: "e1", Name: "Club"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"e1"`,
		},
		{
			name: "мероприятие не найдено",
			id:   "missing",
			setupMock: func(m *MockService) {
				m.On("Save", mock.Anything, "u1", isUpdate("missing")).Return(nil, errs.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "Recurso no encontrado.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			r := chi.NewRouter()
			r.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
					ctx := middlewarectx.WithUser(req.Context(), &models.User{ID: "u1"})
					next.ServeHTTP(w, req.WithContext(ctx))
				})
			})
			r.Put("/events/{id}", New(slog.New(slog.NewTextHandler(io.Discard, nil)), mockService).ServeHTTP)

			req := httptest.NewRequest(http.MethodPut, "/events/"+tt.id, bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
