package restore

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/djmanager/internal/http/handlers/backup/export"
	"github.com/magabrotheeeer/djmanager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/djmanager/internal/models"
	"github.com/magabrotheeeer/djmanager/internal/services/backup"
	"github.com/magabrotheeeer/djmanager/internal/storage/memory"
)

type noopInvalidator struct{}

func (noopInvalidator) InvalidateUser(context.Context, string) error { return nil }

func withUser(r *http.Request, id string) *http.Request {
	return r.WithContext(middlewarectx.WithUser(r.Context(), &models.User{ID: id}))
}

func TestExportThenRestore(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	require.NoError(t, store.CreateClient(ctx, models.Client{ID: "c1", UserID: "u1", Name: "Ana"}))
	require.NoError(t, store.CreateEvent(ctx, models.Event{ID: "e1", UserID: "u1", ClientID: "c1", Name: "Boda", IncomeCategory: "Boda", AmountCharged: 100}))
	svc := backup.NewService(store, noopInvalidator{}, log)

	rec := httptest.NewRecorder()
	export.New(log, svc).ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodGet, "/backup", nil), "u1"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "djmanager_backup_")
	doc := rec.Body.Bytes()

	rec = httptest.NewRecorder()
	New(log, svc).ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodPost, "/backup", bytes.NewReader(doc)), "u2"))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data map[string]int `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, map[string]int{"events": 1, "clients": 1}, resp.Data)

	events, err := store.ListEvents(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Boda", events[0].Name)
}

func TestRestore_Malformed(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	require.NoError(t, store.CreateClient(ctx, models.Client{ID: "c1", UserID: "u1", Name: "Ana"}))
	handler := New(log, backup.NewService(store, noopInvalidator{}, log))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodPost, "/backup", bytes.NewBufferString(`{"events":[]}`)), "u1"))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "El archivo de respaldo no es válido.")
	clients, err := store.ListClients(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, clients, 1)
}
