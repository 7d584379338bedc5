package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T) string {
	t.Helper()
	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMiddleware(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/events/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/events/abc", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	body := scrape(t)
	assert.Contains(t, body, `djmanager_http_requests_total{method="GET",route="/events/{id}",status="404"}`)
	assert.Contains(t, body, "djmanager_http_request_duration_seconds")
}

func TestCounters(t *testing.T) {
	AuthAttempt("invalid_credentials")
	CacheLookup(true)
	CacheLookup(false)
	ReminderPublished("urgent")

	body := scrape(t)
	assert.Contains(t, body, `djmanager_auth_attempts_total{outcome="invalid_credentials"}`)
	assert.Contains(t, body, `djmanager_cache_lookups_total{result="hit"}`)
	assert.Contains(t, body, `djmanager_cache_lookups_total{result="miss"}`)
	assert.Contains(t, body, `djmanager_reminders_published_total{level="urgent"}`)
}
