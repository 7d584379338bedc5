// Package calendar отдаёт дни месяца с мероприятиями.
// Без параметров year и month используется текущий месяц.
package calendar

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/djmanager/internal/analytics"
	"github.com/magabrotheeeer/djmanager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/djmanager/internal/http/response"
	"github.com/magabrotheeeer/djmanager/internal/lib/month"
	"github.com/magabrotheeeer/djmanager/internal/lib/sl"
)

// Service описывает построение календаря.
type Service interface {
	Calendar(ctx context.Context, userID string, m month.Month) ([]analytics.CalendarDay, error)
	CurrentMonth() month.Month
}

// Result: календарь месяца.
type Result struct {
	Year  int                     `json:"year"`
	Month int                     `json:"month"`
	Label string                  `json:"label"`
	Days  []analytics.CalendarDay `json:"days"`
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.calendar"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	m := h.service.CurrentMonth()
	q := r.URL.Query()
	if y := q.Get("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			log.Info("invalid year", sl.Err(err))
			response.Abort(w, r, http.StatusBadRequest, "Año no válido.")
			return
		}
		m.Year = year
	}
	if mo := q.Get("month"); mo != "" {
		n, err := strconv.Atoi(mo)
		if err != nil || n < 1 || n > 12 {
			log.Info("invalid month", slog.String("month", mo))
			response.Abort(w, r, http.StatusBadRequest, "Mes no válido.")
			return
		}
		m.Month = time.Month(n)
	}

	userID, ok := middlewarectx.UserIDFrom(r.Context())
	if !ok {
		log.Error("user id not found in context")
		response.Abort(w, r, http.StatusUnauthorized, "Sesión no válida o expirada.")
		return
	}

	days, err := h.service.Calendar(r.Context(), userID, m)
	if err != nil {
		log.Info("failed to build calendar", sl.Err(err))
		response.Fail(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(Result{
		Year:  m.Year,
		Month: int(m.Month),
		Label: m.Label(),
		Days:  days,
	}))
}
