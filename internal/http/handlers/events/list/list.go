// Package list реализует HTTP-обработчик списка мероприятий пользователя.
//
// Поддерживает фильтр по периоду (start, end в формате 2006-01-02) и
// поиск подстроки в названии, клиенте и месте проведения.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/djmanager/internal/analytics"
	"github.com/magabrotheeeer/djmanager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/djmanager/internal/http/response"
	"github.com/magabrotheeeer/djmanager/internal/lib/sl"
	"github.com/magabrotheeeer/djmanager/internal/models"
)

// Service описывает выборку мероприятий.
type Service interface {
	List(ctx context.Context, userID string, filter analytics.Filter) ([]models.Event, error)
}

// Handler обрабатывает запросы списка мероприятий.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.events.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := r.URL.Query()
	dummy := models.DummyListFilter{
		StartDate: q.Get("start"),
		EndDate:   q.Get("end"),
		Search:    q.Get("search"),
	}
	filter, err := parseFilter(dummy)
	if err != nil {
		log.Info("invalid filter", sl.Err(err))
		response.Abort(w, r, http.StatusBadRequest, "Fecha no válida, use el formato AAAA-MM-DD.")
		return
	}

	userID, ok := middlewarectx.UserIDFrom(r.Context())
	if !ok {
		log.Error("user id not found in context")
		response.Abort(w, r, http.StatusUnauthorized, "Sesión no válida o expirada.")
		return
	}

	events, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		log.Error("failed to list events", sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(events))
}

func parseFilter(d models.DummyListFilter) (analytics.Filter, error) {
	var start, end time.Time
	var err error
	if d.StartDate != "" {
		if start, err = models.ParseDate(d.StartDate); err != nil {
			return analytics.Filter{}, err
		}
	}
	if d.EndDate != "" {
		if end, err = models.ParseDate(d.EndDate); err != nil {
			return analytics.Filter{}, err
		}
	}
	return analytics.Filter{Range: analytics.DayRange(start, end), Search: d.Search}, nil
}
