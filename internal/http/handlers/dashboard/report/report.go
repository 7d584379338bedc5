// Package report реализует HTTP-обработчик финансового отчёта за период.
//
// Параметры start и end обязательны и задаются в формате 2006-01-02;
// оба конца периода входят в отчёт.
package report

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/djmanager/internal/analytics"
	"github.com/magabrotheeeer/djmanager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/djmanager/internal/http/response"
	"github.com/magabrotheeeer/djmanager/internal/lib/sl"
	"github.com/magabrotheeeer/djmanager/internal/lib/validate"
	"github.com/magabrotheeeer/djmanager/internal/models"
)

// Service описывает построение отчёта.
type Service interface {
	Report(ctx context.Context, userID string, start, end time.Time) (analytics.Report, error)
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, validate: validate.New()}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.report"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := models.DummyReportFilter{
		StartDate: r.URL.Query().Get("start"),
		EndDate:   r.URL.Query().Get("end"),
	}
	if err := h.validate.Struct(filter); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	start, err := models.ParseDate(filter.StartDate)
	if err != nil {
		log.Info("invalid start date", sl.Err(err))
		response.Abort(w, r, http.StatusBadRequest, "Fecha no válida, use el formato AAAA-MM-DD.")
		return
	}
	end, err := models.ParseDate(filter.EndDate)
	if err != nil {
		log.Info("invalid end date", sl.Err(err))
		response.Abort(w, r, http.StatusBadRequest, "Fecha no válida, use el formato AAAA-MM-DD.")
		return
	}

	userID, ok := middlewarectx.UserIDFrom(r.Context())
	if !ok {
		log.Error("user id not found in context")
		response.Abort(w, r, http.StatusUnauthorized, "Sesión no válida o expirada.")
		return
	}

	rep, err := h.service.Report(r.Context(), userID, start, end)
	if err != nil {
		log.Info("failed to build report", sl.Err(err))
		response.Fail(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(rep))
}
