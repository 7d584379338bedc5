// Package export отдаёт резервную копию данных пользователя файлом JSON.
// Ответ не оборачивается в конверт, чтобы файл можно было сразу импортировать.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/djmanager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/djmanager/internal/http/response"
	"github.com/magabrotheeeer/djmanager/internal/lib/sl"
	"github.com/magabrotheeeer/djmanager/internal/models"
)

// Service описывает выгрузку данных.
type Service interface {
	Export(ctx context.Context, userID string) (models.Backup, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
	now     func() time.Time
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, now: time.Now}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.backup.export"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFrom(r.Context())
	if !ok {
		log.Error("user id not found in context")
		response.Abort(w, r, http.StatusUnauthorized, "Sesión no válida o expirada.")
		return
	}

	backup, err := h.service.Export(r.Context(), userID)
	if err != nil {
		log.Error("failed to export backup", sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	filename := fmt.Sprintf("djmanager_backup_%s.json", h.now().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	log.Info("backup exported", slog.Int("events", len(backup.Events)), slog.Int("clients", len(backup.Clients)))
	render.JSON(w, r, backup)
}
