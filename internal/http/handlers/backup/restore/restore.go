// Package restore реализует импорт резервной копии.
// Документ заменяет все мероприятия и клиентов пользователя целиком.
package restore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/djmanager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/djmanager/internal/http/response"
	"github.com/magabrotheeeer/djmanager/internal/lib/sl"
	"github.com/magabrotheeeer/djmanager/internal/models"
)

// MaxBodyBytes: предельный размер документа резервной копии.
const MaxBodyBytes = 10 << 20

// Service описывает импорт данных.
type Service interface {
	Import(ctx context.Context, userID string, raw []byte) (models.Backup, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.backup.restore"
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

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Info("backup too large", slog.Int64("limit", tooLarge.Limit))
			response.Abort(w, r, http.StatusRequestEntityTooLarge, "El archivo de respaldo es demasiado grande.")
			return
		}
		log.Error("failed to read request body", sl.Err(err))
		response.Abort(w, r, http.StatusBadRequest, "Solicitud no válida.")
		return
	}

	backup, err := h.service.Import(r.Context(), userID, raw)
	if err != nil {
		log.Info("failed to import backup", sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	log.Info("backup imported", slog.Int("events", len(backup.Events)), slog.Int("clients", len(backup.Clients)))
	render.JSON(w, r, response.StatusOKWithData(map[string]int{
		"events":  len(backup.Events),
		"clients": len(backup.Clients),
	}))
}
