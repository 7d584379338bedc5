// Package usertoggle включает и отключает учётную запись.
package usertoggle

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/djmanager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/djmanager/internal/http/response"
	"github.com/magabrotheeeer/djmanager/internal/lib/sl"
	"github.com/magabrotheeeer/djmanager/internal/models"
)

type Service interface {
	ToggleActive(ctx context.Context, actorID, targetID string) (*models.User, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.usertoggle"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	actorID, ok := middlewarectx.UserIDFrom(r.Context())
	if !ok {
		log.Error("user id not found in context")
		response.Abort(w, r, http.StatusUnauthorized, "Sesión no válida o expirada.")
		return
	}

	id := chi.URLParam(r, "id")
	user, err := h.service.ToggleActive(r.Context(), actorID, id)
	if err != nil {
		log.Info("failed to toggle user", slog.String("id", id), sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	log.Info("user toggled", slog.String("id", id), slog.Bool("is_active", user.IsActive))
	render.JSON(w, r, response.StatusOKWithData(user))
}
