// Package userupdate реализует частичное изменение учётной записи администратором.
package userupdate

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/djmanager/internal/http/response"
	"github.com/magabrotheeeer/djmanager/internal/lib/sl"
	"github.com/magabrotheeeer/djmanager/internal/lib/validate"
	"github.com/magabrotheeeer/djmanager/internal/models"
)

type Service interface {
	Update(ctx context.Context, patch models.UserPatch) (*models.User, error)
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
	const op = "handlers.admin.userupdate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyUserPatch
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.Abort(w, r, http.StatusBadRequest, "Solicitud no válida.")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id := chi.URLParam(r, "id")
	patch, err := req.Patch(id)
	if err != nil {
		log.Info("invalid active_until", sl.Err(err))
		response.Abort(w, r, http.StatusUnprocessableEntity, "Fecha no válida, use el formato AAAA-MM-DD.")
		return
	}

	user, err := h.service.Update(r.Context(), patch)
	if err != nil {
		log.Info("failed to update user", slog.String("id", id), sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	log.Info("user updated", slog.String("id", id))
	render.JSON(w, r, response.StatusOKWithData(user))
}
