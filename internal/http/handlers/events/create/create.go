// Package create реализует HTTP-обработчик создания мероприятия.
//
// Handler принимает JSON с данными мероприятия, валидирует категории и суммы,
// разбирает дату и передаёт команду создания в сервис.
package create

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/djmanager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/djmanager/internal/http/response"
	"github.com/magabrotheeeer/djmanager/internal/lib/sl"
	"github.com/magabrotheeeer/djmanager/internal/lib/validate"
	"github.com/magabrotheeeer/djmanager/internal/models"
)

// Service описывает сохранение мероприятия.
type Service interface {
	Save(ctx context.Context, userID string, cmd models.EventCommand) (*models.Event, error)
}

// Handler управляет HTTP-запросами на создание мероприятий.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.events.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyEvent
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

	draft, err := req.Draft()
	if err != nil {
		log.Info("invalid date", sl.Err(err))
		response.Abort(w, r, http.StatusUnprocessableEntity, "Fecha no válida, use el formato AAAA-MM-DD.")
		return
	}

	userID, ok := middlewarectx.UserIDFrom(r.Context())
	if !ok {
		log.Error("user id not found in context")
		response.Abort(w, r, http.StatusUnauthorized, "Sesión no válida o expirada.")
		return
	}

	event, err := h.service.Save(r.Context(), userID, models.CreateEvent{Event: draft})
	if err != nil {
		log.Info("failed to create event", sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	log.Info("event created", slog.String("id", event.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(event))
}
