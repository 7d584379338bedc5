// Package login реализует HTTP-обработчик входа по имени пользователя и паролю.
//
// При успехе возвращает JWT, учётную запись и состояние подписки,
// чтобы клиент сразу показал предупреждение об окончании срока.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/djmanager/internal/errs"
	"github.com/magabrotheeeer/djmanager/internal/http/response"
	"github.com/magabrotheeeer/djmanager/internal/lib/sl"
	"github.com/magabrotheeeer/djmanager/internal/lib/validate"
	"github.com/magabrotheeeer/djmanager/internal/metrics"
	"github.com/magabrotheeeer/djmanager/internal/models"
	"github.com/magabrotheeeer/djmanager/internal/services/auth"
)

// Handler обрабатывает запросы входа.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
	now      func() time.Time
}

// Service описывает вход пользователя.
type Service interface {
	Login(ctx context.Context, username, password string) (string, *models.User, error)
}

// Request: тело запроса входа.
type Request struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Result: данные успешного входа.
type Result struct {
	Token        string                     `json:"token"`
	User         *models.User               `json:"user"`
	Subscription models.SubscriptionWarning `json:"subscription"`
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate.New(),
		now:      time.Now,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	token, user, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		metrics.AuthAttempt(outcome(err))
		status, _ := response.FromError(err)
		if status == http.StatusInternalServerError {
			log.Error("failed to login", sl.Err(err))
		} else {
			log.Info("login rejected", slog.String("username", req.Username), sl.Err(err))
		}
		response.Fail(w, r, err)
		return
	}
	metrics.AuthAttempt("success")

	log.Info("user logged in", slog.String("user_id", user.ID))
	render.JSON(w, r, response.StatusOKWithData(Result{
		Token:        token,
		User:         user,
		Subscription: auth.WarningFor(*user, h.now()),
	}))
}

func outcome(err error) string {
	switch {
	case errors.Is(err, errs.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, errs.ErrAccountDisabled):
		return "disabled"
	case errors.Is(err, errs.ErrSubscriptionExpired):
		return "expired"
	default:
		return "error"
	}
}
