// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Пакет упрощает возврат
// успешных ответов, ошибок и сообщений валидации в едином формате.
package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/djmanager/internal/errs"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status: статус запроса ("OK" или "Error").
// Поле Error: текст ошибки (опционально, при неуспехе).
// Поле Data: данные ответа (опционально, при успехе).
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

const (
	// StatusOK: значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError: значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// MsgInternal: сообщение клиенту о внутренней ошибке.
const MsgInternal = "Error interno del servidor."

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError формирует Response со статусом Error на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("el campo %s es obligatorio", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("el campo %s es demasiado corto", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("el campo %s es demasiado largo", err.Field()))
		case "gte":
			errsMsgs = append(errsMsgs, fmt.Sprintf("el campo %s no puede ser negativo", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("el campo %s debe ser un correo válido", err.Field()))
		case "income_category":
			errsMsgs = append(errsMsgs, fmt.Sprintf("el campo %s no es una categoría de ingreso válida", err.Field()))
		case "expense_category":
			errsMsgs = append(errsMsgs, fmt.Sprintf("el campo %s no es una categoría de gasto válida", err.Field()))
		case "subscription_tier":
			errsMsgs = append(errsMsgs, fmt.Sprintf("el campo %s no es un plan válido", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("el campo %s no es válido", err.Field()))
		}
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(errsMsgs, ", "),
	}
}

// FromError сопоставляет ошибку сервиса HTTP-статусу и сообщению для клиента.
// Неизвестные ошибки дают 500 и общее сообщение.
func FromError(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Usuario o contraseña incorrectos."
	case errors.Is(err, errs.ErrAccountDisabled):
		return http.StatusForbidden, "Su cuenta está desactivada. Contacte al administrador."
	case errors.Is(err, errs.ErrSubscriptionExpired):
		return http.StatusForbidden, "Su suscripción ha expirado. Contacte al administrador para renovarla."
	case errors.Is(err, errs.ErrPasswordChangeRequired):
		return http.StatusForbidden, "Debe cambiar su contraseña antes de continuar."
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, "Recurso no encontrado."
	case errors.Is(err, errs.ErrUsernameTaken):
		return http.StatusConflict, "El nombre de usuario ya existe."
	case errors.Is(err, errs.ErrAlreadyInitialized):
		return http.StatusConflict, "El sistema ya fue inicializado."
	case errors.Is(err, errs.ErrClientInUse):
		return http.StatusConflict, "No se puede eliminar un cliente con eventos asociados."
	case errors.Is(err, errs.ErrClientRequired):
		return http.StatusUnprocessableEntity, "Debe seleccionar un cliente."
	case errors.Is(err, errs.ErrWeakPassword):
		return http.StatusUnprocessableEntity, "La contraseña debe tener al menos 4 caracteres."
	case errors.Is(err, errs.ErrMalformedImport):
		return http.StatusUnprocessableEntity, "El archivo de respaldo no es válido."
	case errors.Is(err, errs.ErrInvalid):
		return http.StatusUnprocessableEntity, "Datos no válidos."
	default:
		return http.StatusInternalServerError, MsgInternal
	}
}

// Fail пишет ответ с ошибкой, выбирая статус по err.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := FromError(err)
	render.Status(r, status)
	render.JSON(w, r, Error(msg))
}

// Abort пишет ответ с ошибкой и явно заданным статусом.
func Abort(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, Error(msg))
}
