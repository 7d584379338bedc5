// Package profile отдаёт учётную запись текущего пользователя.
package profile

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/djmanager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/djmanager/internal/http/response"
)

// Handler возвращает текущего пользователя из контекста запроса.
type Handler struct{}

// New создает новый Handler.
func New() *Handler {
	return &Handler{}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewarectx.UserFrom(r.Context())
	if !ok {
		response.Abort(w, r, http.StatusUnauthorized, "Sesión no válida o expirada.")
		return
	}
	render.JSON(w, r, response.StatusOKWithData(user))
}
