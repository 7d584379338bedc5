// Package catalog отдаёт справочники категорий и тарифов.
package catalog

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/djmanager/internal/http/response"
	"github.com/magabrotheeeer/djmanager/internal/models"
)

// Handler возвращает справочники.
type Handler struct{}

// New создает новый Handler.
func New() *Handler {
	return &Handler{}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(models.NewCatalog()))
}
