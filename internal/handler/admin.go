package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/authenticore/registry/internal/repository"
)

// AdminHandler exposes dashboard endpoints restricted to the admin role.
type AdminHandler struct {
	Store *repository.Store
}

func NewAdminHandler(s *repository.Store) *AdminHandler {
	return &AdminHandler{Store: s}
}

// ListUsers returns every registered account, sanitized, in insertion
// order. Routed behind JWT auth plus the admin role requirement.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users := h.Store.ListUsers()
	out := make([]userPart, 0, len(users))
	for _, u := range users {
		out = append(out, toUserPart(u))
	}
	return c.JSON(http.StatusOK, out)
}
