package handlers

import (
	"github.com/gin-gonic/gin"

	userdomain "github.com/BruksfildServices01/barbershop-backoffice/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/middleware"
)

type MeHandler struct {
	users userdomain.Repository
}

func NewMeHandler(users userdomain.Repository) *MeHandler {
	return &MeHandler{users: users}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := middleware.ActorID(c)
	if userID == nil {
		httperr.Unauthorized(c, "user_not_in_context", "No authenticated user.")
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), *userID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if user == nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	httpresp.OK(c, user)
}
