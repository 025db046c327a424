package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type updateProfileRequest struct {
	Name string `json:"name" binding:"required"`
}

// GET /api/users/profile/:email
func (h *Handler) GetProfile(c *gin.Context) {
	u, err := h.Users.Profile(c.Request.Context(), c.Param("email"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// PUT /api/users/profile/:email
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	u, err := h.Users.UpdateProfile(c.Request.Context(), c.Param("email"), req.Name)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
