package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelbooking/internal/domain/models"
)

// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginInput
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.Users.Login(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req models.RegisterInput
	if !BindJSONOrError(c, &req) {
		return
	}
	u, err := h.Users.Register(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user": u})
}
