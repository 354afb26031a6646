package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smartmeal/smartmeal-backend/internal/http/response"
	"github.com/smartmeal/smartmeal-backend/internal/services"
)

type UserHandler struct {
	users services.UserService
}

func NewUserHandler(users services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// POST /users
// body: { "email": "...", "full_name": "..." }
func (uh *UserHandler) CreateUser(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		FullName string `json:"full_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, 400, "invalid_request", err)
		return
	}

	u, err := uh.users.CreateUser(c.Request.Context(), req.Email, req.FullName)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"user": u})
}

// GET /users/:user_id
func (uh *UserHandler) GetUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.RespondError(c, 400, "invalid_user_id", err)
		return
	}

	u, err := uh.users.GetUser(c.Request.Context(), userID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"user": u})
}
