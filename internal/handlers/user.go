package handlers

import (
	"net/http"

	"github.com/zayndotdev/real-estate/internal/auth"
	"github.com/zayndotdev/real-estate/internal/dto"
	"github.com/zayndotdev/real-estate/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles profile mutations on protected routes.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler returns a new UserHandler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Update godoc
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "User ID"
// @Param        body  body  dto.UpdateUserRequest  true  "Fields to change"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /users/update/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		// RequireAuth always runs first on this route.
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success":    false,
			"statusCode": http.StatusUnauthorized,
			"message":    "unauthorized",
		})
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c)
		return
	}
	user, err := h.users.UpdateProfile(c.Request.Context(), caller.ID, c.Param("id"), service.ProfileUpdate{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Avatar:   req.Avatar,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "profile updated successfully",
		"user":    user.Public(),
	})
}
