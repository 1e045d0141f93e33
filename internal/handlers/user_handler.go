package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moneta/internal/services"
)

// UserHandler handles user lifecycle requests beyond the authenticated
// user's own profile. The service enforces the self-or-admin rule.
type UserHandler struct {
	userService services.UserServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetUserByID handles fetching a user by id.
// @Summary     Get user
// @Description Get a user by id (self or admin)
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "User ID"
// @Success     200 {object} UserResponse "User"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users/{id} [get]
func (h *UserHandler) GetUserByID(c *gin.Context) {
	p, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(p, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
}

// DeactivateUser handles disabling a user account.
// @Summary     Deactivate user
// @Description Disable a user account without removing it (self or admin)
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "User ID"
// @Success     200 {object} UserResponse "Deactivated user"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     409 {object} ErrorResponse "Already inactive"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users/{id} [delete]
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	p, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.Deactivate(p, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
}

// ActivateUser handles re-enabling a user account.
// @Summary     Activate user
// @Description Re-enable a deactivated user account (self or admin)
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "User ID"
// @Success     200 {object} UserResponse "Activated user"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     409 {object} ErrorResponse "Already active"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users/{id}/activate [post]
func (h *UserHandler) ActivateUser(c *gin.Context) {
	p, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.Activate(p, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
}
