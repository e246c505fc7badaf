package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/venuehub/backend/internal/model"
	"github.com/venuehub/backend/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Signup godoc
// @Summary Register a new user
// @Description Creates a user with the default ROLE_USER unless roles are given.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.SignupRequest true "Username, email, password and optional roles"
// @Success 201 {object} model.MessageResponse
// @Failure 400 {object} model.MessageResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if _, err := h.svc.Register(c.Request.Context(), req); err != nil {
		writeSignupError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.MessageResponse{Message: "User registered successfully!"})
}

// Signin godoc
// @Summary Authenticate with username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Username and password"
// @Success 200 {object} model.JwtResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/auth/signin [post]
func (h *AuthHandler) Signin(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "bad credentials"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		}
		return
	}

	c.JSON(http.StatusOK, res)
}

// RefreshToken godoc
// @Summary Exchange a refresh token for a new access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.TokenRefreshRequest true "Refresh token"
// @Success 200 {object} model.TokenRefreshResponse
// @Failure 400 {object} model.MessageResponse
// @Failure 404 {object} model.MessageResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/auth/refreshtoken [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req model.TokenRefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	res, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRefreshTokenNotFound):
			c.JSON(http.StatusNotFound, model.MessageResponse{
				Message: "Refresh token is not in database!",
			})
		case errors.Is(err, service.ErrRefreshTokenExpired):
			c.JSON(http.StatusBadRequest, model.MessageResponse{
				Message: "Refresh token was expired. Please make a new signin request",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		}
		return
	}

	c.JSON(http.StatusOK, res)
}

// Signout godoc
// @Summary Sign out
// @Description Deletes the caller's refresh token.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.StatusResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/auth/signout [post]
func (h *AuthHandler) Signout(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.svc.Logout(c.Request.Context(), user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, model.StatusResponse{Status: "signed_out"})
}

// Me godoc
// @Summary Get current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.AuthUser
// @Failure 401 {object} model.ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// Signup failure messages intentionally name the colliding field, matching
// the rest of the API's long-standing behavior.
func writeSignupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, model.MessageResponse{Message: "Error: Username is already taken!"})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, model.MessageResponse{Message: "Error: Email is already in use!"})
	case errors.Is(err, service.ErrRoleNotFound):
		c.JSON(http.StatusBadRequest, model.MessageResponse{Message: "Error: " + err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}
