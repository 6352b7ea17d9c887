package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/clubevents/internal/application"
	"github.com/oksasatya/clubevents/internal/domain/entity"
	"github.com/oksasatya/clubevents/internal/interface/middleware"
	"github.com/oksasatya/clubevents/pkg/helpers"
	"github.com/oksasatya/clubevents/pkg/response"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies, Logger: logger}
}

type registerRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,pwd"`
	Phone        string `json:"phone" binding:"omitempty,phone"`
	Organization string `json:"organization" binding:"max=200"`
	Role         string `json:"role" binding:"omitempty,role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type profileRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=100"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Phone        *string `json:"phone" binding:"omitempty,phone"`
	Organization *string `json:"organization" binding:"omitempty,max=200"`
}

type sessionResponse struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

func (h *AuthHandler) startSession(c *gin.Context, status int, s *application.Session, message string) {
	h.Cookies.SetToken(c, s.Token.Value, s.Token.ExpiresAt)
	response.Success(c, status, sessionResponse{User: s.User, Token: s.Token.Value}, message,
		map[string]any{"expires_at": s.Token.ExpiresAt})
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
		Phone:        req.Phone,
		Organization: req.Organization,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	h.startSession(c, http.StatusCreated, s, "registration successful")
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	h.startSession(c, http.StatusOK, s, "login successful")
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Svc.Logout(c.Request.Context(), middleware.CurrentClaims(c)); err != nil && h.Logger != nil {
		h.Logger.WithError(err).Warn("token revocation failed on logout")
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Svc.Me(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile", nil)
}

// UpdateProfile PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req profileRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c), application.ProfileInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Organization: req.Organization,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile updated", nil)
}
