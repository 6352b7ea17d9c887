package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/clubevents/internal/application"
	"github.com/oksasatya/clubevents/internal/interface/middleware"
	"github.com/oksasatya/clubevents/pkg/response"
)

type RegistrationHandler struct {
	Svc *application.RegistrationService
}

func NewRegistrationHandler(svc *application.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{Svc: svc}
}

type registrationRequest struct {
	EventID      string `json:"eventId" binding:"required"`
	UserID       string `json:"userId"`
	Name         string `json:"name" binding:"required,max=100"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"required,phone"`
	Organization string `json:"organization" binding:"max=200"`
	Requirements string `json:"requirements" binding:"max=2000"`
}

// Register POST /api/event-registrations/register
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req registrationRequest
	if !bindJSON(c, &req) {
		return
	}
	reg, err := h.Svc.RegisterForEvent(c.Request.Context(), middleware.CurrentUser(c), application.RegistrationInput{
		EventID:      req.EventID,
		UserID:       req.UserID,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Organization: req.Organization,
		Requirements: req.Requirements,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, reg, "registration successful", nil)
}

// ListByUser GET /api/event-registrations/user/:userId
func (h *RegistrationHandler) ListByUser(c *gin.Context) {
	regs, err := h.Svc.GetUserRegistrations(c.Request.Context(), middleware.CurrentUser(c), c.Param("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, regs, "", map[string]any{"count": len(regs)})
}

// Cancel DELETE /api/event-registrations/:registrationId
func (h *RegistrationHandler) Cancel(c *gin.Context) {
	reg, err := h.Svc.CancelRegistration(c.Request.Context(), middleware.CurrentUser(c), c.Param("registrationId"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, reg, "registration cancelled", nil)
}
