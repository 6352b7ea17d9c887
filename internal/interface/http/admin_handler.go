package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/clubevents/internal/application"
	"github.com/oksasatya/clubevents/internal/interface/middleware"
	"github.com/oksasatya/clubevents/pkg/response"
)

type AdminHandler struct {
	Svc *application.AdminService
}

func NewAdminHandler(svc *application.AdminService) *AdminHandler {
	return &AdminHandler{Svc: svc}
}

type roleRequest struct {
	Role string `json:"role" binding:"required,assignable_role"`
}

// Users GET /api/superadmin/users
func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, users, "", map[string]any{"count": len(users)})
}

// UpdateRole PUT /api/superadmin/users/:userId/role
func (h *AdminHandler) UpdateRole(c *gin.Context) {
	var req roleRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.UpdateUserRole(c.Request.Context(), middleware.CurrentUser(c), c.Param("userId"), req.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "role updated", nil)
}

// DeleteUser DELETE /api/superadmin/users/:userId
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.Svc.DeleteUser(c.Request.Context(), middleware.CurrentUser(c), c.Param("userId")); err != nil {
		writeError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "user deleted successfully", nil)
}

// Reconcile POST /api/superadmin/events/:id/reconcile
func (h *AdminHandler) Reconcile(c *gin.Context) {
	res, err := h.Svc.ReconcileParticipants(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, "participants reconciled", nil)
}
