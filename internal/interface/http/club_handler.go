package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/clubevents/internal/application"
	"github.com/oksasatya/clubevents/internal/interface/middleware"
	"github.com/oksasatya/clubevents/pkg/response"
)

type ClubHandler struct {
	Svc *application.ClubService
}

func NewClubHandler(svc *application.ClubService) *ClubHandler {
	return &ClubHandler{Svc: svc}
}

type createClubRequest struct {
	Name        string `json:"name" binding:"required,max=120"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required,max=60"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,pwd"`
}

type updateClubRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=120"`
	Description *string `json:"description"`
	Category    *string `json:"category" binding:"omitempty,max=60"`
	Status      *string `json:"status" binding:"omitempty,oneof=pending active inactive"`
}

// List GET /api/clubs
func (h *ClubHandler) List(c *gin.Context) {
	clubs, err := h.Svc.ListClubs(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, clubs, "", map[string]any{"count": len(clubs)})
}

// Get GET /api/clubs/:id
func (h *ClubHandler) Get(c *gin.Context) {
	club, err := h.Svc.GetClub(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, club, "", nil)
}

// Create POST /api/clubs
func (h *ClubHandler) Create(c *gin.Context) {
	var req createClubRequest
	if !bindJSON(c, &req) {
		return
	}
	club, err := h.Svc.CreateClub(c.Request.Context(), middleware.CurrentUser(c), application.CreateClubInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Email:       req.Email,
		Password:    req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, club, "club created successfully", nil)
}

// Update PUT /api/clubs/:id
func (h *ClubHandler) Update(c *gin.Context) {
	var req updateClubRequest
	if !bindJSON(c, &req) {
		return
	}
	club, err := h.Svc.UpdateClub(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), application.UpdateClubInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Status:      req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, club, "club updated successfully", nil)
}

// Delete DELETE /api/clubs/:id
func (h *ClubHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteClub(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "club deleted successfully", nil)
}
