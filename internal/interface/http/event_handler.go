package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/clubevents/internal/application"
	"github.com/oksasatya/clubevents/internal/interface/middleware"
	"github.com/oksasatya/clubevents/pkg/response"
)

// maxImageBytes bounds event image uploads.
const maxImageBytes = 5 << 20

type EventHandler struct {
	Svc    *application.EventService
	Logger *logrus.Logger
}

func NewEventHandler(svc *application.EventService, logger *logrus.Logger) *EventHandler {
	return &EventHandler{Svc: svc, Logger: logger}
}

type createEventRequest struct {
	ClubID               string  `json:"clubId" binding:"omitempty,uuid"`
	Title                string  `json:"title" binding:"required,max=200"`
	Description          string  `json:"description" binding:"required"`
	Date                 string  `json:"date" binding:"required"`
	Time                 string  `json:"time" binding:"required,max=32"`
	Location             string  `json:"location" binding:"required,max=200"`
	Category             string  `json:"category" binding:"required,max=60"`
	MaxParticipants      int     `json:"maxParticipants" binding:"required,gte=1"`
	RegistrationFee      float64 `json:"registrationFee" binding:"gte=0"`
	RegistrationDeadline *string `json:"registrationDeadline"`
	Requirements         string  `json:"requirements"`
	Organizer            string  `json:"organizer" binding:"max=200"`
	Image                string  `json:"image" binding:"omitempty,url"`
}

type updateEventRequest struct {
	Title                *string  `json:"title" binding:"omitempty,max=200"`
	Description          *string  `json:"description"`
	Date                 *string  `json:"date"`
	Time                 *string  `json:"time" binding:"omitempty,max=32"`
	Location             *string  `json:"location" binding:"omitempty,max=200"`
	Category             *string  `json:"category" binding:"omitempty,max=60"`
	MaxParticipants      *int     `json:"maxParticipants" binding:"omitempty,gte=1"`
	RegistrationFee      *float64 `json:"registrationFee" binding:"omitempty,gte=0"`
	RegistrationDeadline *string  `json:"registrationDeadline"`
	Requirements         *string  `json:"requirements"`
	Organizer            *string  `json:"organizer" binding:"omitempty,max=200"`
	Image                *string  `json:"image" binding:"omitempty,url"`
	Status               *string  `json:"status" binding:"omitempty,oneof=upcoming ongoing completed cancelled"`
}

// List GET /api/events
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.Svc.ListEvents(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, events, "", map[string]any{"count": len(events)})
}

// Get GET /api/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	e, err := h.Svc.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, e, "", nil)
}

// Search GET /api/events/search?q=&limit=
func (h *EventHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	events, err := h.Svc.SearchEvents(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, events, "", map[string]any{"count": len(events)})
}

// Mine GET /api/events/my/events
func (h *EventHandler) Mine(c *gin.Context) {
	events, err := h.Svc.ListMyEvents(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, events, "", map[string]any{"count": len(events)})
}

// Create POST /api/events
func (h *EventHandler) Create(c *gin.Context) {
	var req createEventRequest
	if !bindJSON(c, &req) {
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		badDate(c, "date")
		return
	}
	deadline, err := parseOptionalDate(req.RegistrationDeadline)
	if err != nil {
		badDate(c, "registrationDeadline")
		return
	}
	e, err := h.Svc.CreateEvent(c.Request.Context(), middleware.CurrentUser(c), application.EventInput{
		ClubID:               req.ClubID,
		Title:                req.Title,
		Description:          req.Description,
		Date:                 date,
		Time:                 req.Time,
		Location:             req.Location,
		Category:             req.Category,
		MaxParticipants:      req.MaxParticipants,
		RegistrationFee:      req.RegistrationFee,
		RegistrationDeadline: deadline,
		Requirements:         req.Requirements,
		Organizer:            req.Organizer,
		ImageURL:             req.Image,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, e, "event created successfully", nil)
}

// Update PUT /api/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	var req updateEventRequest
	if !bindJSON(c, &req) {
		return
	}
	date, err := parseOptionalDate(req.Date)
	if err != nil {
		badDate(c, "date")
		return
	}
	deadline, err := parseOptionalDate(req.RegistrationDeadline)
	if err != nil {
		badDate(c, "registrationDeadline")
		return
	}
	e, err := h.Svc.UpdateEvent(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), application.EventPatch{
		Title:                req.Title,
		Description:          req.Description,
		Date:                 date,
		Time:                 req.Time,
		Location:             req.Location,
		Category:             req.Category,
		MaxParticipants:      req.MaxParticipants,
		RegistrationFee:      req.RegistrationFee,
		RegistrationDeadline: deadline,
		Requirements:         req.Requirements,
		Organizer:            req.Organizer,
		ImageURL:             req.Image,
		Status:               req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, e, "event updated successfully", nil)
}

// Delete DELETE /api/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteEvent(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "event deleted successfully", nil)
}

// UploadImage POST /api/events/:id/image (multipart field "image")
func (h *EventHandler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageBytes)
	fh, err := c.FormFile("image")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "image file is required (max 5MB)", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "cannot read image", nil)
		return
	}
	defer func() { _ = f.Close() }()

	e, err := h.Svc.UploadImage(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), fh.Header.Get("Content-Type"), f)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, e, "image uploaded", nil)
}

// Registrations GET /api/events/:id/registrations
func (h *EventHandler) Registrations(c *gin.Context) {
	regs, err := h.Svc.ListEventRegistrations(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, regs, "", map[string]any{"count": len(regs)})
}
