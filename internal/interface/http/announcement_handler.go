package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/clubevents/internal/interface/middleware"
	"github.com/oksasatya/clubevents/pkg/response"
)

type announcementRequest struct {
	Subject string `json:"subject" binding:"required,max=200"`
	Message string `json:"message" binding:"required,max=5000"`
}

// Announce POST /api/events/:id/announcements
// Enqueues one email per active registration of the event.
func (h *EventHandler) Announce(c *gin.Context) {
	var req announcementRequest
	if !bindJSON(c, &req) {
		return
	}
	n, err := h.Svc.Announce(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req.Subject, req.Message)
	if err != nil {
		if n > 0 && h.Logger != nil {
			h.Logger.WithField("queued", n).Warn("announcement partially enqueued")
		}
		writeError(c, err)
		return
	}
	if h.Svc.Notifier == nil {
		response.Success[any](c, http.StatusAccepted, gin.H{"enqueued": 0, "disabled": true}, "email sending disabled", nil)
		return
	}
	response.Success[any](c, http.StatusAccepted, gin.H{"enqueued": n}, "announcement enqueued", nil)
}
