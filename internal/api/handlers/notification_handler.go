package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stockroomhq/stockroom/backend/internal/models"
	"github.com/stockroomhq/stockroom/backend/internal/services"
)

type NotificationHandler struct {
	service    *services.NotificationService
	navigation *services.NavigationService
	scheduler  *services.Scheduler
}

func NewNotificationHandler(service *services.NotificationService, navigation *services.NavigationService, scheduler *services.Scheduler) *NotificationHandler {
	return &NotificationHandler{service: service, navigation: navigation, scheduler: scheduler}
}

// List returns the grouped, display-ready notification view for the selected
// tab and filters.
func (h *NotificationHandler) List(c *gin.Context) {
	opts := services.ViewOptions{
		Tab:                     services.Tab(c.DefaultQuery("tab", string(services.TabActive))),
		Type:                    models.NotificationType(c.Query("type")),
		Priority:                models.NotificationPriority(c.Query("priority")),
		UnreadCountFilteredOnly: c.Query("unread_scope") == "filtered",
	}
	if opts.Tab != services.TabActive && opts.Tab != services.TabArchived {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tab must be active or archived"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"groups": h.service.View(opts),
		"unread": h.service.UnreadCount(),
	})
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.service.Get(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	if err := h.service.MarkAsRead(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification as read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	if err := h.service.MarkAllAsRead(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark all notifications as read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

// Archive relocates a notification to the archived tab. One-way.
func (h *NotificationHandler) Archive(c *gin.Context) {
	if err := h.service.Archive(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification archived"})
}

// Navigate resolves a notification's deep link and emits the routing
// signals. The destination is returned so the caller can follow it.
func (h *NotificationHandler) Navigate(c *gin.Context) {
	n, ok := h.service.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}

	dest, err := h.navigation.Dispatch(c.Request.Context(), n)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to dispatch navigation"})
		return
	}
	c.JSON(http.StatusOK, dest)
}

// Generate kicks off an on-demand generation cycle.
func (h *NotificationHandler) Generate(c *gin.Context) {
	go h.scheduler.GenerateNow()
	c.JSON(http.StatusAccepted, gin.H{"message": "Generation started"})
}
