package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pubquiz-fans/site/internal/domain/common/errorz"
	"github.com/pubquiz-fans/site/internal/domain/entity"
	"github.com/pubquiz-fans/site/pkg/logger/types"
)

type notificationService interface {
	List(ctx context.Context, userID string, limit int) ([]entity.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, notificationID, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type NotificationHandler struct {
	logger  *types.Logger
	service notificationService
}

func NewNotificationHandler(logger *types.Logger, service notificationService) *NotificationHandler {
	return &NotificationHandler{logger: logger, service: service}
}

type notificationResponse struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"`
	EventID    string  `json:"eventId"`
	EventTitle string  `json:"eventTitle"`
	ReadAt     *string `json:"readAt"`
	CreatedAt  string  `json:"createdAt"`
}

func newNotificationResponse(n entity.Notification) notificationResponse {
	resp := notificationResponse{
		ID:         n.ID,
		Type:       string(n.Type),
		EventID:    n.EventID,
		EventTitle: n.EventTitle,
		CreatedAt:  n.CreatedAt.UTC().Format(timeLayout),
	}
	if n.ReadAt != nil {
		readAt := n.ReadAt.UTC().Format(timeLayout)
		resp.ReadAt = &readAt
	}
	return resp
}

// GET /api/notifications?limit=50
func (h *NotificationHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.service.List(c.Request.Context(), userID(c), limit)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	out := make([]notificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, newNotificationResponse(n))
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.service.UnreadCount(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// POST /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, h.logger, errorz.ErrNotFound)
		return
	}
	if err = h.service.MarkRead(c.Request.Context(), id, userID(c)); err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c)
}

// POST /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.service.MarkAllRead(c.Request.Context(), userID(c)); err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c)
}
