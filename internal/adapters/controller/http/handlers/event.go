package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pubquiz-fans/site/internal/domain/dto"
	"github.com/pubquiz-fans/site/internal/domain/entity"
	"github.com/pubquiz-fans/site/internal/domain/service"
	"github.com/pubquiz-fans/site/pkg/logger/types"
)

type eventService interface {
	Create(ctx context.Context, input dto.EventInput) (*entity.Event, error)
	Get(ctx context.Context, id string) (*entity.Event, error)
	List(ctx context.Context, scope service.EventScope, offset, limit int) ([]entity.Event, error)
	Update(ctx context.Context, id string, input dto.EventInput) (*entity.Event, error)
	Delete(ctx context.Context, id string) error
	Calendar(ctx context.Context) ([]byte, error)
	EventCalendar(ctx context.Context, id string) ([]byte, error)
}

type qrService interface {
	GetEventQR(ctx context.Context, eventID string) ([]byte, error)
}

type EventHandler struct {
	logger  *types.Logger
	service eventService
	qr      qrService
}

func NewEventHandler(logger *types.Logger, service eventService, qr qrService) *EventHandler {
	return &EventHandler{logger: logger, service: service, qr: qr}
}

type eventResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Venue       string `json:"venue"`
	Date        string `json:"date"`
}

func newEventResponse(e *entity.Event) eventResponse {
	return eventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Venue:       e.Venue,
		Date:        e.Date.UTC().Format(timeLayout),
	}
}

// GET /api/events?scope=upcoming|past&page=1&page_size=20
func (h *EventHandler) List(c *gin.Context) {
	scope := service.EventScope(c.DefaultQuery("scope", string(service.EventScopeUpcoming)))
	offset, limit := page(c)

	events, err := h.service.List(c.Request.Context(), scope, offset, limit)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	out := make([]eventResponse, 0, len(events))
	for i := range events {
		out = append(out, newEventResponse(&events[i]))
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	event, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newEventResponse(event))
}

// POST /api/admin/events
func (h *EventHandler) Create(c *gin.Context) {
	var in dto.EventInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	event, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, newEventResponse(event))
}

// PUT /api/admin/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	var in dto.EventInput
	if err = c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	event, err := h.service.Update(c.Request.Context(), id, in)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newEventResponse(event))
}

// DELETE /api/admin/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	if err = h.service.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c)
}

// GET /api/events.ics
func (h *EventHandler) Calendar(c *gin.Context) {
	data, err := h.service.Calendar(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}

// GET /api/events/:id/calendar.ics
func (h *EventHandler) EventCalendar(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	data, err := h.service.EventCalendar(c.Request.Context(), id)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.ics"`, id))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}

// GET /api/events/:id/qr.png
func (h *EventHandler) QR(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	data, err := h.qr.GetEventQR(c.Request.Context(), id)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", data)
}
