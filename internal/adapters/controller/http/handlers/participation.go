package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pubquiz-fans/site/internal/domain/dto"
	"github.com/pubquiz-fans/site/internal/domain/entity"
	"github.com/pubquiz-fans/site/pkg/logger/types"
)

type participationService interface {
	SetParticipation(ctx context.Context, eventID, userID string, status entity.ParticipationStatus, note *string) error
	Lineup(ctx context.Context, eventID string) (*dto.Lineup, error)
	Get(ctx context.Context, eventID, userID string) (*entity.EventParticipant, error)
	ExportLineupXLSX(ctx context.Context, eventID string) (*bytes.Buffer, error)
}

type ParticipationHandler struct {
	logger  *types.Logger
	service participationService
}

func NewParticipationHandler(logger *types.Logger, service participationService) *ParticipationHandler {
	return &ParticipationHandler{logger: logger, service: service}
}

// PUT /api/events/:id/participation
func (h *ParticipationHandler) Set(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	var in struct {
		Status string  `json:"status" binding:"required,rsvp"`
		Note   *string `json:"note" binding:"omitempty,max=280"`
	}
	if err = c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	err = h.service.SetParticipation(c.Request.Context(), id, userID(c), entity.ParticipationStatus(in.Status), in.Note)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c)
}

// GET /api/events/:id/participation
func (h *ParticipationHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	p, err := h.service.Get(c.Request.Context(), id, userID(c))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewLineupEntry(*p))
}

// GET /api/events/:id/lineup
func (h *ParticipationHandler) Lineup(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	lineup, err := h.service.Lineup(c.Request.Context(), id)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, lineup)
}

// GET /api/admin/events/:id/lineup.xlsx
func (h *ParticipationHandler) ExportXLSX(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	buf, err := h.service.ExportLineupXLSX(c.Request.Context(), id)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="lineup-%s.xlsx"`, id))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
