package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pubquiz-fans/site/internal/domain/dto"
	"github.com/pubquiz-fans/site/internal/domain/entity"
	"github.com/pubquiz-fans/site/pkg/logger/types"
)

type memberService interface {
	Get(ctx context.Context, id string) (*entity.User, error)
	UpdateProfile(ctx context.Context, id string, input dto.ProfileInput) (*entity.User, error)
	Roster(ctx context.Context) ([]dto.Member, error)
	GetAll(ctx context.Context) ([]entity.User, error)
	UpdateMember(ctx context.Context, id string, input dto.MemberUpdate) (*entity.User, error)
	IssueTelegramCode(ctx context.Context, id string) (*dto.TelegramCode, error)
}

type MemberHandler struct {
	logger  *types.Logger
	service memberService
}

func NewMemberHandler(logger *types.Logger, service memberService) *MemberHandler {
	return &MemberHandler{logger: logger, service: service}
}

// profileResponse is the member as seen by themselves or an admin
type profileResponse struct {
	dto.Member
	Email          string `json:"email,omitempty"`
	OnRoster       bool   `json:"onRoster"`
	TelegramLinked bool   `json:"telegramLinked"`
}

func newProfileResponse(u *entity.User) profileResponse {
	return profileResponse{
		Member:         dto.NewMemberFromEntity(*u),
		Email:          u.Email,
		OnRoster:       u.OnRoster,
		TelegramLinked: u.TelegramChatID != 0,
	}
}

// GET /api/members
func (h *MemberHandler) Roster(c *gin.Context) {
	members, err := h.service.Roster(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// GET /api/me
func (h *MemberHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, newProfileResponse(currentUser(c)))
}

// PUT /api/me
func (h *MemberHandler) UpdateMe(c *gin.Context) {
	var in dto.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.service.UpdateProfile(c.Request.Context(), userID(c), in)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newProfileResponse(user))
}

// POST /api/me/telegram-code
func (h *MemberHandler) TelegramCode(c *gin.Context) {
	code, err := h.service.IssueTelegramCode(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, code)
}

// GET /api/admin/members
func (h *MemberHandler) List(c *gin.Context) {
	users, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	out := make([]profileResponse, 0, len(users))
	for i := range users {
		out = append(out, newProfileResponse(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

// PUT /api/admin/members/:id
func (h *MemberHandler) Update(c *gin.Context) {
	var in dto.MemberUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.service.UpdateMember(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newProfileResponse(user))
}
