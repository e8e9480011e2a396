package start

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/pubquiz-fans/site/internal/domain/common/errorz"
	"github.com/pubquiz-fans/site/internal/domain/entity"
	"github.com/pubquiz-fans/site/pkg/logger/types"
	tele "gopkg.in/telebot.v3"
)

const (
	textWelcome = "Hi! I let you know when a seat opens up for you at quiz night.\n\n" +
		"Open your profile on %s, press <b>Link Telegram</b> and follow the link back here."
	textLinked          = "✅ Linked to <b>%s</b>. You will get a message here when you move into the line-up."
	textInvalidCode     = "This code is invalid or has expired. Request a new one on your profile page."
	textTechnicalIssues = "Something went wrong on our side, please try again in a minute."
)

type userService interface {
	LinkTelegram(ctx context.Context, code string, chatID int64) (*entity.User, error)
}

type Handler struct {
	userService userService
	logger      *types.Logger
	siteURL     string
}

func New(logger *types.Logger, userService userService, siteURL string) *Handler {
	return &Handler{
		userService: userService,
		logger:      logger,
		siteURL:     siteURL,
	}
}

// Start handles /start and /start <code>, where code links the chat to a site member.
func (h *Handler) Start(c tele.Context) error {
	code := strings.TrimSpace(c.Message().Payload)
	if code == "" {
		h.logger.Infof("(chat: %d) press start button", c.Chat().ID)
		return c.Send(fmt.Sprintf(textWelcome, html.EscapeString(h.siteURL)), tele.ModeHTML, tele.NoPreview)
	}

	user, err := h.userService.LinkTelegram(context.Background(), code, c.Chat().ID)
	switch {
	case errors.Is(err, errorz.ErrInvalidCode), errors.Is(err, errorz.ErrNotFound):
		h.logger.Infof("(chat: %d) tried to link with an invalid code", c.Chat().ID)
		return c.Send(textInvalidCode)
	case err != nil:
		h.logger.Errorf("(chat: %d) failed to link telegram: %v", c.Chat().ID, err)
		return c.Send(textTechnicalIssues)
	}

	return c.Send(fmt.Sprintf(textLinked, html.EscapeString(user.DisplayName)), tele.ModeHTML)
}
