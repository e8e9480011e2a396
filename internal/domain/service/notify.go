package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/pubquiz-fans/site/internal/domain/common/errorz"
	"github.com/pubquiz-fans/site/internal/domain/dto"
	"github.com/pubquiz-fans/site/internal/domain/entity"
	"github.com/pubquiz-fans/site/internal/domain/utils/location"
	"github.com/pubquiz-fans/site/pkg/logger/types"
	"github.com/pubquiz-fans/site/pkg/smtp"
	"go.uber.org/zap/zapcore"
	tele "gopkg.in/telebot.v3"
)

type telegramSender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

type promotionMailer interface {
	SendPromotionEmail(p smtp.Promotion) error
}

type notifyUserStorage interface {
	Get(ctx context.Context, id string) (*entity.User, error)
}

type notifyEventStorage interface {
	Get(ctx context.Context, id string) (*entity.Event, error)
}

// ErrDeliveryRetry marks delivery failures worth another attempt.
var ErrDeliveryRetry = errors.New("promotion delivery should be retried")

// NotifyService delivers promotions outside the site, over Telegram and email.
type NotifyService struct {
	logger       *types.Logger
	userStorage  notifyUserStorage
	eventStorage notifyEventStorage

	bot    telegramSender
	mailer promotionMailer

	baseURL  string
	siteName string
}

// NewNotifyService creates the service. bot and mailer may be nil when the channel is disabled.
func NewNotifyService(
	logger *types.Logger,
	userStorage notifyUserStorage,
	eventStorage notifyEventStorage,
	bot telegramSender,
	mailer promotionMailer,
	baseURL, siteName string,
) *NotifyService {
	return &NotifyService{
		logger:       logger,
		userStorage:  userStorage,
		eventStorage: eventStorage,
		bot:          bot,
		mailer:       mailer,
		baseURL:      baseURL,
		siteName:     siteName,
	}
}

// LogHook returns a log hook that forwards entries of at least level to a Telegram channel.
func (s *NotifyService) LogHook(channelID int64, level zapcore.Level) (types.LogHook, error) {
	if s.bot == nil {
		return nil, errors.New("telegram bot is disabled")
	}
	chat := tele.ChatID(channelID)
	return func(log types.Log) {
		if log.Level < level {
			return
		}
		text := fmt.Sprintf("<b>%s</b> %s\n<code>%s</code>\n%s",
			log.Level.CapitalString(),
			html.EscapeString(log.LoggerName),
			html.EscapeString(log.Caller),
			html.EscapeString(log.Message),
		)
		_, err := s.bot.Send(chat, text, tele.ModeHTML)
		if err != nil && !strings.Contains(log.Message, "failed to send log to channel") {
			s.logger.Errorf("failed to send log to channel %d: %v", channelID, err)
		}
	}, nil
}

// DeliverPromotion tells the promoted member about their seat on every channel they can be reached on.
//
// Lookup failures are wrapped in ErrDeliveryRetry. A member or event that no longer exists
// yields errorz.ErrNotFound. Send failures are logged only, so a member is never messaged twice.
func (s *NotifyService) DeliverPromotion(ctx context.Context, p dto.Promotion) error {
	user, err := s.userStorage.Get(ctx, p.UserID)
	if err != nil {
		return lookupError(err)
	}
	event, err := s.eventStorage.Get(ctx, p.EventID)
	if err != nil {
		return lookupError(err)
	}

	if s.bot != nil && user.TelegramChatID != 0 {
		text := fmt.Sprintf(
			"🎉 A seat opened up! You are now in the line-up for <b>%s</b> on %s at %s.\n\n<a href=\"%s\">Open the event</a>",
			html.EscapeString(event.Title),
			event.Date.In(location.Location()).Format("Mon 2 Jan, 15:04"),
			html.EscapeString(event.Venue),
			event.Link(s.baseURL),
		)
		if _, err = s.bot.Send(tele.ChatID(user.TelegramChatID), text, tele.ModeHTML, tele.NoPreview); err != nil {
			s.logger.Errorf("(user: %s) failed to send promotion to telegram (event_id=%s): %v", user.ID, event.ID, err)
		} else {
			s.logger.Infof("(user: %s) promotion sent to telegram (event_id=%s)", user.ID, event.ID)
		}
	}

	if s.mailer != nil && user.Email != "" {
		err = s.mailer.SendPromotionEmail(smtp.Promotion{
			To:          user.Email,
			DisplayName: user.DisplayName,
			EventTitle:  event.Title,
			EventDate:   event.Date.In(location.Location()),
			Venue:       event.Venue,
			EventLink:   event.Link(s.baseURL),
			SiteName:    s.siteName,
		})
		if err != nil {
			s.logger.Errorf("(user: %s) failed to send promotion email (event_id=%s): %v", user.ID, event.ID, err)
		} else {
			s.logger.Infof("(user: %s) promotion email sent (event_id=%s)", user.ID, event.ID)
		}
	}
	return nil
}

func lookupError(err error) error {
	if err = notFound(err); errors.Is(err, errorz.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrDeliveryRetry, err)
}
