package setup

import (
	"github.com/pubquiz-fans/site/internal/adapters/controller/telegram/handlers/start"
	"github.com/pubquiz-fans/site/internal/domain/service"
	"github.com/pubquiz-fans/site/pkg/logger/types"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/middleware"
)

type Options struct {
	Debug   bool
	SiteURL string
}

// Setup registers the bot commands. The bot only links chats to site members.
func Setup(b *tele.Bot, logger *types.Logger, users *service.UserService, opts Options) error {
	if opts.Debug {
		b.Use(middleware.Logger())
	}
	b.Use(middleware.AutoRespond())

	startHandler := start.New(logger, users, opts.SiteURL)
	b.Handle("/start", startHandler.Start)

	return b.SetCommands([]tele.Command{
		{Text: "start", Description: "Link your quiz account"},
	})
}
