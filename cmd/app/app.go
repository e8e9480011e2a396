package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/pubquiz-fans/site/internal/adapters/config"
	httpSetup "github.com/pubquiz-fans/site/internal/adapters/controller/http/setup"
	botSetup "github.com/pubquiz-fans/site/internal/adapters/controller/telegram/setup"
	"github.com/pubquiz-fans/site/internal/adapters/controller/worker"
	"github.com/pubquiz-fans/site/internal/adapters/database/postgres"
	"github.com/pubquiz-fans/site/internal/domain/service"
	"github.com/pubquiz-fans/site/internal/domain/utils/calendar"
	"github.com/pubquiz-fans/site/pkg/logger"
	"github.com/pubquiz-fans/site/pkg/logger/types"
	qr "github.com/pubquiz-fans/site/pkg/qrcode"
	"github.com/pubquiz-fans/site/pkg/smtp"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	tele "gopkg.in/telebot.v3"
)

type telegramSender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

type promotionMailer interface {
	SendPromotionEmail(p smtp.Promotion) error
}

type promotionPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type App struct {
	cfg    *config.Config
	logger *types.Logger

	server *http.Server
	bot    *tele.Bot // nil when bot.token is empty
	worker *worker.Promotions
}

func New(cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg, logger: logger.Log}

	var sender telegramSender
	if token := viper.GetString("bot.token"); token != "" {
		botLogger, err := logger.Named("bot")
		if err != nil {
			return nil, err
		}
		a.bot, err = tele.NewBot(tele.Settings{
			Token:  token,
			Poller: &tele.LongPoller{Timeout: 10 * time.Second},
			OnError: func(err error, c tele.Context) {
				if c != nil && c.Chat() != nil {
					botLogger.Errorf("(chat: %d) | Error: %v", c.Chat().ID, err)
					return
				}
				botLogger.Errorf("Error: %v", err)
			},
		})
		if err != nil {
			return nil, err
		}
		sender = a.bot
	} else {
		a.logger.Warn("Bot token is empty, telegram is disabled")
	}

	var mailer promotionMailer
	if cfg.SMTPDialer != nil {
		mailer = smtp.NewClient(cfg.SMTPDialer, viper.GetString("service.smtp.email"), viper.GetString("service.smtp.domain"))
	}

	var publisher promotionPublisher
	if cfg.Publisher != nil {
		publisher = cfg.Publisher
	}

	named := func(name string) *types.Logger {
		l, err := logger.Named(name)
		if err != nil {
			return a.logger
		}
		return l
	}

	baseURL := viper.GetString("settings.site.base-url")
	siteName := viper.GetString("settings.site.name")

	userStorage := postgres.NewUserStorage(cfg.Database)
	eventStorage := postgres.NewEventStorage(cfg.Database)

	users := service.NewUserService(named("users"), userStorage, cfg.Redis.Codes, viper.GetString("bot.username"))
	events := service.NewEventService(named("events"), eventStorage, calendar.Options{
		SiteName: siteName,
		Domain:   viper.GetString("service.smtp.domain"),
		BaseURL:  baseURL,
	})
	notifications := service.NewNotificationService(named("notifications"), postgres.NewNotificationStorage(cfg.Database))
	participation := service.NewParticipationService(
		named("participation"),
		postgres.NewEventParticipantStorage(cfg.Database),
		eventStorage,
		notifications,
		publisher,
		viper.GetInt("settings.events.max-participants"),
	)
	notify := service.NewNotifyService(named("notify"), userStorage, eventStorage, sender, mailer, baseURL, siteName)

	qrConfig := qr.Default
	if path := viper.GetString("settings.site.logo-path"); path != "" {
		qrConfig = qrConfig.WithLogo(path)
	}

	sqlDB, err := cfg.Database.DB()
	if err != nil {
		return nil, err
	}
	handler, err := httpSetup.Setup(named("http"), sqlDB, httpSetup.Services{
		Events:        events,
		Participation: participation,
		Notifications: notifications,
		Users:         users,
		Posts:         service.NewPostService(named("posts"), postgres.NewPostStorage(cfg.Database), postgres.NewCommentStorage(cfg.Database)),
		Results:       service.NewResultService(postgres.NewResultStorage(cfg.Database)),
		Albums:        service.NewAlbumService(postgres.NewAlbumStorage(cfg.Database)),
		QR:            service.NewQrService(events, qrConfig, baseURL),
	}, httpSetup.Options{
		Debug:          viper.GetBool("settings.debug"),
		JWTSecret:      []byte(viper.GetString("settings.auth.jwt-secret")),
		AllowedOrigins: viper.GetStringSlice("settings.http.allowed-origins"),
	})
	if err != nil {
		return nil, err
	}
	a.server = &http.Server{
		Addr:              viper.GetString("settings.http.addr"),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if a.bot != nil {
		err = botSetup.Setup(a.bot, named("bot"), users, botSetup.Options{
			Debug:   viper.GetBool("settings.debug"),
			SiteURL: baseURL,
		})
		if err != nil {
			return nil, err
		}

		if viper.GetBool("settings.logging.log-to-channel") {
			logHook, err := notify.LogHook(
				viper.GetInt64("settings.logging.channel-id"),
				zapcore.Level(viper.GetInt("settings.logging.channel-log-level")),
			)
			if err != nil {
				a.logger.Errorf("Failed to create notify log hook: %v", err)
			} else {
				logger.SetLogHook(logHook)
			}
		}
	}

	if cfg.Consumer != nil {
		a.worker = worker.NewPromotions(named("worker"), notify)
	}

	return a, nil
}

// Run serves until SIGINT or SIGTERM and then shuts every component down.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	errs := make(chan error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.logger.Infof("HTTP server listening on %s", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	if a.bot != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.logger.Info("Bot starting")
			a.bot.Start()
		}()
	}

	if a.worker != nil {
		deliveries, err := a.cfg.Consumer.Deliveries(ctx)
		if err != nil {
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.worker.Run(ctx, deliveries)
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down")
	case runErr = <-errs:
		a.logger.Errorf("HTTP server failed: %v", runErr)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Errorf("Failed to shut down HTTP server: %v", err)
	}
	if a.bot != nil {
		a.bot.Stop()
	}
	wg.Wait()

	a.close(shutdownCtx)
	return runErr
}

func (a *App) close(ctx context.Context) {
	if a.cfg.Consumer != nil {
		if err := a.cfg.Consumer.Close(); err != nil {
			a.logger.Errorf("Failed to close consumer: %v", err)
		}
	}
	if a.cfg.Publisher != nil {
		if err := a.cfg.Publisher.Close(); err != nil {
			a.logger.Errorf("Failed to close publisher: %v", err)
		}
	}
	if err := a.cfg.Redis.Close(); err != nil {
		a.logger.Errorf("Failed to close redis: %v", err)
	}
	if sqlDB, err := a.cfg.Database.DB(); err == nil {
		if err = sqlDB.Close(); err != nil {
			a.logger.Errorf("Failed to close database: %v", err)
		}
	}
	if err := a.cfg.ShutdownTracing(ctx); err != nil {
		a.logger.Errorf("Failed to flush traces: %v", err)
	}
	_ = a.logger.Sync()
}
