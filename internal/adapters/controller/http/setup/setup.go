package setup

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/pubquiz-fans/site/internal/adapters/controller/http/handlers"
	"github.com/pubquiz-fans/site/internal/adapters/controller/http/middlewares"
	"github.com/pubquiz-fans/site/internal/domain/entity"
	"github.com/pubquiz-fans/site/internal/domain/service"
	customValidator "github.com/pubquiz-fans/site/internal/domain/utils/validator"
	"github.com/pubquiz-fans/site/pkg/logger/types"
	"github.com/rs/cors"
)

// Services are the domain services exposed over HTTP.
type Services struct {
	Events        *service.EventService
	Participation *service.ParticipationService
	Notifications *service.NotificationService
	Users         *service.UserService
	Posts         *service.PostService
	Results       *service.ResultService
	Albums        *service.AlbumService
	QR            *service.QrService
}

type Options struct {
	Debug          bool
	JWTSecret      []byte
	AllowedOrigins []string
}

// Setup builds the gin engine with every route of the site API.
func Setup(logger *types.Logger, db handlers.Pinger, s Services, opts Options) (http.Handler, error) {
	if !opts.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	if err := customValidator.Register(v); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middlewares.Logger(logger))

	eventHandler := handlers.NewEventHandler(logger, s.Events, s.QR)
	participationHandler := handlers.NewParticipationHandler(logger, s.Participation)
	notificationHandler := handlers.NewNotificationHandler(logger, s.Notifications)
	memberHandler := handlers.NewMemberHandler(logger, s.Users)
	contentHandler := handlers.NewContentHandler(logger, s.Posts, s.Results, s.Albums)

	r.GET("/healthz", handlers.Health(db))

	api := r.Group("/api")
	api.GET("/events", eventHandler.List)
	api.GET("/events.ics", eventHandler.Calendar)
	api.GET("/events/:id", eventHandler.Get)
	api.GET("/events/:id/lineup", participationHandler.Lineup)
	api.GET("/events/:id/calendar.ics", eventHandler.EventCalendar)
	api.GET("/events/:id/qr.png", eventHandler.QR)
	api.GET("/posts", contentHandler.ListPosts)
	api.GET("/posts/:slug", contentHandler.GetPost)
	api.GET("/posts/:slug/comments", contentHandler.ListComments)
	api.GET("/results", contentHandler.ListResults)
	api.GET("/albums", contentHandler.ListAlbums)
	api.GET("/albums/:id", contentHandler.GetAlbum)
	api.GET("/members", memberHandler.Roster)

	member := api.Group("", middlewares.JWTAuth(opts.JWTSecret), middlewares.Member(logger, s.Users))
	member.PUT("/events/:id/participation", participationHandler.Set)
	member.GET("/events/:id/participation", participationHandler.Get)
	member.GET("/me", memberHandler.Me)
	member.PUT("/me", memberHandler.UpdateMe)
	member.POST("/me/telegram-code", memberHandler.TelegramCode)
	member.GET("/notifications", notificationHandler.List)
	member.GET("/notifications/unread-count", notificationHandler.UnreadCount)
	member.POST("/notifications/read-all", notificationHandler.MarkAllRead)
	member.POST("/notifications/:id/read", notificationHandler.MarkRead)
	member.POST("/posts/:slug/comments", contentHandler.AddComment)
	member.DELETE("/comments/:id", contentHandler.DeleteComment)

	admin := member.Group("/admin", middlewares.RequireRole(string(entity.RoleAdmin)))
	admin.POST("/events", eventHandler.Create)
	admin.PUT("/events/:id", eventHandler.Update)
	admin.DELETE("/events/:id", eventHandler.Delete)
	admin.GET("/events/:id/lineup.xlsx", participationHandler.ExportXLSX)
	admin.POST("/posts", contentHandler.CreatePost)
	admin.PUT("/posts/:id", contentHandler.UpdatePost)
	admin.DELETE("/posts/:id", contentHandler.DeletePost)
	admin.POST("/results", contentHandler.CreateResult)
	admin.PUT("/results/:id", contentHandler.UpdateResult)
	admin.DELETE("/results/:id", contentHandler.DeleteResult)
	admin.POST("/albums", contentHandler.CreateAlbum)
	admin.PUT("/albums/:id", contentHandler.UpdateAlbum)
	admin.DELETE("/albums/:id", contentHandler.DeleteAlbum)
	admin.GET("/members", memberHandler.List)
	admin.PUT("/members/:id", memberHandler.Update)

	c := cors.New(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	return c.Handler(r), nil
}
