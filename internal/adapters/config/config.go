package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	postgresStorage "github.com/pubquiz-fans/site/internal/adapters/database/postgres"
	"github.com/pubquiz-fans/site/internal/adapters/database/redis"
	"github.com/pubquiz-fans/site/internal/domain/dto"
	"github.com/pubquiz-fans/site/internal/domain/utils/location"
	"github.com/pubquiz-fans/site/pkg/logger"
	"github.com/pubquiz-fans/site/pkg/mq"
	"github.com/pubquiz-fans/site/pkg/obs"
	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Version is set at build time with -ldflags "-X .../config.Version=..."
var Version = "dev"

type Config struct {
	Database   *gorm.DB
	Redis      *redis.Client
	SMTPDialer *gomail.Dialer // nil when email is disabled
	Publisher  *mq.Publisher  // nil when the broker is disabled
	Consumer   *mq.Consumer   // nil when the broker is disabled

	ShutdownTracing func(context.Context) error
}

func setDefaults() {
	viper.SetDefault("settings.debug", false)
	viper.SetDefault("settings.timezone", "Europe/Amsterdam")
	viper.SetDefault("settings.logs-dir", "logs")
	viper.SetDefault("settings.events.max-participants", 8)
	viper.SetDefault("settings.http.addr", ":8080")
	viper.SetDefault("settings.http.allowed-origins", []string{"http://localhost:3000"})
	viper.SetDefault("settings.site.name", "Quiz Team")
	viper.SetDefault("settings.logging.channel-log-level", 2)
	viper.SetDefault("settings.tracing.endpoint", "localhost:4317")
	viper.SetDefault("service.database.port", 5432)
	viper.SetDefault("service.database.sslmode", "disable")
	viper.SetDefault("service.redis.port", "6379")
	viper.SetDefault("service.rabbitmq.exchange", "quiz.events")
	viper.SetDefault("service.rabbitmq.queue", "quiz.promotions")
	viper.SetDefault("service.smtp.port", 587)
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		panic(err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(err)
		}
	}
}

func Get() *Config {
	initConfig()

	if err := location.Set(viper.GetString("settings.timezone")); err != nil {
		panic(err)
	}

	err := logger.Init(logger.Config{
		Debug:        viper.GetBool("settings.debug"),
		TimeLocation: location.Location(),
		LogToFile:    viper.GetBool("settings.log-to-file"),
		LogsDir:      viper.GetString("settings.logs-dir"),
	})
	if err != nil {
		panic(err)
	}

	gormConfig := &gorm.Config{}
	if viper.GetBool("settings.debug") {
		gormConfig.Logger = gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				SlowThreshold: time.Second,
				LogLevel:      gormLogger.Info,
				Colorful:      true,
			},
		)
	}

	dsn := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%d sslmode=%s TimeZone=UTC",
		viper.GetString("service.database.user"),
		viper.GetString("service.database.password"),
		viper.GetString("service.database.name"),
		viper.GetString("service.database.host"),
		viper.GetInt("service.database.port"),
		viper.GetString("service.database.sslmode"),
	)

	database, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		logger.Log.Panicf("Failed to connect to the database: %v", err)
	} else {
		logger.Log.Info("Successfully connected to the database")
	}

	if err = database.AutoMigrate(postgresStorage.Migrations...); err != nil {
		logger.Log.Panicf("Failed to migrate database: %v", err)
	}

	redisClient, err := redis.New(redis.Options{
		Host:     viper.GetString("service.redis.host"),
		Port:     viper.GetString("service.redis.port"),
		Password: viper.GetString("service.redis.password"),
	})
	if err != nil {
		logger.Log.Panicf("Failed to connect to redis: %v", err)
	} else {
		logger.Log.Info("Successfully connected to redis")
	}

	cfg := &Config{
		Database: database,
		Redis:    redisClient,
		ShutdownTracing: func(context.Context) error {
			return nil
		},
	}

	if host := viper.GetString("service.smtp.host"); host != "" {
		cfg.SMTPDialer = gomail.NewDialer(
			host,
			viper.GetInt("service.smtp.port"),
			viper.GetString("service.smtp.email"),
			viper.GetString("service.smtp.password"),
		)
	} else {
		logger.Log.Warn("SMTP host is empty, promotion emails are disabled")
	}

	if url := viper.GetString("service.rabbitmq.url"); url != "" {
		exchange := viper.GetString("service.rabbitmq.exchange")
		cfg.Publisher, err = mq.NewPublisher(url, exchange)
		if err != nil {
			logger.Log.Panicf("Failed to connect publisher to rabbitmq: %v", err)
		}
		cfg.Consumer, err = mq.NewConsumer(url, exchange, viper.GetString("service.rabbitmq.queue"), []string{dto.PromotionRoutingKey}, 16)
		if err != nil {
			logger.Log.Panicf("Failed to connect consumer to rabbitmq: %v", err)
		}
		logger.Log.Info("Successfully connected to rabbitmq")
	} else {
		logger.Log.Warn("RabbitMQ url is empty, promotions are only stored in the inbox")
	}

	if viper.GetBool("settings.tracing.enabled") {
		cfg.ShutdownTracing, err = obs.InitTracer(context.Background(), obs.Options{
			ServiceName: "quiz-site",
			Version:     Version,
			Environment: viper.GetString("settings.environment"),
			Endpoint:    viper.GetString("settings.tracing.endpoint"),
		})
		if err != nil {
			logger.Log.Panicf("Failed to init tracing: %v", err)
		}
		logger.Log.Infof("Tracing to %s", viper.GetString("settings.tracing.endpoint"))
	}

	return cfg
}
