package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"event_planner/config"
	"event_planner/database"
	"event_planner/handler"
	"event_planner/helper"
	"event_planner/jobs"
	"event_planner/realtime"
	"event_planner/repository"
	"event_planner/router"
	"event_planner/service"
	"event_planner/service/ports"
	"event_planner/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

func newLogger(level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	var log zerolog.Logger
	if pretty {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		log = zerolog.New(os.Stderr)
	}
	return log.Level(lvl).With().Timestamp().Logger()
}

func main() {
	settings, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("load config")
	}
	log := newLogger(settings.LogLevel, settings.Env == "development")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.ConnectDB(settings.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	database.SeedData(db, settings.Seed, log)

	var broker realtime.Broker = realtime.NewMemoryBroker()
	if settings.Redis.Addr != "" {
		rb, err := realtime.NewRedisBroker(ctx, settings.Redis.Addr, settings.Redis.Password, settings.Redis.DB, log)
		if err != nil {
			log.Fatal().Err(err).Msg("redis")
		}
		broker = rb
	}
	defer broker.Close()

	var mailer ports.Mailer = utils.NewLogMailer(log)
	if settings.SMTP.Enabled() {
		mailer = utils.NewSMTPMailer(settings.SMTP)
	}

	var uploader ports.Uploader = helper.DisabledUploader{}
	if settings.Cloud.CloudName != "" {
		cu, err := helper.NewCloudinaryUploader(settings.Cloud.CloudName, settings.Cloud.APIKey, settings.Cloud.APISecret)
		if err != nil {
			log.Fatal().Err(err).Msg("cloudinary")
		}
		uploader = cu
	}

	users := repository.NewUserRepo(db)
	eventRepo := repository.NewEventRepo(db)
	tokens := helper.NewTokenIssuer(settings.JWT.Secret, settings.JWT.AccessTTL, settings.JWT.RefreshTTL)

	notifications := service.NewNotificationService(repository.NewNotificationRepo(db), broker, log)
	auth := service.NewAuthService(users, repository.NewResetCodeRepo(db), tokens, mailer, broker, log)
	events := service.NewEventService(eventRepo, notifications, log)
	guests := service.NewGuestService(repository.NewGuestRepo(db), eventRepo, mailer, settings.AppURL, log)
	gallery := service.NewGalleryService(repository.NewGalleryRepo(db), uploader, settings.Cloud.Folder, log)
	chat := service.NewChatService(repository.NewMessageRepo(db), users, notifications, broker, log)
	stats := service.NewStatsService(repository.NewStatsRepo(db))

	loc, err := time.LoadLocation(settings.Schedule.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("tz", settings.Schedule.Timezone).Msg("unknown timezone, using UTC")
		loc = time.UTC
	}
	reminders := jobs.NewReminderJob(events, settings.Schedule.ReminderDays, loc, log)
	if err := reminders.Start(); err != nil {
		log.Fatal().Err(err).Msg("reminder job")
	}
	cleanup := jobs.NewCleanupJob(auth, log)
	if err := cleanup.Start(); err != nil {
		log.Fatal().Err(err).Msg("cleanup job")
	}

	app := fiber.New(fiber.Config{
		AppName:   settings.AppName,
		BodyLimit: settings.BodyLimitMB * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     settings.CorsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie, Content-Disposition",
		MaxAge:           600,
	}))

	h := handler.New(handler.Deps{
		Auth:          auth,
		Events:        events,
		Guests:        guests,
		Gallery:       gallery,
		Chat:          chat,
		Notifications: notifications,
		Stats:         stats,
		Broker:        broker,
		Log:           log,
		SecureCookies: settings.Env != "development",
	})
	router.SetupRoutes(app, h, auth)

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("http shutdown")
		}
	}()

	log.Info().Str("port", settings.Port).Msg("listening")
	if err := app.Listen(":" + settings.Port); err != nil {
		log.Error().Err(err).Msg("listen")
	}

	cleanup.Stop()
	if err := reminders.Stop(); err != nil {
		log.Error().Err(err).Msg("stop reminders")
	}
	guests.WaitInvitations()
}
