package main

import (
	"fmt"
	"log"

	"moodyme/backend/internal/auth"
	"moodyme/backend/internal/database"
	"moodyme/backend/internal/handlers"
	"moodyme/backend/internal/notifications"
	"moodyme/backend/internal/passwordreset"
	"moodyme/backend/internal/router"
	appcfg "moodyme/backend/pkg/config"
	mmlog "moodyme/backend/pkg/log"

	"go.uber.org/zap"
)

func main() {
	cfg := appcfg.Cfg

	mmlog.Init(cfg.LogLevel, cfg.Environment)
	defer mmlog.L.Sync()

	if err := auth.InitializeJWT(); err != nil {
		log.Fatalf("Failed to initialize JWT: %v", err)
	}
	mmlog.L.Info("JWT initialized")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)

	if err := database.ConnectDB(dsn); err != nil {
		mmlog.L.Fatal("Failed to connect to database", zap.Error(err))
	}
	mmlog.L.Info("Database connection established")

	if err := database.MigrateDB(); err != nil {
		mmlog.L.Fatal("Failed to run database migrations", zap.Error(err))
	}

	notifications.InitEmailService()

	db := database.GetDB()
	coordinator := passwordreset.New(
		passwordreset.NewGormUserStore(db),
		passwordreset.NewGormCredentialStore(db),
		&notifications.ResetEmailSender{BaseURL: cfg.AppBaseURL},
		passwordreset.BcryptHasher{},
		cfg.ResetCodeTTL,
		nil,
		mmlog.L.Named("passwordreset"),
	)
	handlers.InitPasswordReset(coordinator)

	r := router.SetupRouter(mmlog.L)

	mmlog.L.Info("Starting server", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		mmlog.L.Fatal("Failed to start server", zap.Error(err))
	}
}
