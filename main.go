// @title Hoagie Hub API
// @version 1.0
// @description Users, hoagies and comments with cached comment counts.
// @host localhost:3000
// @BasePath /v1

package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "hoagiehub/docs"

	"hoagiehub/bootstrap"
	"hoagiehub/config"
	"hoagiehub/database"
	"hoagiehub/internal/auth"
	"hoagiehub/internal/repository"
	"hoagiehub/internal/routes"
	"hoagiehub/internal/services"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// Load configuration
	cfg := config.LoadConfig()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// Connect to the database
	ctx := context.Background()
	client, err := database.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("connect mongo: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDB)

	if err := bootstrap.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("ensure indexes failed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	hoagieRepo := repository.NewHoagieRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	userSvc := services.NewUserService(userRepo, tokens)
	hoagieSvc := services.NewHoagieService(hoagieRepo, userRepo, commentRepo)
	commentSvc := services.NewCommentService(commentRepo, hoagieRepo, userRepo, hoagieSvc)

	app := routes.NewApp(routes.Deps{
		Config:   cfg,
		Users:    userSvc,
		Hoagies:  hoagieSvc,
		Comments: commentSvc,
		Tokens:   tokens,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			slog.Error("shutdown", "error", err)
		}
	}()

	// RUN SERVER
	slog.Info("listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
