// Команда create-admin создаёт администратора или выдаёт роль admin существующему пользователю.
//
//	create-admin -email owner@example.com -password 'secret123'
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/portfolio-backend/internal/config"
	"github.com/ignatzorin/portfolio-backend/internal/db"
	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/repository"
	"github.com/ignatzorin/portfolio-backend/internal/service"
)

func main() {
	email := flag.String("email", "", "email администратора")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "пароль; для существующего пользователя можно не указывать")
	flag.Parse()

	logger.Init("info")
	lg := logger.L()

	if *email == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		lg.Fatalf("create-admin: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		lg.Fatalf("create-admin: %v", err)
	}
	defer conn.Close()

	if err := db.RunMigrations(ctx, conn); err != nil {
		lg.Fatalf("create-admin: %v", err)
	}

	auth := service.NewAuthService(repository.NewUserRepository(conn), service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL))
	profile, created, err := auth.CreateOrPromoteAdmin(ctx, dto.Credentials{Email: *email, Password: *password})
	if err != nil {
		lg.Fatalf("create-admin: %v", err)
	}

	lg.WithFields(logrus.Fields{
		"user_id": profile.ID,
		"email":   profile.Email,
		"created": created,
	}).Info("create-admin: пользователь получил роль admin")
}
