package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"storyhub/backend/internal/config"
	"storyhub/backend/internal/httpserver"
	"storyhub/backend/internal/infrastructure/completion"
	"storyhub/backend/internal/infrastructure/hash"
	"storyhub/backend/internal/infrastructure/postgres"
	"storyhub/backend/internal/infrastructure/token"
	authusecase "storyhub/backend/internal/usecase/auth"
	storyusecase "storyhub/backend/internal/usecase/story"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	rootCtx := context.Background()
	db, err := postgres.New(rootCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Migrate(rootCtx); err != nil {
		log.Fatalf("failed to run database migrations: %v", err)
	}

	tokenManager := token.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry, cfg.JWTIssuer)
	hasher := hash.NewBcrypt(cfg.BcryptCost)
	completer := completion.NewClient(completion.Config{
		BaseURL: cfg.Completion.BaseURL,
		Model:   cfg.Completion.Model,
		APIKey:  cfg.Completion.APIKey,
		Timeout: cfg.Completion.Timeout,
	})

	userRepo := postgres.NewUserRepository(db.Pool)
	authService := authusecase.NewService(userRepo, tokenManager, hasher)
	resolver := authusecase.NewResolver(tokenManager, userRepo)
	storyService := storyusecase.NewService(postgres.NewStoryRepository(db.Pool), completer)

	server := httpserver.NewServer(cfg, authService, resolver, storyService)
	log.Printf("HTTP server listening on %s", server.Addr())

	go func() {
		if err := server.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Printf("HTTP server closed: %v", err)
				return
			}
			log.Fatalf("server error: %v", err)
		}
	}()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	} else {
		log.Printf("graceful shutdown completed")
	}
}
