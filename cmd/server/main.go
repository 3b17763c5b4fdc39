package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"algoclub/internal/api"
	"algoclub/internal/app/service"
	"algoclub/internal/common/security"
	"algoclub/internal/domain/repository"
	"algoclub/internal/platform/cache"
	"algoclub/internal/platform/config"
	"algoclub/internal/platform/docstore"
)

func main() {
	// 1. Load Configuration
	config.Load()
	log.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	log.Println("JWT initialized.")

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 3. Connect to the document store
	ctx := context.Background()
	store, err := docstore.Connect(ctx, config.AppConfig.GoogleProjectID)
	if err != nil {
		log.Fatalf("Could not connect to document store: %v", err)
	}
	defer store.Close()
	log.Println("Document store connected.")

	// 4. Connect the ranking cache (optional)
	cache.ConnectRedis()
	defer cache.CloseRedis()

	// 5. Initialize Repositories
	questionRepo := repository.NewQuestionRepository(store, logger)
	commentRepo := repository.NewCommentRepository(store, logger)
	rankingRepo := repository.NewRankingRepository(store, logger)
	memberRepo := repository.NewMemberRepository(store, logger)

	// 6. Initialize Services
	verifier := service.NewGoogleTokenVerifier(config.AppConfig.GoogleClientID)
	authService := service.NewAuthService(verifier, memberRepo)
	boardService := service.NewBoardService(questionRepo, commentRepo)
	rankingService := service.NewRankingService(rankingRepo, cache.RDB, config.AppConfig.RankingCacheTTL, logger)
	penaltyService := service.NewPenaltyService(memberRepo)
	memberService := service.NewMemberService(memberRepo, rankingRepo)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(authService, boardService, rankingService, penaltyService, memberService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
