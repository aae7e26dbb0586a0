package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/interviai/backend/internal/config"
	"github.com/interviai/backend/internal/handler"
	"github.com/interviai/backend/internal/model/user"
	"github.com/interviai/backend/internal/service/account"
	"github.com/interviai/backend/internal/service/ai"
	"github.com/interviai/backend/internal/service/interview"
	"github.com/interviai/backend/internal/service/relay"
	"github.com/interviai/backend/internal/service/resume"
	mongostore "github.com/interviai/backend/internal/storage/mongo"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Pick the user store: Mongo when configured, in-memory otherwise.
	var userStore user.Store
	if cfg.Database.Enabled() {
		client, err := mongostore.Connect(ctx, cfg.Database.URL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}()

		store, err := mongostore.NewUserStore(ctx, client, cfg.Database.Name)
		if err != nil {
			log.Fatalf("failed to initialize user store: %v", err)
		}
		userStore = store
		log.Println("MongoDB connected")
	} else {
		userStore = user.NewMemoryStore()
		log.Println("DATABASE_URL not set, using in-memory user store")
	}

	accountSvc := account.NewService(userStore, cfg.Auth.JWTSecret)
	transcripts := interview.NewService()

	// Initialize AI service
	var aiSvc *ai.Service
	if cfg.AI.Enabled() {
		aiSvc, err = ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing without AI functionality - check the Ark model environment variables")
		} else {
			log.Println("AI service initialized successfully")
		}
	} else {
		log.Println("Ark credentials not configured, skipping AI initialization")
	}

	var generator relay.AnswerGenerator
	var resumeSvc *resume.Service
	if aiSvc != nil {
		generator = aiSvc
		resumeSvc = resume.NewService(userStore, aiSvc)
	}

	relaySvc := relay.NewService(generator, transcripts, cfg.AI.Timeout)

	router := handler.NewRouter(handler.Deps{
		ClientOrigin: cfg.Server.ClientOrigin,
		UploadMax:    cfg.Upload.MaxBytes,
		AccountSvc:   accountSvc,
		ResumeSvc:    resumeSvc,
		RelaySvc:     relaySvc,
		Generator:    generator,
	})

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("InterviAI backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
