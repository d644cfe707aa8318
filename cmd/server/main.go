package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/muudhq/muud-backend/internal/cache"
	"github.com/muudhq/muud-backend/internal/config"
	"github.com/muudhq/muud-backend/internal/database"
	"github.com/muudhq/muud-backend/internal/mailer"
	"github.com/muudhq/muud-backend/internal/oauth"
	postgresrepo "github.com/muudhq/muud-backend/internal/repository/postgres"
	"github.com/muudhq/muud-backend/internal/service"
	"github.com/muudhq/muud-backend/internal/transport/http/handlers"
	"github.com/muudhq/muud-backend/internal/transport/http/middleware"
)

const trendsCacheTTL = 5 * time.Minute

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalw("failed to load config", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		sugar.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	sugar.Infow("connected to database", "host", cfg.DBHost)

	// Redis is optional; without it the trends cache is a no-op.
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			sugar.Warnw("redis unreachable, trends cache disabled", "error", err)
			redisClient = nil
		}
	}
	trendsCache := cache.New(redisClient, "muud:", trendsCacheTTL)

	// Object storage for presigned uploads.
	s3Client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
	})
	if err != nil {
		sugar.Fatalw("failed to create object storage client", "error", err)
	}

	mail := mailer.NewSMTP(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	conversationRepo := postgresrepo.NewConversationRepo(pool)
	messageRepo := postgresrepo.NewMessageRepo(pool)
	journalRepo := postgresrepo.NewJournalRepo(pool)
	trendsRepo := postgresrepo.NewTrendsRepo(pool)

	// Services
	authService := service.NewAuthService(userRepo, oauth.NewVerifier(), mail, cfg.JWTSecret)
	profileService := service.NewProfileService(userRepo)
	chatService := service.NewChatService(conversationRepo, messageRepo, userRepo, sugar)
	journalService := service.NewJournalService(journalRepo)
	peopleService := service.NewPeopleService(userRepo)
	trendsService := service.NewTrendsService(trendsRepo, trendsCache, sugar)
	uploadService := service.NewUploadService(s3Client, cfg.S3Bucket)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, sugar)
	profileHandler := handlers.NewProfileHandler(profileService, sugar)
	chatHandler := handlers.NewChatHandler(chatService, sugar)
	journalHandler := handlers.NewJournalHandler(journalService, sugar)
	peopleHandler := handlers.NewPeopleHandler(peopleService, sugar)
	trendsHandler := handlers.NewTrendsHandler(trendsService, sugar)
	uploadHandler := handlers.NewUploadHandler(uploadService, sugar)

	auth := middleware.Auth(cfg.JWTSecret)

	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /api/v1/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/google", authHandler.Google)
	mux.HandleFunc("POST /api/v1/auth/apple", authHandler.Apple)
	mux.HandleFunc("POST /api/v1/auth/facebook", authHandler.Facebook)

	// Protected - Auth
	mux.Handle("POST /api/v1/auth/send-otp", auth(http.HandlerFunc(authHandler.SendOTP)))
	mux.Handle("POST /api/v1/auth/verify-otp", auth(http.HandlerFunc(authHandler.VerifyOTP)))
	mux.Handle("GET /api/v1/health/protected", auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok", "user_id": "` + middleware.GetUserID(r.Context()).String() + `"}`))
	})))

	// Protected - Profile
	mux.Handle("GET /api/v1/profile/me", auth(http.HandlerFunc(profileHandler.Me)))
	mux.Handle("PATCH /api/v1/profile/me", auth(http.HandlerFunc(profileHandler.UpdateMe)))
	mux.Handle("PUT /api/v1/profile/onboarding", auth(http.HandlerFunc(profileHandler.SetOnboarding)))

	// Protected - Chats
	mux.Handle("POST /api/v1/chats/conversations", auth(http.HandlerFunc(chatHandler.CreateOrGetConversation)))
	mux.Handle("GET /api/v1/chats/conversations", auth(http.HandlerFunc(chatHandler.ListConversations)))
	mux.Handle("POST /api/v1/chats/messages", auth(http.HandlerFunc(chatHandler.SendMessage)))
	mux.Handle("GET /api/v1/chats/conversations/{id}/messages", auth(http.HandlerFunc(chatHandler.ListMessages)))

	// Protected - Journals
	mux.Handle("POST /api/v1/journals", auth(http.HandlerFunc(journalHandler.Create)))
	mux.Handle("GET /api/v1/journals/me", auth(http.HandlerFunc(journalHandler.ListMine)))

	// Protected - People
	mux.Handle("GET /api/v1/people", auth(http.HandlerFunc(peopleHandler.List)))
	mux.Handle("GET /api/v1/people/{id}", auth(http.HandlerFunc(peopleHandler.Get)))

	// Protected - Trends
	mux.Handle("GET /api/v1/trends/dashboard", auth(http.HandlerFunc(trendsHandler.Dashboard)))
	mux.Handle("PATCH /api/v1/trends/dashboard", auth(http.HandlerFunc(trendsHandler.UpdateDashboard)))

	// Protected - Uploads
	mux.Handle("POST /api/v1/uploads/url", auth(http.HandlerFunc(uploadHandler.CreateURL)))

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           middleware.CORS(middleware.Log(logger)(mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sugar.Infow("starting server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
