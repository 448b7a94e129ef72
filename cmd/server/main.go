package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"velia-server/internal/authservice"
	"velia-server/internal/config"
	"velia-server/internal/handler"
	"velia-server/internal/middleware"
	"velia-server/internal/service"
	"velia-server/internal/tmdb"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	rateli "github.com/JGLTechnologies/gin-rate-limit"
	ginprometheus "github.com/zsais/go-gin-prometheus"
)

func main() {
	// Загрузка переменных окружения
	if err := godotenv.Load(); err != nil {
		// Логируем как предупреждение, т.к. в production .env может не использоваться
		fmt.Printf("Warning: could not load .env file: %v\n", err)
	}

	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера
	initLogger(cfg)
	log.Info().Str("env", cfg.Env).Str("logLevel", cfg.LogLevel).Msg("Logger initialized successfully")

	// --- External Clients ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	authClient := authservice.NewClient(authservice.ClientConfig{
		BaseURL: cfg.AuthServiceURL,
		Timeout: cfg.AuthTimeout,
	})
	log.Info().Str("url", cfg.AuthServiceURL).Msg("Auth service client initialized")

	textGen, err := service.NewTextGenerator(ctx, cfg, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize AI text client")
	}
	if closer, ok := textGen.(io.Closer); ok {
		defer closer.Close()
	}
	log.Info().Str("provider", cfg.AIProvider).Str("model", cfg.AIModel).Msg("AI text client initialized")

	speechClient := service.NewSpeechClient(cfg, log.Logger)
	log.Info().Str("model", cfg.TTSModel).Str("voice", cfg.TTSVoice).Msg("TTS client initialized")

	movieClient := tmdb.NewClient(tmdb.ClientConfig{
		BaseURL: cfg.TMDBBaseURL,
		APIKey:  cfg.TMDBAPIKey,
		Timeout: cfg.TMDBTimeout,
	})
	log.Info().Str("baseURL", cfg.TMDBBaseURL).Msg("TMDB client initialized")

	// <<< Rate Limiter Middleware Setup >>>
	// In-memory store: один инстанс сервиса, Redis не нужен.
	rateLimitStore := rateli.InMemoryStore(&rateli.InMemoryOptions{
		Rate:  time.Minute,
		Limit: cfg.RateLimitPerMinute,
	})
	rateLimitMiddleware := rateli.RateLimiter(rateLimitStore, &rateli.Options{
		ErrorHandler: func(c *gin.Context, info rateli.Info) {
			log.Warn().
				Str("clientIP", c.ClientIP()).
				Time("resetTime", info.ResetTime).
				Str("path", c.Request.URL.Path).
				Msg("Rate limit exceeded")
			c.String(http.StatusTooManyRequests, "Too many requests. Try again in "+time.Until(info.ResetTime).String())
		},
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	})
	log.Info().Uint("perMinute", cfg.RateLimitPerMinute).Msg("Rate limiter middleware initialized")

	// --- HTTP Server Setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(middleware.ZerologMiddlewareForGin(log.Logger))
	router.Use(gin.Recovery())
	router.Use(rateLimitMiddleware)

	p := ginprometheus.NewPrometheus("gin")

	// Configure CORS Middleware
	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
		log.Info().Str("origin", "http://localhost:3000").Msg("CORSAllowedOrigins not set, allowing default")
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Register Application Routes
	entitlement := authservice.EntitlementMiddleware(authClient, []byte(cfg.AuthSecret), cfg.AuthTimeout, log.Logger)
	h := handler.New(textGen, speechClient, movieClient, cfg.AITimeout, log.Logger)
	h.RegisterRoutes(router, entitlement)

	// Prometheus middleware подключаем после регистрации роутов
	p.Use(router)

	// --- Start HTTP Server ---
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP Server listen error")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}

// initLogger настраивает глобальный логгер
func initLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.With().Caller().Logger()

	// В режиме разработки используем более читаемый вывод
	if cfg.Env != "production" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(output).With().Timestamp().Caller().Logger()
	}

	logLevel := zerolog.InfoLevel
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logLevel = lvl
	}
	zerolog.SetGlobalLevel(logLevel)
}
