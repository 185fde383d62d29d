package main

import (
	"log"
	"net/http"

	_ "invested/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"invested/internal/auth"
	"invested/internal/cache"
	"invested/internal/config"
	"invested/internal/db"
	"invested/internal/handler"
	"invested/internal/model"
	"invested/internal/repository"
	"invested/internal/router"
	"invested/internal/service"
)

// @title Invested API
// @version 1.0
// @description Financial-literacy API with survey persistence, opaque session tokens, and an advisor chat proxy.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Session{},
		&model.SurveyAnswer{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	sessionRepo := repository.NewSessionRepository(gormDB)
	surveyRepo := repository.NewSurveyRepository(gormDB)

	// Initialize services
	sessionCache := auth.NewSessionCache(cacheClient)
	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(userRepo, sessionRepo, sessionCache)
	surveyService := service.NewSurveyService(surveyRepo, cacheClient)
	advisorService := service.NewAdvisorService(surveyService, service.AdvisorConfig{
		URL:    cfg.OllamaURL,
		Model:  cfg.OllamaModel,
		APIKey: cfg.OllamaAPIKey,
	}, nil)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(authService)
	surveyHandler := handler.NewSurveyHandler(surveyService)
	advisorHandler := handler.NewAdvisorHandler(advisorService)

	// Register routes
	router.Register(
		e,
		cfg,
		userHandler,
		authHandler,
		surveyHandler,
		advisorHandler,
		authService,
	)

	if cfg.IsDevelopment() {
		host := cfg.SwaggerHost
		if host == "" {
			host = "http://localhost:" + cfg.ServerPort
		}
		log.Printf("Swagger documentation available at: %s/swagger/index.html", host)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
