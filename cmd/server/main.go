package main

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"goboard/internal/config"
	"goboard/internal/database"
	"goboard/internal/handlers"
	"goboard/internal/repository"
	"goboard/internal/security"
	"goboard/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Load templates
	templates, err := loadTemplates(cfg.TemplatesPath)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	log.Println("Templates loaded successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	fileRepo := repository.NewFileRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.SessionTTL)
	boardService := service.NewBoardService(postRepo)
	uploadService := service.NewUploadService(fileRepo, cfg.UploadPath)

	// Initialize handlers
	csrf := security.NewCSRFGenerator(cfg.CSRFSecret)
	middleware := handlers.NewMiddleware(authService, csrf, cfg.UploadMaxSize)
	authHandler := handlers.NewAuthHandler(authService, templates)
	postHandler := handlers.NewPostHandler(boardService, authService, csrf, templates)
	uploadHandler := handlers.NewUploadHandler(uploadService, csrf, templates)

	// Setup routes
	mux := http.NewServeMux()

	// Static files (includes uploads)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))

	// Public routes
	mux.HandleFunc("GET /signup", authHandler.ShowSignup)
	mux.HandleFunc("POST /signup", authHandler.Signup)
	mux.HandleFunc("GET /login", authHandler.ShowLogin)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("GET /logout", authHandler.Logout)
	mux.HandleFunc("POST /logout", authHandler.Logout)
	mux.HandleFunc("GET /posts", postHandler.List)
	mux.HandleFunc("GET /posts/{id}", postHandler.Detail)
	mux.HandleFunc("GET /posts/{id}/comment", postHandler.ShowCommentForm)

	// Protected routes
	mux.HandleFunc("GET /{$}", middleware.RequireAuth(authHandler.Home))
	mux.HandleFunc("GET /posts/new", middleware.RequireAuth(postHandler.ShowCreate))
	mux.HandleFunc("POST /posts/new", middleware.RequireAuth(middleware.CSRFProtect(postHandler.Create)))
	mux.HandleFunc("POST /posts/{id}/delete", middleware.RequireAuth(middleware.CSRFProtect(postHandler.Delete)))
	mux.HandleFunc("POST /posts/{id}/comment", middleware.RequireAuth(middleware.CSRFProtect(postHandler.CreateComment)))
	mux.HandleFunc("GET /upload", middleware.RequireAuth(uploadHandler.ShowUpload))
	mux.HandleFunc("POST /upload", middleware.RequireAuth(middleware.MaxBody(middleware.CSRFProtect(uploadHandler.Upload))))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Optional background session sweep. Expired sessions are already
	// rejected lazily at resolve time; this only trims stale rows.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.SessionSweep > 0 {
		go sweepExpiredSessions(ctx, authService, cfg.SessionSweep)
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// loadTemplates loads the base template plus all page templates
func loadTemplates(templatesPath string) (*template.Template, error) {
	patterns := []string{
		filepath.Join(templatesPath, "auth/*.tmpl"),
		filepath.Join(templatesPath, "board/*.tmpl"),
	}

	files := []string{filepath.Join(templatesPath, "base.tmpl")}
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to glob pattern %s: %w", pattern, err)
		}
		files = append(files, matches...)
	}

	funcMap := template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006 15:04")
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return tmpl, nil
}

// sweepExpiredSessions periodically removes expired session rows until the
// context is cancelled
func sweepExpiredSessions(ctx context.Context, authService *service.AuthService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := authService.CleanupExpiredSessions(); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}
		}
	}
}
