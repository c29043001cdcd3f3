package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/devfolio/devfolio-api/internal/facades"
	"github.com/devfolio/devfolio-api/internal/handlers"
	"github.com/devfolio/devfolio-api/internal/jwt"
	"github.com/devfolio/devfolio-api/internal/logger"
	"github.com/devfolio/devfolio-api/internal/middlewares"
	"github.com/devfolio/devfolio-api/internal/repositories"
	"github.com/devfolio/devfolio-api/internal/services"
	"github.com/devfolio/devfolio-api/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title devfolio API
// @version 1.0.0
// @description Content backend for a blog/portfolio site: topics, posts and tips with JWT cookie auth
// @host localhost:5000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, logLevel, production,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		jwtSecret, jwtExpSecond,
		cloudName, cloudKey, cloudSecret, cloudFolder,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel, production,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		jwtSecret, jwtExpSecond,
		cloudName, cloudKey, cloudSecret, cloudFolder,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns all
// application, database, JWT and media-host configuration.
func parseConfig(path string) (
	appHost, appPort, logLevel string, production bool,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	jwtSecret string, jwtExpSecond int,
	cloudName, cloudKey, cloudSecret, cloudFolder string,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "5000")
	logLevel = getEnv("APP_LOG_LEVEL", "info")
	production = getEnv("APP_ENV", "development") == "production"

	// PostgreSQL config
	pgHost = getEnv("POSTGRES_HOST", "localhost")
	pgUser = getEnv("POSTGRES_USER", "user")
	pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	pgDB = getEnv("POSTGRES_DB", "devfolio")
	if pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// JWT config
	jwtSecret = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if jwtExpSecond, err = strconv.Atoi(getEnv("JWT_EXP_SECOND", "86400")); err != nil {
		return
	}

	// Cloudinary config
	cloudName = getEnv("CLOUDINARY_CLOUD_NAME", "")
	cloudKey = getEnv("CLOUDINARY_API_KEY", "")
	cloudSecret = getEnv("CLOUDINARY_API_SECRET", "")
	cloudFolder = getEnv("CLOUDINARY_FOLDER", "siteassets")

	return
}

// run initializes the logger, database, migrations, media facade and HTTP
// server. It sets up routes, applies middleware, and handles graceful
// shutdown.
func run(ctx context.Context,
	appHost, appPort, logLevel string, production bool,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	jwtSecret string, jwtExpSecond int,
	cloudName, cloudKey, cloudSecret, cloudFolder string,
) error {
	// Initialize logger
	log, err := logger.New(logLevel)
	if err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer log.Sync()
	log.Infof("Logger initialized with level %s", logLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		pgUser, pgPassword, pgHost, pgPort, pgDB)
	log.Infof("Connecting to PostgreSQL at %s:%d/%s", pgHost, pgPort, pgDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		log.Errorw("PostgreSQL connection error", "error", err)
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(pgMaxOpenConns)
	db.SetMaxIdleConns(pgMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		log.Errorw("PostgreSQL ping failed", "error", err)
		return err
	}

	// Apply schema migrations
	if err := applyMigrations(db); err != nil {
		log.Errorw("migrations failed", "error", err)
		return err
	}
	log.Info("Schema migrations applied")

	// Initialize media uploader
	media, err := facades.NewCloudinaryFacade(cloudName, cloudKey, cloudSecret, cloudFolder, log)
	if err != nil {
		log.Errorw("Cloudinary initialization failed", "error", err)
		return err
	}

	// Initialize JWT service
	tokens := jwt.New(
		jwt.WithSecretKey(jwtSecret),
		jwt.WithExpiration(time.Duration(jwtExpSecond)*time.Second),
	)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db, log)
	userWriteRepo := repositories.NewUserWriteRepository(db, log)
	topicReadRepo := repositories.NewTopicReadRepository(db, log)
	topicWriteRepo := repositories.NewTopicWriteRepository(db, log)
	postReadRepo := repositories.NewPostReadRepository(db, log)
	postWriteRepo := repositories.NewPostWriteRepository(db, log)
	tipReadRepo := repositories.NewTipReadRepository(db, log)
	tipWriteRepo := repositories.NewTipWriteRepository(db, log)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, tokens, tokens, log)
	topicService := services.NewTopicService(topicReadRepo, topicWriteRepo, userReadRepo, media, log)
	postService := services.NewPostService(postReadRepo, postWriteRepo, media, log)
	tipService := services.NewTipService(tipReadRepo, tipWriteRepo, userReadRepo, log)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(log))

	authMiddleware := middlewares.AuthMiddleware(tokens, log)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", handlers.NewRegisterHandler(authService, production, log))
		r.Post("/login", handlers.NewLoginHandler(authService, production, log))
		r.Post("/logout", handlers.NewLogoutHandler(production))
		r.Get("/verify", handlers.NewVerifyHandler(authService, log))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public reads
		r.Get("/topics", handlers.NewListTopicsHandler(topicService, log))
		r.Get("/topics/{id}", handlers.NewGetTopicHandler(topicService, log))
		r.Get("/posts", handlers.NewListPostsHandler(postService, log))
		r.Get("/posts/{id}", handlers.NewGetPostHandler(postService, log))
		r.Get("/tips", handlers.NewListTipsHandler(tipService, log))
		r.Get("/tips/{id}", handlers.NewGetTipHandler(tipService, log))

		// Protected mutations
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/topics", handlers.NewCreateTopicHandler(topicService, log))
			r.Put("/topics/{id}", handlers.NewUpdateTopicHandler(topicService, log))
			r.Delete("/topics/{id}", handlers.NewDeleteTopicHandler(topicService, log))
			r.Post("/posts", handlers.NewCreatePostHandler(postService, log))
			r.Put("/posts/{id}", handlers.NewUpdatePostHandler(postService, log))
			r.Delete("/posts/{id}", handlers.NewDeletePostHandler(postService, log))
			r.Post("/tips", handlers.NewCreateTipHandler(tipService, log))
			r.Put("/tips/{id}", handlers.NewUpdateTipHandler(tipService, log))
			r.Delete("/tips/{id}", handlers.NewDeleteTipHandler(tipService, log))
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	}

	log.Info("HTTP server stopped gracefully")
	return nil
}

// applyMigrations runs the embedded schema migrations against the open
// database handle.
func applyMigrations(db *sqlx.DB) error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return err
	}

	driver, err := migratepg.WithInstance(db.DB, &migratepg.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
