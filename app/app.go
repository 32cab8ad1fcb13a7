package app

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace-api/internal/controller"
	"marketplace-api/internal/notify"
	"marketplace-api/internal/repo"
	"marketplace-api/internal/repo/rediscache"
	"marketplace-api/internal/reporter"
	"marketplace-api/internal/service"
	"marketplace-api/pkg/http_server"
	"marketplace-api/pkg/logger"
	"marketplace-api/pkg/postgres"

	"github.com/go-redis/redis/v8"
	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/labstack/echo"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const referenceCacheTTL = 5 * time.Minute

func runMigrations(postgresDB *postgres.Postgres, databaseName string) error {
	driver, err := pgmigrate.WithInstance(postgresDB.Database, &pgmigrate.Config{DatabaseName: databaseName})
	if err != nil {
		return err
	}

	migrations, err := migrate.NewWithDatabaseInstance("file://migrations", databaseName, driver)
	if err != nil {
		return err
	}

	if err := migrations.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	return nil
}

func Run() {
	// optional; real deployments pass the environment directly
	_ = godotenv.Load()

	serverAddressEnv := os.Getenv("SERVER_ADDRESS")
	dbConnEnv := os.Getenv("POSTGRES_CONN")
	databaseEnv := os.Getenv("POSTGRES_DATABASE")
	redisAddrEnv := os.Getenv("REDIS_ADDR")
	redisPasswordEnv := os.Getenv("REDIS_PASSWORD")
	frontendURLEnv := os.Getenv("FRONTEND_URL")

	zapLogger, err := logger.NewLogger(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	if err != nil {
		log.Fatal("Error occurred while building logger: ", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	zapLogger.Info("connecting database")
	postgresDB, err := postgres.NewDB(dbConnEnv)
	if err != nil {
		zapLogger.Fatal("database connection failed", zap.Error(err))
	}
	defer postgresDB.Close()

	zapLogger.Info("running migrations")
	if err := runMigrations(postgresDB, databaseEnv); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	repositories := repo.NewRepositories(postgresDB)

	if redisAddrEnv != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: redisAddrEnv, Password: redisPasswordEnv})
		repositories.Reference = rediscache.NewReferenceCache(
			repositories.Reference, redisClient, referenceCacheTTL, zapLogger,
		)
		zapLogger.Info("reference cache enabled", zap.String("addr", redisAddrEnv))
	}

	services := service.NewServices(service.Deps{
		Repos:    repositories,
		Notifier: notify.NewEmailNotifier(zapLogger, frontendURLEnv),
		Reporter: reporter.NewZapReporter(zapLogger),
		Log:      zapLogger,
	})

	handler := echo.New()

	zapLogger.Info("setup routes")
	controller.SetupRoutesHandlers(handler, services)

	zapLogger.Info("starting server", zap.String("address", serverAddressEnv))
	httpServer := http_server.New(handler, serverAddressEnv)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		zapLogger.Info("got signal", zap.String("signal", s.String()))
	case err = <-httpServer.Notify():
		zapLogger.Error("server notify", zap.Error(err))
	}

	zapLogger.Info("shutting down")
	if err := httpServer.Shutdown(); err != nil {
		zapLogger.Error("shutdown error", zap.Error(err))

		return
	}
	zapLogger.Info("successful shutdown")
}
