package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"

	authhandler "roamly/internal/auth/handler"
	authrepository "roamly/internal/auth/repository"
	authservice "roamly/internal/auth/service"
	mongoMigration "roamly/internal/migrations/mongo"
	packagehandler "roamly/internal/packages/handler"
	packagerepository "roamly/internal/packages/repository"
	packageservice "roamly/internal/packages/service"
	packagevalidator "roamly/internal/packages/validator"
	farehandler "roamly/internal/specialfares/handler"
	farerepository "roamly/internal/specialfares/repository"
	fareservice "roamly/internal/specialfares/service"
	farevalidator "roamly/internal/specialfares/validator"
	"roamly/pkg/app"
	"roamly/pkg/config"
	"roamly/pkg/events"
	"roamly/pkg/middleware"
	"roamly/pkg/token"
)

const ServiceName = "roamly"

func main() {
	// Missing .env is fine in production; config falls back to real env vars.
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	migrate(cfg)

	cfg.Log.Info("Starting Roamly API service")

	publisher := newPublisher(cfg)
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL, config.AuthCookieName)
	authGate := middleware.Authenticate(tokens)

	packageHandler := packagehandler.NewPackageHandler(
		initPackageService(cfg, publisher),
		authGate,
		cfg.Log,
	)
	fareHandler := farehandler.NewSpecialFareHandler(
		initSpecialFareService(cfg, publisher),
		authGate,
		cfg.Log,
	)
	authHandler := authhandler.NewAuthHandler(
		initAuthService(cfg, tokens, publisher),
		authGate,
		cfg.Log,
	)

	serverApp := app.NewApplication(cfg, publisher)
	serverApp.SetApp(packageHandler, fareHandler, authHandler)
	serverApp.Run()
}

func migrate(cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := mongoMigration.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
}

func newPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Event publishing disabled, no Kafka brokers configured")
		return events.NopPublisher{}
	}
	cfg.Log.Info("Event publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.Log)
}

func initPackageService(cfg *config.Config, publisher events.Publisher) packageservice.PackageService {
	validator := packagevalidator.NewPackageValidator(cfg.Log)
	repo := packagerepository.NewMongoPackageRepository(cfg)
	svc := packageservice.NewPackageService(repo, validator, publisher, cfg)

	cfg.Log.Info("Package service initialized", "database", cfg.MongoDatabaseName)
	return svc
}

func initSpecialFareService(cfg *config.Config, publisher events.Publisher) fareservice.SpecialFareService {
	validator := farevalidator.NewSpecialFareValidator(cfg.Log)
	repo := farerepository.NewMongoSpecialFareRepository(cfg)
	svc := fareservice.NewSpecialFareService(repo, validator, publisher, cfg)

	cfg.Log.Info("Special fare service initialized", "database", cfg.MongoDatabaseName)
	return svc
}

func initAuthService(cfg *config.Config, tokens *token.Manager, publisher events.Publisher) authservice.AuthService {
	repo := authrepository.NewMongoUserRepository(cfg)
	svc := authservice.NewAuthService(repo, tokens, publisher, cfg)

	cfg.Log.Info("Auth service initialized", "database", cfg.MongoDatabaseName)
	return svc
}
