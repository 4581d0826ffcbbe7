package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/config"
	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/handler"
	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/payload"
	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/repository"
	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/usecase"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/auth"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/database"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/discovery"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/logger"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/mailer"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/provider"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/security"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/utilities"
)

const serviceName = "fitness-service"

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	bootLogger := logger.NewLogger(serviceName, logger.Config{Level: "info"})
	cfg := config.NewFitnessServiceConfig(bootLogger)
	log := logger.NewLogger(serviceName, cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, err := database.NewMongoClient(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	db := mongoClient.Database(cfg.Mongo.Database)

	userRepo := repository.NewUserMongoRepository(ctx, log, db)
	resetTokenRepo := repository.NewPasswordResetTokenMongoRepository(ctx, log, db, cfg.PasswordReset.ExpiresIn)
	nutritionGoalRepo := repository.NewNutritionGoalMongoRepository(ctx, log, db)
	mealPlanRepo := repository.NewMealPlanMongoRepository(ctx, log, db)
	workoutPlanRepo := repository.NewWorkoutPlanMongoRepository(ctx, log, db)

	hasher, err := security.NewPasswordHasher(cfg.Password)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create password hasher")
	}

	validator, err := payload.NewValidator()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create validator")
	}

	tokenIssuer := auth.NewTokenIssuer(cfg.Token.Issuer, cfg.Token.Secret, cfg.Token.ExpiresIn)
	google := provider.NewGoogleOAuthProvider(cfg.GoogleClientID)
	sender := mailer.NewSender(log, cfg.Mailer)

	httpHandler := handler.NewHTTPHandler(handler.HTTPHandlerParams{
		Logger:               log,
		Validator:            validator,
		AuthUsecase:          usecase.NewAuthUsecase(userRepo, hasher, tokenIssuer, google),
		PasswordResetUsecase: usecase.NewPasswordResetUsecase(userRepo, resetTokenRepo, hasher, sender, cfg.PasswordReset),
		NutritionGoalUsecase: usecase.NewNutritionGoalUsecase(nutritionGoalRepo),
		MealPlanUsecase:      usecase.NewMealPlanUsecase(mealPlanRepo),
		WorkoutPlanUsecase:   usecase.NewWorkoutPlanUsecase(workoutPlanRepo),
		HealthCheck: func(ctx context.Context) error {
			return mongoClient.Ping(ctx, readpref.Primary())
		},
		ExposeResetToken: !cfg.IsProduction(),
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      httpHandler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	probe, err := utilities.NewHealthProbe(log, cfg.GRPCHealthAddr)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start health probe")
	}
	go func() {
		if err := probe.Serve(); err != nil {
			log.Error().Err(err).Msg("health probe stopped")
		}
	}()

	var registrar *discovery.Registrar
	if cfg.Consul.Enabled {
		registrar = register(log, cfg)
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("env", cfg.AppEnv).Msg("fitness service listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down fitness service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if registrar != nil {
		if err := registrar.Deregister(); err != nil {
			log.Error().Err(err).Msg("failed to deregister service")
		}
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shut down http server")
	}

	probe.Stop()

	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to disconnect from mongodb")
	}
}

func register(log *zerolog.Logger, cfg *config.FitnessServiceConfig) *discovery.Registrar {
	registrar, err := discovery.NewRegistrar(log, cfg.Consul)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create consul registrar")
	}

	reg, err := discovery.Registration(cfg.Consul, cfg.HTTP.Port, cfg.GRPCHealthAddr)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build consul registration")
	}

	if err := registrar.Register(reg); err != nil {
		log.Fatal().Err(err).Msg("failed to register with consul")
	}

	return registrar
}
