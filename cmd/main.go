package main

import (
	"context"

	"github.com/lshigami/Editorly/config"
	"github.com/lshigami/Editorly/database"
	_ "github.com/lshigami/Editorly/docs" // Swagger docs
	"github.com/lshigami/Editorly/internal/auth"
	"github.com/lshigami/Editorly/internal/controller"
	adminctrl "github.com/lshigami/Editorly/internal/controller/admin"
	userctrl "github.com/lshigami/Editorly/internal/controller/user"
	"github.com/lshigami/Editorly/internal/logger"
	"github.com/lshigami/Editorly/internal/middleware"
	"github.com/lshigami/Editorly/internal/repository"
	"github.com/lshigami/Editorly/internal/scheduler"
	"github.com/lshigami/Editorly/internal/server"
	"github.com/lshigami/Editorly/internal/service"
	"github.com/lshigami/Editorly/internal/telemetry"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

// @title Editorly API
// @version 1.0
// @description Articles, editorials and AI-generated quizzes with attempt analytics.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:4000
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			database.NewRedis,
			telemetry.NewProvider,
			server.NewGinEngine,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewArticleRepository,
			repository.NewEditorialRepository,
			repository.NewQuestionRepository,
			repository.NewAttemptRepository,
			repository.NewEvaluationRepository,
		),

		// Services Layer
		fx.Provide(
			auth.NewTokenManager,
			service.NewGeminiLLMService,
			func(llm service.GeminiLLMService) service.QuestionGenerator { return llm },
			func(llm service.GeminiLLMService) service.AnswerEvaluator { return llm },
			service.NewGenerationLocker,
			service.NewContentResolver,
			service.NewAuthService,
			service.NewUserService,
			service.NewArticleService,
			service.NewEditorialService,
			service.NewBookmarkService,
			service.NewMCQService,
			service.NewAttemptService,
			service.NewAnalyticsService,
			service.NewEvaluationService,
			service.NewFeedIngestionService,
		),

		// API Controllers Layer
		fx.Provide(
			middleware.NewAuthenticator,
			userctrl.NewAuthController,
			userctrl.NewArticleController,
			userctrl.NewEditorialController,
			userctrl.NewQuizController,
			userctrl.NewAnalyticsController,
			adminctrl.NewAdminController,
		),

		fx.Invoke(func(cfg *config.Config) { controller.SetProduction(cfg.IsProduction()) }),
		fx.Invoke(database.AutoMigrate),
		fx.Invoke(closeLLMOnStop),
		fx.Invoke(server.RegisterRoutes),
		fx.Invoke(server.StartServer),
		fx.Invoke(scheduler.Register),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
	if err := app.Stop(context.Background()); err != nil {
		log.Error().Err(err).Msg("Error during shutdown")
	}
}

func closeLLMOnStop(lc fx.Lifecycle, llm service.GeminiLLMService) {
	lc.Append(fx.StopHook(llm.Close))
}
