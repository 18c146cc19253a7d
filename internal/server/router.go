// Package server builds the gin engine, mounts the API routes and ties the
// HTTP server to the fx lifecycle.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/Editorly/config"
	"github.com/lshigami/Editorly/internal/controller"
	adminctrl "github.com/lshigami/Editorly/internal/controller/admin"
	userctrl "github.com/lshigami/Editorly/internal/controller/user"
	"github.com/lshigami/Editorly/internal/middleware"
	"github.com/lshigami/Editorly/internal/telemetry"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/fx"
)

type Controllers struct {
	fx.In

	Auth      *userctrl.AuthController
	Article   *userctrl.ArticleController
	Editorial *userctrl.EditorialController
	Quiz      *userctrl.QuizController
	Analytics *userctrl.AnalyticsController
	Admin     *adminctrl.AdminController
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	origins := cfg.CORS.AllowedOrigins
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}

func NewGinEngine(cfg *config.Config, tracing *telemetry.Provider) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())
	if tracing.Enabled() {
		r.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	r.Use(cors.New(corsConfig(cfg)))

	// http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.NoRoute(controller.NoRoute)

	return r
}

func RegisterRoutes(router *gin.Engine, authn *middleware.Authenticator, c Controllers) {
	requireAuth := authn.RequireAuth()
	optionalAuth := authn.OptionalAuth()
	requireAdmin := authn.RequireAdmin()

	api := router.Group("/api")
	api.GET("/health", controller.Health)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", c.Auth.Register)
		authGroup.POST("/login", c.Auth.Login)
	}

	users := api.Group("/users")
	{
		users.GET("/me", requireAuth, c.Auth.Profile)
		users.DELETE("/reset/:userId", requireAdmin, c.Admin.ResetUser)
	}

	bookmarks := api.Group("/bookmarks", requireAuth)
	{
		bookmarks.GET("", c.Article.ListBookmarks)
		bookmarks.POST("/:articleId", c.Article.AddBookmark)
		bookmarks.DELETE("/:articleId", c.Article.RemoveBookmark)
	}

	articles := api.Group("/articles")
	{
		articles.GET("", c.Article.ListArticles)
		articles.GET("/search", c.Article.SearchArticles)
		articles.GET("/:id", c.Article.GetArticle)
		articles.POST("", requireAuth, c.Article.CreateArticle)
		articles.PUT("/:id", requireAuth, c.Article.UpdateArticle)
		articles.DELETE("/:id", requireAuth, c.Article.DeleteArticle)
	}

	mcqs := api.Group("/mcqs")
	{
		mcqs.GET("/generate/:articleId", c.Quiz.GenerateArticleQuestions)
		mcqs.POST("/submit", requireAuth, c.Quiz.SubmitArticleAttempt)
		mcqs.GET("/attempt/:articleId", requireAuth, c.Quiz.CheckArticleAttempt)
		mcqs.GET("/:articleId", c.Quiz.ListArticleQuestions)
	}

	api.POST("/gemini/generate", c.Quiz.PreviewQuestions)
	api.GET("/rss/fetch-hindu", requireAdmin, c.Admin.FetchFeed)

	editorials := api.Group("/editorials")
	{
		editorials.GET("", c.Editorial.ListEditorials)
		editorials.GET("/:id", c.Editorial.GetEditorial)
		editorials.POST("", optionalAuth, c.Editorial.CreateEditorial)
		editorials.PUT("/:id", optionalAuth, c.Editorial.UpdateEditorial)
		editorials.DELETE("/:id", optionalAuth, c.Editorial.DeleteEditorial)
	}

	editorialMCQs := api.Group("/editorial-mcqs")
	{
		editorialMCQs.GET("/generate/:editorialId", c.Quiz.GenerateEditorialQuestions)
		editorialMCQs.POST("/submit", requireAuth, c.Quiz.SubmitEditorialAttempt)
		editorialMCQs.GET("/check/:editorialId", requireAuth, c.Quiz.CheckEditorialAttempt)
		editorialMCQs.DELETE("/reset/:userId/:editorialId", requireAdmin, c.Admin.ResetEditorialAttempt)
		editorialMCQs.GET("/:editorialId", c.Quiz.ListEditorialQuestions)
		editorialMCQs.POST("/:editorialId", requireAdmin, c.Admin.CreateEditorialQuestions)
	}

	analytics := api.Group("/analytics")
	{
		analytics.GET("/quiz-attempts", requireAuth, c.Analytics.QuizAttempts)
		analytics.GET("/top-performers", requireAuth, c.Analytics.TopPerformers)
		analytics.GET("/user/:userId/quiz-attempts", c.Analytics.UserQuizDetail)
	}

	evaluations := api.Group("/evaluations", requireAuth)
	{
		evaluations.POST("", c.Analytics.EvaluateAnswer)
		evaluations.GET("", c.Analytics.ListEvaluations)
	}
}

func StartServer(lc fx.Lifecycle, router *gin.Engine, cfg *config.Config) {
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Editorly API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
