package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/Thales-OM/hse-prog-task-transformer/config"
	"github.com/Thales-OM/hse-prog-task-transformer/database"
	_ "github.com/Thales-OM/hse-prog-task-transformer/docs" // Swagger docs - auto-generated
	"github.com/Thales-OM/hse-prog-task-transformer/internal/auth"
	adminctrl "github.com/Thales-OM/hse-prog-task-transformer/internal/controller/admin"
	userctrl "github.com/Thales-OM/hse-prog-task-transformer/internal/controller/user"
	"github.com/Thales-OM/hse-prog-task-transformer/internal/logger"
	"github.com/Thales-OM/hse-prog-task-transformer/internal/model"
	"github.com/Thales-OM/hse-prog-task-transformer/internal/repository"
	"github.com/Thales-OM/hse-prog-task-transformer/internal/service"
)

// @title Quiz Ingestion API
// @version 1.0
// @description Ingests Moodle-style quiz XML exports into a level-gated question store and generates model hints for questions.
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,
		),

		// Auth components
		fx.Provide(
			auth.NewCredentialStore,
			auth.NewService,
		),

		// Repositories layer
		fx.Provide(
			repository.NewQuestionRepository,
			repository.NewAccessRepository,
			repository.NewLLModelRepository,
			repository.NewInferenceRepository,
		),

		// Services layer
		fx.Provide(
			service.NewIngestionService,
			service.NewQuestionService,
			service.NewAccessService,
			service.NewModelService,
			service.NewOpenAIClient,
			service.NewInferenceService,
		),

		// API controllers layer
		fx.Provide(
			adminctrl.NewAdminController,
			userctrl.NewQuestionController,
		),

		fx.Invoke(ApplyLogLevel),
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", adminctrl.CredentialHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func ApplyLogLevel(cfg *config.Config) {
	logger.SetLevel(cfg.Logging.Level)
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	adminCtrl *adminctrl.AdminController,
	questionCtrl *userctrl.QuestionController,
) {
	adminGroup := router.Group("/api/v1/admin")
	adminGroup.POST("/auth/renew-token", adminCtrl.RenewToken)
	protected := adminGroup.Group("")
	protected.Use(adminCtrl.RequireCredential())
	{
		protected.POST("/quiz/xml", adminCtrl.UploadQuizXML)
		protected.POST("/models/new", adminCtrl.CreateModel)
		protected.POST("/inference/new", adminCtrl.CreateInference)
		protected.POST("/inferences/new", adminCtrl.CreateInferences)
		protected.GET("/questions/:id/prompt", adminCtrl.GetPrompt)
		protected.POST("/questions/:id/level", adminCtrl.SetQuestionLevel)
		protected.POST("/user-groups/new", adminCtrl.CreateUserGroup)
		protected.POST("/levels/new", adminCtrl.CreateLevel)
		protected.POST("/user-groups/levels/set", adminCtrl.SetGroupLevels)
		protected.POST("/user-groups/levels/add", adminCtrl.AddGroupLevel)
	}

	userGroup := router.Group("/api/v1")
	{
		userGroup.GET("/questions", questionCtrl.ListQuestions)
		userGroup.GET("/questions/random/id", questionCtrl.RandomQuestionID)
		userGroup.GET("/questions/:id", questionCtrl.GetQuestion)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Quiz ingestion API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Question{},
		&model.AnswerMultichoice{},
		&model.AnswerCoderunner{},
		&model.TestCase{},
		&model.LLModel{},
		&model.Inference{},
		&model.UserGroup{},
		&model.Level{},
		&model.UserGroupLevel{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
