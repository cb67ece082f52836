/*
Copyright © 2025 developer4fun
*/
package cmd

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/developer4fun/Knowledge-Explorer/config"
	"github.com/developer4fun/Knowledge-Explorer/database"
	"github.com/developer4fun/Knowledge-Explorer/handler"
	"github.com/developer4fun/Knowledge-Explorer/service"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the recommendation server",
	Long:  `Starts the server that ingests parsed documents and serves related-section recommendations`,
	Run: func(cmd *cobra.Command, args []string) {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load config")
		}

		store, err := newDocumentStore(cfg.Store)
		if err != nil {
			// Degrade to an ephemeral store; recommendations then rely on
			// the remote service or in-memory documents only.
			log.Error().Err(err).Msg("Local store unavailable, continuing with in-memory store")
			store = database.NewMemoryStore()
		}

		similarityService := service.NewSimilarityService()
		processor := service.NewProcessorService(store, similarityService)
		processor.Start()
		defer processor.Stop()

		var remote *service.RemoteRecommender
		if cfg.Recommender.Endpoint != "" {
			remote = service.NewRemoteRecommender(
				cfg.Recommender.Endpoint,
				time.Duration(cfg.Recommender.TimeoutSeconds)*time.Second,
			)
		} else {
			log.Info().Msg("No remote recommender configured, serving local recommendations only")
		}
		recommendationService := service.NewRecommendationService(remote, processor, cfg.Recommender.DefaultLimit)
		sessionService := service.NewSessionService(processor, recommendationService)
		webSocketService := service.NewWebSocketService(sessionService)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		documentHandler := handler.NewDocumentHandler(sessionService, processor)
		sessionHandler := handler.NewSessionHandler(sessionService)
		recommendationHandler := handler.NewRecommendationHandler(recommendationService)

		// Setup Gin router
		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)

		apiV1 := router.Group("/api/v1")
		{
			apiV1.POST("/documents", documentHandler.HandleIngest)
			apiV1.GET("/documents/:id", documentHandler.HandleGetDocument)
			apiV1.DELETE("/documents/:id", documentHandler.HandleDeleteDocument)
			apiV1.GET("/documents/:id/recommendations", recommendationHandler.HandleRecommendations)
			apiV1.GET("/session", sessionHandler.HandleGetSession)
			apiV1.POST("/session/focus", sessionHandler.HandleChangeFocus)
		}
		router.GET("/ws/session", func(c *gin.Context) {
			webSocketService.HandleSession(c.Writer, c.Request)
		})

		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	},
}

func newDocumentStore(cfg config.StoreConfig) (database.DocumentStore, error) {
	switch cfg.Backend {
	case "memory":
		return database.NewMemoryStore(), nil
	default:
		return database.NewChromemStore(cfg.Path)
	}
}

func init() {
	rootCmd.AddCommand(startServerCmd)
	startServerCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
}
