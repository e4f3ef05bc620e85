package server

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inkwellhq/inkwell/internal/config"
	"github.com/inkwellhq/inkwell/internal/core"
	"github.com/inkwellhq/inkwell/internal/llm"
	"github.com/inkwellhq/inkwell/internal/store"
)

type Server struct {
	Ink            *core.Inkwell
	Projects       *store.ProjectStore
	Hub            *Hub
	AllowedOrigins []string
}

func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Env vars override the file so deployments can rotate keys and models
	// without editing it.
	if envProvider := os.Getenv("LLM_PROVIDER"); envProvider != "" {
		cfg.LLM.Provider = envProvider
	}
	if envModel := os.Getenv("LLM_MODEL"); envModel != "" {
		cfg.LLM.Model = envModel
	}
	if envImageModel := os.Getenv("LLM_IMAGE_MODEL"); envImageModel != "" {
		cfg.LLM.ImageModel = envImageModel
	}
	if envAPIKey := os.Getenv("LLM_API_KEY"); envAPIKey != "" {
		cfg.LLM.APIKey = envAPIKey
	}
	if envBaseURL := os.Getenv("LLM_BASE_URL"); envBaseURL != "" {
		cfg.LLM.BaseURL = envBaseURL
	}

	// Default to a local Ollama when nothing is configured.
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "ollama"
		cfg.LLM.Model = "gpt-oss:latest"
		cfg.LLM.BaseURL = "http://localhost:11434"
	}

	textClient, chatClient, imageClient, err := llm.NewClient(context.Background(), cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	dbPath := cfg.Storage.Path
	if dbPath == "" {
		dbPath = "data/inkwell.db"
	}
	projects, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open project store: %v", err)
	}

	ink := core.NewInkwell(textClient, chatClient, imageClient, cfg)
	hub := NewHub()
	ink.SetNotifier(hub)

	return &Server{
		Ink:            ink,
		Projects:       projects,
		Hub:            hub,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(s.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = s.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if s.Hub != nil {
		r.GET("/ws", s.Hub.Handle)
	}

	api := r.Group("/api")
	{
		api.GET("/document", s.GetDocument)
		api.PUT("/scratchpad", s.UpdateScratchpad)
		api.GET("/settings", s.GetSettings)
		api.PUT("/settings", s.UpdateSettings)

		api.POST("/chapters", s.AddChapter)
		api.DELETE("/chapters/:id", s.DeleteChapter)
		api.POST("/chapters/:id/beats", s.AddBeat)
		api.PUT("/chapters/:id/beats/:beatID", s.UpdateBeat)
		api.PUT("/chapters/:id/beats/:beatID/draft", s.UpdateBeatDraft)
		api.DELETE("/chapters/:id/beats/:beatID", s.DeleteBeat)

		api.POST("/characters", s.AddCharacter)
		api.PUT("/characters/:id", s.UpdateCharacter)
		api.DELETE("/characters/:id", s.DeleteCharacter)
		api.POST("/characters/:id/profile", s.EnrichCharacter)
		api.POST("/characters/:id/portrait", s.GeneratePortrait)

		api.POST("/locations", s.AddLocation)
		api.PUT("/locations/:id", s.UpdateLocation)
		api.DELETE("/locations/:id", s.DeleteLocation)
		api.POST("/locations/:id/profile", s.EnrichLocation)
		api.POST("/locations/:id/scene", s.GenerateScene)

		api.POST("/lore", s.AddLore)
		api.PUT("/lore/:id", s.UpdateLore)
		api.DELETE("/lore/:id", s.DeleteLore)

		api.GET("/suggestion", s.GetSuggestion)
		api.POST("/suggestion/accept", s.AcceptSuggestion)
		api.POST("/suggestion/reject", s.RejectSuggestion)

		api.POST("/analysis", s.RunAnalysis)
		api.GET("/analysis", s.GetAnalysis)
		api.POST("/analysis/inscribe", s.Inscribe)

		api.POST("/import", s.ImportManuscript)
		api.POST("/chat", s.Chat)

		api.GET("/projects", s.ListProjects)
		api.POST("/projects", s.SaveProject)
		api.PUT("/projects/:id", s.OverwriteProject)
		api.POST("/projects/:id/load", s.LoadProject)
		api.DELETE("/projects/:id", s.DeleteProject)
	}

	return r
}
