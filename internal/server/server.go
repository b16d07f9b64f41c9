// Package server exposes the analysis pipeline over HTTP for browser
// clients: frame analysis, capture controls, language and settings
// management, and neighborhood exploration.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/raine/buddy-vision/internal/i18n"
	"github.com/raine/buddy-vision/internal/llm"
	"github.com/raine/buddy-vision/internal/pipeline"
	"github.com/raine/buddy-vision/internal/storage"
	"github.com/raine/buddy-vision/internal/vision"
)

// Explorer answers venue-neighborhood questions. Satisfied by
// *llm.OpenAIGenerator.
type Explorer interface {
	Explore(ctx context.Context, venueID, question, language string) (*llm.ExploreAnswer, error)
}

// History reads the capture log. Satisfied by *storage.SQLiteStore.
type History interface {
	RecentCaptures(limit int) ([]storage.CaptureRecord, error)
}

// Partners persists the partner referral code. Satisfied by
// *storage.SQLiteStore.
type Partners interface {
	Partner() (string, error)
	SetPartner(partner string) error
}

// Options configures the HTTP server.
type Options struct {
	Pipeline   *pipeline.Pipeline
	Analyzer   pipeline.Analyzer
	Generator  llm.Generator
	Explorer   Explorer
	History    History
	Partners   Partners
	Status     *StatusBoard
	StaticRoot string
	Debug      bool
}

// Server handles the web client's API.
type Server struct {
	engine *gin.Engine
	opts   Options
}

// New builds the gin engine with logging, recovery and CORS middleware
// and registers all routes.
func New(opts Options) *Server {
	if opts.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(loggingMiddleware())

	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	if opts.StaticRoot != "" {
		engine.Static("/app", opts.StaticRoot)
	}

	s := &Server{engine: engine, opts: opts}

	api := engine.Group("/api")
	api.POST("/analyze", s.handleAnalyze)
	api.POST("/capture", s.handleCapture)
	api.POST("/repeat", s.handleRepeat)
	api.POST("/read-text", s.handleReadText)
	api.GET("/languages", s.handleLanguages)
	api.POST("/language", s.handleLanguage)
	api.GET("/settings", s.handleGetSettings)
	api.POST("/settings", s.handleUpdateSettings)
	api.POST("/explore", s.handleExplore)
	api.GET("/venues", s.handleVenues)
	api.GET("/partner", s.handleGetPartner)
	api.POST("/partner", s.handleSetPartner)
	api.GET("/status", s.handleStatus)
	api.GET("/history", s.handleHistory)

	return s
}

// Handler returns the root http.Handler, used by http.Server and tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.engine,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	log.Info().Str("addr", addr).Msg("http server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

type analyzeRequest struct {
	ImageData string        `json:"imageData" binding:"required"`
	Settings  *llm.Settings `json:"settings"`
	Language  string        `json:"language"`
}

type analyzeResponse struct {
	Success     bool                 `json:"success"`
	VisionData  *vision.VisionResult `json:"visionData"`
	Description string               `json:"description"`
}

// handleAnalyze is the proxy endpoint for browser clients: it receives a
// data-URL frame, runs analysis and generation server-side so API keys
// never reach the client, and returns the structured result plus
// description.
func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "imageData is required"})
		return
	}

	imageData, err := vision.DecodeDataURL(req.ImageData)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image data"})
		return
	}

	settings := llm.DefaultSettings()
	if req.Settings != nil {
		settings = req.Settings.Normalize()
	}
	language := req.Language
	if language == "" {
		language = i18n.DefaultLanguage
	}

	result, err := s.opts.Analyzer.Analyze(c.Request.Context(), imageData)
	if err != nil {
		log.Error().Err(err).Msg("analyze endpoint: analysis failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	description, err := s.opts.Generator.Describe(c.Request.Context(), result, settings, language)
	if err != nil {
		log.Warn().Err(err).Msg("analyze endpoint: generation failed, using fallback")
		description = llm.FallbackDescription(result)
	}

	c.JSON(http.StatusOK, analyzeResponse{
		Success:     true,
		VisionData:  result,
		Description: description,
	})
}

// handleCapture triggers a full camera capture session on the host.
func (s *Server) handleCapture(c *gin.Context) {
	description, err := s.opts.Pipeline.Capture(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "description": description})
}

func (s *Server) handleRepeat(c *gin.Context) {
	if err := s.opts.Pipeline.Repeat(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "description": s.opts.Pipeline.LastDescription()})
}

func (s *Server) handleReadText(c *gin.Context) {
	if err := s.opts.Pipeline.ReadText(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type languageEntry struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (s *Server) handleLanguages(c *gin.Context) {
	codes := i18n.Codes()
	entries := make([]languageEntry, 0, len(codes))
	for _, code := range codes {
		entries = append(entries, languageEntry{Code: code, Name: i18n.LanguageName(code)})
	}
	c.JSON(http.StatusOK, gin.H{"languages": entries, "current": s.opts.Pipeline.Language()})
}

type languageRequest struct {
	Language string `json:"language" binding:"required"`
}

func (s *Server) handleLanguage(c *gin.Context) {
	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "language is required"})
		return
	}

	resolved := s.opts.Pipeline.ChangeLanguage(c.Request.Context(), req.Language)
	c.JSON(http.StatusOK, gin.H{"language": resolved})
}

func (s *Server) handleGetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, s.opts.Pipeline.Settings())
}

func (s *Server) handleUpdateSettings(c *gin.Context) {
	var settings llm.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid settings"})
		return
	}

	applied := s.opts.Pipeline.UpdateSettings(settings)
	c.JSON(http.StatusOK, applied)
}

type exploreRequest struct {
	Venue    string `json:"venue"`
	Question string `json:"question"`
	Language string `json:"language"`
}

func (s *Server) handleExplore(c *gin.Context) {
	if s.opts.Explorer == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "exploration not available"})
		return
	}

	var req exploreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	language := req.Language
	if language == "" {
		language = s.opts.Pipeline.Language()
	}

	answer, err := s.opts.Explorer.Explore(c.Request.Context(), req.Venue, req.Question, language)
	if err != nil {
		log.Error().Err(err).Str("venue", req.Venue).Msg("explore failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"location": answer.Location,
		"info":     answer.Info,
	})
}

func (s *Server) handleVenues(c *gin.Context) {
	venues := llm.Venues()
	out := make([]gin.H, 0, len(venues))
	for _, v := range venues {
		out = append(out, gin.H{"id": v.ID, "name": v.Name, "sport": v.Sport})
	}
	c.JSON(http.StatusOK, gin.H{"venues": out})
}

func (s *Server) handleStatus(c *gin.Context) {
	status := gin.H{
		"state":    s.opts.Pipeline.State(),
		"language": s.opts.Pipeline.Language(),
	}
	if s.opts.Status != nil {
		snapshot := s.opts.Status.Snapshot()
		status["loading"] = snapshot.Loading
		status["message"] = snapshot.Message
		status["lastDescription"] = snapshot.LastDescription
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) handleHistory(c *gin.Context) {
	if s.opts.History == nil {
		c.JSON(http.StatusOK, gin.H{"captures": []storage.CaptureRecord{}})
		return
	}

	limit := 20
	records, err := s.opts.History.RecentCaptures(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read history"})
		return
	}
	if records == nil {
		records = []storage.CaptureRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"captures": records})
}

func loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("http request")
	}
}
