// Package server exposes the briefing pipeline over HTTP.
package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/briefcast/briefcast/internal/pipeline"
)

const (
	minArticleChars = 500
	minArticleWords = 100
	minBriefChars   = 10
)

// Runner is the part of the pipeline orchestrator the server needs.
type Runner interface {
	Run(ctx context.Context, articleText, designBrief string) (*pipeline.Result, error)
}

// Server handles HTTP requests for persona generation.
type Server struct {
	runner Runner
}

// New creates a server around a pipeline runner.
func New(runner Runner) *Server {
	return &Server{runner: runner}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger())
	router.Use(corsMiddleware())

	router.GET("/healthz", s.handleHealth)
	router.POST("/api/persona", s.handleGeneratePersona)

	return router
}

type generateRequest struct {
	ArticleText string `json:"articleText"`
	DesignBrief string `json:"designBrief"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleGeneratePersona(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	if msg := validateRequest(&req); msg != "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
		return
	}

	result, err := s.runner.Run(c.Request.Context(), req.ArticleText, req.DesignBrief)
	if err != nil {
		log.Error().Err(err).Msg("Pipeline run failed")
		c.JSON(statusFor(err), errorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// validateRequest checks caller input before the pipeline spends any
// upstream budget on it. Returns an empty string when the request is
// acceptable.
func validateRequest(req *generateRequest) string {
	article := strings.TrimSpace(req.ArticleText)
	if len(article) < minArticleChars {
		return "articleText must be at least 500 characters"
	}
	if len(strings.Fields(article)) < minArticleWords {
		return "articleText must contain at least 100 words"
	}
	if len(strings.TrimSpace(req.DesignBrief)) < minBriefChars {
		return "designBrief must be at least 10 characters"
	}
	return ""
}

// statusFor maps pipeline errors onto HTTP status codes: timeouts
// become 504, everything else from upstream becomes 502.
func statusFor(err error) int {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded") {
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("HTTP request")
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
