// Package api exposes the sheet queries over HTTP with gin.
package api

import (
	"context"
	"net/http"

	"smartsheetsvc/domain/query"
	"smartsheetsvc/domain/records"
	"smartsheetsvc/internal"

	"github.com/gin-gonic/gin"
)

// RecordService is what the handlers need from the application layer
type RecordService interface {
	Funding(ctx context.Context, projectName, subproject *string) ([]records.FundingModel, error)
	ProjectNames(ctx context.Context) ([]string, error)
	Protocols(ctx context.Context, protocolName *string) ([]records.ProtocolsModel, error)
	Perfusions(ctx context.Context, subjectID *string) ([]records.PerfusionsModel, error)
	PerfusionSummary(ctx context.Context, subjectID *string) (query.PerfusionSummary, error)
}

// Server represents the HTTP API
type Server struct {
	router  *gin.Engine
	service RecordService
	logger  *internal.Logger
}

// NewServer creates the router and registers every route
func NewServer(service RecordService, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router:  gin.New(),
		service: service,
		logger:  logger.Named("API"),
	}
	s.router.Use(gin.Recovery(), requestID(), accessLog(s.logger), cors())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleLanding)
	s.router.GET("/healthcheck", s.handleHealthcheck)
	s.router.GET("/funding", s.handleFunding)
	s.router.GET("/project_names", s.handleProjectNames)
	s.router.GET("/protocols", s.handleProtocols)
	s.router.GET("/perfusions", s.handlePerfusions)
	s.router.GET("/perfusions/summary", s.handlePerfusionSummary)

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "NOT_FOUND", "message": "no route for " + c.Request.URL.Path})
	})
}

// Handler returns the router for use with http.Server or httptest
func (s *Server) Handler() http.Handler {
	return s.router
}
