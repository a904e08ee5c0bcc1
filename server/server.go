// Package server exposes the deployment pipeline over HTTP.
package server

import (
	"context"
	"crypto/subtle"
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"llm_site_deployer/deploy"
	"llm_site_deployer/metrics"
)

// Runner executes an authorized deployment request.
type Runner interface {
	Run(ctx context.Context, req deploy.Request) (deploy.Result, error)
}

type Server struct {
	runner Runner
	secret string
	logger *log.Logger
}

func New(runner Runner, secret string, logger *log.Logger) (*Server, error) {
	if runner == nil {
		return nil, errors.New("runner is required")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, secret: secret, logger: logger}, nil
}

// Routes builds the gin engine with the API and operational endpoints.
func (s *Server) Routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.GET("/api-endpoint", s.handleStatus)
	r.POST("/api-endpoint", s.handleDeploy)

	return r
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"message":  "LLM code deployment API is live and ready.",
		"endpoint": "/api-endpoint",
		"usage":    "Send a POST request with JSON payload containing: email, secret, task, round, nonce, brief, evaluation_url",
	})
}

func (s *Server) handleDeploy(c *gin.Context) {
	var req DeployRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncRequest("validation")
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Status:  "error",
			Kind:    string(deploy.KindValidation),
			Message: err.Error(),
		})
		return
	}

	// Never reveal whether the server secret is set vs. wrong.
	if s.secret == "" {
		s.logger.Printf("APP_SECRET not set, rejecting request for task %q", req.Task)
		metrics.IncRequest("misconfigured")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Status:  "error",
			Kind:    "InternalError",
			Message: "server misconfiguration",
		})
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.Secret), []byte(s.secret)) != 1 {
		s.logger.Printf("invalid secret attempt for task %q", req.Task)
		metrics.IncRequest("unauthorized")
		c.JSON(http.StatusForbidden, ErrorResponse{
			Status:  "error",
			Kind:    string(deploy.KindAuthorization),
			Message: "invalid secret",
			Task:    req.Task,
			Nonce:   req.Nonce,
		})
		return
	}

	res, err := s.runner.Run(c.Request.Context(), deploy.Request{
		Email:         req.Email,
		Task:          req.Task,
		Round:         req.Round,
		Nonce:         req.Nonce,
		Brief:         req.Brief,
		EvaluationURL: req.EvaluationURL,
		Attachments:   req.Attachments,
	})
	if err != nil {
		kind := deploy.KindOf(err)
		if kind == "" {
			kind = "InternalError"
		}
		s.logger.Printf("pipeline failed for task %q round %d: %v", req.Task, req.Round, err)
		metrics.IncRequest("failed")
		metrics.IncDeployment(string(kind))
		c.JSON(statusFor(kind), ErrorResponse{
			Status:  "error",
			Kind:    string(kind),
			Message: err.Error(),
			Task:    req.Task,
			Nonce:   req.Nonce,
		})
		return
	}

	metrics.IncRequest("ok")
	metrics.IncDeployment("success")
	c.JSON(http.StatusOK, DeployResponse{
		Status:     "ok",
		DeliveryID: res.DeliveryID,
		Task:       res.Task,
		Round:      res.Round,
		Nonce:      res.Nonce,
		RepoURL:    res.RepoURL,
		CommitSHA:  res.CommitSHA,
		PagesURL:   res.PagesURL,
	})
}

// Upstream step failures map to 502; anything unrecognized is a 500.
func statusFor(kind deploy.Kind) int {
	switch kind {
	case deploy.KindGeneration, deploy.KindPublication, deploy.KindDeployment:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
