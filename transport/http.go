package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ridoystarlord/crudforge/logs"
)

// HTTPServer exposes the tools as GET /tools and POST /tools/:name.
type HTTPServer struct {
	engine *gin.Engine
	srv    *http.Server
	caller Caller
}

func NewHTTPServer(addr string, caller Caller) *HTTPServer {
	engine := gin.New()
	engine.Use(gin.Recovery(), accessLog())

	s := &HTTPServer{
		engine: engine,
		caller: caller,
		srv: &http.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/tools", s.listTools)
	engine.POST("/tools/:name", s.callTool)
	return s
}

// Start blocks until the server stops. A clean shutdown returns nil.
func (s *HTTPServer) Start() error {
	logs.Info("http transport listening", zap.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

func (s *HTTPServer) listTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": s.caller.Tools()})
}

// callTool treats an empty body as no arguments. Tool failures are carried
// in the result body with status 200.
func (s *HTTPServer) callTool(c *gin.Context) {
	args := map[string]any{}
	if err := c.ShouldBindJSON(&args); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.caller.Call(c.Request.Context(), c.Param("name"), args))
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		logs.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	}
}
