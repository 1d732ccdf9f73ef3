package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/Divakar-randhi/incident-resolved/internal/api"
	"github.com/Divakar-randhi/incident-resolved/internal/config"
	"github.com/Divakar-randhi/incident-resolved/internal/store"
)

// Server HTTP服务器
type Server struct {
	router *gin.Engine
	api    *api.Handler
	http   *http.Server
}

// NewServer 创建服务器；dataDir 为已创建好的数据目录
func NewServer(cfg *config.AppConfig, st *store.Store, dataDir string) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	mapper, err := cfg.DateMapping.Mapper()
	if err != nil {
		return nil, fmt.Errorf("invalid date mapping: %w", err)
	}

	handler := api.NewHandler(st, mapper, api.Options{
		UploadDir:  filepath.Join(dataDir, "uploads"),
		ExportDir:  filepath.Join(dataDir, "exports"),
		SheetName:  cfg.Report.SheetName,
		DateFormat: cfg.Report.DateFormat,
		OutputFile: cfg.Report.OutputFile,
	})

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	s := &Server{
		router: router,
		api:    handler,
		http:   &http.Server{Handler: router},
	}
	s.setupRoutes()

	return s, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		s.api.RegisterRoutes(api)
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}

// Handler 返回 http.Handler（用于测试）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 启动服务器，Shutdown 之后返回 nil
func (s *Server) Run(addr string) error {
	s.http.Addr = addr
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 优雅关闭
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
