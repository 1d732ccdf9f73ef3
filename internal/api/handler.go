package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Divakar-randhi/incident-resolved/internal/exporter"
	"github.com/Divakar-randhi/incident-resolved/internal/importer"
	"github.com/Divakar-randhi/incident-resolved/internal/parser"
	"github.com/Divakar-randhi/incident-resolved/internal/store"
)

// Options 处理器目录与报表配置
type Options struct {
	UploadDir  string
	ExportDir  string
	SheetName  string
	DateFormat string
	OutputFile string // GET /api/report 默认输出文件名
}

// Handler API 处理器
type Handler struct {
	store     *store.Store
	importer  *importer.Coordinator
	exporter  *exporter.Exporter
	downloads *downloadStore
	opts      Options
}

// NewHandler 创建 API 处理器
func NewHandler(st *store.Store, mapper parser.DateMapper, opts Options) *Handler {
	if opts.OutputFile == "" {
		opts.OutputFile = defaultReportFile
	}
	return &Handler{
		store:     st,
		importer:  importer.NewCoordinator(st, mapper),
		exporter:  exporter.NewExporter(st, opts.SheetName, opts.DateFormat),
		downloads: newDownloadStore(),
		opts:      opts,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 上传并生成报表
	router.POST("/upload", h.Upload)

	// 重新生成报表
	router.GET("/report", h.GenerateReport)

	// 一次性下载
	router.GET("/export/download/:token", h.Download)
}
