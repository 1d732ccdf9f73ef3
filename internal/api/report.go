package api

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/Divakar-randhi/incident-resolved/internal/exporter"
	"github.com/Divakar-randhi/incident-resolved/internal/report"
)

const defaultReportFile = "report_output.xlsx"

// GenerateReport 用全部已导入记录重新生成报表并下载
// GET /api/report?outputFile=report_output.xlsx
func (h *Handler) GenerateReport(c *gin.Context) {
	name := sanitizeFilename(c.DefaultQuery("outputFile", h.opts.OutputFile))
	if name == "" {
		name = sanitizeFilename(h.opts.OutputFile)
	}
	if !isXLSX(name) {
		name += ".xlsx"
	}

	outPath := filepath.Join(h.opts.ExportDir, name)
	_, err := h.exporter.Export(exporter.ExportOptions{OutputPath: outPath})
	if errors.Is(err, report.ErrNoObservations) {
		c.JSON(http.StatusNotFound, gin.H{"error": "暂无数据，请先上传"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("生成报表失败: %v", err)})
		return
	}

	c.Header("Content-Type", xlsxContentType)
	c.FileAttachment(outPath, name)
}
