package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/Divakar-randhi/incident-resolved/internal/exporter"
	"github.com/Divakar-randhi/incident-resolved/internal/importer"
	"github.com/Divakar-randhi/incident-resolved/internal/parser"
	"github.com/Divakar-randhi/incident-resolved/internal/report"
)

// UploadResponse 上传处理结果
type UploadResponse struct {
	Filename    string                 `json:"filename"`
	Size        string                 `json:"size"`
	Import      *importer.ImportReport `json:"import"`
	ReportSheet string                 `json:"reportSheet,omitempty"`
	People      int                    `json:"people"`
	TotalDays   int                    `json:"totalDays"`
	GrandTotal  int                    `json:"grandTotal"`
	DownloadURL string                 `json:"downloadUrl,omitempty"`
	Warning     string                 `json:"warning,omitempty"`
}

// Upload 上传 Excel：导入记录，并把报表工作表写回上传的工作簿
// POST /api/upload
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}

	filename := sanitizeFilename(fileHeader.Filename)
	if filename == "" || !isXLSX(filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "仅支持 .xlsx 文件"})
		return
	}

	savedPath := filepath.Join(h.opts.UploadDir, filename)
	if err := c.SaveUploadedFile(fileHeader, savedPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存文件失败"})
		return
	}
	log.Printf("upload saved: %s (%s)", savedPath, humanize.Bytes(uint64(fileHeader.Size)))

	importReport, err := h.importer.Import(importer.ImportOptions{
		FilePath:         savedPath,
		OriginalFilename: fileHeader.Filename,
	})
	if err != nil {
		status := http.StatusInternalServerError
		var inErr *parser.InputError
		if errors.As(err, &inErr) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": fmt.Sprintf("导入失败: %v", err)})
		return
	}

	resp := UploadResponse{
		Filename: filename,
		Size:     humanize.Bytes(uint64(fileHeader.Size)),
		Import:   importReport,
	}

	result, err := h.exporter.Export(exporter.ExportOptions{OutputPath: savedPath})
	switch {
	case errors.Is(err, report.ErrNoObservations):
		resp.Warning = "没有有效记录，未生成报表"
		c.JSON(http.StatusOK, resp)
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("生成报表失败: %v", err)})
		return
	}

	resp.ReportSheet = result.Sheet
	resp.People = len(result.Report.People)
	resp.TotalDays = result.Report.TotalDays
	resp.GrandTotal = result.Report.GrandTotal

	// 处理后的上传文件只保留到被下载为止
	token := h.downloads.put(download{
		filePath:    savedPath,
		filename:    filename,
		removeAfter: true,
	}, downloadTTL)
	resp.DownloadURL = "/api/export/download/" + token

	c.JSON(http.StatusOK, resp)
}
