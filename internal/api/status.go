package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Divakar-randhi/incident-resolved/internal/store"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Initialized    bool             `json:"initialized"` // 是否已有数据
	Stats          store.DataStats  `json:"stats"`
	LastImport     *store.ImportLog `json:"lastImport,omitempty"`
	LastReportAt   string           `json:"lastReportAt,omitempty"`
	LastReportPath string           `json:"lastReportPath,omitempty"`
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	stats, err := h.store.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取统计失败"})
		return
	}

	lastImport, err := h.store.LatestImportLog()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取导入日志失败"})
		return
	}

	resp := StatusResponse{
		Initialized: stats.Incidents > 0,
		Stats:       stats,
		LastImport:  lastImport,
	}
	if v, ok, _ := h.store.GetConfig(store.ConfigLastReportAt); ok {
		resp.LastReportAt = v
	}
	if v, ok, _ := h.store.GetConfig(store.ConfigLastReportPath); ok {
		resp.LastReportPath = v
	}

	c.JSON(http.StatusOK, resp)
}
