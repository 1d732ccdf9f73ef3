package importer

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Divakar-randhi/incident-resolved/internal/parser"
	"github.com/Divakar-randhi/incident-resolved/internal/store"
)

// 导入状态
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Coordinator 导入协调器：解析文件并把有效记录写入数据库
type Coordinator struct {
	store  *store.Store
	parser *parser.Parser
}

// NewCoordinator 创建导入协调器
func NewCoordinator(store *store.Store, mapper parser.DateMapper) *Coordinator {
	return &Coordinator{
		store:  store,
		parser: parser.NewParser(mapper),
	}
}

// ImportOptions 导入选项
type ImportOptions struct {
	FilePath         string
	OriginalFilename string
	ClearExisting    bool // 是否先清空现有数据
	Progress         func(ProgressEvent)
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`    // start/parsed/saved/warning/done/error
	Message   string      `json:"message"` // 事件消息
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ImportReport 导入报告
type ImportReport struct {
	ImportID     string                      `json:"importId"`
	Filename     string                      `json:"filename"`
	SheetName    string                      `json:"sheetName"`
	TotalRows    int                         `json:"totalRows"`
	ImportedRows int                         `json:"importedRows"`
	RejectedRows int                         `json:"rejectedRows"`
	RejectedBy   map[parser.RejectReason]int `json:"rejectedBy,omitempty"`
	Persons      int                         `json:"persons"`
	Duration     time.Duration               `json:"duration"`
}

// Import 执行导入。文件无法读取时整体失败（返回的错误包装 *parser.InputError），
// 单行问题只计入 RejectedRows。
func (c *Coordinator) Import(opts ImportOptions) (*ImportReport, error) {
	startTime := time.Now()

	filename := opts.OriginalFilename
	if filename == "" {
		filename = filepath.Base(opts.FilePath)
	}

	rep := &ImportReport{
		ImportID: uuid.NewString(),
		Filename: filename,
	}

	var fileSize int64
	if st, err := os.Stat(opts.FilePath); err == nil {
		fileSize = st.Size()
	}

	c.sendProgress(opts, ProgressEvent{
		Type:    "start",
		Message: "开始导入 Excel 文件",
		Data: map[string]interface{}{
			"filename": filename,
			"importId": rep.ImportID,
		},
	})

	if err := c.store.CreateImportLog(rep.ImportID, filename, opts.FilePath, fileSize); err != nil {
		return nil, err
	}

	result, err := c.parser.ParseFile(opts.FilePath)
	if err != nil {
		return nil, c.fail(opts, rep, fmt.Errorf("解析文件失败: %w", err))
	}

	rep.SheetName = result.SheetName
	rep.TotalRows = result.TotalRows
	rep.RejectedRows = result.Rejected
	rep.RejectedBy = result.RejectedBy

	c.sendProgress(opts, ProgressEvent{
		Type:    "parsed",
		Message: fmt.Sprintf("Sheet \"%s\" 解析完成: 有效 %d 行, 跳过 %d 行", result.SheetName, result.Accepted, result.Rejected),
		Data:    result,
	})
	log.Printf("parsed %d incidents from %s (%d rows skipped)", result.Accepted, filename, result.Rejected)

	if opts.ClearExisting {
		if err := c.store.ClearIncidents(); err != nil {
			return nil, c.fail(opts, rep, fmt.Errorf("清空旧数据失败: %w", err))
		}
	}

	records := result.Records()
	batch := make([]store.IncidentRecord, 0, len(records))
	persons := make(map[string]struct{})
	for _, r := range records {
		batch = append(batch, store.IncidentRecord{
			PersonName: r.PersonName,
			DayID:      r.DayID,
			Date:       r.Date,
			Count:      r.Count,
		})
		persons[r.PersonName] = struct{}{}
	}

	saved, err := c.store.SaveIncidents(rep.ImportID, batch)
	if err != nil {
		return nil, c.fail(opts, rep, fmt.Errorf("批量写入失败: %w", err))
	}
	rep.ImportedRows = saved
	rep.Persons = len(persons)

	c.sendProgress(opts, ProgressEvent{
		Type:    "saved",
		Message: fmt.Sprintf("写入 %d 条记录, 涉及 %d 人", saved, rep.Persons),
	})

	if err := c.store.UpdateImportLog(rep.ImportID, rep.TotalRows, rep.ImportedRows, rep.RejectedRows, StatusCompleted, ""); err != nil {
		c.sendProgress(opts, ProgressEvent{
			Type:    "warning",
			Message: fmt.Sprintf("更新导入日志失败: %v", err),
		})
	}

	rep.Duration = time.Since(startTime)
	c.sendProgress(opts, ProgressEvent{
		Type:    "done",
		Message: "导入完成",
		Data:    rep,
	})
	log.Printf("data loaded: %d incidents for %d people (import %s)", rep.ImportedRows, rep.Persons, rep.ImportID)

	return rep, nil
}

// fail 记录失败状态并返回原错误
func (c *Coordinator) fail(opts ImportOptions, rep *ImportReport, err error) error {
	if uerr := c.store.UpdateImportLog(rep.ImportID, rep.TotalRows, 0, rep.RejectedRows, StatusFailed, err.Error()); uerr != nil {
		log.Printf("更新导入日志失败: %v", uerr)
	}
	c.sendProgress(opts, ProgressEvent{
		Type:    "error",
		Message: err.Error(),
	})
	return err
}

// sendProgress 发送进度事件
func (c *Coordinator) sendProgress(opts ImportOptions, event ProgressEvent) {
	if opts.Progress == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	opts.Progress(event)
}
