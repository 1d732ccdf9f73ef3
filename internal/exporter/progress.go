package exporter

// Stage 报表生成阶段
type Stage string

const (
	StageFetch  Stage = "fetch"  // 读取全部事件记录
	StagePivot  Stage = "pivot"  // 汇总 + 透视 + 人员统计
	StageRender Stage = "render" // 生成带样式的表格
	StageWrite  Stage = "write"  // 替换工作簿中的报表 Sheet
	StageDone   Stage = "done"
)

var stagePercent = map[Stage]int{
	StageFetch:  5,
	StagePivot:  30,
	StageRender: 60,
	StageWrite:  80,
	StageDone:   100,
}

// ProgressEvent 导出进度事件；Detail 为该阶段的规模说明
type ProgressEvent struct {
	Stage   Stage  `json:"stage"`
	Percent int    `json:"percent"`
	Detail  string `json:"detail,omitempty"`
}

// ProgressFunc 进度回调
type ProgressFunc func(ProgressEvent)

func (f ProgressFunc) emit(stage Stage, detail string) {
	if f == nil {
		return
	}
	f(ProgressEvent{
		Stage:   stage,
		Percent: stagePercent[stage],
		Detail:  detail,
	})
}
