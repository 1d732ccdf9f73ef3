package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/Divakar-randhi/incident-resolved/internal/parser"
	"github.com/Divakar-randhi/incident-resolved/internal/report"
)

// AppConfig 应用配置
type AppConfig struct {
	Server      ServerConfig      `toml:"server"`
	Data        DataConfig        `toml:"data"`
	DateMapping DateMappingConfig `toml:"date_mapping"`
	Report      ReportConfig      `toml:"report"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// DateMappingConfig 日期编号 -> 日历日期的基准（dayId = BaseDayID 对应 BaseYear-BaseMonth-BaseDay）。
// MaxOffsetDays 限定编号距基准的最大天数，超出的行按无法映射拒绝；0 表示不限。
type DateMappingConfig struct {
	BaseYear      int `toml:"base_year"`
	BaseMonth     int `toml:"base_month"`
	BaseDay       int `toml:"base_day"`
	BaseDayID     int `toml:"base_day_id"`
	MaxOffsetDays int `toml:"max_offset_days"`
}

// ReportConfig 报表输出配置
type ReportConfig struct {
	SheetName  string `toml:"sheet_name"`
	DateFormat string `toml:"date_format"`
	OutputFile string `toml:"output_file"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    8080,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		DateMapping: DateMappingConfig{
			BaseYear:      2025,
			BaseMonth:     9,
			BaseDay:       1,
			BaseDayID:     45901,
			MaxOffsetDays: 3660,
		},
		Report: ReportConfig{
			SheetName:  "Report",
			DateFormat: report.DefaultDateFormat,
			OutputFile: "report_output.xlsx",
		},
	}
}

// Mapper 根据配置构造日期映射
func (c DateMappingConfig) Mapper() (*parser.OffsetMapper, error) {
	if c.MaxOffsetDays < 0 {
		return nil, fmt.Errorf("max_offset_days must not be negative: %d", c.MaxOffsetDays)
	}
	m, err := parser.NewOffsetMapper(c.BaseYear, time.Month(c.BaseMonth), c.BaseDay, c.BaseDayID)
	if err != nil {
		return nil, err
	}
	return m.WithWindow(c.MaxOffsetDays), nil
}

// Validate 校验配置
func (c *AppConfig) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port: %d", c.Server.Port)
	}
	if _, err := c.DateMapping.Mapper(); err != nil {
		return fmt.Errorf("invalid date_mapping: %w", err)
	}
	if strings.TrimSpace(c.Report.SheetName) == "" {
		return fmt.Errorf("report.sheet_name is empty")
	}
	if !strings.EqualFold(filepath.Ext(c.Report.OutputFile), ".xlsx") {
		return fmt.Errorf("report.output_file must be an .xlsx file: %q", c.Report.OutputFile)
	}
	if len([]rune(c.Report.SheetName)) > 31 {
		return fmt.Errorf("report.sheet_name exceeds 31 characters: %q", c.Report.SheetName)
	}
	return nil
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo 从可执行文件同目录的 config.toml 加载配置并返回元信息
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return LoadConfigFrom(filepath.Join(exeDir, "config.toml"))
}

// LoadConfigFrom 从指定路径加载配置；文件不存在时使用默认配置
func LoadConfigFrom(configPath string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: configPath}
	config := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, info, err
	}
	if err == nil {
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, fmt.Errorf("failed to decode %s: %w", configPath, err)
		}
	}

	// 环境变量覆盖（部署 / 本地运行）
	if err := applyEnv(config); err != nil {
		return nil, info, err
	}

	if err := config.Validate(); err != nil {
		return nil, info, err
	}

	return config, info, nil
}

func applyEnv(config *AppConfig) error {
	if v := os.Getenv("INCIDENT_REPORT_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv("INCIDENT_REPORT_SHEET"); v != "" {
		config.Report.SheetName = v
	}
	if v := os.Getenv("INCIDENT_REPORT_BASE_DATE"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return fmt.Errorf("invalid INCIDENT_REPORT_BASE_DATE %q: %w", v, err)
		}
		config.DateMapping.BaseYear = d.Year()
		config.DateMapping.BaseMonth = int(d.Month())
		config.DateMapping.BaseDay = d.Day()
	}
	if v := os.Getenv("INCIDENT_REPORT_BASE_DAY_ID"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid INCIDENT_REPORT_BASE_DAY_ID %q: %w", v, err)
		}
		config.DateMapping.BaseDayID = id
	}
	return nil
}

// ResolveDataDir 数据目录：绝对路径原样使用，相对路径基于可执行文件目录
func ResolveDataDir(config *AppConfig) string {
	if filepath.IsAbs(config.Data.DataDir) {
		return config.Data.DataDir
	}
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, config.Data.DataDir)
}

// EnsureDataDir 确保数据目录及子目录存在
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := ResolveDataDir(config)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	// 创建子目录
	subdirs := []string{"uploads", "exports"}
	for _, subdir := range subdirs {
		path := filepath.Join(dataDir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}

// GetDataPath 获取数据文件路径
func GetDataPath(config *AppConfig, subdir, filename string) string {
	return filepath.Join(ResolveDataDir(config), subdir, filename)
}
