package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Divakar-randhi/incident-resolved/internal/config"
	"github.com/Divakar-randhi/incident-resolved/internal/exporter"
	"github.com/Divakar-randhi/incident-resolved/internal/importer"
	"github.com/Divakar-randhi/incident-resolved/internal/server"
	"github.com/Divakar-randhi/incident-resolved/internal/store"
)

var (
	port       = flag.Int("port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	devMode    = flag.Bool("dev", false, "开发模式")
	dataDir    = flag.String("dataDir", "", "数据目录 (覆盖配置文件)")
	loadFile   = flag.String("load", "", "导入指定 xlsx 后退出")
	reportFile = flag.String("report", "", "把报表写入指定 xlsx 后退出")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Incident Resolved - 事件处理日报表")
	fmt.Println("==========================================")

	// 加载配置
	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Printf("加载配置失败，使用默认配置: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 命令行参数覆盖配置
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	// 确保数据目录存在
	dir, err := config.EnsureDataDir(cfg)
	if err != nil {
		log.Fatalf("创建数据目录失败: %v", err)
	}
	fmt.Printf("数据目录: %s\n", dir)

	st, err := store.New(filepath.Join(dir, "incidents.db"))
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}
	defer st.Close()

	if *loadFile != "" || *reportFile != "" {
		if err := runOnce(cfg, st, *loadFile, *reportFile); err != nil {
			st.Close()
			log.Fatalf("%v", err)
		}
		return
	}

	srv, err := server.NewServer(cfg, st, dir)
	if err != nil {
		st.Close()
		log.Fatalf("创建服务失败: %v", err)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		fmt.Printf("服务启动中，监听端口 %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()
	fmt.Printf("请访问 http://localhost:%d/api/status\n", cfg.Server.Port)
	fmt.Println("\n按 Ctrl+C 停止服务...")

	// 等待信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在关闭服务...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("关闭服务失败: %v", err)
	}
}

// runOnce 单次模式：先导入（可选）再生成报表（可选）
func runOnce(cfg *config.AppConfig, st *store.Store, input, output string) error {
	if input != "" {
		mapper, err := cfg.DateMapping.Mapper()
		if err != nil {
			return fmt.Errorf("日期映射配置无效: %w", err)
		}
		rep, err := importer.NewCoordinator(st, mapper).Import(importer.ImportOptions{
			FilePath: input,
			Progress: func(e importer.ProgressEvent) {
				log.Printf("[%s] %s", e.Type, e.Message)
			},
		})
		if err != nil {
			return fmt.Errorf("导入失败: %w", err)
		}
		fmt.Printf("导入完成: 共 %d 行，有效 %d 行，拒绝 %d 行，人员 %d\n",
			rep.TotalRows, rep.ImportedRows, rep.RejectedRows, rep.Persons)
	}

	if output != "" {
		exp := exporter.NewExporter(st, cfg.Report.SheetName, cfg.Report.DateFormat)
		res, err := exp.Export(exporter.ExportOptions{
			OutputPath: output,
			Progress: func(p exporter.ProgressEvent) {
				log.Printf("%3d%% %-6s %s", p.Percent, p.Stage, p.Detail)
			},
		})
		if err != nil {
			return fmt.Errorf("生成报表失败: %w", err)
		}
		exporter.PrintSummary(os.Stdout, res.Report)
		fmt.Printf("报表已写入 %s (工作表 %q)\n", res.Path, res.Sheet)
	}

	return nil
}
