package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"etsy_bulk_v1_202608/internal/config"
	"etsy_bulk_v1_202608/internal/gateway"
	"etsy_bulk_v1_202608/internal/repository"
	"etsy_bulk_v1_202608/internal/service"
	"etsy_bulk_v1_202608/internal/session"
	"etsy_bulk_v1_202608/pkg/database"
)

var demoMode bool

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "studio: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "studio",
		Short:        "Etsy 批量上架工作台",
		Long:         `批量上架工作台：扫描本地文件夹生成商品候选，套用 Preset 生成草稿，批量编辑在售商品并提交上传任务。`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().BoolVar(&demoMode, "demo", false, "演示模式（不访问后端，使用内置示例数据）")
	cmd.AddCommand(
		newLoginCmd(),
		newStatusCmd(),
		newIngestCmd(),
		newAssembleCmd(),
		newPresetCmd(),
		newTemplateCmd(),
		newShopCmd(),
		newUploadCmd(),
		newSEOCmd(),
		newWatchCmd(),
	)
	return cmd
}

// ==================== 应用装配 ====================

// app 一次命令执行的全部依赖
type app struct {
	cfg     *config.Config
	session *session.Store
	gateway *gateway.Client

	ingest    *service.IngestService
	presets   *service.PresetStoreService
	resolver  *service.ResolverService
	workspace *service.WorkspaceService
	shopView  *service.ShopViewService
	bulk      *service.BulkEditService
	uploads   *service.UploadService
	scorer    *service.SEOScorer
}

// initApp 装配依赖图
// 会话缓存默认落在内存 sqlite；--demo 时网关单点切到内置数据
func initApp() (*app, error) {
	cfg := config.Load()

	sess := session.NewStore()
	if demoMode || cfg.DemoMode {
		sess.SetDemoMode(true)
	}

	gw := gateway.NewClient(cfg.BackendURL, sess)
	gw.SetTimeout(cfg.RequestTimeout)

	db, err := database.OpenSessionDB(cfg.SessionDSN)
	if err != nil {
		return nil, fmt.Errorf("打开会话缓存失败: %v", err)
	}

	presetRepo := repository.NewPresetRepository(db)
	tplRepo := repository.NewTemplateRepository(db)
	jobRepo := repository.NewUploadJobRepository(db)

	previewDir := cfg.PreviewDir
	if previewDir == "" {
		previewDir, err = os.MkdirTemp("", "studio-previews-")
		if err != nil {
			return nil, fmt.Errorf("创建缩略图临时目录失败: %v", err)
		}
	}
	ingest, err := service.NewIngestService(previewDir)
	if err != nil {
		return nil, fmt.Errorf("初始化文件扫描失败: %v", err)
	}

	presets := service.NewPresetStoreService(gw, gw, presetRepo, tplRepo)
	workspace := service.NewWorkspaceService()

	return &app{
		cfg:       cfg,
		session:   sess,
		gateway:   gw,
		ingest:    ingest,
		presets:   presets,
		resolver:  service.NewResolverService(presets, gw),
		workspace: workspace,
		shopView:  service.NewShopViewService(gw),
		bulk:      service.NewBulkEditService(gw),
		uploads:   service.NewUploadService(gw, workspace, jobRepo),
		scorer:    service.NewSEOScorer(),
	}, nil
}

// Close 释放会话资源（缩略图临时目录等）
func (a *app) Close() {
	a.ingest.Close()
}
