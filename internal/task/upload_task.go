package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"etsy_bulk_v1_202608/internal/service"
	"etsy_bulk_v1_202608/internal/session"
)

// UploadStatusTask 周期性观测后端上传任务的状态流转
// 上传进度归后端所有，本地只拉取观测结果刷新记录
type UploadStatusTask struct {
	Uploads *service.UploadService
	Session *session.Store
	Cron    *cron.Cron
}

func NewUploadStatusTask(uploads *service.UploadService, sess *session.Store) *UploadStatusTask {
	return &UploadStatusTask{
		Uploads: uploads,
		Session: sess,
		Cron:    cron.New(cron.WithSeconds()), // 支持秒级控制
	}
}

// Start 启动定时任务
func (t *UploadStatusTask) Start() {
	// 首次执行
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		t.pollJob(ctx)
	}()

	// 每 30 秒拉一次，定时任务到点后的 scheduled→complete 流转靠这里观测
	_, err := t.Cron.AddFunc("*/30 * * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		t.pollJob(ctx)
	})

	if err != nil {
		log.Fatalf("无法启动上传状态轮询任务: %v", err)
	}

	t.Cron.Start()
	log.Println("上传状态轮询任务已启动 (每30秒观测一次)")
}

// Stop 停止定时任务
func (t *UploadStatusTask) Stop() {
	t.Cron.Stop()
}

func (t *UploadStatusTask) pollJob(ctx context.Context) {
	// 未登录时跳过，避免无意义的 401
	if !t.Session.IsAuthenticated() {
		return
	}
	if err := t.Uploads.RefreshStatuses(ctx); err != nil {
		log.Printf("[Cron] 上传状态同步失败: %v", err)
	}
}
