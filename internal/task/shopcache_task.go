package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"etsy_bulk_v1_202608/internal/service"
	"etsy_bulk_v1_202608/internal/session"
)

// ShopCacheTask 周期性检查店铺缓存的新鲜度，过期则后台重新拉取
type ShopCacheTask struct {
	ShopView *service.ShopViewService
	Session  *session.Store
	Cron     *cron.Cron
}

func NewShopCacheTask(shopView *service.ShopViewService, sess *session.Store) *ShopCacheTask {
	return &ShopCacheTask{
		ShopView: shopView,
		Session:  sess,
		Cron:     cron.New(cron.WithSeconds()),
	}
}

// Start 启动定时任务
func (t *ShopCacheTask) Start() {
	// 每 10 分钟检查一次缓存年龄
	_, err := t.Cron.AddFunc("0 */10 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		t.refreshJob(ctx)
	})

	if err != nil {
		log.Fatalf("无法启动店铺缓存检查任务: %v", err)
	}

	t.Cron.Start()
	log.Println("店铺缓存检查任务已启动 (每10分钟检查一次)")
}

// Stop 停止定时任务
func (t *ShopCacheTask) Stop() {
	t.Cron.Stop()
}

func (t *ShopCacheTask) refreshJob(ctx context.Context) {
	if !t.Session.IsAuthenticated() {
		return
	}
	if !t.ShopView.NeedsRefresh() {
		return
	}

	log.Println("[Cron] 店铺缓存已过期，后台重新拉取")
	if err := t.ShopView.Load(ctx); err != nil {
		log.Printf("[Cron] 店铺缓存刷新失败: %v", err)
	}
}
