package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"etsy_bulk_v1_202608/internal/task"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "常驻运行：轮询上传状态并维护店铺缓存新鲜度",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()
			ctx := cmd.Context()

			uploadTask := task.NewUploadStatusTask(a.uploads, a.session)
			cacheTask := task.NewShopCacheTask(a.shopView, a.session)

			uploadTask.Start()
			cacheTask.Start()
			defer uploadTask.Stop()
			defer cacheTask.Stop()

			fmt.Println("后台任务运行中，Ctrl+C 退出")
			<-ctx.Done()
			return nil
		},
	}
}
