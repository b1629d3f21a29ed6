package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uploads",
		Short: "管理上传任务",
	}
	cmd.AddCommand(
		newUploadListCmd(),
		newUploadPublishCmd(),
		newUploadScheduleCmd(),
		newUploadCancelCmd(),
		newUploadDeleteCmd(),
	)
	return cmd
}

func newUploadListCmd() *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "查看任务列表",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()
			ctx := cmd.Context()

			if refresh {
				if err := a.uploads.RefreshStatuses(ctx); err != nil {
					return err
				}
			}
			jobs, err := a.uploads.List(ctx)
			if err != nil {
				return err
			}
			for _, j := range jobs {
				fmt.Printf("  #%-4d %-30s [%s] 草稿 %d 个", j.ID, j.Title, j.Status, len(j.ListingRefs))
				if j.ScheduledFor != nil {
					fmt.Printf("  定时 %s", j.ScheduledFor.Local().Format("2006-01-02 15:04"))
				}
				if j.ErrorMessage != "" {
					fmt.Printf("  错误: %s", j.ErrorMessage)
				}
				fmt.Println()
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "先从服务端同步状态")
	return cmd
}

func newUploadPublishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish <id>",
		Short: "立即发布定时任务",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.uploads.Publish(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("任务 #%d 已开始发布\n", id)
			return nil
		},
	}
}

func newUploadScheduleCmd() *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "schedule <id>",
		Short: "把任务改为定时发布",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			parsed, err := time.Parse(time.RFC3339, at)
			if err != nil {
				return fmt.Errorf("无法解析定时时间（需要 RFC3339）: %v", err)
			}
			if err := a.uploads.Schedule(cmd.Context(), id, parsed); err != nil {
				return err
			}
			fmt.Printf("任务 #%d 已定时到 %s\n", id, parsed.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "发布时间（RFC3339，必填）")
	cmd.MarkFlagRequired("at")
	return cmd
}

func newUploadCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "取消定时任务",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.uploads.Cancel(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("任务 #%d 已取消\n", id)
			return nil
		},
	}
}

func newUploadDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "删除任务记录",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.uploads.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("任务 #%d 已删除\n", id)
			return nil
		},
	}
}
