package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"etsy_bulk_v1_202608/internal/api/dto"
	"etsy_bulk_v1_202608/internal/service"
)

func newShopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "浏览与批量编辑在售商品",
	}
	cmd.AddCommand(
		newShopListCmd(),
		newShopSyncCmd(),
		newShopEditCmd(),
		newShopRegenCmd(),
		newShopImageCmd(),
	)
	return cmd
}

func newShopListCmd() *cobra.Command {
	var state string
	var page int
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "分页查看店铺商品",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()
			ctx := cmd.Context()

			if state != "" {
				if err := a.shopView.SetState(state); err != nil {
					return err
				}
			}
			if search != "" {
				a.shopView.SetSearch(search)
			}
			if page > 1 {
				a.shopView.SetPage(page)
			}

			if err := a.shopView.Load(ctx); err != nil {
				return err
			}

			info := a.shopView.CacheInfo()
			fmt.Printf("共 %d 条（第 %d/%d 页），缓存 %.1f 小时前\n",
				a.shopView.Total(), page, a.shopView.TotalPages(), info.AgeHours)
			for _, l := range a.shopView.Listings() {
				fmt.Printf("  #%-12d %-50s [%s] 图片 %d 张\n",
					l.EtsyListingID, truncate(l.Title, 50), l.State, len(l.Images))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "商品状态 (active/draft/inactive/expired/sold_out)")
	cmd.Flags().IntVar(&page, "page", 1, "页码")
	cmd.Flags().StringVar(&search, "search", "", "标题搜索")
	return cmd
}

func newShopSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "强制从 Etsy 重新同步店铺商品",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.shopView.Sync(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("同步完成，共 %d 条商品\n", a.shopView.Total())
			return nil
		},
	}
}

// ==================== 批量字段编辑 ====================

func newShopEditCmd() *cobra.Command {
	var ids []int64
	var title string
	var tags []string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "对选中商品批量修改标题/标签",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()
			ctx := cmd.Context()

			sess, err := startEditSession(ctx, a, ids)
			if err != nil {
				return err
			}

			for _, id := range ids {
				if title != "" {
					if err := sess.SetTitle(id, title); err != nil {
						return err
					}
				}
				if len(tags) > 0 {
					if err := sess.SetTags(id, tags); err != nil {
						return err
					}
				}
			}

			result, err := a.bulk.ApplyFieldEdits(ctx, sess)
			if err != nil {
				return err
			}
			printBulkResult(result.Success, result.Failed)
			return nil
		},
	}
	cmd.Flags().Int64SliceVar(&ids, "ids", nil, "商品 ID 列表（必填）")
	cmd.Flags().StringVar(&title, "title", "", "新标题")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "新标签（逗号分隔）")
	cmd.MarkFlagRequired("ids")
	return cmd
}

func newShopRegenCmd() *cobra.Command {
	var ids []int64
	var field string
	var rank int
	var guidance string

	cmd := &cobra.Command{
		Use:   "regen",
		Short: "对选中商品逐个 AI 重生成标题或标签",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()
			ctx := cmd.Context()

			sess, err := startEditSession(ctx, a, ids)
			if err != nil {
				return err
			}

			outcomes := a.bulk.RegenerateField(ctx, sess, field, rank, guidance)
			for _, o := range outcomes {
				if o.Err != nil {
					fmt.Printf("  #%d 失败: %v\n", o.ListingID, o.Err)
					continue
				}
				local, _ := sess.Local(o.ListingID)
				fmt.Printf("  #%d %s\n", o.ListingID, local.Title)
			}

			// 重生成结果落在本地副本，统一提交一次
			result, err := a.bulk.ApplyFieldEdits(ctx, sess)
			if err != nil {
				return err
			}
			printBulkResult(result.Success, result.Failed)
			return nil
		},
	}
	cmd.Flags().Int64SliceVar(&ids, "ids", nil, "商品 ID 列表（必填）")
	cmd.Flags().StringVar(&field, "field", "title", "重生成字段 (title/tags)")
	cmd.Flags().IntVar(&rank, "rank", 1, "作为生成依据的图片槽位")
	cmd.Flags().StringVar(&guidance, "guidance", "", "附加提示词")
	cmd.MarkFlagRequired("ids")
	return cmd
}

// ==================== 图片槽位操作 ====================

func newShopImageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "批量图片槽位操作",
	}
	cmd.AddCommand(newShopImageAddCmd(), newShopImageRemoveCmd())
	return cmd
}

func newShopImageAddCmd() *cobra.Command {
	var ids []int64
	var rank int
	var replace bool

	cmd := &cobra.Command{
		Use:   "add <图片文件...>",
		Short: "从指定槽位起插入图片",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()
			ctx := cmd.Context()

			sess, err := startEditSession(ctx, a, ids)
			if err != nil {
				return err
			}

			behavior := service.BehaviorShift
			if replace {
				behavior = service.BehaviorReplace
			}
			result := a.bulk.UploadImagesAtRank(ctx, sess, rank, args, behavior)
			for _, w := range result.Warnings {
				fmt.Printf("警告: %s\n", w)
			}
			printBulkResult(result.Success, result.Failed)
			return nil
		},
	}
	cmd.Flags().Int64SliceVar(&ids, "ids", nil, "商品 ID 列表（必填）")
	cmd.Flags().IntVar(&rank, "rank", 1, "起始槽位 (1-10)")
	cmd.Flags().BoolVar(&replace, "replace", false, "覆盖槽位而不是后移现有图片")
	cmd.MarkFlagRequired("ids")
	return cmd
}

func newShopImageRemoveCmd() *cobra.Command {
	var ids []int64
	var rank int

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "删除指定槽位的图片（槽位无图按成功处理）",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()
			ctx := cmd.Context()

			sess, err := startEditSession(ctx, a, ids)
			if err != nil {
				return err
			}

			result := a.bulk.RemoveImageAtRank(ctx, sess, rank)
			printBulkResult(result.Success, result.Failed)
			return nil
		},
	}
	cmd.Flags().Int64SliceVar(&ids, "ids", nil, "商品 ID 列表（必填）")
	cmd.Flags().IntVar(&rank, "rank", 1, "槽位 (1-10)")
	cmd.MarkFlagRequired("ids")
	return cmd
}

// ==================== 辅助函数 ====================

// startEditSession 加载店铺视图并按 ID 选中，开启编辑会话
func startEditSession(ctx context.Context, a *app, ids []int64) (*service.EditSession, error) {
	if err := a.shopView.Load(ctx); err != nil {
		return nil, err
	}
	known := make(map[int64]bool)
	for _, l := range a.shopView.Listings() {
		known[l.EtsyListingID] = true
	}
	for _, id := range ids {
		if !known[id] {
			return nil, fmt.Errorf("商品 %d 不在当前页，请先用 shop list 定位", id)
		}
		a.shopView.Select(id)
	}
	selected := a.shopView.SelectedListings()
	if len(selected) == 0 {
		return nil, fmt.Errorf("没有选中任何商品")
	}
	return a.bulk.StartSession(selected), nil
}

func printBulkResult(success []int64, failed []dto.BulkItemError) {
	fmt.Printf("成功 %d 条", len(success))
	if len(failed) > 0 {
		fmt.Printf("，失败 %d 条", len(failed))
	}
	fmt.Println()
	for _, f := range failed {
		fmt.Printf("  #%d 失败: %s\n", f.ListingID, f.Error)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max-1]) + "…"
}
