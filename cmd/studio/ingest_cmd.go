package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"etsy_bulk_v1_202608/internal/model"
	"etsy_bulk_v1_202608/internal/service"
)

func newIngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <目录>",
		Short: "扫描文件夹，预览将生成的候选商品",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.ingest.IngestDir(args[0])
			if err != nil {
				return err
			}

			for _, w := range result.Warnings {
				fmt.Printf("警告: %s\n", w)
			}
			fmt.Printf("识别出 %d 个候选商品:\n", len(result.Candidates))
			for _, cand := range result.Candidates {
				fmt.Printf("  %-20s 图片 %d 张", cand.FolderName, len(cand.Images))
				if len(cand.Videos) > 0 {
					fmt.Printf("，视频 %d 个", len(cand.Videos))
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func newAssembleCmd() *cobra.Command {
	var presetID int64
	var price float64
	var title string
	var scheduledAt string
	var submit bool

	cmd := &cobra.Command{
		Use:   "assemble <目录>",
		Short: "扫描文件夹并套用 Preset 生成草稿，可直接提交上传",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()
			ctx := cmd.Context()

			result, err := a.ingest.IngestDir(args[0])
			if err != nil {
				return err
			}
			for _, w := range result.Warnings {
				fmt.Printf("警告: %s\n", w)
			}

			preset, err := a.presets.GetPreset(ctx, presetID)
			if err != nil {
				return fmt.Errorf("加载 Preset %d 失败: %v", presetID, err)
			}

			var overrides *service.Overrides
			if price > 0 {
				overrides = &service.Overrides{Price: &price}
			}

			// 单个候选失败不中断整批，失败项留在扫描结果里
			for _, cand := range result.Candidates {
				listing, warnings, err := a.resolver.Resolve(ctx, cand, preset, overrides)
				if err != nil {
					fmt.Printf("  %-20s 解析失败: %v\n", cand.FolderName, err)
					continue
				}
				for _, w := range warnings {
					fmt.Printf("  %-20s %s\n", cand.FolderName, w)
				}
				if err := a.workspace.Add([]*model.Listing{listing}); err != nil {
					return err
				}
				a.workspace.Select(listing.ID)
				fmt.Printf("  %-20s SEO %d 分  %s\n", cand.FolderName, listing.SEOScore, listing.Title)
			}

			fmt.Printf("工作区共 %d 个草稿，平均 SEO %d 分\n", a.workspace.Len(), a.workspace.AverageSEOScore())

			if !submit {
				return nil
			}

			var at *time.Time
			if scheduledAt != "" {
				parsed, err := time.Parse(time.RFC3339, scheduledAt)
				if err != nil {
					return fmt.Errorf("无法解析定时时间（需要 RFC3339）: %v", err)
				}
				at = &parsed
			}

			job, err := a.uploads.Submit(ctx, title, at)
			if err != nil {
				return err
			}
			fmt.Printf("已提交上传任务 #%d（%s），包含 %d 个草稿\n", job.ID, job.Status, len(job.ListingRefs))
			return nil
		},
	}
	cmd.Flags().Int64Var(&presetID, "preset", 0, "Preset ID（必填）")
	cmd.Flags().Float64Var(&price, "price", 0, "覆盖价格")
	cmd.Flags().StringVar(&title, "title", "", "上传任务标题")
	cmd.Flags().StringVar(&scheduledAt, "at", "", "定时发布时间（RFC3339）")
	cmd.Flags().BoolVar(&submit, "submit", false, "生成草稿后直接提交上传任务")
	cmd.MarkFlagRequired("preset")
	cmd.Args = cobra.ExactArgs(1)
	return cmd
}
