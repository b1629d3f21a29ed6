package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"etsy_bulk_v1_202608/internal/service"
)

func newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "管理描述模板",
	}
	cmd.AddCommand(newTemplateListCmd(), newTemplatePreviewCmd())
	return cmd
}

func newTemplateListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "列出全部描述模板",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()

			tpls, err := a.presets.ListTemplates(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range tpls {
				fmt.Printf("  #%-4d %-30s %d 字符\n", t.ID, t.Name, len(t.Content))
			}
			return nil
		},
	}
}

func newTemplatePreviewCmd() *cobra.Command {
	var title string
	var price float64
	cmd := &cobra.Command{
		Use:   "preview <id>",
		Short: "用示例数据渲染模板占位符",
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
			tpl, err := a.presets.GetTemplate(cmd.Context(), id)
			if err != nil {
				return err
			}

			vars := service.NewRenderVars(title, "sample.jpg", "示例 Preset", price, time.Now())
			fmt.Println(service.RenderTemplate(tpl.Content, vars))
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "Sample Product Title", "示例标题")
	cmd.Flags().Float64Var(&price, "price", 9.99, "示例价格")
	return cmd
}

// parseID 解析命令行里的数字 ID
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("无效的 ID: %q", s)
	}
	return id, nil
}
