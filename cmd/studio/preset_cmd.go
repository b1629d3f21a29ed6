package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPresetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "管理上架 Preset",
	}
	cmd.AddCommand(newPresetListCmd(), newPresetShowCmd(), newPresetDeleteCmd())
	return cmd
}

func newPresetListCmd() *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "列出全部 Preset",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()
			ctx := cmd.Context()

			if refresh {
				if err := a.presets.RefreshPresets(ctx); err != nil {
					return err
				}
			}
			presets, err := a.presets.ListPresets(ctx)
			if err != nil {
				return err
			}
			for _, p := range presets {
				kind := "实体"
				if p.IsDigital() {
					kind = "数字"
				}
				fmt.Printf("  #%-4d %-30s %s  $%.2f  标签 %d 个\n", p.ID, p.Name, kind, p.Price, len(p.DefaultTags))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "先从服务端重新拉取")
	return cmd
}

func newPresetShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "查看 Preset 详情",
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
			p, err := a.presets.GetPreset(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Printf("名称:     %s\n", p.Name)
			fmt.Printf("类型:     %s\n", p.ListingType)
			fmt.Printf("价格:     $%.2f × %d\n", p.Price, p.Quantity)
			fmt.Printf("标签:     %v\n", []string(p.DefaultTags))
			fmt.Printf("描述来源: %s\n", p.DescriptionSource)
			return nil
		},
	}
}

func newPresetDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "删除 Preset",
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
			if err := a.presets.DeletePreset(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Preset #%d 已删除\n", id)
			return nil
		},
	}
}
