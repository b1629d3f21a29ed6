package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSEOCmd() *cobra.Command {
	var description string
	var tags []string

	cmd := &cobra.Command{
		Use:   "seo <标题>",
		Short: "对标题/描述/标签做本地 SEO 评分",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()

			result := a.scorer.Score(args[0], description, tags)
			fmt.Printf("综合评分: %d (%s)\n", result.Overall, result.Grade)
			fmt.Printf("  标题     %d\n", result.Title)
			fmt.Printf("  描述     %d\n", result.Description)
			fmt.Printf("  标签     %d\n", result.Tag)
			fmt.Printf("  关键词   %d\n", result.Keyword)
			for _, tip := range result.Tips {
				fmt.Printf("  [%s] %s: %s\n", tip.Priority, tip.Field, tip.Tip)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "商品描述")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "标签（逗号分隔）")
	return cmd
}
