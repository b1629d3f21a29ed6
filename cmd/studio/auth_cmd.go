package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"etsy_bulk_v1_202608/internal/session"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "发起 Etsy 授权并等待回调",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()
			ctx := cmd.Context()

			if a.session.DemoMode() {
				fmt.Println("演示模式无需登录")
				return nil
			}

			authURL, err := a.gateway.GetLoginURL(ctx)
			if err != nil {
				return fmt.Errorf("获取授权地址失败: %v", err)
			}

			// 后端完成 OAuth 交换后把令牌重定向到本地回调
			done := make(chan struct{}, 1)
			cancel := a.session.Subscribe(func() {
				if a.session.IsAuthenticated() {
					select {
					case done <- struct{}{}:
					default:
					}
				}
			})
			defer cancel()

			srv := session.NewCallbackServer(a.session, a.cfg.CallbackAddr)
			go func() {
				if err := srv.Start(); err != nil {
					fmt.Printf("回调监听异常退出: %v\n", err)
				}
			}()
			defer srv.Shutdown(context.Background())

			fmt.Println("请在浏览器中打开以下地址完成授权：")
			fmt.Println(authURL)

			select {
			case <-done:
				fmt.Printf("授权成功，店铺: %s\n", a.session.ShopName())
				return nil
			case <-ctx.Done():
				return fmt.Errorf("登录已取消")
			}
		},
	}
}

func newStatusCmd() *cobra.Command {
	var disconnect bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "查看 Etsy 连接状态",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp()
			if err != nil {
				return err
			}
			defer a.Close()
			ctx := cmd.Context()

			if disconnect {
				if err := a.gateway.DisconnectEtsy(ctx); err != nil {
					return err
				}
				a.session.Clear()
				fmt.Println("已断开店铺授权")
				return nil
			}

			status, err := a.gateway.GetEtsyStatus(ctx)
			if err != nil {
				return err
			}
			if !status.Connected {
				fmt.Println("未连接 Etsy 店铺，请先执行 studio login")
				return nil
			}
			fmt.Printf("店铺: %s (ID %d)\n", status.Shop.ShopName, status.Shop.ShopID)
			if a.session.TokenLooksExpired() {
				fmt.Println("提示: 本地令牌可能已过期，下次请求将自动刷新")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&disconnect, "disconnect", false, "断开店铺授权并清除本地令牌")
	return cmd
}
