package session

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== OAuth 回调接收 ====================

// CallbackServer 本地回环回调服务
// 授权跳转由后端发起，浏览器最终带着 access_token/refresh_token/shop_name
// 回到本地回调地址，这里负责落库并跳回工作区
type CallbackServer struct {
	store  *Store
	server *http.Server
}

// NewCallbackServer 创建回调服务
func NewCallbackServer(store *Store, addr string) *CallbackServer {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	cs := &CallbackServer{store: store}

	r.GET("/auth/callback", cs.handleCallback)

	cs.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	return cs
}

// handleCallback 接收授权回调
// 缺参数时引导回登录页并附带 error=auth_failed
func (cs *CallbackServer) handleCallback(c *gin.Context) {
	accessToken := c.Query("access_token")
	refreshToken := c.Query("refresh_token")
	shopName := c.Query("shop_name")

	if accessToken == "" || refreshToken == "" {
		log.Printf("auth callback 缺少令牌参数")
		c.Redirect(http.StatusFound, "/login?error=auth_failed")
		return
	}

	cs.store.SetTokens(accessToken, refreshToken, shopName)
	c.Redirect(http.StatusFound, "/")
}

// Start 启动回调监听（阻塞直到 Shutdown）
func (cs *CallbackServer) Start() error {
	err := cs.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown 停止回调监听
func (cs *CallbackServer) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return cs.server.Shutdown(shutdownCtx)
}
