package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"etsy_bulk_v1_202608/internal/api/dto"
)

// ==================== 外部依赖 ====================

// TokenStore 会话令牌读写接口（由 session.Store 实现）
type TokenStore interface {
	AccessToken() string
	RefreshToken() string
	SetAccessToken(token string)
	Clear()
	DemoMode() bool
}

// ==================== 客户端 ====================

// Client 后端 API 网关
// 职责：注入 Bearer 令牌、401 刷新重试、JSON/文本错误归一化、multipart 上传。
// 演示模式在此单点拦截，上层组件对演示模式无感知。
type Client struct {
	http    *resty.Client
	session TokenStore
	demo    *demoData

	// 刷新失败后的会话层回调（引导跳转登录）
	onAuthExpired func()
}

// NewClient 创建网关客户端
func NewClient(baseURL string, session TokenStore) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(60 * time.Second).
		SetHeader("Accept", "application/json")

	return &Client{
		http:    httpClient,
		session: session,
		demo:    newDemoData(),
	}
}

// OnAuthExpired 注册登录态失效回调
func (c *Client) OnAuthExpired(fn func()) {
	c.onAuthExpired = fn
}

// SetTimeout 覆盖默认请求超时
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.http.SetTimeout(d)
	}
}

// ==================== 请求核心 ====================

// request 发送 JSON 请求并解码响应
// auth=true 时注入 Bearer；401 且持有 refresh token 时刷新后重试一次
func (c *Client) request(ctx context.Context, method, endpoint string, body, out interface{}, auth bool) error {
	if c.session.DemoMode() {
		return c.demoRequest(method, endpoint, out)
	}

	resp, err := c.send(ctx, method, endpoint, body, auth, c.session.AccessToken())
	if err != nil {
		return fmt.Errorf("请求 %s %s 失败: %v", method, endpoint, err)
	}

	if resp.StatusCode() == http.StatusUnauthorized && auth {
		newToken, refreshErr := c.refreshAccessToken(ctx)
		if refreshErr != nil {
			log.Printf("token 刷新失败: %v", refreshErr)
			c.session.Clear()
			if c.onAuthExpired != nil {
				c.onAuthExpired()
			}
			return ErrAuthExpired
		}

		// 仅对触发请求重试一次
		resp, err = c.send(ctx, method, endpoint, body, auth, newToken)
		if err != nil {
			return fmt.Errorf("请求重试 %s %s 失败: %v", method, endpoint, err)
		}
	}

	if resp.IsError() {
		return parseAPIError(resp.StatusCode(), resp.Body())
	}

	if out != nil && len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("解析响应失败 %s %s: %v", method, endpoint, err)
		}
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, endpoint string, body interface{}, auth bool, token string) (*resty.Response, error) {
	req := c.http.R().SetContext(ctx)
	if auth && token != "" {
		req.SetAuthToken(token)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	return req.Execute(method, endpoint)
}

// refreshAccessToken 用 refresh token 换新的 access token
// 并发刷新不加锁：两次刷新写入的都是有效令牌，last-writer-wins
func (c *Client) refreshAccessToken(ctx context.Context) (string, error) {
	refreshToken := c.session.RefreshToken()
	if refreshToken == "" {
		return "", fmt.Errorf("无 refresh token")
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(refreshToken).
		Post("/api/auth/refresh")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", parseAPIError(resp.StatusCode(), resp.Body())
	}

	var payload dto.RefreshResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return "", fmt.Errorf("解析刷新响应失败: %v", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("刷新响应缺少 access_token")
	}

	c.session.SetAccessToken(payload.AccessToken)
	return payload.AccessToken, nil
}

// ==================== multipart 上传 ====================

// uploadMultipart 发送 multipart 表单（图片/视频）
// 跳过 JSON Content-Type，但仍注入 Bearer；401 同样刷新重试一次
func (c *Client) uploadMultipart(ctx context.Context, endpoint, field, filename string, data []byte, fields map[string]string, out interface{}) error {
	if c.session.DemoMode() {
		return c.demoRequest(http.MethodPost, endpoint, out)
	}

	doSend := func(token string) (*resty.Response, error) {
		req := c.http.R().
			SetContext(ctx).
			SetFileReader(field, filename, bytes.NewReader(data))
		if len(fields) > 0 {
			req.SetFormData(fields)
		}
		if token != "" {
			req.SetAuthToken(token)
		}
		return req.Post(endpoint)
	}

	resp, err := doSend(c.session.AccessToken())
	if err != nil {
		return fmt.Errorf("上传 %s 失败: %v", endpoint, err)
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		newToken, refreshErr := c.refreshAccessToken(ctx)
		if refreshErr != nil {
			c.session.Clear()
			if c.onAuthExpired != nil {
				c.onAuthExpired()
			}
			return ErrAuthExpired
		}
		resp, err = doSend(newToken)
		if err != nil {
			return fmt.Errorf("上传重试 %s 失败: %v", endpoint, err)
		}
	}

	if resp.IsError() {
		return parseAPIError(resp.StatusCode(), resp.Body())
	}
	if out != nil && len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("解析上传响应失败: %v", err)
		}
	}
	return nil
}
