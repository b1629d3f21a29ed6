package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==================== 令牌桩 ====================

// stubTokens 内存版 TokenStore，记录 Clear 调用
type stubTokens struct {
	access  string
	refresh string
	demo    bool
	cleared bool
}

func (s *stubTokens) AccessToken() string         { return s.access }
func (s *stubTokens) RefreshToken() string        { return s.refresh }
func (s *stubTokens) SetAccessToken(token string) { s.access = token }
func (s *stubTokens) Clear() {
	s.access = ""
	s.refresh = ""
	s.cleared = true
}
func (s *stubTokens) DemoMode() bool { return s.demo }

func newTestClient(serverURL string, tokens *stubTokens) *Client {
	return NewClient(serverURL, tokens)
}

// ==================== Bearer 注入 ====================

func TestClient_InjectsBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, &stubTokens{access: "tok-abc", refresh: "ref-abc"})
	_, err := client.ListPresets(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "Bearer tok-abc", gotAuth)
}

// ==================== 401 刷新重试 ====================

func TestClient_RefreshAndRetryOnce(t *testing.T) {
	var presetCalls, refreshCalls int32
	var refreshAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/refresh":
			atomic.AddInt32(&refreshCalls, 1)
			refreshAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"access_token":"tok-fresh"}`)
		case "/api/presets":
			atomic.AddInt32(&presetCalls, 1)
			if r.Header.Get("Authorization") != "Bearer tok-fresh" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `[{"id":1,"name":"数字壁纸"}]`)
		default:
			t.Errorf("未预期的请求路径: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	tokens := &stubTokens{access: "tok-stale", refresh: "ref-valid"}
	client := newTestClient(server.URL, tokens)

	presets, err := client.ListPresets(context.Background())

	assert.NoError(t, err)
	assert.Len(t, presets, 1)
	// 原请求 + 重试一次，各计一次
	assert.Equal(t, int32(2), atomic.LoadInt32(&presetCalls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))
	// 刷新请求以 refresh token 为 Bearer
	assert.Equal(t, "Bearer ref-valid", refreshAuth)
	// 新令牌回写会话
	assert.Equal(t, "tok-fresh", tokens.access)
}

func TestClient_RefreshFailureExpiresSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	tokens := &stubTokens{access: "tok-stale", refresh: "ref-revoked"}
	client := newTestClient(server.URL, tokens)

	callbackFired := false
	client.OnAuthExpired(func() { callbackFired = true })

	_, err := client.ListPresets(context.Background())

	assert.ErrorIs(t, err, ErrAuthExpired)
	assert.True(t, tokens.cleared, "刷新失败应清除会话令牌")
	assert.True(t, callbackFired, "刷新失败应触发登录态失效回调")
}

func TestClient_NoRefreshWithoutRefreshToken(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	tokens := &stubTokens{access: "tok-stale"}
	client := newTestClient(server.URL, tokens)

	_, err := client.ListPresets(context.Background())

	assert.ErrorIs(t, err, ErrAuthExpired)
	// 无 refresh token 时不应产生额外请求
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

// ==================== 错误体归一化 ====================

func TestClient_JSONErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"error":"标题超出长度限制"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, &stubTokens{access: "tok", refresh: "ref"})
	_, err := client.ListPresets(context.Background())

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "标题超出长度限制", apiErr.Message)
}

func TestClient_NonJSONErrorExcerpt(t *testing.T) {
	longBody := "<html><body>" + strings.Repeat("Bad Gateway. ", 40) + "</body></html>"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, longBody)
	}))
	defer server.Close()

	client := newTestClient(server.URL, &stubTokens{access: "tok", refresh: "ref"})
	_, err := client.ListPresets(context.Background())

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.True(t, strings.HasPrefix(apiErr.Message, "Server error (502): "), "错误信息应带状态码前缀: %s", apiErr.Message)
	// 正文超长时截取 200 字符
	excerpt := strings.TrimPrefix(apiErr.Message, "Server error (502): ")
	assert.Len(t, excerpt, errorBodyExcerptLen)
}

func TestClient_ShortNonJSONErrorKeptWhole(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "proxy timeout\n")
	}))
	defer server.Close()

	client := newTestClient(server.URL, &stubTokens{access: "tok", refresh: "ref"})
	_, err := client.ListPresets(context.Background())

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Server error (500): proxy timeout", apiErr.Message)
}

// ==================== multipart 上传 ====================

func TestClient_MultipartUpload(t *testing.T) {
	var gotAuth, gotFilename, gotRank string
	var gotData []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/shop/listings/900001/images" {
			t.Errorf("上传路径 = %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("解析 multipart 失败: %v", err)
		}
		gotRank = r.FormValue("rank")
		file, header, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("读取 image 字段失败: %v", err)
		}
		defer file.Close()
		gotFilename = header.Filename
		gotData, _ = io.ReadAll(file)

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := newTestClient(server.URL, &stubTokens{access: "tok-up", refresh: "ref"})
	err := client.UploadListingImage(context.Background(), 900001, "cover.png", []byte("png-bytes"), 3)

	assert.NoError(t, err)
	assert.Equal(t, "Bearer tok-up", gotAuth)
	assert.Equal(t, "cover.png", gotFilename)
	assert.Equal(t, "3", gotRank)
	assert.Equal(t, []byte("png-bytes"), gotData)
}

func TestClient_MultipartRetryAfter401(t *testing.T) {
	var uploadCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/refresh" {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"access_token":"tok-fresh"}`)
			return
		}
		atomic.AddInt32(&uploadCalls, 1)
		if r.Header.Get("Authorization") != "Bearer tok-fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	tokens := &stubTokens{access: "tok-stale", refresh: "ref-valid"}
	client := newTestClient(server.URL, tokens)

	err := client.UploadListingImage(context.Background(), 1, "a.png", []byte("x"), 1)

	assert.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&uploadCalls))
	assert.Equal(t, "tok-fresh", tokens.access)
}

// ==================== 演示模式 ====================

func TestClient_DemoModeNeverHitsServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("演示模式不应发起网络请求: %s %s", r.Method, r.URL.Path)
	}))
	defer server.Close()

	client := newTestClient(server.URL, &stubTokens{demo: true})

	presets, err := client.ListPresets(context.Background())
	assert.NoError(t, err)
	assert.Len(t, presets, 2)

	status, err := client.GetEtsyStatus(context.Background())
	assert.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, "DemoCraftStudio", status.Shop.ShopName)

	// 写操作模拟成功
	assert.NoError(t, client.DeletePreset(context.Background(), 1))
}

func TestClient_DemoModeWriteSurfacesNotice(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	client := newTestClient("http://127.0.0.1:0", &stubTokens{demo: true})

	err := client.DeletePreset(context.Background(), 1)

	assert.NoError(t, err)
	// 写操作被模拟成功时必须向用户回显提示
	assert.Contains(t, buf.String(), DemoNotice)
}

func TestClient_DemoModeUnknownEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("演示模式不应发起网络请求: %s", r.URL.Path)
	}))
	defer server.Close()

	client := newTestClient(server.URL, &stubTokens{demo: true})
	_, err := client.GetShippingProfiles(context.Background())

	assert.Error(t, err)
}

// ==================== 上下文取消 ====================

func TestClient_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := newTestClient(server.URL, &stubTokens{access: "tok", refresh: "ref"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListPresets(ctx)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled) || strings.Contains(err.Error(), "context canceled"))
}
