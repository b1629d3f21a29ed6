package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ==================== 存储键 ====================

const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyShopName     = "shopName"
	KeyDemoMode     = "demoMode"
)

// ==================== 会话存储 ====================

// Store 会话令牌存储
// 进程内共享：access token 被所有 API 调用读取、在刷新时重写。
// 并发刷新容忍 last-writer-wins，两个写入者写入的都是有效 token。
// 变更通知：跨窗口一致性抽象为订阅回调，任何键变更后同步触发。
type Store struct {
	mu        sync.RWMutex
	values    map[string]string
	listeners []func()
}

// NewStore 创建空会话存储
func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

// Subscribe 订阅变更通知，返回取消函数
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners = append(s.listeners, fn)
	idx := len(s.listeners) - 1
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.listeners[idx] = nil
	}
}

// notify 必须在未持锁时调用
func (s *Store) notify() {
	s.mu.RLock()
	listeners := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		if fn != nil {
			listeners = append(listeners, fn)
		}
	}
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}

func (s *Store) get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

func (s *Store) set(key, value string) {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	s.notify()
}

// ==================== 令牌生命周期 ====================

// SetTokens 持久化 OAuth 回调带回的令牌与店铺名
func (s *Store) SetTokens(accessToken, refreshToken, shopName string) {
	s.mu.Lock()
	s.values[KeyAccessToken] = accessToken
	s.values[KeyRefreshToken] = refreshToken
	s.values[KeyShopName] = shopName
	s.mu.Unlock()
	s.notify()
}

// SetAccessToken 刷新后重写 access token
func (s *Store) SetAccessToken(token string) {
	s.set(KeyAccessToken, token)
}

// AccessToken 当前 access token，未登录为空串
func (s *Store) AccessToken() string {
	return s.get(KeyAccessToken)
}

// RefreshToken 当前 refresh token
func (s *Store) RefreshToken() string {
	return s.get(KeyRefreshToken)
}

// ShopName 店铺显示名
func (s *Store) ShopName() string {
	return s.get(KeyShopName)
}

// IsAuthenticated accessToken 非空即视为已登录
func (s *Store) IsAuthenticated() bool {
	return s.AccessToken() != ""
}

// Clear 清除全部令牌（登出 / 刷新失败）
func (s *Store) Clear() {
	s.mu.Lock()
	delete(s.values, KeyAccessToken)
	delete(s.values, KeyRefreshToken)
	delete(s.values, KeyShopName)
	s.mu.Unlock()
	s.notify()
}

// ==================== 演示模式 ====================

// SetDemoMode 开关演示模式
func (s *Store) SetDemoMode(on bool) {
	if on {
		s.set(KeyDemoMode, "1")
	} else {
		s.set(KeyDemoMode, "")
	}
}

// DemoMode 是否演示模式
func (s *Store) DemoMode() bool {
	return s.get(KeyDemoMode) == "1"
}

// ==================== 过期提示 ====================

// TokenLooksExpired 解析 access token 的 exp 声明做本地过期提示
// 不做签名校验（校验是后端的事），解析失败时保守返回 false，交给 401 流程兜底
func (s *Store) TokenLooksExpired() bool {
	tokenStr := s.AccessToken()
	if tokenStr == "" {
		return false
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenStr, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Now().After(exp.Time)
}
