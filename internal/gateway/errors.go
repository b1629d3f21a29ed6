package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ==================== 错误类型 ====================

// ErrAuthExpired 登录态失效：401 且无法刷新，令牌已清除，上层应引导重新登录
var ErrAuthExpired = errors.New("登录已过期，请重新授权")

// APIError 后端返回的业务/传输错误
// 网关是唯一把 HTTP 状态翻译成错误对象的地方
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// errorBodyExcerptLen 非 JSON 错误体截取上限
const errorBodyExcerptLen = 200

// parseAPIError 区分 JSON 与非 JSON 错误体
// JSON 错误取 error/message 字段；非 JSON 错误截取前 200 字符
func parseAPIError(status int, body []byte) *APIError {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		msg := payload.Error
		if msg == "" {
			msg = payload.Message
		}
		if msg != "" {
			return &APIError{Status: status, Message: msg}
		}
	}

	excerpt := strings.TrimSpace(string(body))
	if len(excerpt) > errorBodyExcerptLen {
		excerpt = excerpt[:errorBodyExcerptLen]
	}
	return &APIError{
		Status:  status,
		Message: fmt.Sprintf("Server error (%d): %s", status, excerpt),
	}
}
