package dto

import "etsy_bulk_v1_202608/internal/model"

// ==================== 上传任务 ====================

// CreateUploadRequest POST /api/uploads 请求体
type CreateUploadRequest struct {
	ClientRef    string          `json:"client_ref,omitempty"` // 客户端生成的幂等标识
	Title        string          `json:"title"`
	Listings     []model.Listing `json:"listings"`
	ScheduledFor string          `json:"scheduled_for,omitempty"` // RFC3339，缺省表示立即上传
}

// CreateUploadResponse POST /api/uploads 响应
type CreateUploadResponse struct {
	UploadID int64  `json:"upload_id"`
	Status   string `json:"status"`
}

// UploadStatus GET /api/uploads 内的单个任务
type UploadStatus struct {
	UploadID     int64  `json:"upload_id"`
	Title        string `json:"title"`
	Status       string `json:"status"`
	ScheduledFor string `json:"scheduled_for,omitempty"`
	ListingCount int    `json:"listing_count"`
	ErrorMessage string `json:"error_message,omitempty"`
}
