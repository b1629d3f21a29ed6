package gateway

import (
	"context"
	"fmt"
	"net/http"

	"etsy_bulk_v1_202608/internal/api/dto"
)

// ==================== 上传任务 ====================

// CreateUpload 提交一批草稿作为单个上传任务
func (c *Client) CreateUpload(ctx context.Context, req dto.CreateUploadRequest) (*dto.CreateUploadResponse, error) {
	var resp dto.CreateUploadResponse
	if err := c.request(ctx, http.MethodPost, "/api/uploads", req, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListUploads 拉取上传任务列表（完成/失败状态由此观测）
func (c *Client) ListUploads(ctx context.Context) ([]dto.UploadStatus, error) {
	var uploads []dto.UploadStatus
	if err := c.request(ctx, http.MethodGet, "/api/uploads", nil, &uploads, true); err != nil {
		return nil, err
	}
	return uploads, nil
}

// PublishUpload 立即发布
func (c *Client) PublishUpload(ctx context.Context, id int64) error {
	return c.request(ctx, http.MethodPost, fmt.Sprintf("/api/uploads/%d/publish", id), nil, nil, true)
}

// ScheduleUpload 改为定时发布
func (c *Client) ScheduleUpload(ctx context.Context, id int64, scheduledFor string) error {
	body := map[string]string{"scheduled_for": scheduledFor}
	return c.request(ctx, http.MethodPost, fmt.Sprintf("/api/uploads/%d/schedule", id), body, nil, true)
}

// CancelUpload 取消定时任务
func (c *Client) CancelUpload(ctx context.Context, id int64) error {
	return c.request(ctx, http.MethodPost, fmt.Sprintf("/api/uploads/%d/cancel", id), nil, nil, true)
}

// DeleteUpload 删除任务记录
func (c *Client) DeleteUpload(ctx context.Context, id int64) error {
	return c.request(ctx, http.MethodDelete, fmt.Sprintf("/api/uploads/%d", id), nil, nil, true)
}
