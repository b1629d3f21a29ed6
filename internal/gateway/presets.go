package gateway

import (
	"context"
	"fmt"
	"net/http"

	"etsy_bulk_v1_202608/internal/model"
)

// ==================== Preset CRUD ====================

// ListPresets 拉取用户全部 Preset
func (c *Client) ListPresets(ctx context.Context) ([]model.Preset, error) {
	var presets []model.Preset
	if err := c.request(ctx, http.MethodGet, "/api/presets", nil, &presets, true); err != nil {
		return nil, err
	}
	return presets, nil
}

// CreatePreset 新建 Preset，返回服务端分配 ID 后的完整对象
func (c *Client) CreatePreset(ctx context.Context, preset *model.Preset) (*model.Preset, error) {
	var created model.Preset
	if err := c.request(ctx, http.MethodPost, "/api/presets", preset, &created, true); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdatePreset 更新 Preset
func (c *Client) UpdatePreset(ctx context.Context, preset *model.Preset) error {
	endpoint := fmt.Sprintf("/api/presets/%d", preset.ID)
	return c.request(ctx, http.MethodPut, endpoint, preset, nil, true)
}

// DeletePreset 删除 Preset
func (c *Client) DeletePreset(ctx context.Context, id int64) error {
	endpoint := fmt.Sprintf("/api/presets/%d", id)
	return c.request(ctx, http.MethodDelete, endpoint, nil, nil, true)
}
