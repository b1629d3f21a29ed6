package gateway

import (
	"context"
	"fmt"
	"net/http"

	"etsy_bulk_v1_202608/internal/model"
)

// ==================== 描述模板 CRUD ====================

// ListTemplates 拉取全部描述模板
func (c *Client) ListTemplates(ctx context.Context) ([]model.DescriptionTemplate, error) {
	var tpls []model.DescriptionTemplate
	if err := c.request(ctx, http.MethodGet, "/api/description-templates", nil, &tpls, true); err != nil {
		return nil, err
	}
	return tpls, nil
}

// CreateTemplate 新建描述模板
func (c *Client) CreateTemplate(ctx context.Context, tpl *model.DescriptionTemplate) (*model.DescriptionTemplate, error) {
	var created model.DescriptionTemplate
	if err := c.request(ctx, http.MethodPost, "/api/description-templates", tpl, &created, true); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTemplate 更新描述模板
func (c *Client) UpdateTemplate(ctx context.Context, tpl *model.DescriptionTemplate) error {
	endpoint := fmt.Sprintf("/api/description-templates/%d", tpl.ID)
	return c.request(ctx, http.MethodPut, endpoint, tpl, nil, true)
}

// DeleteTemplate 删除描述模板
func (c *Client) DeleteTemplate(ctx context.Context, id int64) error {
	endpoint := fmt.Sprintf("/api/description-templates/%d", id)
	return c.request(ctx, http.MethodDelete, endpoint, nil, nil, true)
}

// PreviewTemplate 服务端渲染模板预览
func (c *Client) PreviewTemplate(ctx context.Context, id int64, vars map[string]string) (string, error) {
	endpoint := fmt.Sprintf("/api/description-templates/%d/preview", id)
	var resp struct {
		Preview string `json:"preview"`
	}
	if err := c.request(ctx, http.MethodPost, endpoint, map[string]interface{}{"variables": vars}, &resp, true); err != nil {
		return "", err
	}
	return resp.Preview, nil
}
