package gateway

import (
	"context"
	"fmt"
	"net/http"

	"etsy_bulk_v1_202608/internal/api/dto"
)

// ==================== 授权 ====================

// GetLoginURL 获取 Etsy 授权跳转地址（免鉴权）
func (c *Client) GetLoginURL(ctx context.Context) (string, error) {
	var resp dto.LoginResponse
	if err := c.request(ctx, http.MethodGet, "/api/etsy/login", nil, &resp, false); err != nil {
		return "", err
	}
	return resp.AuthURL, nil
}

// GetEtsyStatus 查询授权连接状态
func (c *Client) GetEtsyStatus(ctx context.Context) (*dto.EtsyStatus, error) {
	var status dto.EtsyStatus
	if err := c.request(ctx, http.MethodGet, "/api/etsy/status", nil, &status, true); err != nil {
		return nil, err
	}
	return &status, nil
}

// DisconnectEtsy 断开店铺授权
func (c *Client) DisconnectEtsy(ctx context.Context) error {
	return c.request(ctx, http.MethodPost, "/api/etsy/disconnect", nil, nil, true)
}

// ==================== 店铺元数据 ====================

// GetShippingProfiles 运费模板列表
func (c *Client) GetShippingProfiles(ctx context.Context) ([]dto.ShippingProfile, error) {
	var profiles []dto.ShippingProfile
	if err := c.request(ctx, http.MethodGet, "/api/etsy/shipping-profiles", nil, &profiles, true); err != nil {
		return nil, err
	}
	return profiles, nil
}

// GetReturnPolicies 退货政策列表
func (c *Client) GetReturnPolicies(ctx context.Context) ([]dto.ReturnPolicy, error) {
	var policies []dto.ReturnPolicy
	if err := c.request(ctx, http.MethodGet, "/api/etsy/return-policies", nil, &policies, true); err != nil {
		return nil, err
	}
	return policies, nil
}

// GetShopSections 店铺分区列表
func (c *Client) GetShopSections(ctx context.Context) ([]dto.ShopSection, error) {
	var sections []dto.ShopSection
	if err := c.request(ctx, http.MethodGet, "/api/etsy/shop-sections", nil, &sections, true); err != nil {
		return nil, err
	}
	return sections, nil
}

// GetCategories 分类列表
func (c *Client) GetCategories(ctx context.Context) ([]dto.Category, error) {
	var categories []dto.Category
	if err := c.request(ctx, http.MethodGet, "/api/etsy/categories", nil, &categories, true); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategoryProperties 指定分类的属性定义
func (c *Client) GetCategoryProperties(ctx context.Context, taxonomyID int64) ([]dto.CategoryProperty, error) {
	endpoint := fmt.Sprintf("/api/etsy/categories/%d/properties", taxonomyID)
	var resp dto.CategoryPropertiesResponse
	if err := c.request(ctx, http.MethodGet, endpoint, nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Properties, nil
}

// ==================== AI 生成 ====================

// GenerateDescription 委托后端 AI 根据首图生成描述
func (c *Client) GenerateDescription(ctx context.Context, title, styleHint string) (string, error) {
	body := map[string]string{
		"title":      title,
		"style_hint": styleHint,
	}
	var resp struct {
		Description string `json:"description"`
	}
	if err := c.request(ctx, http.MethodPost, "/api/generate", body, &resp, true); err != nil {
		return "", err
	}
	return resp.Description, nil
}
