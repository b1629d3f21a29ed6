package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"etsy_bulk_v1_202608/internal/api/dto"
)

// ==================== 店铺缓存 ====================

// SyncShop 触发服务端全量刷新店铺商品缓存
func (c *Client) SyncShop(ctx context.Context) error {
	return c.request(ctx, http.MethodPost, "/api/shop/sync", nil, nil, true)
}

// GetShopListings 分页查询店铺商品（服务端缓存投影）
func (c *Client) GetShopListings(ctx context.Context, query dto.ShopListingsQuery) (*dto.ShopListingsPage, error) {
	params := url.Values{}
	if query.State != "" {
		params.Set("state", query.State)
	}
	if query.Page > 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}
	if query.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(query.PerPage))
	}
	if query.Search != "" {
		params.Set("search", query.Search)
	}
	if query.SortBy != "" {
		params.Set("sort_by", query.SortBy)
	}
	if query.SortOrder != "" {
		params.Set("sort_order", query.SortOrder)
	}

	endpoint := "/api/shop/listings"
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var page dto.ShopListingsPage
	if err := c.request(ctx, http.MethodGet, endpoint, nil, &page, true); err != nil {
		return nil, err
	}
	return &page, nil
}

// ==================== 商品编辑 ====================

// PatchListing 更新单个商品的局部字段
func (c *Client) PatchListing(ctx context.Context, listingID int64, patch dto.ListingPatch) error {
	endpoint := fmt.Sprintf("/api/shop/listings/%d", listingID)
	return c.request(ctx, http.MethodPatch, endpoint, patch, nil, true)
}

// BulkPatchListings 批量更新，响应把提交集合切分为 success/failed 两片
func (c *Client) BulkPatchListings(ctx context.Context, req dto.BulkUpdateRequest) (*dto.BulkUpdateResult, error) {
	var result dto.BulkUpdateResult
	if err := c.request(ctx, http.MethodPatch, "/api/shop/listings/bulk", req, &result, true); err != nil {
		return nil, err
	}
	return &result, nil
}

// RegenerateListingField 委托后端 AI 重生成标题或标签
func (c *Client) RegenerateListingField(ctx context.Context, listingID int64, req dto.RegenerateRequest) (*dto.RegenerateResult, error) {
	endpoint := fmt.Sprintf("/api/shop/listings/%d/regenerate", listingID)
	var result dto.RegenerateResult
	if err := c.request(ctx, http.MethodPost, endpoint, req, &result, true); err != nil {
		return nil, err
	}
	return &result, nil
}

// ==================== 图片槽位 ====================

// UploadListingImage multipart 上传图片到指定槽位
func (c *Client) UploadListingImage(ctx context.Context, listingID int64, filename string, data []byte, rank int) error {
	endpoint := fmt.Sprintf("/api/shop/listings/%d/images", listingID)
	fields := map[string]string{"rank": strconv.Itoa(rank)}
	return c.uploadMultipart(ctx, endpoint, "image", filename, data, fields, nil)
}

// DeleteListingImage 删除指定图片
func (c *Client) DeleteListingImage(ctx context.Context, listingID, imageID int64) error {
	endpoint := fmt.Sprintf("/api/shop/listings/%d/images/%d", listingID, imageID)
	return c.request(ctx, http.MethodDelete, endpoint, nil, nil, true)
}

// ReorderListingImages 重排图片槽位
func (c *Client) ReorderListingImages(ctx context.Context, listingID int64, imageIDs []int64) error {
	endpoint := fmt.Sprintf("/api/shop/listings/%d/images/reorder", listingID)
	return c.request(ctx, http.MethodPatch, endpoint, dto.ImageReorderRequest{ImageIDs: imageIDs}, nil, true)
}
