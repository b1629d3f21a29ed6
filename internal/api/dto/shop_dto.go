package dto

import "etsy_bulk_v1_202608/internal/model"

// ==================== 店铺商品查询 ====================

// ShopListingsQuery 分页查询参数
type ShopListingsQuery struct {
	State     string `json:"state"`
	Page      int    `json:"page"`
	PerPage   int    `json:"per_page"`
	Search    string `json:"search"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

// CacheInfo 服务端缓存新鲜度
type CacheInfo struct {
	AgeHours    float64 `json:"age_hours"`
	MaxAgeHours float64 `json:"max_age_hours"`
}

// Stale 缓存是否超龄（新鲜度门控的判定依据）
func (c CacheInfo) Stale() bool {
	return c.AgeHours > c.MaxAgeHours
}

// ShopListingsPage 分页查询结果
type ShopListingsPage struct {
	Listings    []model.ShopListing `json:"listings"`
	Total       int                 `json:"total"`
	TotalPages  int                 `json:"total_pages"`
	StateCounts map[string]int      `json:"state_counts"`
	CacheInfo   CacheInfo           `json:"cache_info"`
	NeedsRefresh bool               `json:"needs_refresh"`
}

// ==================== 批量更新 ====================

// ListingPatch 单个商品的局部更新
// 指针字段：nil 表示该字段不参与本次更新
type ListingPatch struct {
	Title *string   `json:"title,omitempty"`
	Tags  *[]string `json:"tags,omitempty"`
}

// Empty 是否为空补丁
func (p ListingPatch) Empty() bool {
	return p.Title == nil && p.Tags == nil
}

// BulkUpdateRequest PATCH /api/shop/listings/bulk 请求体
type BulkUpdateRequest struct {
	ListingIDs []int64                `json:"listing_ids"`
	Updates    map[int64]ListingPatch `json:"updates"`
}

// BulkItemError 批量操作中单项失败
type BulkItemError struct {
	ListingID int64  `json:"id"`
	Error     string `json:"error"`
}

// BulkUpdateResult 批量更新结果分片
// 约束：success ∪ failed 恰好等于提交集合，且二者不相交
type BulkUpdateResult struct {
	Success []int64         `json:"success"`
	Failed  []BulkItemError `json:"failed"`
}

// ==================== AI 重生成 ====================

// RegenerateRequest POST /api/shop/listings/{id}/regenerate 请求体
type RegenerateRequest struct {
	Field       string `json:"field"` // title | tags
	Instruction string `json:"instruction,omitempty"`
	ImageRank   int    `json:"image_rank,omitempty"`
}

// RegenerateResult 重生成结果
type RegenerateResult struct {
	Title string   `json:"title,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

// ==================== 图片槽位 ====================

// ImageReorderRequest PATCH /api/shop/listings/{id}/images/reorder 请求体
type ImageReorderRequest struct {
	ImageIDs []int64 `json:"image_ids"`
}
