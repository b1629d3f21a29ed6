package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ==================== 状态常量 ====================

const (
	// 草稿状态（工作区内）
	DraftStatusPending = "pending"
	DraftStatusReady   = "ready"
	DraftStatusError   = "error"
)

// ==================== 草稿模型 ====================

// Listing 工作区草稿：候选商品经 Preset 解析后的完整形态
// 归属：提交前由 Workspace 独占，提交后转移给 UploadJob 并从工作区清除
type Listing struct {
	ID         string      `json:"id"`
	FolderName string      `json:"folder_name"`
	Title      string      `json:"title"`
	Description string     `json:"description"`
	Tags       []string    `json:"tags"`
	Price      float64     `json:"price"`
	Quantity   int         `json:"quantity"`
	Images     []MediaFile `json:"images"`
	Videos     []MediaFile `json:"videos"`
	SEOScore   int         `json:"seo_score"`
	Status     string      `json:"status"`
	PresetID   int64       `json:"preset_id,omitempty"`

	// 解析自 Preset 的 Etsy 字段
	ListingType       string   `json:"listing_type"`
	TaxonomyID        int64    `json:"taxonomy_id,omitempty"`
	ShippingProfileID int64    `json:"shipping_profile_id,omitempty"`
	ReturnPolicyID    int64    `json:"return_policy_id,omitempty"`
	ShopSectionID     int64    `json:"shop_section_id,omitempty"`
	WhoMade           string   `json:"who_made,omitempty"`
	WhenMade          string   `json:"when_made,omitempty"`
	IsSupply          bool     `json:"is_supply"`
	ShouldAutoRenew   bool     `json:"should_auto_renew"`
	IsPersonalizable  bool     `json:"is_personalizable"`
	Personalization   *Personalization `json:"personalization,omitempty"`
	ItemWeight        *Measurement     `json:"item_weight,omitempty"`
	ItemDimensions    *Dimensions      `json:"item_dimensions,omitempty"`
	Processing        *ProcessingTime  `json:"processing,omitempty"`
	Materials         []string         `json:"materials,omitempty"`
	Styles            []string         `json:"styles,omitempty"`
	SKU               string           `json:"sku,omitempty"`
	IsTaxable         bool             `json:"is_taxable"`
	IsCustomizable    bool             `json:"is_customizable"`
	CategoryProperties JSONMap          `json:"category_properties,omitempty"`
	NoteToBuyers      string           `json:"note_to_buyers,omitempty"`
}

// PrimaryImage 返回首图（任务缩略图以首图为准）
func (l *Listing) PrimaryImage() *MediaFile {
	if len(l.Images) == 0 {
		return nil
	}
	return &l.Images[0]
}

// Validate 校验草稿硬约束，违反任何一条都不允许提交
func (l *Listing) Validate() error {
	if n := utf8.RuneCountInString(l.Title); n > MaxTitleLength {
		return fmt.Errorf("标题超长: %d 字符（上限 %d）", n, MaxTitleLength)
	}
	if len(l.Tags) > MaxTags {
		return fmt.Errorf("标签超过 %d 个: %d", MaxTags, len(l.Tags))
	}
	seen := make(map[string]bool, len(l.Tags))
	for _, tag := range l.Tags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("标签不能为空字符串")
		}
		if seen[tag] {
			return fmt.Errorf("标签重复: %q", tag)
		}
		seen[tag] = true
	}
	if l.Price < 0 {
		return fmt.Errorf("价格不能为负: %v", l.Price)
	}
	return nil
}
