package model

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// ==================== 子结构 ====================

// Personalization 个性化定制设置
type Personalization struct {
	Required     bool   `json:"required"`
	CharMax      int    `json:"char_max"`
	Instructions string `json:"instructions"`
}

// Measurement 重量
type Measurement struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Dimensions 尺寸
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit"`
}

// ProcessingTime 备货时间（天）
type ProcessingTime struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ==================== 数据库模型 ====================

// Preset 可复用的刊登配置包
// 会话缓存模型：服务端为权威数据，本地 sqlite 仅作当前会话的只读投影
type Preset struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	ListingType string  `gorm:"size:20;default:download" json:"listing_type"`
	Price       float64 `gorm:"default:0" json:"price"`
	Quantity    int     `gorm:"default:999" json:"quantity"`

	WhoMade  string `gorm:"size:32" json:"who_made"`
	WhenMade string `gorm:"size:32" json:"when_made"`
	IsSupply bool   `gorm:"default:false" json:"is_supply"`

	TaxonomyID   int64  `gorm:"default:0" json:"taxonomy_id"`
	TaxonomyPath string `gorm:"size:512" json:"taxonomy_path"`

	ShippingProfileID int64 `gorm:"default:0" json:"shipping_profile_id,omitempty"`
	ReturnPolicyID    int64 `gorm:"default:0" json:"return_policy_id,omitempty"`
	ShopSectionID     int64 `gorm:"default:0" json:"shop_section_id,omitempty"`

	ShouldAutoRenew  bool `gorm:"default:true" json:"should_auto_renew"`
	IsPersonalizable bool `gorm:"default:false" json:"is_personalizable"`

	PersonalizationRequired     bool   `gorm:"default:false" json:"personalization_required"`
	PersonalizationCharMax      int    `gorm:"default:256" json:"personalization_char_max"`
	PersonalizationInstructions string `gorm:"size:1024" json:"personalization_instructions"`

	ItemWeightValue float64 `gorm:"default:0" json:"item_weight_value"`
	ItemWeightUnit  string  `gorm:"size:8" json:"item_weight_unit"`

	ItemLength        float64 `gorm:"default:0" json:"item_length"`
	ItemWidth         float64 `gorm:"default:0" json:"item_width"`
	ItemHeight        float64 `gorm:"default:0" json:"item_height"`
	ItemDimensionsUnit string `gorm:"size:8" json:"item_dimensions_unit"`

	ProcessingMin int `gorm:"default:0" json:"processing_min"`
	ProcessingMax int `gorm:"default:0" json:"processing_max"`

	Materials   StringSlice `gorm:"type:json" json:"materials"`
	Styles      StringSlice `gorm:"type:json" json:"styles"`
	DefaultTags StringSlice `gorm:"type:json" json:"default_tags"`

	DescriptionSource     string `gorm:"size:20;default:manual" json:"description_source"`
	DescriptionTemplateID int64  `gorm:"default:0" json:"description_template_id,omitempty"`
	ManualDescription     string `gorm:"type:text" json:"manual_description"`

	IsTaxable      bool `gorm:"default:true" json:"is_taxable"`
	IsCustomizable bool `gorm:"default:false" json:"is_customizable"`

	ProductionPartnerIDs StringSlice    `gorm:"type:json" json:"production_partner_ids"`
	CategoryProperties   datatypes.JSON `gorm:"type:json" json:"category_properties"`

	SKU            string `gorm:"size:100" json:"sku"`
	PrimaryColor   string `gorm:"size:50" json:"primary_color"`
	SecondaryColor string `gorm:"size:50" json:"secondary_color"`
	IsFeatured     bool   `gorm:"default:false" json:"is_featured"`
	NoteToBuyers   string `gorm:"type:text" json:"note_to_buyers"`
}

func (*Preset) TableName() string {
	return "presets"
}

// IsDigital 是否纯数字商品
func (p *Preset) IsDigital() bool {
	return p.ListingType == ListingTypeDownload
}

// Validate 校验 Preset 形态
// 分支约束：download 类型禁止实物字段；template 来源必须携带模板 ID
func (p *Preset) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("preset 名称不能为空")
	}
	if !ListingTypes[p.ListingType] {
		return fmt.Errorf("无效的 listing_type: %q", p.ListingType)
	}
	if !DescriptionSources[p.DescriptionSource] {
		return fmt.Errorf("无效的 description_source: %q", p.DescriptionSource)
	}
	if p.Price < 0 {
		return fmt.Errorf("价格不能为负: %v", p.Price)
	}
	if len(p.DefaultTags) > MaxTags {
		return fmt.Errorf("默认标签超过 %d 个", MaxTags)
	}
	if len(p.Materials) > MaxMaterials {
		return fmt.Errorf("材料超过 %d 个", MaxMaterials)
	}
	if p.WhoMade != "" && !WhoMadeValues[p.WhoMade] {
		return fmt.Errorf("无效的 who_made: %q", p.WhoMade)
	}
	if p.WhenMade != "" && !WhenMadeValues[p.WhenMade] {
		return fmt.Errorf("无效的 when_made: %q", p.WhenMade)
	}

	if p.IsDigital() {
		// 数字商品不允许实物字段（平台侧 download 商品禁止退货设置）
		if p.ShippingProfileID != 0 {
			return fmt.Errorf("数字商品不允许 shipping_profile_id")
		}
		if p.ReturnPolicyID != 0 {
			return fmt.Errorf("数字商品不允许 return_policy_id")
		}
		if p.ItemWeightValue != 0 || p.ItemWeightUnit != "" {
			return fmt.Errorf("数字商品不允许 item_weight")
		}
		if p.ItemLength != 0 || p.ItemWidth != 0 || p.ItemHeight != 0 || p.ItemDimensionsUnit != "" {
			return fmt.Errorf("数字商品不允许 item_dimensions")
		}
	} else {
		if p.ItemWeightUnit != "" && !WeightUnits[p.ItemWeightUnit] {
			return fmt.Errorf("无效的重量单位: %q", p.ItemWeightUnit)
		}
		if p.ItemDimensionsUnit != "" && !DimensionUnits[p.ItemDimensionsUnit] {
			return fmt.Errorf("无效的尺寸单位: %q", p.ItemDimensionsUnit)
		}
		if p.ProcessingMin > p.ProcessingMax {
			return fmt.Errorf("备货时间区间非法: min %d > max %d", p.ProcessingMin, p.ProcessingMax)
		}
	}

	if p.DescriptionSource == DescriptionSourceTemplate && p.DescriptionTemplateID == 0 {
		return fmt.Errorf("description_source=template 必须指定 description_template_id")
	}
	if p.IsPersonalizable && p.PersonalizationCharMax > MaxPersonalizationChars {
		return fmt.Errorf("个性化字符上限超过 %d", MaxPersonalizationChars)
	}
	return nil
}
