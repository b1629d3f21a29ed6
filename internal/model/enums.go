package model

// ==================== 平台硬限制 ====================

const (
	// Etsy 平台硬限制，超出的请求必然被拒绝，客户端提前拦截
	MaxTitleLength           = 140
	MaxTags                  = 13
	MaxImages                = 10
	MaxMaterials             = 13
	MaxPersonalizationChars  = 1024
	MaxImageBytes            = 10 << 20 // 10 MiB
)

// ==================== 商品类型 ====================

const (
	ListingTypeDownload = "download" // 数字商品
	ListingTypePhysical = "physical" // 实物商品
	ListingTypeBoth     = "both"
)

// ==================== 描述来源 ====================

const (
	DescriptionSourceTemplate = "template"
	DescriptionSourceManual   = "manual"
	DescriptionSourceAI       = "ai"
)

// ==================== 商品状态（服务端） ====================

const (
	ListingStateActive   = "active"
	ListingStateDraft    = "draft"
	ListingStateExpired  = "expired"
	ListingStateSoldOut  = "sold_out"
	ListingStateInactive = "inactive"
)

// ==================== 制作者 / 制作时间 ====================

// WhoMadeValues Etsy 枚举值必须与平台字面量一致
var WhoMadeValues = map[string]bool{
	"i_did":        true,
	"collective":   true,
	"someone_else": true,
}

var WhenMadeValues = map[string]bool{
	"made_to_order": true,
	"2020_2026":     true,
	"2010_2019":     true,
	"2007_2009":     true,
	"2000_2006":     true,
	"before_2007":   true,
	"1990s":         true,
	"1980s":         true,
	"1970s":         true,
	"1960s":         true,
	"1950s":         true,
}

// ==================== 度量单位 ====================

var WeightUnits = map[string]bool{
	"oz": true,
	"lb": true,
	"g":  true,
	"kg": true,
}

var DimensionUnits = map[string]bool{
	"in": true,
	"ft": true,
	"mm": true,
	"cm": true,
	"m":  true,
}

// ListingStates 服务端商品状态全集（用于视图过滤校验）
var ListingStates = map[string]bool{
	ListingStateActive:   true,
	ListingStateDraft:    true,
	ListingStateExpired:  true,
	ListingStateSoldOut:  true,
	ListingStateInactive: true,
}

// DescriptionSources 描述来源全集
var DescriptionSources = map[string]bool{
	DescriptionSourceTemplate: true,
	DescriptionSourceManual:   true,
	DescriptionSourceAI:       true,
}

// ListingTypes 商品类型全集
var ListingTypes = map[string]bool{
	ListingTypeDownload: true,
	ListingTypePhysical: true,
	ListingTypeBoth:     true,
}
