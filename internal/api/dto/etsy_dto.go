package dto

// ==================== 授权状态 ====================

// EtsyShop 授权店铺信息
type EtsyShop struct {
	ShopID   int64  `json:"shop_id"`
	ShopName string `json:"shop_name"`
	IsValid  bool   `json:"is_valid"`
}

// EtsyStatus GET /api/etsy/status 响应
type EtsyStatus struct {
	Connected bool      `json:"connected"`
	Shop      *EtsyShop `json:"shop,omitempty"`
}

// LoginResponse GET /api/etsy/login 响应
type LoginResponse struct {
	AuthURL string `json:"auth_url"`
}

// RefreshResponse POST /api/auth/refresh 响应
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// ==================== 店铺元数据 ====================

// ShippingProfile 运费模板
type ShippingProfile struct {
	ShippingProfileID int64  `json:"shipping_profile_id"`
	Title             string `json:"title"`
}

// ReturnPolicy 退货政策
type ReturnPolicy struct {
	ReturnPolicyID   int64 `json:"return_policy_id"`
	AcceptsReturns   bool  `json:"accepts_returns"`
	AcceptsExchanges bool  `json:"accepts_exchanges"`
	ReturnDeadline   int   `json:"return_deadline"`
}

// ShopSection 店铺分区
type ShopSection struct {
	ShopSectionID int64  `json:"shop_section_id"`
	Title         string `json:"title"`
}

// Category 分类节点
type Category struct {
	TaxonomyID int64  `json:"taxonomy_id"`
	Name       string `json:"name"`
	Path       string `json:"path"`
}

// PropertyValue 分类属性候选值
type PropertyValue struct {
	ValueID int64  `json:"value_id"`
	Value   string `json:"value"`
}

// CategoryProperty 分类属性定义
type CategoryProperty struct {
	PropertyID     int64           `json:"property_id"`
	Name           string          `json:"name"`
	DisplayName    string          `json:"display_name"`
	IsRequired     bool            `json:"is_required"`
	IsMultivalued  bool            `json:"is_multivalued"`
	PossibleValues []PropertyValue `json:"possible_values"`
}

// CategoryPropertiesResponse GET /api/etsy/categories/{id}/properties 响应
type CategoryPropertiesResponse struct {
	Properties []CategoryProperty `json:"properties"`
}
