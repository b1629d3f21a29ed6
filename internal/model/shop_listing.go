package model

// ==================== 服务端投影 ====================

// ShopListingImage 已刊登商品的图片槽位
// rank 为 1..10 的密集唯一序号
type ShopListingImage struct {
	ListingImageID int64  `json:"listing_image_id"`
	Rank           int    `json:"rank"`
	URL75x75       string `json:"url_75x75"`
	URL170x170     string `json:"url_170x170"`
}

// ShopListing 店铺已有商品（服务端缓存投影，客户端只读快照）
type ShopListing struct {
	EtsyListingID int64              `json:"etsy_listing_id"`
	State         string             `json:"state"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Tags          []string           `json:"tags"`
	Price         float64            `json:"price"`
	Quantity      int                `json:"quantity"`
	SKU           string             `json:"sku"`
	NumFavorers   int                `json:"num_favorers"`
	Images        []ShopListingImage `json:"images"`
	URL           string             `json:"url"`
}

// ImageAtRank 查找指定槽位的图片，不存在返回 nil
func (l *ShopListing) ImageAtRank(rank int) *ShopListingImage {
	for i := range l.Images {
		if l.Images[i].Rank == rank {
			return &l.Images[i]
		}
	}
	return nil
}
