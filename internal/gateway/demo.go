package gateway

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"etsy_bulk_v1_202608/internal/api/dto"
	"etsy_bulk_v1_202608/internal/model"
)

// DemoNotice 演示模式下写操作的提示语
// 写操作一律接受但不落库
const DemoNotice = "演示模式：操作已模拟成功，数据不会保存"

// ==================== 种子数据 ====================

// demoData 演示模式种子：预设、模板、授权状态、分类属性、店铺商品
type demoData struct {
	presets    []model.Preset
	templates  []model.DescriptionTemplate
	status     dto.EtsyStatus
	properties dto.CategoryPropertiesResponse
	shopPage   dto.ShopListingsPage
	uploads    []dto.UploadStatus
}

func newDemoData() *demoData {
	return &demoData{
		presets: []model.Preset{
			{
				ID:                1,
				Name:              "数字壁纸（默认）",
				ListingType:       model.ListingTypeDownload,
				Price:             4.99,
				Quantity:          999,
				WhoMade:           "i_did",
				WhenMade:          "2020_2026",
				TaxonomyID:        2078,
				TaxonomyPath:      "Art & Collectibles > Digital Prints",
				ShouldAutoRenew:   true,
				DefaultTags:       model.StringSlice{"digital download", "wall art", "printable"},
				DescriptionSource: model.DescriptionSourceTemplate,
				DescriptionTemplateID: 1,
			},
			{
				ID:                2,
				Name:              "手工陶瓷",
				ListingType:       model.ListingTypePhysical,
				Price:             28,
				Quantity:          5,
				WhoMade:           "i_did",
				WhenMade:          "made_to_order",
				TaxonomyID:        1208,
				TaxonomyPath:      "Home & Living > Kitchen & Dining",
				ShippingProfileID: 101,
				ReturnPolicyID:    201,
				ItemWeightValue:   350,
				ItemWeightUnit:    "g",
				ProcessingMin:     3,
				ProcessingMax:     7,
				DefaultTags:       model.StringSlice{"handmade", "ceramic", "pottery"},
				DescriptionSource: model.DescriptionSourceManual,
				ManualDescription: "Handmade ceramic piece. {{title}} ships within a week.",
			},
		},
		templates: []model.DescriptionTemplate{
			{
				ID:      1,
				Name:    "数字下载模板",
				Content: "{{title}}\n\nInstant digital download from {{preset_name}}.\nPrice: {{price}}\nFile: {{filename}}\nPublished {{date}}.",
			},
		},
		status: dto.EtsyStatus{
			Connected: true,
			Shop: &dto.EtsyShop{
				ShopID:   88001234,
				ShopName: "DemoCraftStudio",
				IsValid:  true,
			},
		},
		properties: dto.CategoryPropertiesResponse{
			Properties: []dto.CategoryProperty{
				{
					PropertyID:  200,
					Name:        "primary_color",
					DisplayName: "Primary color",
					PossibleValues: []dto.PropertyValue{
						{ValueID: 1, Value: "Black"},
						{ValueID: 2, Value: "White"},
						{ValueID: 3, Value: "Blue"},
					},
				},
				{
					PropertyID:    513,
					Name:          "occasion",
					DisplayName:   "Occasion",
					IsMultivalued: true,
					PossibleValues: []dto.PropertyValue{
						{ValueID: 20, Value: "Birthday"},
						{ValueID: 21, Value: "Wedding"},
					},
				},
			},
		},
		shopPage: dto.ShopListingsPage{
			Listings: []model.ShopListing{
				{
					EtsyListingID: 900001,
					State:         model.ListingStateActive,
					Title:         "Minimalist Line Art Print, Digital Download",
					Tags:          []string{"line art", "minimalist", "digital download"},
					Price:         4.99,
					Quantity:      999,
					NumFavorers:   42,
					Images: []model.ShopListingImage{
						{ListingImageID: 1, Rank: 1},
						{ListingImageID: 2, Rank: 2},
					},
				},
				{
					EtsyListingID: 900002,
					State:         model.ListingStateActive,
					Title:         "Boho Ceramic Mug, Handmade Pottery",
					Tags:          []string{"ceramic", "mug", "boho"},
					Price:         28,
					Quantity:      5,
					NumFavorers:   17,
					Images: []model.ShopListingImage{
						{ListingImageID: 3, Rank: 1},
					},
				},
			},
			Total:      2,
			TotalPages: 1,
			StateCounts: map[string]int{
				model.ListingStateActive: 2,
			},
			CacheInfo: dto.CacheInfo{AgeHours: 0.5, MaxAgeHours: 24},
		},
	}
}

// ==================== 演示分发 ====================

// demoRequest 短路网络请求，读操作回放种子数据，写操作直接回执
func (c *Client) demoRequest(method, endpoint string, out interface{}) error {
	if method != http.MethodGet {
		// 写操作：接受但不持久化，向用户回显提示
		log.Printf("%s %s: %s", method, endpoint, DemoNotice)
		return nil
	}

	var fixture interface{}
	switch {
	case endpoint == "/api/presets":
		fixture = c.demo.presets
	case endpoint == "/api/description-templates":
		fixture = c.demo.templates
	case endpoint == "/api/etsy/status":
		fixture = c.demo.status
	case strings.HasPrefix(endpoint, "/api/etsy/categories/") && strings.HasSuffix(endpoint, "/properties"):
		fixture = c.demo.properties
	case strings.HasPrefix(endpoint, "/api/shop/listings"):
		fixture = c.demo.shopPage
	case endpoint == "/api/uploads":
		fixture = c.demo.uploads
	default:
		return fmt.Errorf("演示模式不提供该数据: %s", endpoint)
	}

	if out == nil {
		return nil
	}
	data, err := json.Marshal(fixture)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
