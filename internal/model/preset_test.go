package model

import (
	"strings"
	"testing"
)

func validDigitalPreset() *Preset {
	return &Preset{
		ID:                1,
		Name:              "数字壁纸",
		ListingType:       ListingTypeDownload,
		Price:             4.99,
		Quantity:          999,
		WhoMade:           "i_did",
		WhenMade:          "2020_2026",
		DescriptionSource: DescriptionSourceManual,
		ManualDescription: "Instant download.",
	}
}

func validPhysicalPreset() *Preset {
	return &Preset{
		ID:                2,
		Name:              "手工陶瓷",
		ListingType:       ListingTypePhysical,
		Price:             28,
		Quantity:          5,
		WhoMade:           "i_did",
		WhenMade:          "made_to_order",
		ShippingProfileID: 101,
		ReturnPolicyID:    201,
		ItemWeightValue:   350,
		ItemWeightUnit:    "g",
		ProcessingMin:     3,
		ProcessingMax:     7,
		DescriptionSource: DescriptionSourceManual,
		ManualDescription: "Handmade ceramic.",
	}
}

// ==================== Preset 校验 ====================

func TestPresetValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Preset)
		base    func() *Preset
		wantErr bool
	}{
		{name: "合法数字 preset", base: validDigitalPreset, mutate: func(p *Preset) {}, wantErr: false},
		{name: "合法实物 preset", base: validPhysicalPreset, mutate: func(p *Preset) {}, wantErr: false},
		{name: "名称为空", base: validDigitalPreset, mutate: func(p *Preset) { p.Name = "" }, wantErr: true},
		{name: "未知商品类型", base: validDigitalPreset, mutate: func(p *Preset) { p.ListingType = "virtual" }, wantErr: true},
		{name: "未知描述来源", base: validDigitalPreset, mutate: func(p *Preset) { p.DescriptionSource = "markov" }, wantErr: true},
		{name: "负价格", base: validDigitalPreset, mutate: func(p *Preset) { p.Price = -1 }, wantErr: true},
		{name: "默认标签超限", base: validDigitalPreset, mutate: func(p *Preset) {
			for i := 0; i < MaxTags+1; i++ {
				p.DefaultTags = append(p.DefaultTags, "tag")
			}
		}, wantErr: true},
		{name: "未知 who_made", base: validDigitalPreset, mutate: func(p *Preset) { p.WhoMade = "my_cat" }, wantErr: true},
		{name: "未知 when_made", base: validDigitalPreset, mutate: func(p *Preset) { p.WhenMade = "future" }, wantErr: true},
		{name: "数字商品携带运费模板", base: validDigitalPreset, mutate: func(p *Preset) { p.ShippingProfileID = 101 }, wantErr: true},
		{name: "数字商品携带退货政策", base: validDigitalPreset, mutate: func(p *Preset) { p.ReturnPolicyID = 201 }, wantErr: true},
		{name: "数字商品携带重量", base: validDigitalPreset, mutate: func(p *Preset) { p.ItemWeightValue = 100; p.ItemWeightUnit = "g" }, wantErr: true},
		{name: "数字商品携带尺寸", base: validDigitalPreset, mutate: func(p *Preset) { p.ItemLength = 10 }, wantErr: true},
		{name: "实物商品未知重量单位", base: validPhysicalPreset, mutate: func(p *Preset) { p.ItemWeightUnit = "stone" }, wantErr: true},
		{name: "实物商品备货区间倒置", base: validPhysicalPreset, mutate: func(p *Preset) { p.ProcessingMin = 7; p.ProcessingMax = 3 }, wantErr: true},
		{name: "模板来源缺模板 ID", base: validDigitalPreset, mutate: func(p *Preset) {
			p.DescriptionSource = DescriptionSourceTemplate
			p.DescriptionTemplateID = 0
		}, wantErr: true},
		{name: "模板来源带模板 ID", base: validDigitalPreset, mutate: func(p *Preset) {
			p.DescriptionSource = DescriptionSourceTemplate
			p.DescriptionTemplateID = 7
		}, wantErr: false},
		{name: "个性化字符上限超限", base: validDigitalPreset, mutate: func(p *Preset) {
			p.IsPersonalizable = true
			p.PersonalizationCharMax = MaxPersonalizationChars + 1
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.base()
			tt.mutate(p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPresetIsDigital(t *testing.T) {
	if !validDigitalPreset().IsDigital() {
		t.Error("download 类型应判定为数字商品")
	}
	if validPhysicalPreset().IsDigital() {
		t.Error("physical 类型不应判定为数字商品")
	}
}

// ==================== 草稿校验 ====================

func TestListingValidate(t *testing.T) {
	valid := func() *Listing {
		return &Listing{
			ID:    "c-1",
			Title: "Minimalist Line Art Print",
			Tags:  []string{"line art", "minimalist"},
			Price: 4.99,
		}
	}

	tests := []struct {
		name    string
		mutate  func(l *Listing)
		wantErr bool
	}{
		{name: "合法草稿", mutate: func(l *Listing) {}, wantErr: false},
		{name: "标题恰好到上限", mutate: func(l *Listing) { l.Title = strings.Repeat("a", MaxTitleLength) }, wantErr: false},
		{name: "标题超长", mutate: func(l *Listing) { l.Title = strings.Repeat("a", MaxTitleLength+1) }, wantErr: true},
		{name: "多字节标题按字符计数", mutate: func(l *Listing) { l.Title = strings.Repeat("樱", MaxTitleLength) }, wantErr: false},
		{name: "多字节标题超长", mutate: func(l *Listing) { l.Title = strings.Repeat("樱", MaxTitleLength+1) }, wantErr: true},
		{name: "标签超限", mutate: func(l *Listing) {
			l.Tags = nil
			for i := 0; i < MaxTags+1; i++ {
				l.Tags = append(l.Tags, "t"+strings.Repeat("x", i))
			}
		}, wantErr: true},
		{name: "空白标签", mutate: func(l *Listing) { l.Tags = []string{"ok", "  "} }, wantErr: true},
		{name: "重复标签", mutate: func(l *Listing) { l.Tags = []string{"boho", "boho"} }, wantErr: true},
		{name: "负价格", mutate: func(l *Listing) { l.Price = -0.01 }, wantErr: true},
		{name: "零价格合法", mutate: func(l *Listing) { l.Price = 0 }, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := valid()
			tt.mutate(l)
			err := l.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestListingPrimaryImage(t *testing.T) {
	l := &Listing{Images: []MediaFile{
		{Name: "cover.png", PreviewPath: "/tmp/p1.jpg"},
		{Name: "alt.png"},
	}}
	if img := l.PrimaryImage(); img == nil || img.Name != "cover.png" {
		t.Errorf("PrimaryImage() = %v, want 首图 cover.png", img)
	}

	empty := &Listing{}
	if img := empty.PrimaryImage(); img != nil {
		t.Errorf("无图片草稿 PrimaryImage() = %v, want nil", img)
	}
}

// ==================== 图片槽位 ====================

func TestShopListingImageAtRank(t *testing.T) {
	listing := &ShopListing{
		EtsyListingID: 1,
		Images: []ShopListingImage{
			{ListingImageID: 11, Rank: 1},
			{ListingImageID: 13, Rank: 3},
		},
	}

	if img := listing.ImageAtRank(1); img == nil || img.ListingImageID != 11 {
		t.Errorf("ImageAtRank(1) = %v, want 图片 11", img)
	}
	if img := listing.ImageAtRank(2); img != nil {
		t.Errorf("ImageAtRank(2) = %v, want nil（空槽位）", img)
	}
	if img := listing.ImageAtRank(3); img == nil || img.ListingImageID != 13 {
		t.Errorf("ImageAtRank(3) = %v, want 图片 13", img)
	}
}
