package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"etsy_bulk_v1_202608/internal/model"
	"etsy_bulk_v1_202608/pkg/utils"
)

// ==================== 外部服务依赖 ====================

// TemplateLoaderInterface 模板加载接口（由 PresetStoreService 实现）
type TemplateLoaderInterface interface {
	GetTemplate(ctx context.Context, id int64) (*model.DescriptionTemplate, error)
}

// DescriptionGeneratorInterface AI 描述生成接口（委托后端，由网关实现）
type DescriptionGeneratorInterface interface {
	GenerateDescription(ctx context.Context, title, styleHint string) (string, error)
}

// ==================== 解析服务 ====================

// ResolverService 把候选商品 + Preset + 覆盖项合并为完整草稿
// 解析顺序（后者胜出）：preset 默认值 → 描述来源展开 → 单品覆盖
type ResolverService struct {
	templates TemplateLoaderInterface
	ai        DescriptionGeneratorInterface
	scorer    *SEOScorer

	// AI 描述按候选 ID 缓存，重复解析不重复请求
	aiCache *utils.TTLCache
}

// NewResolverService 创建解析服务
func NewResolverService(templates TemplateLoaderInterface, ai DescriptionGeneratorInterface) *ResolverService {
	return &ResolverService{
		templates: templates,
		ai:        ai,
		scorer:    NewSEOScorer(),
		aiCache:   utils.NewTTLCache(30 * time.Minute),
	}
}

// Overrides 单品覆盖项，nil 字段不生效
type Overrides struct {
	Title       *string
	Description *string
	Tags        *[]string
	Price       *float64
	Quantity    *int
}

// Resolve 解析单个候选
// 返回草稿、非阻断警告（如标签截断）和错误；错误时不产生草稿
func (s *ResolverService) Resolve(ctx context.Context, cand *model.ProductCandidate, preset *model.Preset, overrides *Overrides) (*model.Listing, []string, error) {
	if len(cand.Images) == 0 {
		return nil, nil, fmt.Errorf("候选 %s 没有图片", cand.ID)
	}
	var warnings []string

	title := titleFromFolder(cand.FolderName)
	tags, truncated := resolveTags(preset.DefaultTags)
	if truncated > 0 {
		warnings = append(warnings, fmt.Sprintf("标签超过 %d 个，已截断 %d 个", model.MaxTags, truncated))
	}

	// 不兼容的 preset 形态在此失败（数字商品携带实物字段等）
	// 超量默认标签已截断并降级为警告，校验基于截断后的副本
	checked := *preset
	checked.DefaultTags = tags
	if err := checked.Validate(); err != nil {
		return nil, nil, fmt.Errorf("preset %q 校验失败: %v", preset.Name, err)
	}

	description, err := s.resolveDescription(ctx, cand, preset, title)
	if err != nil {
		return nil, nil, err
	}

	listing := &model.Listing{
		ID:          cand.ID,
		FolderName:  cand.FolderName,
		Title:       title,
		Description: description,
		Tags:        tags,
		Price:       preset.Price,
		Quantity:    preset.Quantity,
		Images:      cand.Images,
		Videos:      cand.Videos,
		Status:      model.DraftStatusReady,
		PresetID:    preset.ID,

		ListingType:     preset.ListingType,
		TaxonomyID:      preset.TaxonomyID,
		ShopSectionID:   preset.ShopSectionID,
		WhoMade:         preset.WhoMade,
		WhenMade:        preset.WhenMade,
		IsSupply:        preset.IsSupply,
		ShouldAutoRenew: preset.ShouldAutoRenew,
		Materials:       preset.Materials,
		Styles:          preset.Styles,
		SKU:             preset.SKU,
		IsTaxable:       preset.IsTaxable,
		IsCustomizable:  preset.IsCustomizable,
		NoteToBuyers:    preset.NoteToBuyers,
	}

	// 实物字段只在非数字分支出现
	if !preset.IsDigital() {
		listing.ShippingProfileID = preset.ShippingProfileID
		listing.ReturnPolicyID = preset.ReturnPolicyID
		if preset.ItemWeightValue > 0 {
			listing.ItemWeight = &model.Measurement{Value: preset.ItemWeightValue, Unit: preset.ItemWeightUnit}
		}
		if preset.ItemLength > 0 || preset.ItemWidth > 0 || preset.ItemHeight > 0 {
			listing.ItemDimensions = &model.Dimensions{
				Length: preset.ItemLength,
				Width:  preset.ItemWidth,
				Height: preset.ItemHeight,
				Unit:   preset.ItemDimensionsUnit,
			}
		}
		if preset.ProcessingMax > 0 {
			listing.Processing = &model.ProcessingTime{Min: preset.ProcessingMin, Max: preset.ProcessingMax}
		}
	}

	// 个性化子字段只在开启时生效
	if preset.IsPersonalizable {
		listing.IsPersonalizable = true
		listing.Personalization = &model.Personalization{
			Required:     preset.PersonalizationRequired,
			CharMax:      preset.PersonalizationCharMax,
			Instructions: preset.PersonalizationInstructions,
		}
	}

	if len(preset.CategoryProperties) > 0 {
		var props model.JSONMap
		if err := json.Unmarshal(preset.CategoryProperties, &props); err == nil {
			listing.CategoryProperties = props
		}
	}

	applyOverrides(listing, overrides)

	seo := s.scorer.Score(listing.Title, listing.Description, listing.Tags)
	listing.SEOScore = seo.Overall

	if err := listing.Validate(); err != nil {
		return nil, nil, fmt.Errorf("草稿 %s 校验失败: %v", listing.ID, err)
	}
	return listing, warnings, nil
}

// ==================== 内部方法 ====================

// resolveDescription 按描述来源展开
func (s *ResolverService) resolveDescription(ctx context.Context, cand *model.ProductCandidate, preset *model.Preset, title string) (string, error) {
	vars := NewRenderVars(title, cand.PrimaryImage().Name, preset.Name, preset.Price, time.Now())

	switch preset.DescriptionSource {
	case model.DescriptionSourceManual:
		return RenderTemplate(preset.ManualDescription, vars), nil

	case model.DescriptionSourceTemplate:
		tpl, err := s.templates.GetTemplate(ctx, preset.DescriptionTemplateID)
		if err != nil {
			return "", fmt.Errorf("加载描述模板 %d 失败: %v", preset.DescriptionTemplateID, err)
		}
		return RenderTemplate(tpl.Content, vars), nil

	case model.DescriptionSourceAI:
		if cached, ok := s.aiCache.Get(cand.ID); ok {
			return cached, nil
		}
		desc, err := s.ai.GenerateDescription(ctx, title, "")
		if err != nil {
			return "", fmt.Errorf("AI 生成描述失败: %v", err)
		}
		s.aiCache.Set(cand.ID, desc)
		return desc, nil

	default:
		return "", fmt.Errorf("无效的描述来源: %q", preset.DescriptionSource)
	}
}

// resolveTags 去重（大小写敏感）并截断到 13 个，返回截断数量
func resolveTags(defaultTags []string) ([]string, int) {
	seen := make(map[string]bool, len(defaultTags))
	tags := make([]string, 0, len(defaultTags))
	for _, tag := range defaultTags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	truncated := 0
	if len(tags) > model.MaxTags {
		truncated = len(tags) - model.MaxTags
		tags = tags[:model.MaxTags]
	}
	return tags, truncated
}

// titleFromFolder 文件夹名转标题：下划线转空格、去除多余空白
func titleFromFolder(folderName string) string {
	title := strings.ReplaceAll(folderName, "_", " ")
	title = strings.Join(strings.Fields(title), " ")
	// 按字符数截断，避免切断多字节字符
	if runes := []rune(title); len(runes) > model.MaxTitleLength {
		title = string(runes[:model.MaxTitleLength])
	}
	return title
}

// applyOverrides 单品覆盖最后生效
func applyOverrides(listing *model.Listing, o *Overrides) {
	if o == nil {
		return
	}
	if o.Title != nil {
		listing.Title = *o.Title
	}
	if o.Description != nil {
		listing.Description = *o.Description
	}
	if o.Tags != nil {
		listing.Tags = *o.Tags
	}
	if o.Price != nil {
		listing.Price = *o.Price
	}
	if o.Quantity != nil {
		listing.Quantity = *o.Quantity
	}
}
