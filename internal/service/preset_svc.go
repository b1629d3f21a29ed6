package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"etsy_bulk_v1_202608/internal/model"
	"etsy_bulk_v1_202608/internal/repository"
)

// ==================== 外部服务依赖 ====================

// PresetAPIInterface Preset 远端 CRUD 接口（由网关实现）
type PresetAPIInterface interface {
	ListPresets(ctx context.Context) ([]model.Preset, error)
	CreatePreset(ctx context.Context, preset *model.Preset) (*model.Preset, error)
	UpdatePreset(ctx context.Context, preset *model.Preset) error
	DeletePreset(ctx context.Context, id int64) error
}

// TemplateAPIInterface 描述模板远端 CRUD 接口（由网关实现）
type TemplateAPIInterface interface {
	ListTemplates(ctx context.Context) ([]model.DescriptionTemplate, error)
	CreateTemplate(ctx context.Context, tpl *model.DescriptionTemplate) (*model.DescriptionTemplate, error)
	UpdateTemplate(ctx context.Context, tpl *model.DescriptionTemplate) error
	DeleteTemplate(ctx context.Context, id int64) error
}

// ==================== 配置存储服务 ====================

// PresetStoreService Preset 与描述模板的会话缓存
// 服务端为权威数据；写操作先走网关，成功后重建本地缓存。
// 演示模式在网关单点拦截，本服务对模式无感知。
type PresetStoreService struct {
	presetAPI   PresetAPIInterface
	templateAPI TemplateAPIInterface
	presetRepo  repository.PresetRepository
	tplRepo     repository.TemplateRepository

	mu           sync.Mutex
	presetsFresh bool
	tplsFresh    bool
}

// NewPresetStoreService 创建配置存储服务
func NewPresetStoreService(
	presetAPI PresetAPIInterface,
	templateAPI TemplateAPIInterface,
	presetRepo repository.PresetRepository,
	tplRepo repository.TemplateRepository,
) *PresetStoreService {
	return &PresetStoreService{
		presetAPI:   presetAPI,
		templateAPI: templateAPI,
		presetRepo:  presetRepo,
		tplRepo:     tplRepo,
	}
}

// ==================== Preset ====================

// ListPresets 列出全部 Preset（缓存优先，首次访问拉取远端）
func (s *PresetStoreService) ListPresets(ctx context.Context) ([]model.Preset, error) {
	if err := s.ensurePresets(ctx); err != nil {
		return nil, err
	}
	return s.presetRepo.List(ctx)
}

// GetPreset 按 ID 获取 Preset
func (s *PresetStoreService) GetPreset(ctx context.Context, id int64) (*model.Preset, error) {
	if err := s.ensurePresets(ctx); err != nil {
		return nil, err
	}
	preset, err := s.presetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("preset %d 不存在: %v", id, err)
	}
	return preset, nil
}

// CreatePreset 新建 Preset（本地校验失败不发请求）
func (s *PresetStoreService) CreatePreset(ctx context.Context, preset *model.Preset) (*model.Preset, error) {
	if err := preset.Validate(); err != nil {
		return nil, err
	}
	created, err := s.presetAPI.CreatePreset(ctx, preset)
	if err != nil {
		return nil, err
	}
	if err := s.presetRepo.Upsert(ctx, created); err != nil {
		log.Printf("preset 缓存写入失败: %v", err)
	}
	return created, nil
}

// UpdatePreset 更新 Preset
func (s *PresetStoreService) UpdatePreset(ctx context.Context, preset *model.Preset) error {
	if err := preset.Validate(); err != nil {
		return err
	}
	if err := s.presetAPI.UpdatePreset(ctx, preset); err != nil {
		return err
	}
	if err := s.presetRepo.Upsert(ctx, preset); err != nil {
		log.Printf("preset 缓存更新失败: %v", err)
	}
	return nil
}

// DeletePreset 删除 Preset
func (s *PresetStoreService) DeletePreset(ctx context.Context, id int64) error {
	if err := s.presetAPI.DeletePreset(ctx, id); err != nil {
		return err
	}
	if err := s.presetRepo.Delete(ctx, id); err != nil {
		log.Printf("preset 缓存删除失败: %v", err)
	}
	return nil
}

// RefreshPresets 强制重建 Preset 缓存
func (s *PresetStoreService) RefreshPresets(ctx context.Context) error {
	presets, err := s.presetAPI.ListPresets(ctx)
	if err != nil {
		return fmt.Errorf("拉取 preset 失败: %v", err)
	}
	if err := s.presetRepo.ReplaceAll(ctx, presets); err != nil {
		return fmt.Errorf("重建 preset 缓存失败: %v", err)
	}
	s.mu.Lock()
	s.presetsFresh = true
	s.mu.Unlock()
	return nil
}

func (s *PresetStoreService) ensurePresets(ctx context.Context) error {
	s.mu.Lock()
	fresh := s.presetsFresh
	s.mu.Unlock()
	if fresh {
		return nil
	}
	return s.RefreshPresets(ctx)
}

// ==================== 描述模板 ====================

// ListTemplates 列出全部模板
func (s *PresetStoreService) ListTemplates(ctx context.Context) ([]model.DescriptionTemplate, error) {
	if err := s.ensureTemplates(ctx); err != nil {
		return nil, err
	}
	return s.tplRepo.List(ctx)
}

// GetTemplate 按 ID 获取模板（实现 TemplateLoaderInterface）
func (s *PresetStoreService) GetTemplate(ctx context.Context, id int64) (*model.DescriptionTemplate, error) {
	if err := s.ensureTemplates(ctx); err != nil {
		return nil, err
	}
	tpl, err := s.tplRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("描述模板 %d 不存在: %v", id, err)
	}
	return tpl, nil
}

// CreateTemplate 新建模板
func (s *PresetStoreService) CreateTemplate(ctx context.Context, tpl *model.DescriptionTemplate) (*model.DescriptionTemplate, error) {
	if tpl.Name == "" {
		return nil, fmt.Errorf("模板名称不能为空")
	}
	created, err := s.templateAPI.CreateTemplate(ctx, tpl)
	if err != nil {
		return nil, err
	}
	if err := s.tplRepo.Upsert(ctx, created); err != nil {
		log.Printf("模板缓存写入失败: %v", err)
	}
	return created, nil
}

// UpdateTemplate 更新模板
func (s *PresetStoreService) UpdateTemplate(ctx context.Context, tpl *model.DescriptionTemplate) error {
	if err := s.templateAPI.UpdateTemplate(ctx, tpl); err != nil {
		return err
	}
	if err := s.tplRepo.Upsert(ctx, tpl); err != nil {
		log.Printf("模板缓存更新失败: %v", err)
	}
	return nil
}

// DeleteTemplate 删除模板
func (s *PresetStoreService) DeleteTemplate(ctx context.Context, id int64) error {
	if err := s.templateAPI.DeleteTemplate(ctx, id); err != nil {
		return err
	}
	if err := s.tplRepo.Delete(ctx, id); err != nil {
		log.Printf("模板缓存删除失败: %v", err)
	}
	return nil
}

// RefreshTemplates 强制重建模板缓存
func (s *PresetStoreService) RefreshTemplates(ctx context.Context) error {
	tpls, err := s.templateAPI.ListTemplates(ctx)
	if err != nil {
		return fmt.Errorf("拉取描述模板失败: %v", err)
	}
	if err := s.tplRepo.ReplaceAll(ctx, tpls); err != nil {
		return fmt.Errorf("重建模板缓存失败: %v", err)
	}
	s.mu.Lock()
	s.tplsFresh = true
	s.mu.Unlock()
	return nil
}

func (s *PresetStoreService) ensureTemplates(ctx context.Context) error {
	s.mu.Lock()
	fresh := s.tplsFresh
	s.mu.Unlock()
	if fresh {
		return nil
	}
	return s.RefreshTemplates(ctx)
}
