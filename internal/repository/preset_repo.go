package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"etsy_bulk_v1_202608/internal/model"
)

// ==================== 仓储接口 ====================

// PresetRepository Preset 会话缓存仓储接口
type PresetRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Preset, error)
	List(ctx context.Context) ([]model.Preset, error)
	Upsert(ctx context.Context, preset *model.Preset) error
	Delete(ctx context.Context, id int64) error
	// ReplaceAll 以服务端返回的全集重建缓存
	ReplaceAll(ctx context.Context, presets []model.Preset) error
}

// ==================== 仓储实现 ====================

type presetRepo struct {
	db *gorm.DB
}

// NewPresetRepository 创建 Preset 仓储
func NewPresetRepository(db *gorm.DB) PresetRepository {
	return &presetRepo{db: db}
}

func (r *presetRepo) GetByID(ctx context.Context, id int64) (*model.Preset, error) {
	var preset model.Preset
	if err := r.db.WithContext(ctx).First(&preset, id).Error; err != nil {
		return nil, err
	}
	return &preset, nil
}

func (r *presetRepo) List(ctx context.Context) ([]model.Preset, error) {
	var presets []model.Preset
	err := r.db.WithContext(ctx).Order("id").Find(&presets).Error
	return presets, err
}

func (r *presetRepo) Upsert(ctx context.Context, preset *model.Preset) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(preset).Error
}

func (r *presetRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Preset{}, id).Error
}

func (r *presetRepo) ReplaceAll(ctx context.Context, presets []model.Preset) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Preset{}).Error; err != nil {
			return err
		}
		if len(presets) == 0 {
			return nil
		}
		return tx.Create(&presets).Error
	})
}
