package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"etsy_bulk_v1_202608/internal/model"
)

// ==================== 仓储接口 ====================

// TemplateRepository 描述模板会话缓存仓储接口
type TemplateRepository interface {
	GetByID(ctx context.Context, id int64) (*model.DescriptionTemplate, error)
	List(ctx context.Context) ([]model.DescriptionTemplate, error)
	Upsert(ctx context.Context, tpl *model.DescriptionTemplate) error
	Delete(ctx context.Context, id int64) error
	ReplaceAll(ctx context.Context, tpls []model.DescriptionTemplate) error
}

// ==================== 仓储实现 ====================

type templateRepo struct {
	db *gorm.DB
}

// NewTemplateRepository 创建模板仓储
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepo{db: db}
}

func (r *templateRepo) GetByID(ctx context.Context, id int64) (*model.DescriptionTemplate, error) {
	var tpl model.DescriptionTemplate
	if err := r.db.WithContext(ctx).First(&tpl, id).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *templateRepo) List(ctx context.Context) ([]model.DescriptionTemplate, error) {
	var tpls []model.DescriptionTemplate
	err := r.db.WithContext(ctx).Order("id").Find(&tpls).Error
	return tpls, err
}

func (r *templateRepo) Upsert(ctx context.Context, tpl *model.DescriptionTemplate) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(tpl).Error
}

func (r *templateRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.DescriptionTemplate{}, id).Error
}

func (r *templateRepo) ReplaceAll(ctx context.Context, tpls []model.DescriptionTemplate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.DescriptionTemplate{}).Error; err != nil {
			return err
		}
		if len(tpls) == 0 {
			return nil
		}
		return tx.Create(&tpls).Error
	})
}
