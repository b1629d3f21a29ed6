package repository

import (
	"context"

	"gorm.io/gorm"

	"etsy_bulk_v1_202608/internal/model"
)

// ==================== 仓储接口 ====================

// UploadJobRepository 上传任务仓储接口
type UploadJobRepository interface {
	Create(ctx context.Context, job *model.UploadJob) error
	GetByID(ctx context.Context, id int64) (*model.UploadJob, error)
	List(ctx context.Context) ([]model.UploadJob, error)
	UpdateStatus(ctx context.Context, id int64, status, errMsg string) error
	SetRemoteID(ctx context.Context, id, remoteID int64) error
	Delete(ctx context.Context, id int64) error
}

// ==================== 仓储实现 ====================

type uploadJobRepo struct {
	db *gorm.DB
}

// NewUploadJobRepository 创建上传任务仓储
func NewUploadJobRepository(db *gorm.DB) UploadJobRepository {
	return &uploadJobRepo{db: db}
}

func (r *uploadJobRepo) Create(ctx context.Context, job *model.UploadJob) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *uploadJobRepo) GetByID(ctx context.Context, id int64) (*model.UploadJob, error) {
	var job model.UploadJob
	if err := r.db.WithContext(ctx).First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *uploadJobRepo) List(ctx context.Context) ([]model.UploadJob, error) {
	var jobs []model.UploadJob
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&jobs).Error
	return jobs, err
}

func (r *uploadJobRepo) UpdateStatus(ctx context.Context, id int64, status, errMsg string) error {
	return r.db.WithContext(ctx).Model(&model.UploadJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        status,
			"error_message": errMsg,
		}).Error
}

func (r *uploadJobRepo) SetRemoteID(ctx context.Context, id, remoteID int64) error {
	return r.db.WithContext(ctx).Model(&model.UploadJob{}).
		Where("id = ?", id).
		Update("remote_id", remoteID).Error
}

func (r *uploadJobRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.UploadJob{}, id).Error
}
