package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"etsy_bulk_v1_202608/internal/api/dto"
	"etsy_bulk_v1_202608/internal/model"
	"etsy_bulk_v1_202608/internal/repository"
)

// ==================== 外部服务依赖 ====================

// UploadAPIInterface 上传任务依赖的远端接口（由网关实现）
type UploadAPIInterface interface {
	CreateUpload(ctx context.Context, req dto.CreateUploadRequest) (*dto.CreateUploadResponse, error)
	ListUploads(ctx context.Context) ([]dto.UploadStatus, error)
	PublishUpload(ctx context.Context, id int64) error
	ScheduleUpload(ctx context.Context, id int64, scheduledFor string) error
	CancelUpload(ctx context.Context, id int64) error
	DeleteUpload(ctx context.Context, id int64) error
}

// ==================== 上传任务控制器 ====================

// UploadService 上传任务控制器
// 提交即从工作区取走草稿；任务进度归后端，本地记录只做观测投影。
type UploadService struct {
	api       UploadAPIInterface
	workspace *WorkspaceService
	jobs      repository.UploadJobRepository
}

// NewUploadService 创建上传任务控制器
func NewUploadService(api UploadAPIInterface, workspace *WorkspaceService, jobs repository.UploadJobRepository) *UploadService {
	return &UploadService{api: api, workspace: workspace, jobs: jobs}
}

// Submit 把当前选中的草稿提交为一个上传任务
// scheduledFor 非空表示定时发布，必须晚于当前时刻。
// 本地记录先落库（列表立即可见），远端创建失败时记录转 failed 而不是消失。
func (s *UploadService) Submit(ctx context.Context, title string, scheduledFor *time.Time) (*model.UploadJob, error) {
	if scheduledFor != nil && !scheduledFor.After(time.Now()) {
		return nil, fmt.Errorf("定时时间必须晚于当前时刻")
	}

	drafts := s.workspace.TakeSelected()
	if len(drafts) == 0 {
		return nil, fmt.Errorf("没有选中的草稿")
	}

	job := &model.UploadJob{
		ClientRef:    uuid.NewString(),
		Title:        title,
		ImageCount:   countImages(drafts),
		Status:       model.UploadStatusUploading,
		ScheduledFor: scheduledFor,
	}
	if scheduledFor != nil {
		job.Status = model.UploadStatusScheduled
	}
	if title == "" {
		job.Title = fmt.Sprintf("批量上传 %d 个草稿", len(drafts))
	}
	for _, d := range drafts {
		job.ListingRefs = append(job.ListingRefs, d.ID)
	}
	if img := drafts[0].PrimaryImage(); img != nil {
		job.Thumbnail = img.PreviewPath
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("创建本地上传记录失败: %v", err)
	}

	req := dto.CreateUploadRequest{
		ClientRef: job.ClientRef,
		Title:     job.Title,
	}
	for _, d := range drafts {
		req.Listings = append(req.Listings, *d)
	}
	if scheduledFor != nil {
		req.ScheduledFor = scheduledFor.UTC().Format(time.RFC3339)
	}

	resp, err := s.api.CreateUpload(ctx, req)
	if err != nil {
		if uerr := s.jobs.UpdateStatus(ctx, job.ID, model.UploadStatusFailed, err.Error()); uerr != nil {
			log.Printf("上传任务 %d 标记失败出错: %v", job.ID, uerr)
		}
		return nil, fmt.Errorf("提交上传任务失败: %v", err)
	}

	if err := s.jobs.SetRemoteID(ctx, job.ID, resp.UploadID); err != nil {
		log.Printf("上传任务 %d 记录远端 ID 失败: %v", job.ID, err)
	}
	job.RemoteID = resp.UploadID
	if resp.Status != "" {
		job.Status = resp.Status
		if err := s.jobs.UpdateStatus(ctx, job.ID, resp.Status, ""); err != nil {
			log.Printf("上传任务 %d 更新状态失败: %v", job.ID, err)
		}
	}
	return job, nil
}

func countImages(drafts []*model.Listing) int {
	total := 0
	for _, d := range drafts {
		total += len(d.Images)
	}
	return total
}

// ==================== 任务生命周期 ====================

// Publish 立即发布一个定时任务
func (s *UploadService) Publish(ctx context.Context, jobID int64) error {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("上传任务不存在: %v", err)
	}
	if err := s.api.PublishUpload(ctx, job.RemoteID); err != nil {
		return err
	}
	return s.jobs.UpdateStatus(ctx, jobID, model.UploadStatusUploading, "")
}

// Schedule 把任务改为定时发布
func (s *UploadService) Schedule(ctx context.Context, jobID int64, at time.Time) error {
	if !at.After(time.Now()) {
		return fmt.Errorf("定时时间必须晚于当前时刻")
	}
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("上传任务不存在: %v", err)
	}
	if err := s.api.ScheduleUpload(ctx, job.RemoteID, at.UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	return s.jobs.UpdateStatus(ctx, jobID, model.UploadStatusScheduled, "")
}

// Cancel 取消定时任务
func (s *UploadService) Cancel(ctx context.Context, jobID int64) error {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("上传任务不存在: %v", err)
	}
	if err := s.api.CancelUpload(ctx, job.RemoteID); err != nil {
		return err
	}
	return s.jobs.Delete(ctx, jobID)
}

// Delete 删除任务记录（远端与本地）
func (s *UploadService) Delete(ctx context.Context, jobID int64) error {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("上传任务不存在: %v", err)
	}
	if job.RemoteID != 0 {
		if err := s.api.DeleteUpload(ctx, job.RemoteID); err != nil {
			return err
		}
	}
	return s.jobs.Delete(ctx, jobID)
}

// List 本地任务列表（创建时间倒序）
func (s *UploadService) List(ctx context.Context) ([]model.UploadJob, error) {
	return s.jobs.List(ctx)
}

// ==================== 状态观测 ====================

// RefreshStatuses 用远端任务列表刷新本地状态
// 本地找不到对应记录的远端任务忽略（可能来自其他会话）
func (s *UploadService) RefreshStatuses(ctx context.Context) error {
	remote, err := s.api.ListUploads(ctx)
	if err != nil {
		return err
	}
	local, err := s.jobs.List(ctx)
	if err != nil {
		return err
	}

	byRemoteID := make(map[int64]*model.UploadJob, len(local))
	for i := range local {
		if local[i].RemoteID != 0 {
			byRemoteID[local[i].RemoteID] = &local[i]
		}
	}

	for _, r := range remote {
		job, ok := byRemoteID[r.UploadID]
		if !ok || job.Status == r.Status {
			continue
		}
		if err := s.jobs.UpdateStatus(ctx, job.ID, r.Status, r.ErrorMessage); err != nil {
			log.Printf("上传任务 %d 状态同步失败: %v", job.ID, err)
		}
	}
	return nil
}
