package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"etsy_bulk_v1_202608/internal/api/dto"
	"etsy_bulk_v1_202608/internal/model"
	"etsy_bulk_v1_202608/internal/repository"
)

// ==================== Mock 实现 ====================

type mockUploadAPI struct {
	createFn func(ctx context.Context, req dto.CreateUploadRequest) (*dto.CreateUploadResponse, error)
	listFn   func(ctx context.Context) ([]dto.UploadStatus, error)

	published []int64
	scheduled []int64
	cancelled []int64
	deleted   []int64
	lastReq   dto.CreateUploadRequest
}

func (m *mockUploadAPI) CreateUpload(ctx context.Context, req dto.CreateUploadRequest) (*dto.CreateUploadResponse, error) {
	m.lastReq = req
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return &dto.CreateUploadResponse{UploadID: 900, Status: model.UploadStatusUploading}, nil
}

func (m *mockUploadAPI) ListUploads(ctx context.Context) ([]dto.UploadStatus, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockUploadAPI) PublishUpload(ctx context.Context, id int64) error {
	m.published = append(m.published, id)
	return nil
}

func (m *mockUploadAPI) ScheduleUpload(ctx context.Context, id int64, scheduledFor string) error {
	m.scheduled = append(m.scheduled, id)
	return nil
}

func (m *mockUploadAPI) CancelUpload(ctx context.Context, id int64) error {
	m.cancelled = append(m.cancelled, id)
	return nil
}

func (m *mockUploadAPI) DeleteUpload(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return nil
}

// ==================== 测试工具 ====================

func setupUploadTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.UploadJob{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func newUploadFixture(t *testing.T, api *mockUploadAPI) (*UploadService, *WorkspaceService, repository.UploadJobRepository) {
	t.Helper()
	repo := repository.NewUploadJobRepository(setupUploadTestDB(t))
	ws := NewWorkspaceService()
	return NewUploadService(api, ws, repo), ws, repo
}

func stageDrafts(t *testing.T, ws *WorkspaceService, n int) {
	t.Helper()
	var drafts []*model.Listing
	for i := 0; i < n; i++ {
		d := draft(fmt.Sprintf("d%d", i), 70)
		d.Images = []model.MediaFile{{Name: "main.png", PreviewPath: "/tmp/p.jpg"}}
		drafts = append(drafts, d)
	}
	if err := ws.Add(drafts); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	ws.ToggleSelectAll()
}

// ==================== 测试 ====================

func TestSubmit_TakesSelectionAndRecordsJob(t *testing.T) {
	api := &mockUploadAPI{}
	svc, ws, repo := newUploadFixture(t, api)
	stageDrafts(t, ws, 3)

	job, err := svc.Submit(context.Background(), "三月上新", nil)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	// 草稿所有权转移，工作区清空
	if ws.Len() != 0 {
		t.Errorf("提交后工作区应为空, Len = %d", ws.Len())
	}

	if job.RemoteID != 900 {
		t.Errorf("RemoteID = %d, want 900", job.RemoteID)
	}
	if job.ClientRef == "" {
		t.Error("ClientRef 不能为空")
	}
	if len(job.ListingRefs) != 3 || job.ImageCount != 3 {
		t.Errorf("ListingRefs=%d ImageCount=%d, want 3/3", len(job.ListingRefs), job.ImageCount)
	}
	if job.Thumbnail != "/tmp/p.jpg" {
		t.Errorf("Thumbnail = %q, want 首个草稿的首图预览", job.Thumbnail)
	}
	if api.lastReq.ClientRef != job.ClientRef {
		t.Error("请求体应携带 ClientRef 用于幂等")
	}
	if len(api.lastReq.Listings) != 3 {
		t.Errorf("请求体草稿数 = %d, want 3", len(api.lastReq.Listings))
	}

	// 本地记录立即可查
	stored, err := repo.GetByID(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if stored.Status != model.UploadStatusUploading {
		t.Errorf("Status = %q, want uploading", stored.Status)
	}
}

func TestSubmit_EmptySelection(t *testing.T) {
	svc, _, _ := newUploadFixture(t, &mockUploadAPI{})
	if _, err := svc.Submit(context.Background(), "x", nil); err == nil {
		t.Error("空选中集应拒绝提交")
	}
}

func TestSubmit_ScheduledMustBeFuture(t *testing.T) {
	svc, ws, _ := newUploadFixture(t, &mockUploadAPI{})
	stageDrafts(t, ws, 1)

	past := time.Now().Add(-time.Hour)
	if _, err := svc.Submit(context.Background(), "x", &past); err == nil {
		t.Error("过去的定时时间应被拒绝")
	}
	// 拒绝发生在取走草稿之前
	if ws.Len() != 1 {
		t.Errorf("失败的提交不应清空工作区, Len = %d", ws.Len())
	}
}

func TestSubmit_ScheduledJob(t *testing.T) {
	api := &mockUploadAPI{createFn: func(ctx context.Context, req dto.CreateUploadRequest) (*dto.CreateUploadResponse, error) {
		return &dto.CreateUploadResponse{UploadID: 901, Status: model.UploadStatusScheduled}, nil
	}}
	svc, ws, _ := newUploadFixture(t, api)
	stageDrafts(t, ws, 1)

	at := time.Now().Add(2 * time.Hour)
	job, err := svc.Submit(context.Background(), "定时", &at)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if job.Status != model.UploadStatusScheduled {
		t.Errorf("Status = %q, want scheduled", job.Status)
	}
	if api.lastReq.ScheduledFor == "" {
		t.Error("请求体应携带 RFC3339 定时时间")
	}
}

func TestSubmit_RemoteFailureMarksJobFailed(t *testing.T) {
	api := &mockUploadAPI{createFn: func(ctx context.Context, req dto.CreateUploadRequest) (*dto.CreateUploadResponse, error) {
		return nil, fmt.Errorf("backend down")
	}}
	svc, ws, repo := newUploadFixture(t, api)
	stageDrafts(t, ws, 2)

	if _, err := svc.Submit(context.Background(), "x", nil); err == nil {
		t.Fatal("远端失败应返回错误")
	}

	// 任务记录转 failed 而不是消失
	jobs, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("任务数 = %d, want 1", len(jobs))
	}
	if jobs[0].Status != model.UploadStatusFailed {
		t.Errorf("Status = %q, want failed", jobs[0].Status)
	}
	if jobs[0].ErrorMessage == "" {
		t.Error("失败任务应记录错误信息")
	}
}

func TestLifecycle_PublishCancelDelete(t *testing.T) {
	api := &mockUploadAPI{}
	svc, ws, repo := newUploadFixture(t, api)
	stageDrafts(t, ws, 1)

	job, err := svc.Submit(context.Background(), "x", nil)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if err := svc.Publish(context.Background(), job.ID); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if len(api.published) != 1 || api.published[0] != job.RemoteID {
		t.Errorf("published = %v, want 远端 ID %d", api.published, job.RemoteID)
	}

	if err := svc.Delete(context.Background(), job.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(api.deleted) != 1 {
		t.Errorf("deleted = %v, want 1 次远端删除", api.deleted)
	}
	if _, err := repo.GetByID(context.Background(), job.ID); err == nil {
		t.Error("删除后本地记录应不存在")
	}
}

func TestRefreshStatuses_SyncsRemoteState(t *testing.T) {
	api := &mockUploadAPI{}
	svc, ws, repo := newUploadFixture(t, api)
	stageDrafts(t, ws, 1)

	job, err := svc.Submit(context.Background(), "x", nil)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	api.listFn = func(ctx context.Context) ([]dto.UploadStatus, error) {
		return []dto.UploadStatus{
			{UploadID: job.RemoteID, Status: model.UploadStatusComplete},
			{UploadID: 77777, Status: model.UploadStatusFailed}, // 其他会话的任务，忽略
		}, nil
	}

	if err := svc.RefreshStatuses(context.Background()); err != nil {
		t.Fatalf("RefreshStatuses() error = %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), job.ID)
	if stored.Status != model.UploadStatusComplete {
		t.Errorf("Status = %q, want complete（观测远端流转）", stored.Status)
	}
}
