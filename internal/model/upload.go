package model

import "time"

// ==================== 状态常量 ====================

const (
	UploadStatusUploading = "uploading"
	UploadStatusScheduled = "scheduled"
	UploadStatusComplete  = "complete"
	UploadStatusFailed    = "failed"
)

// ==================== 数据库模型 ====================

// UploadJob 上传任务（会话内记录，状态以 /api/uploads 的观测为准）
// 约束：scheduled 任务的 ScheduledFor 必须晚于创建时刻，到点后的状态流转由后端负责
type UploadJob struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ClientRef    string      `gorm:"size:36;uniqueIndex" json:"client_ref"`
	RemoteID     int64       `gorm:"index;default:0" json:"remote_id"`
	Title        string      `gorm:"size:200" json:"title"`
	Thumbnail    string      `gorm:"size:512" json:"thumbnail"`
	ImageCount   int         `gorm:"default:0" json:"image_count"`
	Status       string      `gorm:"size:20;index;default:uploading" json:"status"`
	ScheduledFor *time.Time  `json:"scheduled_for,omitempty"`
	ListingRefs  StringSlice `gorm:"type:json" json:"listing_refs"`
	ErrorMessage string      `gorm:"size:1024" json:"error_message,omitempty"`
}

func (*UploadJob) TableName() string {
	return "upload_jobs"
}
