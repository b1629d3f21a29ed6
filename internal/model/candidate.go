package model

// ==================== 状态常量 ====================

const (
	// 候选商品状态
	CandidateStatusPending = "pending"
	CandidateStatusReady   = "ready"
	CandidateStatusError   = "error"
)

// ==================== 内存模型 ====================

// MediaFile 候选商品携带的媒体文件
// PreviewPath 为会话临时目录下的缩略图，由 Ingestor 独占管理并负责清理
type MediaFile struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	MIME        string `json:"mime"`
	Size        int64  `json:"size"`
	PreviewPath string `json:"preview_path,omitempty"`
}

// ProductCandidate 文件夹聚合出的候选商品
// 约束：构造时零图片的候选直接被过滤，不会出现在结果里
type ProductCandidate struct {
	ID         string      `json:"id"`
	FolderName string      `json:"folder_name"`
	Images     []MediaFile `json:"images"`
	Videos     []MediaFile `json:"videos"`
	Status     string      `json:"status"`
}

// PrimaryImage 返回首图（AI 描述、任务缩略图都以首图为准）
func (c *ProductCandidate) PrimaryImage() *MediaFile {
	if len(c.Images) == 0 {
		return nil
	}
	return &c.Images[0]
}
