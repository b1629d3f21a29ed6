package service

import (
	"errors"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"etsy_bulk_v1_202608/internal/model"
	"etsy_bulk_v1_202608/pkg/utils"
)

// ErrNoProducts 整批文件没有聚合出任何候选商品
var ErrNoProducts = errors.New("未识别出任何商品：请确认文件夹中包含图片文件")

// ==================== 文件树摄取 ====================

// IngestService 把拖入的文件树聚合为候选商品
// 分组规则：路径 ≥3 段取倒数第二段，恰好 2 段取第一段，单段取文件名主干。
// 缩略图文件由本服务独占持有，随候选移除或会话结束清理。
type IngestService struct {
	previewDir string
	counter    atomic.Int64

	// 候选 ID -> 该候选持有的缩略图路径
	previews map[string][]string
}

// NewIngestService 创建摄取服务，previewDir 为会话缩略图目录
func NewIngestService(previewDir string) (*IngestService, error) {
	if err := os.MkdirAll(previewDir, 0o755); err != nil {
		return nil, fmt.Errorf("创建缩略图目录失败: %v", err)
	}
	return &IngestService{
		previewDir: previewDir,
		previews:   make(map[string][]string),
	}, nil
}

// DroppedFile 一个被拖入的文件
// RelPath 为拖放根下的相对路径（分组提示），FullPath 为可读取的实际位置
type DroppedFile struct {
	RelPath  string
	FullPath string
}

// IngestResult 摄取结果：候选商品与被跳过文件的警告
type IngestResult struct {
	Candidates []*model.ProductCandidate
	Warnings   []string
}

// Ingest 处理一批拖入文件
// 非图片非视频文件忽略；零图片的分组被丢弃；全部丢弃时返回 ErrNoProducts
func (s *IngestService) Ingest(files []DroppedFile) (*IngestResult, error) {
	groups := make(map[string]*model.ProductCandidate)
	var order []string
	var warnings []string

	for _, file := range files {
		kind := mediaKind(file.RelPath)
		if kind == "" {
			continue
		}

		info, err := os.Stat(file.FullPath)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("无法读取 %s: %v", file.RelPath, err))
			continue
		}
		if kind == "image" && info.Size() > model.MaxImageBytes {
			warnings = append(warnings, fmt.Sprintf("跳过超大图片 %s（%d 字节，上限 10 MiB）", filepath.Base(file.RelPath), info.Size()))
			continue
		}

		key := productKey(file.RelPath)
		cand, ok := groups[key]
		if !ok {
			cand = &model.ProductCandidate{
				ID:         s.nextID(),
				FolderName: key,
				Status:     model.CandidateStatusPending,
			}
			groups[key] = cand
			order = append(order, key)
		}

		media := model.MediaFile{
			Name: filepath.Base(file.RelPath),
			Path: file.FullPath,
			MIME: mimeByExt(file.RelPath),
			Size: info.Size(),
		}

		switch kind {
		case "image":
			media.PreviewPath = s.makePreview(cand.ID, file.FullPath)
			cand.Images = append(cand.Images, media)
		case "video":
			cand.Videos = append(cand.Videos, media)
		}
	}

	// 零图片的候选在构造阶段过滤
	var candidates []*model.ProductCandidate
	for _, key := range order {
		cand := groups[key]
		if len(cand.Images) == 0 {
			s.Release(cand.ID)
			continue
		}
		candidates = append(candidates, cand)
	}

	if len(candidates) == 0 {
		return nil, ErrNoProducts
	}
	return &IngestResult{Candidates: candidates, Warnings: warnings}, nil
}

// IngestDir 递归摄取目录下的全部文件（相对 root 的路径作为分组提示）
func (s *IngestService) IngestDir(root string) (*IngestResult, error) {
	var files []DroppedFile
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = filepath.Base(path)
		}
		files = append(files, DroppedFile{RelPath: rel, FullPath: path})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("遍历目录失败: %v", err)
	}
	return s.Ingest(files)
}

// Release 移除候选时回收其缩略图
func (s *IngestService) Release(candidateID string) {
	for _, p := range s.previews[candidateID] {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			log.Printf("清理缩略图失败 %s: %v", p, err)
		}
	}
	delete(s.previews, candidateID)
}

// Close 会话结束，清空缩略图目录
func (s *IngestService) Close() {
	for id := range s.previews {
		s.Release(id)
	}
	if err := os.RemoveAll(s.previewDir); err != nil {
		log.Printf("清理缩略图目录失败: %v", err)
	}
}

// ==================== 内部方法 ====================

// nextID 会话内唯一 ID：单调计数 + 随机后缀
func (s *IngestService) nextID() string {
	suffix, err := utils.GenerateRandomString(6)
	if err != nil {
		suffix = "xxxxxx"
	}
	return fmt.Sprintf("p%d-%s", s.counter.Add(1), suffix)
}

// makePreview 生成缩略图，失败不阻塞摄取（预览留空）
func (s *IngestService) makePreview(candidateID, src string) string {
	dst := filepath.Join(s.previewDir, fmt.Sprintf("%s-%d.jpg", candidateID, len(s.previews[candidateID])))
	if err := utils.MakeThumbnailFile(src, dst); err != nil {
		log.Printf("生成缩略图失败 %s: %v", src, err)
		return ""
	}
	s.previews[candidateID] = append(s.previews[candidateID], dst)
	return dst
}

// productKey 分组键提取规则
func productKey(path string) string {
	normalized := strings.ReplaceAll(path, "\\", "/")
	segments := strings.Split(strings.Trim(normalized, "/"), "/")

	switch {
	case len(segments) >= 3:
		return segments[len(segments)-2]
	case len(segments) == 2:
		return segments[0]
	default:
		name := segments[0]
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
}

// mediaKind 按 MIME 前缀归类，返回 image / video / 空串
func mediaKind(path string) string {
	mimeType := mimeByExt(path)
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return "image"
	case strings.HasPrefix(mimeType, "video/"):
		return "video"
	default:
		return ""
	}
}

func mimeByExt(path string) string {
	return mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
}
