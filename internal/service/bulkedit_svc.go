package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"etsy_bulk_v1_202608/internal/api/dto"
	"etsy_bulk_v1_202608/internal/model"
)

// ==================== 外部服务依赖 ====================

// BulkEditAPIInterface 批量编辑依赖的远端接口（由网关实现）
type BulkEditAPIInterface interface {
	BulkPatchListings(ctx context.Context, req dto.BulkUpdateRequest) (*dto.BulkUpdateResult, error)
	RegenerateListingField(ctx context.Context, listingID int64, req dto.RegenerateRequest) (*dto.RegenerateResult, error)
	UploadListingImage(ctx context.Context, listingID int64, filename string, data []byte, rank int) error
	DeleteListingImage(ctx context.Context, listingID, imageID int64) error
}

// ==================== 操作状态机 ====================

// OpState 批量操作中单个商品的状态
type OpState int

const (
	OpIdle OpState = iota
	OpPending
	OpSuccess
	OpFailed
)

func (s OpState) String() string {
	switch s {
	case OpIdle:
		return "idle"
	case OpPending:
		return "pending"
	case OpSuccess:
		return "success"
	case OpFailed:
		return "failed"
	}
	return "unknown"
}

// ==================== 批量编辑会话 ====================

// BulkEditService 对选中的店铺商品执行批量变更
// 顺序约束：商品间串行、单商品内图片操作串行；单条失败不中断整批。
// 一旦 Apply 开始便运行到底，结果集先落到引擎再交给 UI。
type BulkEditService struct {
	api BulkEditAPIInterface
}

// NewBulkEditService 创建批量编辑服务
func NewBulkEditService(api BulkEditAPIInterface) *BulkEditService {
	return &BulkEditService{api: api}
}

// EditSession 一次批量编辑的本地副本
// originals 为服务端快照，locals 为用户编辑的副本，modified 为差异集
type EditSession struct {
	order     []int64
	originals map[int64]model.ShopListing
	locals    map[int64]model.ShopListing
	modified  map[int64]bool

	states     map[int64]OpState
	lastResult *dto.BulkUpdateResult
	warnings   []string
}

// StartSession 以选中集的服务端快照开启编辑会话
func (s *BulkEditService) StartSession(selected []model.ShopListing) *EditSession {
	sess := &EditSession{
		originals: make(map[int64]model.ShopListing, len(selected)),
		locals:    make(map[int64]model.ShopListing, len(selected)),
		modified:  make(map[int64]bool),
		states:    make(map[int64]OpState, len(selected)),
	}
	for _, l := range selected {
		sess.order = append(sess.order, l.EtsyListingID)
		sess.originals[l.EtsyListingID] = l
		local := l
		local.Tags = append([]string(nil), l.Tags...)
		sess.locals[l.EtsyListingID] = local
		sess.states[l.EtsyListingID] = OpIdle
	}
	return sess
}

// ==================== (a) 字段编辑 ====================

// SetTitle 编辑本地标题副本
func (sess *EditSession) SetTitle(listingID int64, title string) error {
	local, ok := sess.locals[listingID]
	if !ok {
		return fmt.Errorf("商品 %d 不在编辑会话中", listingID)
	}
	if n := utf8.RuneCountInString(title); n > model.MaxTitleLength {
		return fmt.Errorf("标题超长: %d 字符（上限 %d）", n, model.MaxTitleLength)
	}
	local.Title = title
	sess.locals[listingID] = local
	sess.refreshModified(listingID)
	return nil
}

// SetTags 编辑本地标签副本
func (sess *EditSession) SetTags(listingID int64, tags []string) error {
	local, ok := sess.locals[listingID]
	if !ok {
		return fmt.Errorf("商品 %d 不在编辑会话中", listingID)
	}
	if len(tags) > model.MaxTags {
		return fmt.Errorf("标签超过 %d 个", model.MaxTags)
	}
	local.Tags = append([]string(nil), tags...)
	sess.locals[listingID] = local
	sess.refreshModified(listingID)
	return nil
}

// refreshModified 重算差异集：标题不同，或标签逗号串不同
func (sess *EditSession) refreshModified(listingID int64) {
	orig := sess.originals[listingID]
	local := sess.locals[listingID]

	changed := local.Title != orig.Title ||
		strings.Join(local.Tags, ",") != strings.Join(orig.Tags, ",")
	if changed {
		sess.modified[listingID] = true
	} else {
		delete(sess.modified, listingID)
	}
}

// Modified 差异集 ID（升序）
func (sess *EditSession) Modified() []int64 {
	ids := make([]int64, 0, len(sess.modified))
	for id := range sess.modified {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// BuildPatches 仅对差异字段生成补丁
// 规则：标题不同才带 title，标签逗号串不同才带 tags；无差异的商品不进补丁
func (sess *EditSession) BuildPatches() dto.BulkUpdateRequest {
	req := dto.BulkUpdateRequest{Updates: make(map[int64]dto.ListingPatch)}

	for _, id := range sess.order {
		if !sess.modified[id] {
			continue
		}
		orig := sess.originals[id]
		local := sess.locals[id]

		var patch dto.ListingPatch
		if local.Title != orig.Title {
			title := local.Title
			patch.Title = &title
		}
		if strings.Join(local.Tags, ",") != strings.Join(orig.Tags, ",") {
			tags := append([]string(nil), local.Tags...)
			patch.Tags = &tags
		}
		if patch.Empty() {
			continue
		}
		req.ListingIDs = append(req.ListingIDs, id)
		req.Updates[id] = patch
	}
	return req
}

// ApplyFieldEdits 提交一次批量更新
// 响应把提交集合切分为 success/failed；failed 非空时 UI 保持弹窗打开
func (s *BulkEditService) ApplyFieldEdits(ctx context.Context, sess *EditSession) (*dto.BulkUpdateResult, error) {
	req := sess.BuildPatches()
	if len(req.ListingIDs) == 0 {
		return &dto.BulkUpdateResult{}, nil
	}

	for _, id := range req.ListingIDs {
		sess.states[id] = OpPending
	}

	result, err := s.api.BulkPatchListings(ctx, req)
	if err != nil {
		for _, id := range req.ListingIDs {
			sess.states[id] = OpFailed
		}
		return nil, err
	}

	// 结果先提交到模型，UI 再响应
	for _, id := range result.Success {
		sess.states[id] = OpSuccess
		sess.originals[id] = sess.locals[id]
		delete(sess.modified, id)
	}
	for _, item := range result.Failed {
		sess.states[item.ListingID] = OpFailed
	}
	sess.lastResult = result
	return result, nil
}

// ==================== (b) AI 重生成 ====================

// RegenerateOutcome 单商品重生成结果
type RegenerateOutcome struct {
	ListingID int64
	Err       error
}

// RegenerateField 对选中集按 ID 升序逐个重生成
// 串行是对后端限流的尊重；单条失败记录后继续
func (s *BulkEditService) RegenerateField(ctx context.Context, sess *EditSession, field string, imageRank int, guidance string) []RegenerateOutcome {
	if field != "title" && field != "tags" {
		return []RegenerateOutcome{{Err: fmt.Errorf("不支持重生成字段: %q", field)}}
	}

	ids := append([]int64(nil), sess.order...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	outcomes := make([]RegenerateOutcome, 0, len(ids))
	for _, id := range ids {
		sess.states[id] = OpPending
		result, err := s.api.RegenerateListingField(ctx, id, dto.RegenerateRequest{
			Field:       field,
			Instruction: guidance,
			ImageRank:   imageRank,
		})
		if err != nil {
			log.Printf("商品 %d 重生成 %s 失败: %v", id, field, err)
			sess.states[id] = OpFailed
			outcomes = append(outcomes, RegenerateOutcome{ListingID: id, Err: err})
			continue
		}

		local := sess.locals[id]
		if field == "title" && result.Title != "" {
			local.Title = result.Title
		}
		if field == "tags" && len(result.Tags) > 0 {
			local.Tags = append([]string(nil), result.Tags...)
		}
		sess.locals[id] = local
		sess.refreshModified(id)
		sess.states[id] = OpSuccess
		outcomes = append(outcomes, RegenerateOutcome{ListingID: id})
	}
	return outcomes
}

// ==================== (c) 图片槽位操作 ====================

// ImageBehavior 插槽行为：shift 后移现有图片，replace 覆盖槽位
type ImageBehavior string

const (
	BehaviorShift   ImageBehavior = "shift"
	BehaviorReplace ImageBehavior = "replace"
)

// ImageOpResult 图片批量操作结果
type ImageOpResult struct {
	Success  []int64
	Failed   []dto.BulkItemError
	Warnings []string
}

// UploadImagesAtRank 从 rank 起插入一批图片
// 目标槽位 R..R+k-1 截断到 10，溢出文件静默丢弃并记警告。
// replace：目标槽位有图先删后传；shift：只上传，后端负责整体后移。
// 商品间串行、单商品内串行，避免对同店铺的并发压力。
func (s *BulkEditService) UploadImagesAtRank(ctx context.Context, sess *EditSession, rank int, files []string, behavior ImageBehavior) *ImageOpResult {
	result := &ImageOpResult{}
	if rank < 1 || rank > model.MaxImages {
		result.Warnings = append(result.Warnings, fmt.Sprintf("无效的槽位: %d", rank))
		return result
	}

	// 目标槽位截断
	maxFiles := model.MaxImages - rank + 1
	useFiles := files
	if len(useFiles) > maxFiles {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("槽位上限 %d：丢弃末尾 %d 个文件", model.MaxImages, len(useFiles)-maxFiles))
		useFiles = useFiles[:maxFiles]
	}

	for _, id := range sess.order {
		sess.states[id] = OpPending
		if err := s.uploadForListing(ctx, sess, id, rank, useFiles, behavior); err != nil {
			sess.states[id] = OpFailed
			result.Failed = append(result.Failed, dto.BulkItemError{ListingID: id, Error: err.Error()})
			continue
		}
		sess.states[id] = OpSuccess
		result.Success = append(result.Success, id)
	}
	return result
}

func (s *BulkEditService) uploadForListing(ctx context.Context, sess *EditSession, listingID int64, rank int, files []string, behavior ImageBehavior) error {
	listing := sess.originals[listingID]

	for i, file := range files {
		targetRank := rank + i

		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("读取图片 %s 失败: %v", file, err)
		}
		if int64(len(data)) > model.MaxImageBytes {
			return fmt.Errorf("图片 %s 超过 10 MiB", filepath.Base(file))
		}

		// replace：槽位有图先删除，保证最终槽位图片一定来自新上传
		if behavior == BehaviorReplace {
			if existing := listing.ImageAtRank(targetRank); existing != nil {
				if err := s.api.DeleteListingImage(ctx, listingID, existing.ListingImageID); err != nil {
					return fmt.Errorf("删除槽位 %d 旧图失败: %v", targetRank, err)
				}
			}
		}

		if err := s.api.UploadListingImage(ctx, listingID, filepath.Base(file), data, targetRank); err != nil {
			return fmt.Errorf("上传槽位 %d 失败: %v", targetRank, err)
		}
	}
	return nil
}

// RemoveImageAtRank 对整个选中集删除指定槽位的图片
// 槽位无图按成功记账（幂等删除）
func (s *BulkEditService) RemoveImageAtRank(ctx context.Context, sess *EditSession, rank int) *ImageOpResult {
	result := &ImageOpResult{}

	for _, id := range sess.order {
		sess.states[id] = OpPending
		listing := sess.originals[id]

		image := listing.ImageAtRank(rank)
		if image == nil {
			sess.states[id] = OpSuccess
			result.Success = append(result.Success, id)
			continue
		}

		if err := s.api.DeleteListingImage(ctx, id, image.ListingImageID); err != nil {
			sess.states[id] = OpFailed
			result.Failed = append(result.Failed, dto.BulkItemError{ListingID: id, Error: err.Error()})
			continue
		}
		sess.states[id] = OpSuccess
		result.Success = append(result.Success, id)
	}
	return result
}

// ==================== 状态读取 ====================

// State 单商品当前操作状态
func (sess *EditSession) State(listingID int64) OpState {
	return sess.states[listingID]
}

// LastResult 最近一次字段批量更新的结果
func (sess *EditSession) LastResult() *dto.BulkUpdateResult {
	return sess.lastResult
}

// Local 本地副本（只读访问）
func (sess *EditSession) Local(listingID int64) (model.ShopListing, bool) {
	l, ok := sess.locals[listingID]
	return l, ok
}
