package service

import (
	"fmt"
	"sync"

	"etsy_bulk_v1_202608/internal/model"
)

// ==================== 装配工作区 ====================

// WorkspaceService 会话内的草稿集合
// 所有修改操作同步完成，观察者不会看到半应用的批次。
// 草稿在提交前由工作区独占持有，TakeSelected 把所有权转移给上传任务。
type WorkspaceService struct {
	mu        sync.RWMutex
	order     []string
	drafts    map[string]*model.Listing
	selection map[string]bool
}

// NewWorkspaceService 创建空工作区
func NewWorkspaceService() *WorkspaceService {
	return &WorkspaceService{
		drafts:    make(map[string]*model.Listing),
		selection: make(map[string]bool),
	}
}

// ==================== 草稿集合操作 ====================

// Add 批量加入草稿
// 约束：ID 不允许重复，任何一条冲突则整批拒绝，模型保持不变
func (s *WorkspaceService) Add(listings []*model.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range listings {
		if _, exists := s.drafts[l.ID]; exists {
			return fmt.Errorf("草稿 ID 重复: %s", l.ID)
		}
	}
	for _, l := range listings {
		s.drafts[l.ID] = l
		s.order = append(s.order, l.ID)
	}
	return nil
}

// ListingPatch 草稿的局部编辑，nil 字段不生效
type ListingPatch struct {
	Title       *string
	Description *string
	Tags        *[]string
	Price       *float64
	Quantity    *int
	SEOScore    *int
	Status      *string
}

// Update 编辑单条草稿
// 预检失败时草稿保持原状（校验在副本上进行）
func (s *WorkspaceService) Update(id string, patch ListingPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, ok := s.drafts[id]
	if !ok {
		return fmt.Errorf("草稿不存在: %s", id)
	}

	updated := *draft
	if patch.Title != nil {
		updated.Title = *patch.Title
	}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}
	if patch.Tags != nil {
		updated.Tags = *patch.Tags
	}
	if patch.Price != nil {
		updated.Price = *patch.Price
	}
	if patch.Quantity != nil {
		updated.Quantity = *patch.Quantity
	}
	if patch.SEOScore != nil {
		updated.SEOScore = *patch.SEOScore
	}
	if patch.Status != nil {
		updated.Status = *patch.Status
	}

	if err := updated.Validate(); err != nil {
		return err
	}
	*draft = updated
	return nil
}

// Remove 移除草稿及其选中态
func (s *WorkspaceService) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
}

func (s *WorkspaceService) removeLocked(id string) {
	if _, ok := s.drafts[id]; !ok {
		return
	}
	delete(s.drafts, id)
	delete(s.selection, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Clear 清空工作区
func (s *WorkspaceService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.drafts = make(map[string]*model.Listing)
	s.selection = make(map[string]bool)
}

// Get 查询单条草稿
func (s *WorkspaceService) Get(id string) (*model.Listing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[id]
	return draft, ok
}

// List 按加入顺序返回全部草稿
func (s *WorkspaceService) List() []*model.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listings := make([]*model.Listing, 0, len(s.order))
	for _, id := range s.order {
		listings = append(listings, s.drafts[id])
	}
	return listings
}

// ==================== 选中集 ====================

// Select 选中草稿（不存在的 ID 忽略）
func (s *WorkspaceService) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drafts[id]; ok {
		s.selection[id] = true
	}
}

// Deselect 取消选中
func (s *WorkspaceService) Deselect(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selection, id)
}

// ToggleSelectAll 全选 / 全不选切换
func (s *WorkspaceService) ToggleSelectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.selection) == len(s.order) && len(s.order) > 0 {
		s.selection = make(map[string]bool)
		return
	}
	for _, id := range s.order {
		s.selection[id] = true
	}
}

// Selected 按加入顺序返回选中的 ID
func (s *WorkspaceService) Selected() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.selection))
	for _, id := range s.order {
		if s.selection[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// TakeSelected 取出选中的草稿并从工作区移除（所有权转移给上传任务）
func (s *WorkspaceService) TakeSelected() []*model.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()

	var taken []*model.Listing
	var ids []string
	for _, id := range s.order {
		if s.selection[id] {
			taken = append(taken, s.drafts[id])
			ids = append(ids, id)
		}
	}
	for _, id := range ids {
		s.removeLocked(id)
	}
	return taken
}

// ==================== 统计 ====================

// Len 草稿总数
func (s *WorkspaceService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// SelectionCount 当前选中数
func (s *WorkspaceService) SelectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.selection)
}

// AverageSEOScore 草稿 SEO 均分（四舍五入），空工作区为 0
func (s *WorkspaceService) AverageSEOScore() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.order) == 0 {
		return 0
	}
	sum := 0
	for _, draft := range s.drafts {
		sum += draft.SEOScore
	}
	return (sum + len(s.order)/2) / len(s.order)
}
