package service

import (
	"context"
	"fmt"
	"sync"

	"etsy_bulk_v1_202608/internal/api/dto"
	"etsy_bulk_v1_202608/internal/model"
)

// ==================== 外部服务依赖 ====================

// ShopAPIInterface 店铺商品远端接口（由网关实现）
type ShopAPIInterface interface {
	SyncShop(ctx context.Context) error
	GetShopListings(ctx context.Context, query dto.ShopListingsQuery) (*dto.ShopListingsPage, error)
}

// ==================== 店铺商品视图 ====================

const defaultPerPage = 25

// ShopViewService 店铺已有商品的分页投影
// 新鲜度门控：缓存超龄时 NeedsRefresh 置真，读仍然从缓存提供，
// 不阻塞任何操作，只提示用户手动 Sync。
type ShopViewService struct {
	api ShopAPIInterface

	mu        sync.RWMutex
	query     dto.ShopListingsQuery
	listings  []model.ShopListing
	total     int
	totalPages int
	stateCounts map[string]int
	cacheInfo dto.CacheInfo
	needsRefresh bool
	selection map[int64]bool
}

// NewShopViewService 创建视图，初始 tab 为 active
func NewShopViewService(api ShopAPIInterface) *ShopViewService {
	return &ShopViewService{
		api: api,
		query: dto.ShopListingsQuery{
			State:   model.ListingStateActive,
			Page:    1,
			PerPage: defaultPerPage,
		},
		stateCounts: make(map[string]int),
		selection:   make(map[int64]bool),
	}
}

// ==================== 加载与刷新 ====================

// Load 按当前查询参数加载一页
func (s *ShopViewService) Load(ctx context.Context) error {
	s.mu.RLock()
	query := s.query
	s.mu.RUnlock()

	page, err := s.api.GetShopListings(ctx, query)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings = page.Listings
	s.total = page.Total
	s.totalPages = page.TotalPages
	s.stateCounts = page.StateCounts
	s.cacheInfo = page.CacheInfo
	s.needsRefresh = page.NeedsRefresh || page.CacheInfo.Stale()
	return nil
}

// Sync 强制服务端全量刷新后重新加载
func (s *ShopViewService) Sync(ctx context.Context) error {
	if err := s.api.SyncShop(ctx); err != nil {
		return fmt.Errorf("店铺同步失败: %v", err)
	}
	return s.Load(ctx)
}

// ==================== 查询参数 ====================

// SetState 切换状态 tab：页码归 1，选中集清空
func (s *ShopViewService) SetState(state string) error {
	if !model.ListingStates[state] {
		return fmt.Errorf("无效的商品状态: %q", state)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.State = state
	s.query.Page = 1
	s.selection = make(map[int64]bool)
	return nil
}

// SetPage 翻页
func (s *ShopViewService) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Page = page
}

// SetSearch 设置搜索词并回到第一页
func (s *ShopViewService) SetSearch(search string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Search = search
	s.query.Page = 1
}

// SetSort 设置排序
func (s *ShopViewService) SetSort(sortBy, sortOrder string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.SortBy = sortBy
	s.query.SortOrder = sortOrder
}

// ==================== 读取 ====================

// Listings 当前页商品
func (s *ShopViewService) Listings() []model.ShopListing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ShopListing, len(s.listings))
	copy(out, s.listings)
	return out
}

// Total 总条数
func (s *ShopViewService) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

// TotalPages 总页数
func (s *ShopViewService) TotalPages() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalPages
}

// StateCounts 各状态商品数
func (s *ShopViewService) StateCounts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int, len(s.stateCounts))
	for k, v := range s.stateCounts {
		out[k] = v
	}
	return out
}

// CacheInfo 缓存新鲜度
func (s *ShopViewService) CacheInfo() dto.CacheInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cacheInfo
}

// NeedsRefresh 新鲜度门控：真时 UI 必须给出刷新提示
func (s *ShopViewService) NeedsRefresh() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.needsRefresh
}

// ==================== 选中集 ====================

// Select 选中商品
func (s *ShopViewService) Select(listingID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection[listingID] = true
}

// Deselect 取消选中
func (s *ShopViewService) Deselect(listingID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selection, listingID)
}

// ClearSelection 清空选中集
func (s *ShopViewService) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = make(map[int64]bool)
}

// SelectionCount 选中数
func (s *ShopViewService) SelectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.selection)
}

// SelectedListings 当前页中被选中的商品快照（批量编辑的输入）
func (s *ShopViewService) SelectedListings() []model.ShopListing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var selected []model.ShopListing
	for _, l := range s.listings {
		if s.selection[l.EtsyListingID] {
			selected = append(selected, l)
		}
	}
	return selected
}
