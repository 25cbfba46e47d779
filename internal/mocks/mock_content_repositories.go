package mocks

import (
	"context"

	"github.com/Sushil1248/innfostride-backend/domain"
)

// MockPostRepository implements domain.PostRepository interface for testing
type MockPostRepository struct {
	CreateFunc     func(ctx context.Context, post *domain.Post) error
	FindByIDFunc   func(ctx context.Context, id string) (*domain.Post, error)
	UpdateFunc     func(ctx context.Context, post *domain.Post) error
	ListFunc       func(ctx context.Context, filter domain.PostListFilter) ([]*domain.Post, error)
	CountFunc      func(ctx context.Context, domainName, postType string, status domain.PostStatus) (int64, error)
	ListTitlesFunc func(ctx context.Context, domainName, postType string, limit int) ([]*domain.Post, error)
	SoftDeleteFunc func(ctx context.Context, id string) error
}

// NewMockPostRepository creates a new MockPostRepository with default behaviors
func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{}
}

func (m *MockPostRepository) Create(ctx context.Context, post *domain.Post) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, post)
	}
	post.ID = "mock_post_id"
	return nil
}

func (m *MockPostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrPostNotFound
}

func (m *MockPostRepository) Update(ctx context.Context, post *domain.Post) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, post)
	}
	return nil
}

func (m *MockPostRepository) List(ctx context.Context, filter domain.PostListFilter) ([]*domain.Post, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *MockPostRepository) Count(ctx context.Context, domainName, postType string, status domain.PostStatus) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, domainName, postType, status)
	}
	return 0, nil
}

func (m *MockPostRepository) ListTitles(ctx context.Context, domainName, postType string, limit int) ([]*domain.Post, error) {
	if m.ListTitlesFunc != nil {
		return m.ListTitlesFunc(ctx, domainName, postType, limit)
	}
	return nil, nil
}

func (m *MockPostRepository) SoftDelete(ctx context.Context, id string) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, id)
	}
	return nil
}

// MockPostMetaRepository implements domain.PostMetaRepository interface for testing
type MockPostMetaRepository struct {
	CreateFunc   func(ctx context.Context, meta *domain.PostMeta) error
	FindByIDFunc func(ctx context.Context, id string) (*domain.PostMeta, error)
	UpdateFunc   func(ctx context.Context, meta *domain.PostMeta) error
}

// NewMockPostMetaRepository creates a new MockPostMetaRepository with default behaviors
func NewMockPostMetaRepository() *MockPostMetaRepository {
	return &MockPostMetaRepository{}
}

func (m *MockPostMetaRepository) Create(ctx context.Context, meta *domain.PostMeta) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, meta)
	}
	meta.ID = "mock_meta_id"
	return nil
}

func (m *MockPostMetaRepository) FindByID(ctx context.Context, id string) (*domain.PostMeta, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return &domain.PostMeta{ID: id}, nil
}

func (m *MockPostMetaRepository) Update(ctx context.Context, meta *domain.PostMeta) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, meta)
	}
	return nil
}

// MockMediaRepository implements domain.MediaRepository interface for testing
type MockMediaRepository struct {
	CreateFunc    func(ctx context.Context, media *domain.Media) error
	FindByIDFunc  func(ctx context.Context, id string) (*domain.Media, error)
	FindByIDsFunc func(ctx context.Context, ids []string) ([]*domain.Media, error)
}

// NewMockMediaRepository creates a new MockMediaRepository with default behaviors
func NewMockMediaRepository() *MockMediaRepository {
	return &MockMediaRepository{}
}

func (m *MockMediaRepository) Create(ctx context.Context, media *domain.Media) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, media)
	}
	media.ID = "mock_media_id"
	return nil
}

func (m *MockMediaRepository) FindByID(ctx context.Context, id string) (*domain.Media, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrMediaNotFound
}

func (m *MockMediaRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Media, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	return nil, nil
}

// MockCategoryRepository implements domain.CategoryRepository interface for testing
type MockCategoryRepository struct {
	FindByIDFunc func(ctx context.Context, id string) (*domain.Category, error)
}

// NewMockCategoryRepository creates a new MockCategoryRepository with default behaviors
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{}
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrCategoryNotFound
}

// MockSidebarRepository implements domain.SidebarRepository interface for testing
type MockSidebarRepository struct {
	FindByUserIDFunc func(ctx context.Context, userID string) (*domain.Sidebar, error)
	UpsertFunc       func(ctx context.Context, sidebar *domain.Sidebar) (bool, error)
}

// NewMockSidebarRepository creates a new MockSidebarRepository with default behaviors
func NewMockSidebarRepository() *MockSidebarRepository {
	return &MockSidebarRepository{}
}

func (m *MockSidebarRepository) FindByUserID(ctx context.Context, userID string) (*domain.Sidebar, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, domain.ErrSidebarNotFound
}

func (m *MockSidebarRepository) Upsert(ctx context.Context, sidebar *domain.Sidebar) (bool, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, sidebar)
	}
	return true, nil
}

// MockSiteRepository implements domain.SiteRepository interface for testing
type MockSiteRepository struct {
	FindByNameFunc          func(ctx context.Context, name string) (*domain.Site, error)
	FindNavigationItemsFunc func(ctx context.Context, domainID, itemType string) ([]*domain.NavigationItem, error)
}

// NewMockSiteRepository creates a new MockSiteRepository with default behaviors
func NewMockSiteRepository() *MockSiteRepository {
	return &MockSiteRepository{}
}

func (m *MockSiteRepository) FindByName(ctx context.Context, name string) (*domain.Site, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, domain.ErrSiteNotFound
}

func (m *MockSiteRepository) FindNavigationItems(ctx context.Context, domainID, itemType string) ([]*domain.NavigationItem, error) {
	if m.FindNavigationItemsFunc != nil {
		return m.FindNavigationItemsFunc(ctx, domainID, itemType)
	}
	return nil, nil
}

// MockAccessRepository implements domain.AccessRepository interface for testing
type MockAccessRepository struct {
	FindRoleFunc        func(ctx context.Context, id string) (*domain.Role, error)
	FindPermissionsFunc func(ctx context.Context, ids []string) ([]*domain.Permission, error)
}

// NewMockAccessRepository creates a new MockAccessRepository with default behaviors
func NewMockAccessRepository() *MockAccessRepository {
	return &MockAccessRepository{}
}

func (m *MockAccessRepository) FindRole(ctx context.Context, id string) (*domain.Role, error) {
	if m.FindRoleFunc != nil {
		return m.FindRoleFunc(ctx, id)
	}
	return &domain.Role{ID: id, Name: "viewer"}, nil
}

func (m *MockAccessRepository) FindPermissions(ctx context.Context, ids []string) ([]*domain.Permission, error) {
	if m.FindPermissionsFunc != nil {
		return m.FindPermissionsFunc(ctx, ids)
	}
	return nil, nil
}
