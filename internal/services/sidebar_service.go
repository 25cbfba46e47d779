package services

import (
	"context"

	"github.com/Sushil1248/innfostride-backend/domain"
)

// SidebarServiceImpl implements domain.SidebarService
type SidebarServiceImpl struct {
	sidebarRepo domain.SidebarRepository
}

// NewSidebarService creates a new sidebar service
func NewSidebarService(sidebarRepo domain.SidebarRepository) domain.SidebarService {
	return &SidebarServiceImpl{sidebarRepo: sidebarRepo}
}

// Save implements domain.SidebarService. The layout is an opaque blob; the
// server never inspects it.
func (s *SidebarServiceImpl) Save(ctx context.Context, userID, items string) (bool, error) {
	return s.sidebarRepo.Upsert(ctx, &domain.Sidebar{UserID: userID, Items: items})
}

// Get implements domain.SidebarService
func (s *SidebarServiceImpl) Get(ctx context.Context, userID string) (*domain.Sidebar, error) {
	return s.sidebarRepo.FindByUserID(ctx, userID)
}
