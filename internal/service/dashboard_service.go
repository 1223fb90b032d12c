package service

import (
	"context"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/domain"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/repository/ports"
)

type DashboardService struct {
	destinations ports.DestinationRepository
	topViewed    int
	recent       int
}

func NewDashboardService(destinations ports.DestinationRepository, topViewed, recent int) *DashboardService {
	if topViewed <= 0 {
		topViewed = 5
	}
	if recent <= 0 {
		recent = 5
	}
	return &DashboardService{destinations: destinations, topViewed: topViewed, recent: recent}
}

func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	counts, err := s.destinations.Counts(ctx)
	if err != nil {
		return nil, err
	}
	top, err := s.destinations.ListMostViewed(ctx, s.topViewed)
	if err != nil {
		return nil, err
	}
	recent, err := s.destinations.ListLatest(ctx, s.recent)
	if err != nil {
		return nil, err
	}
	return &domain.DashboardStats{Counts: counts, TopViewed: top, Recent: recent}, nil
}
