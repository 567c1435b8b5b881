package service

import (
	"time"

	"github.com/matjiblog/matjiblog-backend/internal/models"
	"github.com/matjiblog/matjiblog-backend/internal/repository"
)

// StatsService produces the admin dashboard counters with direct count
// queries at request time. Nothing is cached or incrementally maintained.
type StatsService struct {
	userRepo   *repository.UserRepository
	photoRepo  *repository.PhotoRepository
	reportRepo *repository.ReportRepository
}

func NewStatsService(userRepo *repository.UserRepository, photoRepo *repository.PhotoRepository, reportRepo *repository.ReportRepository) *StatsService {
	return &StatsService{
		userRepo:   userRepo,
		photoRepo:  photoRepo,
		reportRepo: reportRepo,
	}
}

func (s *StatsService) Dashboard() (*models.AdminStats, error) {
	totalUsers, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}

	midnight := utcMidnight(time.Now())
	usersToday, err := s.userRepo.CountCreatedSince(midnight)
	if err != nil {
		return nil, err
	}

	totalPhotos, err := s.photoRepo.Count()
	if err != nil {
		return nil, err
	}

	pendingReports, err := s.reportRepo.CountPending()
	if err != nil {
		return nil, err
	}

	return &models.AdminStats{
		TotalUsers:     totalUsers,
		UsersToday:     usersToday,
		TotalPhotos:    totalPhotos,
		PendingReports: pendingReports,
		// No deletion audit trail exists, so this stays zero.
		UsersDeletedToday: 0,
	}, nil
}

func utcMidnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
