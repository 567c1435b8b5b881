package repository

import (
	"time"

	"github.com/matjiblog/matjiblog-backend/internal/models"
	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

func (r *ReportRepository) GetByID(id uint) (*models.Report, error) {
	var report models.Report
	err := r.db.First(&report, id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) List(status string, page, limit int) ([]models.Report, int64, error) {
	query := r.db.Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []models.Report
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

// Transition moves a pending report to a terminal status. The pending guard
// sits in the WHERE clause so a second admin acting on the same report loses
// cleanly (zero rows affected).
func (r *ReportRepository) Transition(id uint, status string, resolvedBy uint, at time.Time) (bool, error) {
	result := r.db.Model(&models.Report{}).
		Where("id = ? AND status = ?", id, models.ReportStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"resolved_by": resolvedBy,
			"resolved_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ReportRepository) CountPending() (int64, error) {
	var count int64
	err := r.db.Model(&models.Report{}).Where("status = ?", models.ReportStatusPending).Count(&count).Error
	return count, err
}
