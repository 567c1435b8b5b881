package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/matjiblog/matjiblog-backend/internal/models"
	"github.com/matjiblog/matjiblog-backend/internal/repository"
)

var (
	ErrReportNotFound       = errors.New("report not found")
	ErrReportAlreadyHandled = errors.New("report already handled")
	ErrInvalidReportTarget  = errors.New("report target does not exist")
)

type ReportService struct {
	reportRepo *repository.ReportRepository
	photoRepo  *repository.PhotoRepository
}

func NewReportService(reportRepo *repository.ReportRepository, photoRepo *repository.PhotoRepository) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		photoRepo:  photoRepo,
	}
}

func (s *ReportService) Create(reporterID uint, req models.CreateReportRequest) (*models.Report, error) {
	switch req.TargetType {
	case models.ReportTargetPhoto:
		if req.TargetID != req.PhotoID {
			return nil, ErrInvalidReportTarget
		}
		if _, err := s.photoRepo.GetByID(req.PhotoID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidReportTarget
			}
			return nil, err
		}
	case models.ReportTargetComment:
		if _, err := s.photoRepo.GetComment(req.TargetID, req.PhotoID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidReportTarget
			}
			return nil, err
		}
	}

	report := &models.Report{
		ReporterID: reporterID,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		PhotoID:    req.PhotoID,
		Reason:     req.Reason,
		Status:     models.ReportStatusPending,
	}
	if err := s.reportRepo.Create(report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) List(status string, page, limit int) (*models.ReportListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = repository.DefaultPageSize
	}

	reports, total, err := s.reportRepo.List(status, page, limit)
	if err != nil {
		return nil, err
	}

	previews, err := s.resolvePreviews(reports)
	if err != nil {
		return nil, err
	}

	responses := make([]models.ReportResponse, 0, len(reports))
	for i, report := range reports {
		responses = append(responses, models.ReportResponse{
			Report:        report,
			TargetPreview: previews[i],
		})
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return &models.ReportListResponse{
		Reports:     responses,
		TotalCount:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
	}, nil
}

// Resolve moves a pending report to resolved or dismissed. The reported
// content itself is untouched; removal is a separate admin action.
func (s *ReportService) Resolve(reportID, adminID uint, status string) (*models.Report, error) {
	if _, err := s.reportRepo.GetByID(reportID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	ok, err := s.reportRepo.Transition(reportID, status, adminID, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrReportAlreadyHandled
	}

	return s.reportRepo.GetByID(reportID)
}

// resolvePreviews maps each report to the current name/text of its target.
// Targets deleted since the report was filed show as "[deleted]".
func (s *ReportService) resolvePreviews(reports []models.Report) ([]string, error) {
	var photoIDs, commentIDs []uint
	for _, r := range reports {
		switch r.TargetType {
		case models.ReportTargetPhoto:
			photoIDs = append(photoIDs, r.TargetID)
		case models.ReportTargetComment:
			commentIDs = append(commentIDs, r.TargetID)
		}
	}

	photos, err := s.photoRepo.GetByIDs(photoIDs)
	if err != nil {
		return nil, err
	}
	comments, err := s.photoRepo.GetCommentsByIDs(commentIDs)
	if err != nil {
		return nil, err
	}

	photoNames := make(map[uint]string, len(photos))
	for _, p := range photos {
		photoNames[p.ID] = p.Name
	}
	commentTexts := make(map[uint]string, len(comments))
	for _, c := range comments {
		commentTexts[c.ID] = c.Text
	}

	previews := make([]string, len(reports))
	for i, r := range reports {
		preview := ""
		switch r.TargetType {
		case models.ReportTargetPhoto:
			preview = photoNames[r.TargetID]
		case models.ReportTargetComment:
			preview = commentTexts[r.TargetID]
		}
		if preview == "" {
			preview = "[deleted]"
		}
		previews[i] = preview
	}
	return previews, nil
}
