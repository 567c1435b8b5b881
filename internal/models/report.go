package models

import (
	"time"
)

const (
	ReportTargetPhoto   = "photo"
	ReportTargetComment = "comment"

	ReportStatusPending   = "pending"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

// Report references its target weakly: the photo or comment may be deleted
// later and the report keeps the dangling id as an audit record.
type Report struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	ReporterID uint       `json:"reporter_id" gorm:"not null;index"`
	TargetType string     `json:"target_type" gorm:"not null"`
	TargetID   uint       `json:"target_id" gorm:"not null"`
	PhotoID    uint       `json:"photo_id" gorm:"not null"`
	Reason     string     `json:"reason" gorm:"not null"`
	Status     string     `json:"status" gorm:"not null;default:'pending';index"`
	ResolvedBy *uint      `json:"resolved_by,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type CreateReportRequest struct {
	TargetType string `json:"target_type" validate:"required,oneof=photo comment"`
	TargetID   uint   `json:"target_id" validate:"required"`
	PhotoID    uint   `json:"photo_id" validate:"required"`
	Reason     string `json:"reason" validate:"required,min=5,max=500"`
}

type ResolveReportRequest struct {
	Status string `json:"status" validate:"required,oneof=resolved dismissed"`
}

// ReportResponse resolves the target to a human-readable preview at query
// time (photo name for photo targets, comment text for comment targets).
type ReportResponse struct {
	Report
	TargetPreview string `json:"target_preview"`
}

type ReportListResponse struct {
	Reports     []ReportResponse `json:"reports"`
	TotalCount  int64            `json:"total_count"`
	TotalPages  int              `json:"total_pages"`
	CurrentPage int              `json:"current_page"`
}

type AdminStats struct {
	TotalUsers        int64 `json:"total_users"`
	UsersToday        int64 `json:"users_today"`
	TotalPhotos       int64 `json:"total_photos"`
	PendingReports    int64 `json:"pending_reports"`
	UsersDeletedToday int64 `json:"users_deleted_today"`
}
