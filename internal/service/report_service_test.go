package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/matjiblog/matjiblog-backend/internal/models"
	"github.com/matjiblog/matjiblog-backend/internal/repository"
)

func newReportService(t *testing.T) (*ReportService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewReportService(
		repository.NewReportRepository(db),
		repository.NewPhotoRepository(db),
	)
	return svc, db
}

func seedReportablePhoto(t *testing.T, db *gorm.DB) *models.Photo {
	t.Helper()
	photo := &models.Photo{
		UserID:   1,
		Name:     "Dubious Dumplings",
		Rating:   2,
		ImageURL: "https://cdn.test/d.jpg",
		ImageKey: "photos/1/d.jpg",
		IsPublic: true,
	}
	require.NoError(t, db.Create(photo).Error)
	return photo
}

func TestCreateReportAgainstPhoto(t *testing.T) {
	svc, db := newReportService(t)
	photo := seedReportablePhoto(t, db)

	report, err := svc.Create(2, models.CreateReportRequest{
		TargetType: models.ReportTargetPhoto,
		TargetID:   photo.ID,
		PhotoID:    photo.ID,
		Reason:     "spam content",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusPending, report.Status)
	assert.EqualValues(t, 2, report.ReporterID)
}

func TestCreateReportValidatesTarget(t *testing.T) {
	svc, db := newReportService(t)
	photo := seedReportablePhoto(t, db)

	// Photo target id must be the photo itself.
	_, err := svc.Create(2, models.CreateReportRequest{
		TargetType: models.ReportTargetPhoto,
		TargetID:   photo.ID + 1,
		PhotoID:    photo.ID,
		Reason:     "spam content",
	})
	assert.ErrorIs(t, err, ErrInvalidReportTarget)

	// Comment targets must belong to the named photo.
	_, err = svc.Create(2, models.CreateReportRequest{
		TargetType: models.ReportTargetComment,
		TargetID:   42,
		PhotoID:    photo.ID,
		Reason:     "rude comment",
	})
	assert.ErrorIs(t, err, ErrInvalidReportTarget)
}

func TestResolveReportLifecycle(t *testing.T) {
	svc, db := newReportService(t)
	photo := seedReportablePhoto(t, db)

	report, err := svc.Create(2, models.CreateReportRequest{
		TargetType: models.ReportTargetPhoto,
		TargetID:   photo.ID,
		PhotoID:    photo.ID,
		Reason:     "spam content",
	})
	require.NoError(t, err)

	pending, err := svc.List(models.ReportStatusPending, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, pending.TotalCount)
	assert.Equal(t, "Dubious Dumplings", pending.Reports[0].TargetPreview)

	resolved, err := svc.Resolve(report.ID, 9, models.ReportStatusResolved)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedBy)
	assert.EqualValues(t, 9, *resolved.ResolvedBy)
	assert.NotNil(t, resolved.ResolvedAt)

	// Resolving does not touch the reported content.
	var kept models.Photo
	assert.NoError(t, db.First(&kept, photo.ID).Error)

	// Gone from the pending listing.
	pending, err = svc.List(models.ReportStatusPending, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 0, pending.TotalCount)

	// Terminal states reject further transitions.
	_, err = svc.Resolve(report.ID, 9, models.ReportStatusDismissed)
	assert.ErrorIs(t, err, ErrReportAlreadyHandled)
}

func TestResolveUnknownReport(t *testing.T) {
	svc, _ := newReportService(t)

	_, err := svc.Resolve(12345, 9, models.ReportStatusResolved)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestListResolvesCommentPreviewAndDeletedTargets(t *testing.T) {
	svc, db := newReportService(t)
	photo := seedReportablePhoto(t, db)

	comment := &models.Comment{PhotoID: photo.ID, UserID: 3, Text: "rude words"}
	require.NoError(t, db.Create(comment).Error)

	_, err := svc.Create(2, models.CreateReportRequest{
		TargetType: models.ReportTargetComment,
		TargetID:   comment.ID,
		PhotoID:    photo.ID,
		Reason:     "abusive comment",
	})
	require.NoError(t, err)

	list, err := svc.List("", 1, 10)
	require.NoError(t, err)
	require.Len(t, list.Reports, 1)
	assert.Equal(t, "rude words", list.Reports[0].TargetPreview)

	// A target deleted after reporting shows as [deleted].
	require.NoError(t, db.Delete(comment).Error)
	list, err = svc.List("", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "[deleted]", list.Reports[0].TargetPreview)
}
