package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/matjiblog/matjiblog-backend/internal/models"
	"github.com/matjiblog/matjiblog-backend/internal/repository"
)

func newStatsService(t *testing.T) (*StatsService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewStatsService(
		repository.NewUserRepository(db),
		repository.NewPhotoRepository(db),
		repository.NewReportRepository(db),
	)
	return svc, db
}

func TestDashboardCountsEverything(t *testing.T) {
	svc, db := newStatsService(t)

	for i := 0; i < 3; i++ {
		seedUser(t, db, "user"+string(rune('a'+i))+"@example.com")
	}
	// One account registered before today must not count as new.
	old := seedUser(t, db, "veteran@example.com")
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	require.NoError(t, db.Model(old).Update("created_at", yesterday).Error)

	photo := seedReportablePhoto(t, db)
	require.NoError(t, db.Create(&models.Report{
		ReporterID: 2,
		TargetType: models.ReportTargetPhoto,
		TargetID:   photo.ID,
		PhotoID:    photo.ID,
		Reason:     "spam content",
		Status:     models.ReportStatusPending,
	}).Error)
	require.NoError(t, db.Create(&models.Report{
		ReporterID: 3,
		TargetType: models.ReportTargetPhoto,
		TargetID:   photo.ID,
		PhotoID:    photo.ID,
		Reason:     "still spam",
		Status:     models.ReportStatusDismissed,
	}).Error)

	stats, err := svc.Dashboard()
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.TotalUsers)
	assert.EqualValues(t, 3, stats.UsersToday)
	assert.EqualValues(t, 1, stats.TotalPhotos)
	assert.EqualValues(t, 1, stats.PendingReports)
	assert.EqualValues(t, 0, stats.UsersDeletedToday)
}

func TestDashboardEmptyDatabase(t *testing.T) {
	svc, _ := newStatsService(t)

	stats, err := svc.Dashboard()
	require.NoError(t, err)
	assert.EqualValues(t, 0, stats.TotalUsers)
	assert.EqualValues(t, 0, stats.UsersToday)
	assert.EqualValues(t, 0, stats.TotalPhotos)
	assert.EqualValues(t, 0, stats.PendingReports)
}

func TestUTCMidnightBoundary(t *testing.T) {
	loc := time.FixedZone("KST", 9*60*60)
	local := time.Date(2024, 3, 15, 6, 30, 0, 0, loc) // 2024-03-14 21:30 UTC

	got := utcMidnight(local)
	assert.Equal(t, time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), got)
}
