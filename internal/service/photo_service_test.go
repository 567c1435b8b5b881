package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/matjiblog/matjiblog-backend/internal/models"
	"github.com/matjiblog/matjiblog-backend/internal/repository"
)

func newPhotoService(t *testing.T) (*PhotoService, *fakeStorage, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	fs := newFakeStorage()
	svc := NewPhotoService(
		repository.NewPhotoRepository(db),
		repository.NewUserRepository(db),
		fs,
		zap.NewNop(),
	)
	return svc, fs, db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Password: "x", Role: models.RoleUser, IsActive: true}
	require.NoError(t, db.Create(user).Error)
	return user
}

func validForm() models.PhotoForm {
	return models.PhotoForm{
		Name:    "Mono Ramen",
		Address: "Mapo-gu, Seoul",
		Rating:  4,
		Tags:    []string{"ramen", "late-night"},
		Visited: true,
	}
}

func TestCreatePhotoUploadsAndPersists(t *testing.T) {
	svc, fs, db := newPhotoService(t)
	user := seedUser(t, db, "a@x.com")

	photo, err := svc.Create(user.ID, validForm(), multipartImage(t, "ramen.jpg", "image/jpeg"))
	require.NoError(t, err)

	assert.Equal(t, user.ID, photo.UserID)
	assert.NotEmpty(t, photo.ImageKey)
	assert.Equal(t, "https://cdn.test/"+photo.ImageKey, photo.ImageURL)
	assert.True(t, fs.objects[photo.ImageKey])
}

func TestCreatePhotoRejectsNonImage(t *testing.T) {
	svc, _, db := newPhotoService(t)
	user := seedUser(t, db, "a@x.com")

	_, err := svc.Create(user.ID, validForm(), multipartImage(t, "notes.txt", "text/plain"))
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestCreatePhotoRequiresImage(t *testing.T) {
	svc, _, db := newPhotoService(t)
	user := seedUser(t, db, "a@x.com")

	_, err := svc.Create(user.ID, validForm(), nil)
	assert.ErrorIs(t, err, ErrImageRequired)
}

func TestUpdatePhotoReplacesImage(t *testing.T) {
	svc, fs, db := newPhotoService(t)
	user := seedUser(t, db, "a@x.com")

	photo, err := svc.Create(user.ID, validForm(), multipartImage(t, "old.jpg", "image/jpeg"))
	require.NoError(t, err)
	oldKey := photo.ImageKey

	form := validForm()
	form.Name = "Mono Ramen II"
	updated, err := svc.Update(photo.ID, user.ID, form, multipartImage(t, "new.jpg", "image/jpeg"))
	require.NoError(t, err)

	assert.Equal(t, "Mono Ramen II", updated.Name)
	assert.NotEqual(t, oldKey, updated.ImageKey)
	assert.Contains(t, fs.deleted, oldKey)
}

func TestUpdatePhotoOfAnotherUserIsNotFound(t *testing.T) {
	svc, _, db := newPhotoService(t)
	owner := seedUser(t, db, "a@x.com")
	stranger := seedUser(t, db, "b@x.com")

	photo, err := svc.Create(owner.ID, validForm(), multipartImage(t, "x.jpg", "image/jpeg"))
	require.NoError(t, err)

	_, err = svc.Update(photo.ID, stranger.ID, validForm(), nil)
	assert.ErrorIs(t, err, ErrPhotoNotFound)
}

func TestDeletePhotoRemovesStoredObject(t *testing.T) {
	svc, fs, db := newPhotoService(t)
	user := seedUser(t, db, "a@x.com")

	photo, err := svc.Create(user.ID, validForm(), multipartImage(t, "x.jpg", "image/jpeg"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(photo.ID, user.ID))
	assert.Contains(t, fs.deleted, photo.ImageKey)

	_, err = svc.Get(photo.ID, user.ID)
	assert.ErrorIs(t, err, ErrPhotoNotFound)
}

func TestPublicFeedExcludesPrivatePhotos(t *testing.T) {
	svc, _, db := newPhotoService(t)
	alice := seedUser(t, db, "a@x.com")

	form := validForm()
	form.IsPublic = false
	_, err := svc.Create(alice.ID, form, multipartImage(t, "p.jpg", "image/jpeg"))
	require.NoError(t, err)

	form = validForm()
	form.Name = "Shared Spot"
	form.IsPublic = true
	_, err = svc.Create(alice.ID, form, multipartImage(t, "q.jpg", "image/jpeg"))
	require.NoError(t, err)

	feed, err := svc.PublicFeed(0, repository.PhotoQuery{})
	require.NoError(t, err)
	require.Len(t, feed.Photos, 1)
	assert.Equal(t, "Shared Spot", feed.Photos[0].Name)
	assert.True(t, feed.Photos[0].IsPublic)
}

func TestUserPublicPhotos(t *testing.T) {
	svc, _, db := newPhotoService(t)
	alice := seedUser(t, db, "a@x.com")
	bob := seedUser(t, db, "b@x.com")

	form := validForm()
	form.IsPublic = false
	_, err := svc.Create(alice.ID, form, multipartImage(t, "p.jpg", "image/jpeg"))
	require.NoError(t, err)

	// Bob sees none of Alice's private photos on her profile.
	list, user, err := svc.UserPublicPhotos(alice.ID, bob.ID, repository.PhotoQuery{})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, user.ID)
	assert.Empty(t, list.Photos)

	_, _, err = svc.UserPublicPhotos(99999, bob.ID, repository.PhotoQuery{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCommentsOnPrivatePhotoAreHidden(t *testing.T) {
	svc, _, db := newPhotoService(t)
	owner := seedUser(t, db, "a@x.com")
	stranger := seedUser(t, db, "b@x.com")

	form := validForm()
	form.IsPublic = false
	photo, err := svc.Create(owner.ID, form, multipartImage(t, "p.jpg", "image/jpeg"))
	require.NoError(t, err)

	// The owner can comment on their private photo.
	_, err = svc.AddComment(photo.ID, owner.ID, "my note")
	require.NoError(t, err)

	// A stranger gets not-found, not forbidden.
	_, err = svc.AddComment(photo.ID, stranger.ID, "hello?")
	assert.ErrorIs(t, err, ErrPhotoNotFound)
}

func TestDeleteCommentPermissions(t *testing.T) {
	svc, _, db := newPhotoService(t)
	owner := seedUser(t, db, "a@x.com")
	commenter := seedUser(t, db, "b@x.com")
	stranger := seedUser(t, db, "c@x.com")

	form := validForm()
	form.IsPublic = true
	photo, err := svc.Create(owner.ID, form, multipartImage(t, "p.jpg", "image/jpeg"))
	require.NoError(t, err)

	comment, err := svc.AddComment(photo.ID, commenter.ID, "tasty")
	require.NoError(t, err)

	err = svc.DeleteComment(photo.ID, comment.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrCommentNotFound)

	// The photo owner may remove comments on their photo.
	require.NoError(t, svc.DeleteComment(photo.ID, comment.ID, owner.ID))

	// The author may remove their own comment.
	comment, err = svc.AddComment(photo.ID, commenter.ID, "again")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteComment(photo.ID, comment.ID, commenter.ID))
}

func TestToggleLike(t *testing.T) {
	svc, _, db := newPhotoService(t)
	owner := seedUser(t, db, "a@x.com")
	fan := seedUser(t, db, "b@x.com")

	form := validForm()
	form.IsPublic = true
	photo, err := svc.Create(owner.ID, form, multipartImage(t, "p.jpg", "image/jpeg"))
	require.NoError(t, err)

	liked, count, err := svc.ToggleLike(photo.ID, fan.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.EqualValues(t, 1, count)

	// The second toggle removes the like.
	liked, count, err = svc.ToggleLike(photo.ID, fan.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.EqualValues(t, 0, count)
}
