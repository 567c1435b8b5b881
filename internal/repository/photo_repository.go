package repository

import (
	"github.com/matjiblog/matjiblog-backend/internal/models"
	"gorm.io/gorm"
)

type PhotoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{
		db: db,
	}
}

func (r *PhotoRepository) Create(photo *models.Photo) error {
	return r.db.Create(photo).Error
}

func (r *PhotoRepository) GetByID(id uint) (*models.Photo, error) {
	var photo models.Photo
	err := r.db.
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Comments.User").
		Preload("Likes").
		First(&photo, id).Error
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// GetByIDForUser scopes the lookup to the owner in the same query, so a
// foreign photo is indistinguishable from a missing one.
func (r *PhotoRepository) GetByIDForUser(id, userID uint) (*models.Photo, error) {
	var photo models.Photo
	err := r.db.
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Comments.User").
		Preload("Likes").
		Where("id = ? AND user_id = ?", id, userID).
		First(&photo).Error
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *PhotoRepository) Update(photo *models.Photo) error {
	return r.db.Save(photo).Error
}

func (r *PhotoRepository) Delete(photo *models.Photo) error {
	return r.db.Select("Comments", "Likes").Delete(photo).Error
}

func (r *PhotoRepository) ListByOwner(userID uint, q PhotoQuery) ([]models.Photo, int64, error) {
	return r.list(func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}, q)
}

func (r *PhotoRepository) ListPublic(q PhotoQuery) ([]models.Photo, int64, error) {
	return r.list(func(db *gorm.DB) *gorm.DB {
		return db.Where("is_public = ?", true)
	}, q)
}

func (r *PhotoRepository) ListPublicByOwner(userID uint, q PhotoQuery) ([]models.Photo, int64, error) {
	return r.list(func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ? AND is_public = ?", userID, true)
	}, q)
}

func (r *PhotoRepository) list(base func(db *gorm.DB) *gorm.DB, q PhotoQuery) ([]models.Photo, int64, error) {
	q.Normalize()

	query := r.db.Model(&models.Photo{}).Scopes(base, q.Filter())

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var photos []models.Photo
	err := query.
		Order(q.OrderClause()).
		Limit(q.Limit).
		Offset(q.Offset()).
		Preload("Comments").
		Preload("Likes").
		Find(&photos).Error
	if err != nil {
		return nil, 0, err
	}
	return photos, total, nil
}

func (r *PhotoRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Photo{}).Count(&count).Error
	return count, err
}

func (r *PhotoRepository) GetKeysByOwner(userID uint) ([]string, error) {
	var keys []string
	err := r.db.Model(&models.Photo{}).Where("user_id = ?", userID).Pluck("image_key", &keys).Error
	return keys, err
}

func (r *PhotoRepository) DeleteByOwner(userID uint) error {
	var photos []models.Photo
	if err := r.db.Where("user_id = ?", userID).Find(&photos).Error; err != nil {
		return err
	}
	for i := range photos {
		if err := r.Delete(&photos[i]); err != nil {
			return err
		}
	}
	return nil
}

// Comments

func (r *PhotoRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *PhotoRepository) GetComment(id, photoID uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Where("id = ? AND photo_id = ?", id, photoID).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *PhotoRepository) DeleteComment(comment *models.Comment) error {
	return r.db.Delete(comment).Error
}

func (r *PhotoRepository) DeleteCommentsByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Comment{}).Error
}

func (r *PhotoRepository) GetCommentsByIDs(ids []uint) ([]models.Comment, error) {
	var comments []models.Comment
	if len(ids) == 0 {
		return comments, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&comments).Error
	return comments, err
}

func (r *PhotoRepository) GetByIDs(ids []uint) ([]models.Photo, error) {
	var photos []models.Photo
	if len(ids) == 0 {
		return photos, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&photos).Error
	return photos, err
}

// Likes

func (r *PhotoRepository) GetLike(photoID, userID uint) (*models.Like, error) {
	var like models.Like
	err := r.db.Where("photo_id = ? AND user_id = ?", photoID, userID).First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *PhotoRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

func (r *PhotoRepository) DeleteLike(like *models.Like) error {
	return r.db.Delete(like).Error
}

func (r *PhotoRepository) DeleteLikesByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Like{}).Error
}

func (r *PhotoRepository) CountLikes(photoID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("photo_id = ?", photoID).Count(&count).Error
	return count, err
}
