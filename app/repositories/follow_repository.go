package repositories

import (
	"gorm.io/gorm"

	"quill/app/models"
)

// GormFollowRepository implements FollowRepository on MySQL.
type GormFollowRepository struct {
	db *gorm.DB
}

// NewGormFollowRepository creates a new GormFollowRepository.
func NewGormFollowRepository(db *gorm.DB) *GormFollowRepository {
	return &GormFollowRepository{db: db}
}

// Create inserts a follow edge. The unique index on (user_id, author_id)
// rejects a concurrent duplicate insert.
func (r *GormFollowRepository) Create(follow *models.Follow) error {
	return r.db.Create(follow).Error
}

// Delete removes the edge if present; deleting a missing edge is not an
// error.
func (r *GormFollowRepository) Delete(userID, authorID uint) error {
	return r.db.
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{}).Error
}

// Exists reports whether the user follows the author.
func (r *GormFollowRepository) Exists(userID, authorID uint) (bool, error) {
	var n int64
	err := r.db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&n).Error
	return n > 0, err
}
