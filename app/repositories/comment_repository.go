package repositories

import (
	"gorm.io/gorm"

	"quill/app/models"
)

// GormCommentRepository implements CommentRepository on MySQL.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository.
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Create persists a new comment.
func (r *GormCommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// ListByPost retrieves all comments for a post in insertion order with their
// authors resolved. Comments are never paginated.
func (r *GormCommentRepository) ListByPost(postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}
