package repositories

import (
	"gorm.io/gorm"

	"quill/app/models"
)

// GormPostRepository implements PostRepository on MySQL.
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository.
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

func (r *GormPostRepository) listing() *gorm.DB {
	return r.db.Preload("Author").Preload("Group").Order(postOrder)
}

// Create persists a new post.
func (r *GormPostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetByID retrieves a post with its author and group resolved.
func (r *GormPostRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Author").Preload("Group").First(&post, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

// Update persists changes to an existing post. GroupID is written explicitly
// so that clearing the group sticks.
func (r *GormPostRepository) Update(post *models.Post) error {
	return r.db.Model(post).Select("Text", "Image", "GroupID").Updates(post).Error
}

// Delete removes a post. Exposed for administrative tooling only; no view
// handler deletes posts.
func (r *GormPostRepository) Delete(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}

// List retrieves one page of the global listing.
func (r *GormPostRepository) List(limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.listing().Limit(limit).Offset(offset).Find(&posts).Error
	return posts, err
}

// Count returns the total number of posts.
func (r *GormPostRepository) Count() (int, error) {
	var n int64
	err := r.db.Model(&models.Post{}).Count(&n).Error
	return int(n), err
}

// ListByGroup retrieves one page of a group's posts.
func (r *GormPostRepository) ListByGroup(groupID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.listing().Where("group_id = ?", groupID).Limit(limit).Offset(offset).Find(&posts).Error
	return posts, err
}

// CountByGroup returns the number of posts in a group.
func (r *GormPostRepository) CountByGroup(groupID uint) (int, error) {
	var n int64
	err := r.db.Model(&models.Post{}).Where("group_id = ?", groupID).Count(&n).Error
	return int(n), err
}

// ListByAuthor retrieves one page of an author's posts.
func (r *GormPostRepository) ListByAuthor(authorID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.listing().Where("author_id = ?", authorID).Limit(limit).Offset(offset).Find(&posts).Error
	return posts, err
}

// CountByAuthor returns the number of posts by an author.
func (r *GormPostRepository) CountByAuthor(authorID uint) (int, error) {
	var n int64
	err := r.db.Model(&models.Post{}).Where("author_id = ?", authorID).Count(&n).Error
	return int(n), err
}

// ListFeed retrieves one page of posts written by authors the user follows.
func (r *GormPostRepository) ListFeed(userID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.listing().
		Joins("JOIN follows ON follows.author_id = posts.author_id").
		Where("follows.user_id = ?", userID).
		Limit(limit).Offset(offset).
		Find(&posts).Error
	return posts, err
}

// CountFeed returns the number of posts in the user's follow feed.
func (r *GormPostRepository) CountFeed(userID uint) (int, error) {
	var n int64
	err := r.db.Model(&models.Post{}).
		Joins("JOIN follows ON follows.author_id = posts.author_id").
		Where("follows.user_id = ?", userID).
		Count(&n).Error
	return int(n), err
}
