package repositories

import (
	"gorm.io/gorm"

	"quill/app/models"
)

// GormGroupRepository implements GroupRepository on MySQL.
type GormGroupRepository struct {
	db *gorm.DB
}

// NewGormGroupRepository creates a new GormGroupRepository.
func NewGormGroupRepository(db *gorm.DB) *GormGroupRepository {
	return &GormGroupRepository{db: db}
}

// Create persists a new group. Groups are created by administrators only.
func (r *GormGroupRepository) Create(group *models.Group) error {
	return r.db.Create(group).Error
}

// GetBySlug retrieves a group by its slug.
func (r *GormGroupRepository) GetBySlug(slug string) (*models.Group, error) {
	var group models.Group
	if err := r.db.Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, notFound(err)
	}
	return &group, nil
}
