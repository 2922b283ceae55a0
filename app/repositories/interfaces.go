package repositories

import (
	"errors"

	"quill/app/models"
)

// ErrNotFound is returned by lookups when no record matches.
var ErrNotFound = errors.New("record not found")

// UserRepository defines data access for users.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
}

// GroupRepository defines data access for topic boards.
type GroupRepository interface {
	Create(group *models.Group) error
	GetBySlug(slug string) (*models.Group, error)
}

// PostRepository defines data access for posts. Every listing is ordered
// newest-first (creation time, then ID descending) with Author and Group
// resolved eagerly.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id uint) (*models.Post, error)
	Update(post *models.Post) error
	Delete(id uint) error
	List(limit, offset int) ([]*models.Post, error)
	Count() (int, error)
	ListByGroup(groupID uint, limit, offset int) ([]*models.Post, error)
	CountByGroup(groupID uint) (int, error)
	ListByAuthor(authorID uint, limit, offset int) ([]*models.Post, error)
	CountByAuthor(authorID uint) (int, error)
	ListFeed(userID uint, limit, offset int) ([]*models.Post, error)
	CountFeed(userID uint) (int, error)
}

// CommentRepository defines data access for comments.
type CommentRepository interface {
	Create(comment *models.Comment) error
	ListByPost(postID uint) ([]*models.Comment, error)
}

// FollowRepository defines data access for follow edges.
type FollowRepository interface {
	Create(follow *models.Follow) error
	Delete(userID, authorID uint) error
	Exists(userID, authorID uint) (bool, error)
}
