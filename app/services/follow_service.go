package services

import (
	"quill/app/models"
	"quill/app/repositories"
)

// FollowService handles the follow/unfollow actions.
type FollowService struct {
	users   repositories.UserRepository
	follows repositories.FollowRepository
}

// NewFollowService creates a new FollowService.
func NewFollowService(users repositories.UserRepository, follows repositories.FollowRepository) *FollowService {
	return &FollowService{users: users, follows: follows}
}

// Follow creates an edge from user to the named author. Following yourself
// or an author you already follow is a no-op, not an error.
func (s *FollowService) Follow(user *models.User, username string) error {
	author, err := s.users.GetByUsername(username)
	if err != nil {
		return err
	}
	if author.ID == user.ID {
		return nil
	}
	exists, err := s.follows.Exists(user.ID, author.ID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.follows.Create(&models.Follow{UserID: user.ID, AuthorID: author.ID})
}

// Unfollow removes the edge from user to the named author if present.
func (s *FollowService) Unfollow(user *models.User, username string) error {
	author, err := s.users.GetByUsername(username)
	if err != nil {
		return err
	}
	return s.follows.Delete(user.ID, author.ID)
}
