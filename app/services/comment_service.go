package services

import (
	"quill/app/models"
	"quill/app/repositories"
)

// CommentService handles adding comments to posts.
type CommentService struct {
	comments repositories.CommentRepository
	posts    repositories.PostRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(comments repositories.CommentRepository, posts repositories.PostRepository) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

// AddComment persists a comment by user on the post. A missing post is an
// error; an invalid form is silently dropped — the caller redirects to the
// post detail page either way.
func (s *CommentService) AddComment(user *models.User, postID uint, form *models.CommentForm) error {
	if _, err := s.posts.GetByID(postID); err != nil {
		return err
	}
	if len(form.Validate()) > 0 {
		return nil
	}
	return s.comments.Create(&models.Comment{
		Text:     form.Text,
		AuthorID: user.ID,
		PostID:   postID,
	})
}
