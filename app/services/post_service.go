package services

import (
	"errors"
	"fmt"

	"quill/app/models"
	"quill/app/pagination"
	"quill/app/repositories"
)

// ErrNotAuthor is returned when a user tries to edit somebody else's post.
// The controller turns it into a silent redirect, never an error page.
var ErrNotAuthor = errors.New("user is not the post author")

// PostService handles the listing, detail, create and edit logic for posts.
type PostService struct {
	posts    repositories.PostRepository
	groups   repositories.GroupRepository
	users    repositories.UserRepository
	comments repositories.CommentRepository
	follows  repositories.FollowRepository
}

// NewPostService creates a new PostService.
func NewPostService(
	posts repositories.PostRepository,
	groups repositories.GroupRepository,
	users repositories.UserRepository,
	comments repositories.CommentRepository,
	follows repositories.FollowRepository,
) *PostService {
	return &PostService{
		posts:    posts,
		groups:   groups,
		users:    users,
		comments: comments,
		follows:  follows,
	}
}

// ProfileView is everything the profile page renders.
type ProfileView struct {
	Author    *models.User
	Page      *pagination.Page
	PostCount int
	// Following is true for anonymous viewers and for the owner viewing
	// themselves; for other authenticated viewers it reflects whether a
	// follow edge exists.
	Following bool
}

// PostDetail is everything the post detail page renders.
type PostDetail struct {
	Post      *models.Post
	PostCount int
	Comments  []*models.Comment
}

// IndexPage returns one page of the global newest-first listing.
func (s *PostService) IndexPage(pageQuery string) (*pagination.Page, error) {
	count, err := s.posts.Count()
	if err != nil {
		return nil, err
	}
	return s.page(pageQuery, count, s.posts.List)
}

// GroupPage resolves a group by slug and returns it with one page of its
// posts.
func (s *PostService) GroupPage(slug, pageQuery string) (*models.Group, *pagination.Page, error) {
	group, err := s.groups.GetBySlug(slug)
	if err != nil {
		return nil, nil, err
	}
	count, err := s.posts.CountByGroup(group.ID)
	if err != nil {
		return nil, nil, err
	}
	page, err := s.page(pageQuery, count, func(limit, offset int) ([]*models.Post, error) {
		return s.posts.ListByGroup(group.ID, limit, offset)
	})
	if err != nil {
		return nil, nil, err
	}
	return group, page, nil
}

// ProfilePage resolves an author by username and returns their posts along
// with the viewer's follow state. viewer is nil for anonymous requests.
func (s *PostService) ProfilePage(username, pageQuery string, viewer *models.User) (*ProfileView, error) {
	author, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	count, err := s.posts.CountByAuthor(author.ID)
	if err != nil {
		return nil, err
	}
	page, err := s.page(pageQuery, count, func(limit, offset int) ([]*models.Post, error) {
		return s.posts.ListByAuthor(author.ID, limit, offset)
	})
	if err != nil {
		return nil, err
	}

	following := true
	if viewer != nil && viewer.ID != author.ID {
		following, err = s.follows.Exists(viewer.ID, author.ID)
		if err != nil {
			return nil, err
		}
	}

	return &ProfileView{
		Author:    author,
		Page:      page,
		PostCount: count,
		Following: following,
	}, nil
}

// FeedPage returns one page of posts by authors the user follows.
func (s *PostService) FeedPage(user *models.User, pageQuery string) (*pagination.Page, error) {
	count, err := s.posts.CountFeed(user.ID)
	if err != nil {
		return nil, err
	}
	return s.page(pageQuery, count, func(limit, offset int) ([]*models.Post, error) {
		return s.posts.ListFeed(user.ID, limit, offset)
	})
}

// GetPost retrieves a single post.
func (s *PostService) GetPost(id uint) (*models.Post, error) {
	return s.posts.GetByID(id)
}

// Detail returns the post, its author's total post count and its comments.
func (s *PostService) Detail(id uint) (*PostDetail, error) {
	post, err := s.posts.GetByID(id)
	if err != nil {
		return nil, err
	}
	count, err := s.posts.CountByAuthor(post.AuthorID)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByPost(post.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	return &PostDetail{Post: post, PostCount: count, Comments: comments}, nil
}

// CreatePost persists a new post owned by author.
func (s *PostService) CreatePost(author *models.User, form *models.PostForm) (*models.Post, error) {
	post := &models.Post{
		Text:     form.Text,
		Image:    form.Image,
		GroupID:  form.GroupID,
		AuthorID: author.ID,
	}
	if err := s.posts.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost applies the form to an existing post. Only the author may
// edit; anyone else gets ErrNotAuthor with the post left untouched. The
// author and creation time never change.
func (s *PostService) UpdatePost(user *models.User, id uint, form *models.PostForm) (*models.Post, error) {
	post, err := s.posts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != user.ID {
		return nil, ErrNotAuthor
	}
	post.Text = form.Text
	post.GroupID = form.GroupID
	if form.Image != "" {
		post.Image = form.Image
	}
	if err := s.posts.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post. Administrative capability; no route exposes
// it.
func (s *PostService) DeletePost(id uint) error {
	return s.posts.Delete(id)
}

func (s *PostService) page(pageQuery string, count int, list func(limit, offset int) ([]*models.Post, error)) (*pagination.Page, error) {
	number := pagination.PageNumber(pageQuery, count, pagination.PostsPerPage)
	items, err := list(pagination.PostsPerPage, (number-1)*pagination.PostsPerPage)
	if err != nil {
		return nil, err
	}
	return &pagination.Page{
		Items:      items,
		Number:     number,
		NumPages:   pagination.NumPages(count, pagination.PostsPerPage),
		TotalCount: count,
	}, nil
}
