// Package mock provides in-memory implementations of the repository
// interfaces for use in tests. Listing order and lookup semantics match the
// GORM implementations: newest-first with ID as tiebreak, eager author and
// group resolution, and a unique (user, author) constraint on follows.
package mock

import (
	"errors"
	"sort"
	"sync"
	"time"

	"quill/app/models"
	"quill/app/repositories"
)

// Store holds the shared in-memory state behind the per-entity repositories.
type Store struct {
	mu       sync.RWMutex
	users    map[uint]*models.User
	groups   map[uint]*models.Group
	posts    map[uint]*models.Post
	comments map[uint]*models.Comment
	follows  map[uint]*models.Follow
	nextID   map[string]uint
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:    make(map[uint]*models.User),
		groups:   make(map[uint]*models.Group),
		posts:    make(map[uint]*models.Post),
		comments: make(map[uint]*models.Comment),
		follows:  make(map[uint]*models.Follow),
		nextID:   make(map[string]uint),
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Groups returns the group repository view of the store.
func (s *Store) Groups() *GroupRepository { return &GroupRepository{s: s} }

// Posts returns the post repository view of the store.
func (s *Store) Posts() *PostRepository { return &PostRepository{s: s} }

// Comments returns the comment repository view of the store.
func (s *Store) Comments() *CommentRepository { return &CommentRepository{s: s} }

// Follows returns the follow repository view of the store.
func (s *Store) Follows() *FollowRepository { return &FollowRepository{s: s} }

// FollowCount returns the total number of follow edges. Test helper.
func (s *Store) FollowCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.follows)
}

func (s *Store) sequence(name string) uint {
	s.nextID[name]++
	return s.nextID[name]
}

// resolvePost returns a copy of the post with Author and Group attached.
// Callers must hold at least a read lock.
func (s *Store) resolvePost(post *models.Post) *models.Post {
	out := *post
	if author, ok := s.users[post.AuthorID]; ok {
		a := *author
		out.Author = &a
	}
	if post.GroupID != nil {
		if group, ok := s.groups[*post.GroupID]; ok {
			g := *group
			out.Group = &g
		}
	}
	return &out
}

func (s *Store) listPosts(limit, offset int, keep func(*models.Post) bool) ([]*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []*models.Post
	for _, post := range s.posts {
		if keep(post) {
			matched = append(matched, post)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	page := make([]*models.Post, 0, len(matched))
	for _, post := range matched {
		page = append(page, s.resolvePost(post))
	}
	return page, nil
}

func (s *Store) countPosts(keep func(*models.Post) bool) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, post := range s.posts {
		if keep(post) {
			n++
		}
	}
	return n, nil
}

func (s *Store) followedAuthors(userID uint) map[uint]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	followed := make(map[uint]bool)
	for _, f := range s.follows {
		if f.UserID == userID {
			followed[f.AuthorID] = true
		}
	}
	return followed
}

// UserRepository implements repositories.UserRepository in memory.
type UserRepository struct {
	s *Store
}

var _ repositories.UserRepository = (*UserRepository)(nil)

// Create stores a new user.
func (r *UserRepository) Create(user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return errors.New("duplicate username")
		}
	}
	user.ID = r.s.sequence("user")
	stored := *user
	r.s.users[user.ID] = &stored
	return nil
}

// GetByID retrieves a user by primary key.
func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := *user
	return &out, nil
}

// GetByUsername retrieves a user by username.
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, user := range r.s.users {
		if user.Username == username {
			out := *user
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// GroupRepository implements repositories.GroupRepository in memory.
type GroupRepository struct {
	s *Store
}

var _ repositories.GroupRepository = (*GroupRepository)(nil)

// Create stores a new group.
func (r *GroupRepository) Create(group *models.Group) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	group.ID = r.s.sequence("group")
	stored := *group
	r.s.groups[group.ID] = &stored
	return nil
}

// GetBySlug retrieves a group by its slug.
func (r *GroupRepository) GetBySlug(slug string) (*models.Group, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, group := range r.s.groups {
		if group.Slug == slug {
			out := *group
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// PostRepository implements repositories.PostRepository in memory.
type PostRepository struct {
	s *Store
}

var _ repositories.PostRepository = (*PostRepository)(nil)

// Create stores a new post, assigning its ID and creation time.
func (r *PostRepository) Create(post *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	post.ID = r.s.sequence("post")
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	stored := *post
	stored.Author = nil
	stored.Group = nil
	r.s.posts[post.ID] = &stored
	return nil
}

// GetByID retrieves a post with author and group attached.
func (r *PostRepository) GetByID(id uint) (*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	post, ok := r.s.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r.s.resolvePost(post), nil
}

// Update stores changes to an existing post.
func (r *PostRepository) Update(post *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.posts[post.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	existing.Text = post.Text
	existing.Image = post.Image
	existing.GroupID = post.GroupID
	return nil
}

// Delete removes a post.
func (r *PostRepository) Delete(id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.posts, id)
	return nil
}

// List retrieves one page of the global post listing.
func (r *PostRepository) List(limit, offset int) ([]*models.Post, error) {
	return r.s.listPosts(limit, offset, func(*models.Post) bool { return true })
}

// Count returns the total number of posts.
func (r *PostRepository) Count() (int, error) {
	return r.s.countPosts(func(*models.Post) bool { return true })
}

// ListByGroup retrieves one page of a group's posts.
func (r *PostRepository) ListByGroup(groupID uint, limit, offset int) ([]*models.Post, error) {
	return r.s.listPosts(limit, offset, func(p *models.Post) bool {
		return p.GroupID != nil && *p.GroupID == groupID
	})
}

// CountByGroup returns the number of posts in a group.
func (r *PostRepository) CountByGroup(groupID uint) (int, error) {
	return r.s.countPosts(func(p *models.Post) bool {
		return p.GroupID != nil && *p.GroupID == groupID
	})
}

// ListByAuthor retrieves one page of an author's posts.
func (r *PostRepository) ListByAuthor(authorID uint, limit, offset int) ([]*models.Post, error) {
	return r.s.listPosts(limit, offset, func(p *models.Post) bool {
		return p.AuthorID == authorID
	})
}

// CountByAuthor returns the number of posts by an author.
func (r *PostRepository) CountByAuthor(authorID uint) (int, error) {
	return r.s.countPosts(func(p *models.Post) bool { return p.AuthorID == authorID })
}

// ListFeed retrieves one page of posts by authors the user follows.
func (r *PostRepository) ListFeed(userID uint, limit, offset int) ([]*models.Post, error) {
	followed := r.s.followedAuthors(userID)
	return r.s.listPosts(limit, offset, func(p *models.Post) bool {
		return followed[p.AuthorID]
	})
}

// CountFeed returns the number of posts in the user's follow feed.
func (r *PostRepository) CountFeed(userID uint) (int, error) {
	followed := r.s.followedAuthors(userID)
	return r.s.countPosts(func(p *models.Post) bool { return followed[p.AuthorID] })
}

// CommentRepository implements repositories.CommentRepository in memory.
type CommentRepository struct {
	s *Store
}

var _ repositories.CommentRepository = (*CommentRepository)(nil)

// Create stores a new comment, assigning its ID and creation time.
func (r *CommentRepository) Create(comment *models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	comment.ID = r.s.sequence("comment")
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	stored := *comment
	stored.Author = nil
	r.s.comments[comment.ID] = &stored
	return nil
}

// ListByPost retrieves a post's comments in insertion order.
func (r *CommentRepository) ListByPost(postID uint) ([]*models.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var comments []*models.Comment
	for _, comment := range r.s.comments {
		if comment.PostID == postID {
			out := *comment
			if author, ok := r.s.users[comment.AuthorID]; ok {
				a := *author
				out.Author = &a
			}
			comments = append(comments, &out)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

// FollowRepository implements repositories.FollowRepository in memory.
type FollowRepository struct {
	s *Store
}

var _ repositories.FollowRepository = (*FollowRepository)(nil)

// Create inserts a follow edge, enforcing the unique (user, author)
// constraint the way the database index does.
func (r *FollowRepository) Create(follow *models.Follow) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.follows {
		if f.UserID == follow.UserID && f.AuthorID == follow.AuthorID {
			return errors.New("duplicate follow")
		}
	}
	follow.ID = r.s.sequence("follow")
	stored := *follow
	r.s.follows[follow.ID] = &stored
	return nil
}

// Delete removes the edge if present; deleting a missing edge is not an
// error.
func (r *FollowRepository) Delete(userID, authorID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, f := range r.s.follows {
		if f.UserID == userID && f.AuthorID == authorID {
			delete(r.s.follows, id)
		}
	}
	return nil
}

// Exists reports whether the user follows the author.
func (r *FollowRepository) Exists(userID, authorID uint) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, f := range r.s.follows {
		if f.UserID == userID && f.AuthorID == authorID {
			return true, nil
		}
	}
	return false, nil
}
