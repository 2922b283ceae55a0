package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quill/app/models"
	"quill/app/repositories"
	"quill/app/repositories/mock"
)

func newTestPostService(t *testing.T) (*PostService, *mock.Store) {
	t.Helper()
	store := mock.NewStore()
	svc := NewPostService(store.Posts(), store.Groups(), store.Users(), store.Comments(), store.Follows())
	return svc, store
}

func createUser(t *testing.T, store *mock.Store, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username}
	require.NoError(t, store.Users().Create(user))
	return user
}

func createPosts(t *testing.T, store *mock.Store, author *models.User, groupID *uint, n int) {
	t.Helper()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		require.NoError(t, store.Posts().Create(&models.Post{
			Text:      fmt.Sprintf("post %d", i+1),
			AuthorID:  author.ID,
			GroupID:   groupID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
}

func TestIndexPagePagination(t *testing.T) {
	svc, store := newTestPostService(t)
	author := createUser(t, store, "auth")
	createPosts(t, store, author, nil, 13)

	t.Run("first page holds ten newest posts", func(t *testing.T) {
		page, err := svc.IndexPage("")
		require.NoError(t, err)
		assert.Len(t, page.Items, 10)
		assert.Equal(t, 1, page.Number)
		assert.Equal(t, 2, page.NumPages)
		assert.Equal(t, 13, page.TotalCount)
		assert.Equal(t, "post 13", page.Items[0].Text)
		assert.True(t, page.HasNext())
		assert.False(t, page.HasPrevious())
	})

	t.Run("second page holds the remainder", func(t *testing.T) {
		page, err := svc.IndexPage("2")
		require.NoError(t, err)
		assert.Len(t, page.Items, 3)
		assert.Equal(t, "post 3", page.Items[0].Text)
		assert.Equal(t, "post 1", page.Items[2].Text)
	})

	t.Run("page past the end returns the last page", func(t *testing.T) {
		last, err := svc.IndexPage("2")
		require.NoError(t, err)
		beyond, err := svc.IndexPage("3")
		require.NoError(t, err)
		assert.Equal(t, last.Number, beyond.Number)
		assert.Equal(t, last.Items, beyond.Items)
	})

	t.Run("non-numeric page returns the first page", func(t *testing.T) {
		page, err := svc.IndexPage("garbage")
		require.NoError(t, err)
		assert.Equal(t, 1, page.Number)
		assert.Len(t, page.Items, 10)
	})

	t.Run("author resolved on every item", func(t *testing.T) {
		page, err := svc.IndexPage("")
		require.NoError(t, err)
		for _, post := range page.Items {
			require.NotNil(t, post.Author)
			assert.Equal(t, "auth", post.Author.Username)
		}
	})
}

func TestGroupPage(t *testing.T) {
	svc, store := newTestPostService(t)
	author := createUser(t, store, "auth")
	group := &models.Group{Title: "Board", Slug: "board", Description: "A board"}
	require.NoError(t, store.Groups().Create(group))
	createPosts(t, store, author, &group.ID, 2)
	createPosts(t, store, author, nil, 1)

	t.Run("lists only the group's posts", func(t *testing.T) {
		got, page, err := svc.GroupPage("board", "")
		require.NoError(t, err)
		assert.Equal(t, "Board", got.Title)
		assert.Len(t, page.Items, 2)
		assert.Equal(t, 2, page.TotalCount)
	})

	t.Run("missing slug", func(t *testing.T) {
		_, _, err := svc.GroupPage("nope", "")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestProfilePage(t *testing.T) {
	svc, store := newTestPostService(t)
	owner := createUser(t, store, "owner")
	viewer := createUser(t, store, "viewer")
	createPosts(t, store, owner, nil, 3)

	t.Run("lists the author's posts with count", func(t *testing.T) {
		view, err := svc.ProfilePage("owner", "", nil)
		require.NoError(t, err)
		assert.Equal(t, "owner", view.Author.Username)
		assert.Len(t, view.Page.Items, 3)
		assert.Equal(t, 3, view.PostCount)
	})

	t.Run("following defaults to true for anonymous viewers", func(t *testing.T) {
		view, err := svc.ProfilePage("owner", "", nil)
		require.NoError(t, err)
		assert.True(t, view.Following)
	})

	t.Run("following is true for the owner viewing themselves", func(t *testing.T) {
		view, err := svc.ProfilePage("owner", "", owner)
		require.NoError(t, err)
		assert.True(t, view.Following)
	})

	t.Run("following is false without an edge", func(t *testing.T) {
		view, err := svc.ProfilePage("owner", "", viewer)
		require.NoError(t, err)
		assert.False(t, view.Following)
	})

	t.Run("following is true with an edge", func(t *testing.T) {
		require.NoError(t, store.Follows().Create(&models.Follow{UserID: viewer.ID, AuthorID: owner.ID}))
		view, err := svc.ProfilePage("owner", "", viewer)
		require.NoError(t, err)
		assert.True(t, view.Following)
	})

	t.Run("missing username", func(t *testing.T) {
		_, err := svc.ProfilePage("ghost", "", nil)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestCreatePost(t *testing.T) {
	svc, store := newTestPostService(t)
	author := createUser(t, store, "auth")
	createPosts(t, store, author, nil, 1)

	before, err := store.Posts().Count()
	require.NoError(t, err)

	post, err := svc.CreatePost(author, &models.PostForm{Text: "fresh"})
	require.NoError(t, err)
	assert.Equal(t, author.ID, post.AuthorID)

	after, err := store.Posts().Count()
	require.NoError(t, err)
	assert.Equal(t, before+1, after)

	page, err := svc.IndexPage("")
	require.NoError(t, err)
	assert.Equal(t, "fresh", page.Items[0].Text)
}

func TestUpdatePost(t *testing.T) {
	svc, store := newTestPostService(t)
	author := createUser(t, store, "auth")
	other := createUser(t, store, "other")
	group := &models.Group{Title: "Board", Slug: "board"}
	require.NoError(t, store.Groups().Create(group))
	createPosts(t, store, author, nil, 1)

	t.Run("author edit updates the submitted fields", func(t *testing.T) {
		post, err := svc.UpdatePost(author, 1, &models.PostForm{Text: "edited", GroupID: &group.ID})
		require.NoError(t, err)
		assert.Equal(t, "edited", post.Text)

		stored, err := store.Posts().GetByID(1)
		require.NoError(t, err)
		assert.Equal(t, "edited", stored.Text)
		require.NotNil(t, stored.GroupID)
		assert.Equal(t, group.ID, *stored.GroupID)
		assert.Equal(t, author.ID, stored.AuthorID)
	})

	t.Run("non-author edit leaves the post untouched", func(t *testing.T) {
		_, err := svc.UpdatePost(other, 1, &models.PostForm{Text: "hijacked"})
		assert.ErrorIs(t, err, ErrNotAuthor)

		stored, err := store.Posts().GetByID(1)
		require.NoError(t, err)
		assert.Equal(t, "edited", stored.Text)
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := svc.UpdatePost(author, 99, &models.PostForm{Text: "x"})
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestFeedPage(t *testing.T) {
	svc, store := newTestPostService(t)
	reader := createUser(t, store, "reader")
	followed := createUser(t, store, "followed")
	ignored := createUser(t, store, "ignored")
	createPosts(t, store, followed, nil, 2)
	createPosts(t, store, ignored, nil, 5)
	require.NoError(t, store.Follows().Create(&models.Follow{UserID: reader.ID, AuthorID: followed.ID}))

	page, err := svc.FeedPage(reader, "")
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	for _, post := range page.Items {
		assert.Equal(t, followed.ID, post.AuthorID)
	}
}

func TestDetail(t *testing.T) {
	svc, store := newTestPostService(t)
	author := createUser(t, store, "auth")
	createPosts(t, store, author, nil, 2)
	require.NoError(t, store.Comments().Create(&models.Comment{Text: "first", AuthorID: author.ID, PostID: 1}))
	require.NoError(t, store.Comments().Create(&models.Comment{Text: "second", AuthorID: author.ID, PostID: 1}))

	t.Run("returns post, author count and comments in order", func(t *testing.T) {
		detail, err := svc.Detail(1)
		require.NoError(t, err)
		assert.Equal(t, uint(1), detail.Post.ID)
		assert.Equal(t, 2, detail.PostCount)
		require.Len(t, detail.Comments, 2)
		assert.Equal(t, "first", detail.Comments[0].Text)
		assert.Equal(t, "second", detail.Comments[1].Text)
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := svc.Detail(99)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestDeletePost(t *testing.T) {
	svc, store := newTestPostService(t)
	author := createUser(t, store, "auth")
	createPosts(t, store, author, nil, 2)

	require.NoError(t, svc.DeletePost(1))

	_, err := svc.GetPost(1)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	count, err := store.Posts().Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
