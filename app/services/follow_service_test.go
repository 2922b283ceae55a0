package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quill/app/repositories"
	"quill/app/repositories/mock"
)

func newTestFollowService(t *testing.T) (*FollowService, *mock.Store) {
	t.Helper()
	store := mock.NewStore()
	return NewFollowService(store.Users(), store.Follows()), store
}

func TestFollow(t *testing.T) {
	svc, store := newTestFollowService(t)
	user := createUser(t, store, "user")
	author := createUser(t, store, "author")

	t.Run("creates the edge", func(t *testing.T) {
		require.NoError(t, svc.Follow(user, "author"))
		exists, err := store.Follows().Exists(user.ID, author.ID)
		require.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, 1, store.FollowCount())
	})

	t.Run("following twice leaves one edge", func(t *testing.T) {
		require.NoError(t, svc.Follow(user, "author"))
		assert.Equal(t, 1, store.FollowCount())
	})

	t.Run("self-follow leaves no edge", func(t *testing.T) {
		require.NoError(t, svc.Follow(author, "author"))
		exists, err := store.Follows().Exists(author.ID, author.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("missing author", func(t *testing.T) {
		assert.ErrorIs(t, svc.Follow(user, "ghost"), repositories.ErrNotFound)
	})
}

func TestUnfollow(t *testing.T) {
	svc, store := newTestFollowService(t)
	user := createUser(t, store, "user")
	createUser(t, store, "author")

	t.Run("follow then unfollow leaves no edge", func(t *testing.T) {
		require.NoError(t, svc.Follow(user, "author"))
		require.NoError(t, svc.Unfollow(user, "author"))
		assert.Equal(t, 0, store.FollowCount())
	})

	t.Run("unfollow without an edge is a no-op", func(t *testing.T) {
		require.NoError(t, svc.Unfollow(user, "author"))
		assert.Equal(t, 0, store.FollowCount())
	})

	t.Run("missing author", func(t *testing.T) {
		assert.ErrorIs(t, svc.Unfollow(user, "ghost"), repositories.ErrNotFound)
	})
}
