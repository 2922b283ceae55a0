package models

import "time"

// User is an author identity. Accounts are managed by the auth layer; the
// rest of the application references users but never mutates them.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;size:150;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
}

// Group is a topic board that posts may optionally belong to. Groups are
// created by an administrator and are immutable during normal operation.
type Group struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Slug        string `gorm:"uniqueIndex;size:100;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
}

// Post is an authored entry. AuthorID is set once on create and never
// changes; only the author may edit the remaining fields.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	Image     string    `json:"image,omitempty"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	Author    *User     `json:"author,omitempty"`
	GroupID   *uint     `gorm:"index" json:"group_id,omitempty"`
	Group     *Group    `json:"group,omitempty"`
}

// Comment is an append-only reply to a post.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	Author    *User     `json:"author,omitempty"`
	PostID    uint      `gorm:"index;not null" json:"post_id"`
}

// Follow is a directed edge from a follower to a followed author. The
// composite unique index closes the check-then-act window between the
// existence check and the insert.
type Follow struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_follows_user_author" json:"user_id"`
	AuthorID uint `gorm:"not null;uniqueIndex:idx_follows_user_author" json:"author_id"`
}
