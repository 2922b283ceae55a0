package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostFormValidate(t *testing.T) {
	t.Run("valid form", func(t *testing.T) {
		form := &PostForm{Text: "Some text"}
		assert.Empty(t, form.Validate())
	})

	t.Run("missing text", func(t *testing.T) {
		form := &PostForm{}
		errs := form.Validate()
		assert.Len(t, errs, 1)
		assert.Equal(t, "This field is required.", errs["text"])
	})

	t.Run("group and image are optional", func(t *testing.T) {
		gid := uint(3)
		form := &PostForm{Text: "Text", GroupID: &gid, Image: "/media/a.gif"}
		assert.Empty(t, form.Validate())
	})
}

func TestCommentFormValidate(t *testing.T) {
	t.Run("valid form", func(t *testing.T) {
		form := &CommentForm{Text: "A comment"}
		assert.Empty(t, form.Validate())
	})

	t.Run("missing text", func(t *testing.T) {
		form := &CommentForm{}
		errs := form.Validate()
		assert.Equal(t, "This field is required.", errs["text"])
	})
}
