package controllers

import (
	"errors"
	"net/http"

	"quill/app/middleware"
	"quill/app/models"
	"quill/app/repositories"
	"quill/app/services"
)

// CommentController handles comment submission on post detail pages.
type CommentController struct {
	comments *services.CommentService
}

func NewCommentController(comments *services.CommentService) *CommentController {
	return &CommentController{comments: comments}
}

// Add attaches a comment to a post and returns to the post's detail page.
// A blank comment is dropped without feedback; the redirect is the same
// either way.
func (cc *CommentController) Add(w http.ResponseWriter, r *http.Request) {
	id, err := postIDVar(r)
	if err != nil {
		notFound(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		serverError(w, err)
		return
	}
	form := &models.CommentForm{Text: r.FormValue("text")}
	err = cc.comments.AddComment(middleware.CurrentUser(r), id, form)
	if errors.Is(err, repositories.ErrNotFound) {
		notFound(w)
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}
	redirect(w, r, postURL(id))
}
