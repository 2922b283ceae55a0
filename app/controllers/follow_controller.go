package controllers

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"

	"quill/app/middleware"
	"quill/app/models"
	"quill/app/pagination"
	"quill/app/repositories"
	"quill/app/services"
)

// FollowController handles the subscription feed and follow toggles.
type FollowController struct {
	posts    *services.PostService
	follows  *services.FollowService
	feedTmpl *template.Template
}

func NewFollowController(posts *services.PostService, follows *services.FollowService, basePath string) *FollowController {
	return &FollowController{
		posts:    posts,
		follows:  follows,
		feedTmpl: loadTemplate(basePath, "posts/follow.html", "shared/pagination.html"),
	}
}

// Feed renders posts from the authors the viewer follows.
func (fc *FollowController) Feed(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)
	page, err := fc.posts.FeedPage(user, r.URL.Query().Get("page"))
	if err != nil {
		serverError(w, err)
		return
	}
	render(w, fc.feedTmpl, struct {
		Page *pagination.Page
	}{page})
}

// Follow subscribes the viewer to an author and returns to the profile.
// Following yourself or an author you already follow changes nothing.
func (fc *FollowController) Follow(w http.ResponseWriter, r *http.Request) {
	fc.toggle(w, r, fc.follows.Follow)
}

// Unfollow removes the subscription and returns to the profile.
func (fc *FollowController) Unfollow(w http.ResponseWriter, r *http.Request) {
	fc.toggle(w, r, fc.follows.Unfollow)
}

func (fc *FollowController) toggle(w http.ResponseWriter, r *http.Request, op func(user *models.User, username string) error) {
	username := mux.Vars(r)["username"]
	err := op(middleware.CurrentUser(r), username)
	if errors.Is(err, repositories.ErrNotFound) {
		notFound(w)
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}
	redirect(w, r, profileURL(username))
}
