package controllers

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"quill/app/cache"
	"quill/app/middleware"
	"quill/app/models"
	"quill/app/pagination"
	"quill/app/repositories"
	"quill/app/services"
	"quill/app/storage"
)

const maxUploadSize = 10 << 20

// PostController handles the post listing, detail, create and edit pages.
type PostController struct {
	posts     *services.PostService
	pageCache cache.Cache
	files     storage.FileStore
	templates map[string]*template.Template
}

// NewPostController creates a new PostController loading templates relative
// to basePath.
func NewPostController(posts *services.PostService, pageCache cache.Cache, files storage.FileStore, basePath string) *PostController {
	return &PostController{
		posts:     posts,
		pageCache: pageCache,
		files:     files,
		templates: map[string]*template.Template{
			"index":       loadTemplate(basePath, "posts/index.html", "shared/pagination.html"),
			"group_list":  loadTemplate(basePath, "posts/group_list.html", "shared/pagination.html"),
			"profile":     loadTemplate(basePath, "posts/profile.html", "shared/pagination.html"),
			"post_detail": loadTemplate(basePath, "posts/post_detail.html"),
			"create_post": loadTemplate(basePath, "posts/create_post.html"),
		},
	}
}

// Index renders the global post listing. The whole rendered page is cached
// per request URI; entries live for the cache TTL and are only ever removed
// by the administrative flush, so a post created or deleted inside the
// window is invisible until the entry expires.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	key := cache.IndexKeyPrefix + r.URL.RequestURI()
	if body, ok := pc.pageCache.Get(r.Context(), key); ok {
		w.Write(body)
		return
	}

	page, err := pc.posts.IndexPage(r.URL.Query().Get("page"))
	if err != nil {
		serverError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := pc.templates["index"].ExecuteTemplate(&buf, "layout", struct {
		Page *pagination.Page
	}{page}); err != nil {
		serverError(w, err)
		return
	}
	if err := pc.pageCache.Set(r.Context(), key, buf.Bytes()); err != nil {
		serverError(w, err)
		return
	}
	w.Write(buf.Bytes())
}

// GroupList renders a group's posts.
func (pc *PostController) GroupList(w http.ResponseWriter, r *http.Request) {
	group, page, err := pc.posts.GroupPage(mux.Vars(r)["slug"], r.URL.Query().Get("page"))
	if errors.Is(err, repositories.ErrNotFound) {
		notFound(w)
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}
	render(w, pc.templates["group_list"], struct {
		Group *models.Group
		Page  *pagination.Page
	}{group, page})
}

// Profile renders an author's posts and the viewer's follow state.
func (pc *PostController) Profile(w http.ResponseWriter, r *http.Request) {
	view, err := pc.posts.ProfilePage(
		mux.Vars(r)["username"],
		r.URL.Query().Get("page"),
		middleware.CurrentUser(r),
	)
	if errors.Is(err, repositories.ErrNotFound) {
		notFound(w)
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}
	render(w, pc.templates["profile"], struct {
		Author    *models.User
		Page      *pagination.Page
		PostCount int
		Following bool
	}{view.Author, view.Page, view.PostCount, view.Following})
}

// Detail renders a single post with its comments and a blank comment form.
func (pc *PostController) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := postIDVar(r)
	if err != nil {
		notFound(w)
		return
	}
	detail, err := pc.posts.Detail(id)
	if errors.Is(err, repositories.ErrNotFound) {
		notFound(w)
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}
	render(w, pc.templates["post_detail"], struct {
		Post      *models.Post
		PostCount int
		Comments  []*models.Comment
		Form      *models.CommentForm
	}{detail.Post, detail.PostCount, detail.Comments, &models.CommentForm{}})
}

// Create renders the new-post form and handles its submission. A valid
// submission redirects to the author's profile; an invalid one re-renders
// the form with field errors.
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)
	form := &models.PostForm{}
	errs := models.FieldErrors{}

	if r.Method == http.MethodPost {
		var err error
		form, err = pc.bindPostForm(r)
		if err != nil {
			serverError(w, err)
			return
		}
		errs = form.Validate()
		if len(errs) == 0 {
			if _, err := pc.posts.CreatePost(user, form); err != nil {
				serverError(w, err)
				return
			}
			redirect(w, r, profileURL(user.Username))
			return
		}
	}

	render(w, pc.templates["create_post"], createPostData{Form: form, Errors: errs})
}

// Edit renders the edit form and handles its submission. Only the author
// may edit: everyone else is silently redirected to their own profile, the
// same response a successful submission by them would have produced.
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)
	id, err := postIDVar(r)
	if err != nil {
		notFound(w)
		return
	}
	post, err := pc.posts.GetPost(id)
	if errors.Is(err, repositories.ErrNotFound) {
		notFound(w)
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}
	if post.AuthorID != user.ID {
		redirect(w, r, profileURL(user.Username))
		return
	}

	form := &models.PostForm{Text: post.Text, GroupID: post.GroupID, Image: post.Image}
	errs := models.FieldErrors{}

	if r.Method == http.MethodPost {
		form, err = pc.bindPostForm(r)
		if err != nil {
			serverError(w, err)
			return
		}
		if form.Image == "" {
			form.Image = post.Image
		}
		errs = form.Validate()
		if len(errs) == 0 {
			if _, err := pc.posts.UpdatePost(user, id, form); err != nil {
				serverError(w, err)
				return
			}
			redirect(w, r, postURL(id))
			return
		}
	}

	render(w, pc.templates["create_post"], createPostData{Form: form, Errors: errs, IsEdit: true, PostID: id})
}

type createPostData struct {
	Form   *models.PostForm
	Errors models.FieldErrors
	IsEdit bool
	PostID uint
}

// bindPostForm reads the submitted fields, storing an uploaded image before
// the form is validated so the stored URL travels with the form.
func (pc *PostController) bindPostForm(r *http.Request) (*models.PostForm, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			return nil, err
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, err
	}

	form := &models.PostForm{Text: r.FormValue("text")}
	if raw := r.FormValue("group"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			groupID := uint(id)
			form.GroupID = &groupID
		}
	}

	if r.MultipartForm != nil {
		file, header, err := r.FormFile("image")
		if err == nil {
			defer file.Close()
			url, err := pc.files.Save(r.Context(), header.Filename, header.Header.Get("Content-Type"), file, header.Size)
			if err != nil {
				return nil, err
			}
			form.Image = url
		} else if err != http.ErrMissingFile {
			return nil, err
		}
	}
	return form, nil
}
