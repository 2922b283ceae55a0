package controllers

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"quill/app/auth"
	"quill/app/models"
	"quill/app/repositories"
)

// AuthController handles signup, login and logout.
type AuthController struct {
	users     repositories.UserRepository
	sessions  *auth.Sessions
	templates map[string]*template.Template
}

func NewAuthController(users repositories.UserRepository, sessions *auth.Sessions, basePath string) *AuthController {
	return &AuthController{
		users:    users,
		sessions: sessions,
		templates: map[string]*template.Template{
			"login":  loadTemplate(basePath, "auth/login.html"),
			"signup": loadTemplate(basePath, "auth/signup.html"),
		},
	}
}

type authFormData struct {
	Username string
	Next     string
	Error    string
}

// Signup registers a user and redirects to the login page.
func (ac *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	data := authFormData{}
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			serverError(w, err)
			return
		}
		data.Username = r.FormValue("username")
		password := r.FormValue("password")
		switch {
		case data.Username == "" || password == "":
			data.Error = "Username and password are required."
		default:
			if _, err := ac.users.GetByUsername(data.Username); err == nil {
				data.Error = "That username is taken."
				break
			} else if !errors.Is(err, repositories.ErrNotFound) {
				serverError(w, err)
				return
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				serverError(w, err)
				return
			}
			user := &models.User{Username: data.Username, PasswordHash: hash}
			if err := ac.users.Create(user); err != nil {
				serverError(w, err)
				return
			}
			redirect(w, r, "/auth/login/")
			return
		}
	}
	render(w, ac.templates["signup"], data)
}

// Login authenticates the user, sets the session cookie and redirects to
// the next URL when one was requested, otherwise to the index.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	data := authFormData{Next: r.URL.Query().Get("next")}
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			serverError(w, err)
			return
		}
		data.Username = r.FormValue("username")
		if next := r.FormValue("next"); next != "" {
			data.Next = next
		}
		user, err := ac.users.GetByUsername(data.Username)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			serverError(w, err)
			return
		}
		if err != nil || !auth.CheckPassword(user.PasswordHash, r.FormValue("password")) {
			data.Error = "Invalid username or password."
			render(w, ac.templates["login"], data)
			return
		}
		token, err := ac.sessions.Issue(user.ID)
		if err != nil {
			serverError(w, err)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     auth.CookieName,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		target := data.Next
		if target == "" || target[0] != '/' {
			target = "/"
		}
		redirect(w, r, target)
		return
	}
	render(w, ac.templates["login"], data)
}

// Logout clears the session cookie and redirects to the index.
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})
	redirect(w, r, "/")
}
