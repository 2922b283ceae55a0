package controllers

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gorilla/mux"
)

func loadTemplate(basePath string, pages ...string) *template.Template {
	files := []string{filepath.Join(basePath, "app/views/layout.html")}
	for _, page := range pages {
		files = append(files, filepath.Join(basePath, "app/views", page))
	}
	return template.Must(template.ParseFiles(files...))
}

func render(w http.ResponseWriter, tmpl *template.Template, data interface{}) {
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		serverError(w, err)
	}
}

func notFound(w http.ResponseWriter) {
	http.Error(w, "404 Not Found", http.StatusNotFound)
}

func serverError(w http.ResponseWriter, err error) {
	slog.Error("request failed", "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// redirect always uses 302; every action redirect in the app is temporary.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusFound)
}

func profileURL(username string) string {
	return "/profile/" + username + "/"
}

func postURL(id uint) string {
	return fmt.Sprintf("/posts/%d/", id)
}

func postIDVar(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}
