package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"quill/app/auth"
	"quill/app/cache"
	"quill/app/models"
	"quill/app/repositories/mock"
	"quill/app/storage"
)

func setupTestTemplates(t *testing.T) string {
	tmpDir := t.TempDir()
	viewsDir := filepath.Join(tmpDir, "app", "views")

	// Create directories
	dirs := []string{
		filepath.Join(viewsDir, "posts"),
		filepath.Join(viewsDir, "auth"),
		filepath.Join(viewsDir, "shared"),
		filepath.Join(tmpDir, "static"),
	}
	for _, dir := range dirs {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}

	// Create template files
	templates := map[string]string{
		filepath.Join(viewsDir, "layout.html"):            `{{define "layout"}}<!DOCTYPE html><html><body>{{template "content" .}}</body></html>{{end}}`,
		filepath.Join(viewsDir, "posts/index.html"):       `{{define "content"}}<div class="posts">{{range .Page.Items}}<article>{{.Text}}</article>{{end}}</div>{{end}}`,
		filepath.Join(viewsDir, "posts/group_list.html"):  `{{define "content"}}<h1>{{.Group.Title}}</h1>{{range .Page.Items}}<article>{{.Text}}</article>{{end}}{{end}}`,
		filepath.Join(viewsDir, "posts/profile.html"):     `{{define "content"}}<h1>{{.Author.Username}}</h1><span class="count">{{.PostCount}}</span><span class="following">{{.Following}}</span>{{range .Page.Items}}<article>{{.Text}}</article>{{end}}{{end}}`,
		filepath.Join(viewsDir, "posts/post_detail.html"): `{{define "content"}}<article>{{.Post.Text}}</article>{{range .Comments}}<p class="comment">{{.Text}}</p>{{end}}{{end}}`,
		filepath.Join(viewsDir, "posts/create_post.html"): `{{define "content"}}<form method="POST">{{range $field, $msg := .Errors}}<span class="error">{{$msg}}</span>{{end}}<textarea name="text">{{.Form.Text}}</textarea></form>{{end}}`,
		filepath.Join(viewsDir, "posts/follow.html"):      `{{define "content"}}<div class="feed">{{range .Page.Items}}<article>{{.Text}}</article>{{end}}</div>{{end}}`,
		filepath.Join(viewsDir, "auth/login.html"):        `{{define "content"}}<form method="POST">{{if .Error}}<span class="error">{{.Error}}</span>{{end}}<input name="username"><input name="password" type="password"><input name="next" type="hidden" value="{{.Next}}"></form>{{end}}`,
		filepath.Join(viewsDir, "auth/signup.html"):       `{{define "content"}}<form method="POST">{{if .Error}}<span class="error">{{.Error}}</span>{{end}}<input name="username"><input name="password" type="password"></form>{{end}}`,
		filepath.Join(viewsDir, "shared/pagination.html"): `{{define "pagination"}}<nav class="pagination">{{.Number}}/{{.NumPages}}</nav>{{end}}`,
	}
	for path, content := range templates {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	// Create static test file
	cssContent := "body { background: #f0f0f0; }"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "static/style.css"), []byte(cssContent), 0644))

	return tmpDir
}

type testApp struct {
	router    *mux.Router
	store     *mock.Store
	sessions  *auth.Sessions
	pageCache *cache.BadgerCache
}

func setupTestApp(t *testing.T) *testApp {
	basePath := setupTestTemplates(t)

	pageCache, err := cache.NewBadgerCache("", 20*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { pageCache.Close() })

	sessions := auth.NewSessions([]byte("test-signing-key"), time.Hour)
	store := mock.NewStore()
	files, err := storage.NewDiskStore(filepath.Join(basePath, "media"), "/media")
	require.NoError(t, err)

	router := Setup(Deps{
		Users:     store.Users(),
		Groups:    store.Groups(),
		Posts:     store.Posts(),
		Comments:  store.Comments(),
		Follows:   store.Follows(),
		PageCache: pageCache,
		Files:     files,
		Sessions:  sessions,
		BasePath:  basePath,
	})
	return &testApp{router: router, store: store, sessions: sessions, pageCache: pageCache}
}

func (app *testApp) createUser(t *testing.T, username string) *models.User {
	hash, err := auth.HashPassword("secret-pass")
	require.NoError(t, err)
	user := &models.User{Username: username, PasswordHash: hash}
	require.NoError(t, app.store.Users().Create(user))
	return user
}

// sessionCookie issues a real signed token for the user.
func (app *testApp) sessionCookie(t *testing.T, user *models.User) *http.Cookie {
	token, err := app.sessions.Issue(user.ID)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.CookieName, Value: token}
}

func (app *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	return rec
}
