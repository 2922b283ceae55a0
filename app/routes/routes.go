package routes

import (
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"

	"quill/app/auth"
	"quill/app/cache"
	"quill/app/controllers"
	"quill/app/middleware"
	"quill/app/repositories"
	"quill/app/services"
	"quill/app/storage"
)

// Deps carries everything the route tree needs wired up.
type Deps struct {
	Users     repositories.UserRepository
	Groups    repositories.GroupRepository
	Posts     repositories.PostRepository
	Comments  repositories.CommentRepository
	Follows   repositories.FollowRepository
	PageCache cache.Cache
	Files     storage.FileStore
	Sessions  *auth.Sessions

	// BasePath is the directory holding app/views and static.
	BasePath string

	// MediaDir, when set, is served under /media/ for disk-stored uploads.
	MediaDir string
}

// Setup defines the application's routes and returns a router.
func Setup(deps Deps) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Session(deps.Sessions, deps.Users))

	postService := services.NewPostService(deps.Posts, deps.Groups, deps.Users, deps.Comments, deps.Follows)
	commentService := services.NewCommentService(deps.Comments, deps.Posts)
	followService := services.NewFollowService(deps.Users, deps.Follows)

	postController := controllers.NewPostController(postService, deps.PageCache, deps.Files, deps.BasePath)
	commentController := controllers.NewCommentController(commentService)
	followController := controllers.NewFollowController(postService, followService, deps.BasePath)
	authController := controllers.NewAuthController(deps.Users, deps.Sessions, deps.BasePath)

	// Serve static files
	staticDir := filepath.Join(deps.BasePath, "static")
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	if deps.MediaDir != "" {
		router.PathPrefix("/media/").Handler(http.StripPrefix("/media/", http.FileServer(http.Dir(deps.MediaDir))))
	}

	// Auth endpoints
	router.HandleFunc("/auth/signup/", authController.Signup).Methods("GET", "POST")
	router.HandleFunc("/auth/login/", authController.Login).Methods("GET", "POST")
	router.HandleFunc("/auth/logout/", authController.Logout).Methods("GET", "POST")

	// Post endpoints
	router.HandleFunc("/", postController.Index).Methods("GET")
	router.HandleFunc("/group/{slug}/", postController.GroupList).Methods("GET")
	router.Handle("/create/", middleware.LoginRequired(http.HandlerFunc(postController.Create))).Methods("GET", "POST")
	router.HandleFunc("/posts/{id:[0-9]+}/", postController.Detail).Methods("GET")
	router.Handle("/posts/{id:[0-9]+}/edit/", middleware.LoginRequired(http.HandlerFunc(postController.Edit))).Methods("GET", "POST")

	// Comment endpoints
	router.Handle("/posts/{id:[0-9]+}/comment/", middleware.LoginRequired(http.HandlerFunc(commentController.Add))).Methods("POST")

	// Follow endpoints
	router.Handle("/follow/", middleware.LoginRequired(http.HandlerFunc(followController.Feed))).Methods("GET")
	router.Handle("/profile/{username}/follow/", middleware.LoginRequired(http.HandlerFunc(followController.Follow))).Methods("GET", "POST")
	router.Handle("/profile/{username}/unfollow/", middleware.LoginRequired(http.HandlerFunc(followController.Unfollow))).Methods("GET", "POST")

	// Profile last so the follow/unfollow paths win
	router.HandleFunc("/profile/{username}/", postController.Profile).Methods("GET")

	return router
}

// StartServer starts the HTTP server on the specified address with the given router.
func StartServer(addr string, router http.Handler) error {
	return http.ListenAndServe(addr, router)
}
