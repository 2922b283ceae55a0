package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"quill/app/auth"
	"quill/app/cache"
	"quill/app/repositories"
	"quill/app/routes"
	"quill/app/storage"
)

const cliVersion = "1.0.0"

type config struct {
	addr       string
	dsn        string
	basePath   string
	sessionKey string
	sessionTTL time.Duration

	cacheBackend string
	cacheDir     string
	cacheTTL     time.Duration
	redisAddr    string

	mediaBackend   string
	mediaDir       string
	minioEndpoint  string
	minioAccessKey string
	minioSecretKey string
	minioBucket    string
	minioSSL       bool
}

func loadConfig() config {
	return config{
		addr:       envOr("QUILL_ADDR", ":8080"),
		dsn:        os.Getenv("QUILL_DSN"),
		basePath:   envOr("QUILL_BASE_PATH", "."),
		sessionKey: os.Getenv("QUILL_SESSION_KEY"),
		sessionTTL: envDuration("QUILL_SESSION_TTL", 7*24*time.Hour),

		cacheBackend: envOr("QUILL_CACHE", "badger"),
		cacheDir:     envOr("QUILL_CACHE_DIR", "data/cache"),
		cacheTTL:     envDuration("QUILL_CACHE_TTL", 20*time.Second),
		redisAddr:    envOr("QUILL_REDIS_ADDR", "localhost:6379"),

		mediaBackend:   envOr("QUILL_MEDIA", "disk"),
		mediaDir:       envOr("QUILL_MEDIA_DIR", "media"),
		minioEndpoint:  envOr("QUILL_MINIO_ENDPOINT", "localhost:9000"),
		minioAccessKey: os.Getenv("QUILL_MINIO_ACCESS_KEY"),
		minioSecretKey: os.Getenv("QUILL_MINIO_SECRET_KEY"),
		minioBucket:    envOr("QUILL_MINIO_BUCKET", "quill-media"),
		minioSSL:       os.Getenv("QUILL_MINIO_SSL") == "true",
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("quill version %s\n", cliVersion)
	case "serve":
		serve(loadConfig())
	case "flush-cache":
		flushCache(loadConfig())
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: quill <command>
Commands:
  help           Display this help message.
  version        Show version information.
  serve          Run the blog server. Configured via QUILL_* environment variables.
  flush-cache    Drop every cached index page.
`
	fmt.Println(helpText)
}

func serve(cfg config) {
	if cfg.dsn == "" {
		slog.Error("QUILL_DSN is required")
		os.Exit(1)
	}
	if cfg.sessionKey == "" {
		slog.Error("QUILL_SESSION_KEY is required")
		os.Exit(1)
	}

	db, err := repositories.Open(cfg.dsn)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	pageCache, closeCache, err := openCache(cfg)
	if err != nil {
		slog.Error("failed to open page cache", "error", err)
		os.Exit(1)
	}
	defer closeCache()

	files, mediaDir, err := openFileStore(cfg)
	if err != nil {
		slog.Error("failed to open media storage", "error", err)
		os.Exit(1)
	}

	router := routes.Setup(routes.Deps{
		Users:     repositories.NewGormUserRepository(db),
		Groups:    repositories.NewGormGroupRepository(db),
		Posts:     repositories.NewGormPostRepository(db),
		Comments:  repositories.NewGormCommentRepository(db),
		Follows:   repositories.NewGormFollowRepository(db),
		PageCache: pageCache,
		Files:     files,
		Sessions:  auth.NewSessions([]byte(cfg.sessionKey), cfg.sessionTTL),
		BasePath:  cfg.basePath,
		MediaDir:  mediaDir,
	})

	slog.Info("starting server", "addr", cfg.addr)
	if err := routes.StartServer(cfg.addr, router); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func openCache(cfg config) (cache.Cache, func(), error) {
	switch cfg.cacheBackend {
	case "redis":
		c := cache.NewRedisCache(cfg.redisAddr, cfg.cacheTTL)
		return c, func() { c.Close() }, nil
	case "badger":
		c, err := cache.NewBadgerCache(cfg.cacheDir, cfg.cacheTTL)
		if err != nil {
			return nil, nil, err
		}
		return c, func() { c.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.cacheBackend)
	}
}

func openFileStore(cfg config) (storage.FileStore, string, error) {
	switch cfg.mediaBackend {
	case "minio":
		store, err := storage.NewMinioStore(cfg.minioEndpoint, cfg.minioAccessKey, cfg.minioSecretKey, cfg.minioBucket, cfg.minioSSL)
		return store, "", err
	case "disk":
		store, err := storage.NewDiskStore(cfg.mediaDir, "/media")
		return store, cfg.mediaDir, err
	default:
		return nil, "", fmt.Errorf("unknown media backend %q", cfg.mediaBackend)
	}
}

// flushCache drops every cached index page. With the redis backend it can
// run against a live server; with badger the server must be stopped first
// since the store is single-process.
func flushCache(cfg config) {
	pageCache, closeCache, err := openCache(cfg)
	if err != nil {
		slog.Error("failed to open page cache", "error", err)
		os.Exit(1)
	}
	defer closeCache()

	if err := pageCache.Clear(context.Background()); err != nil {
		slog.Error("failed to flush cache", "error", err)
		os.Exit(1)
	}
	slog.Info("cache flushed")
}
