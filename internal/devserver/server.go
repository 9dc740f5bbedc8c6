// Package devserver is a minimal development HTTP server for component
// projects: static files from the project root, a plugin pipeline for
// virtual modules and source transforms, and a watcher that turns file
// changes into live reloads.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/patrickmn/go-cache"
)

// Config holds server configuration.
type Config struct {
	Root string // project root served as the site root
	Port int
}

// Server serves a project directory through the plugin pipeline.
type Server struct {
	cfg        Config
	root       string // absolute form of cfg.Root
	plugins    []Plugin
	transforms *cache.Cache
	router     chi.Router
	httpServer *http.Server
	onReady    []func()
}

// New creates a server over root with the given plugins. Plugin
// ConfigureServer hooks run immediately so routes exist before Start.
func New(cfg Config, plugins ...Plugin) (*Server, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("devserver: resolving root %s: %w", cfg.Root, err)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("devserver: root %s is not a directory", root)
	}

	s := &Server{
		cfg:        cfg,
		root:       root,
		plugins:    plugins,
		transforms: cache.New(5*time.Minute, 10*time.Minute),
	}
	s.buildRouter()
	return s, nil
}

func (s *Server) buildRouter() {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// The page may call inspector endpoints cross-origin when the app is
	// proxied through another dev host.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// ConfigureServer hooks register routes through Router, so the
	// field must be set before they run.
	s.router = r

	// Plugin routes mount outside the timeout group: the overlay holds
	// its websocket open for the whole page lifetime.
	for _, p := range s.plugins {
		p.ConfigureServer(s)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		r.Get("/@id/*", s.handleVirtual)
		r.Get("/*", s.handleFile)
	})
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Root returns the absolute project root being served.
func (s *Server) Root() string { return s.root }

// OnReady registers a hook run once after the server starts listening.
func (s *Server) OnReady(fn func()) {
	s.onReady = append(s.onReady, fn)
}

// URL returns the server's local address.
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.cfg.Port)
}

// handleVirtual serves /@id/<module id> through the resolve/load chain.
func (s *Server) handleVirtual(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "*")

	for _, p := range s.plugins {
		resolved, ok := p.ResolveID(id)
		if !ok {
			continue
		}
		body, ok := p.Load(resolved)
		if !ok {
			continue
		}
		// Extensionless virtual ids are module scripts; browsers refuse
		// to execute them under a generic content type.
		ct := contentTypeFor(id)
		if filepath.Ext(id) == "" {
			ct = "application/javascript; charset=utf-8"
		}
		w.Header().Set("Content-Type", ct)
		w.Header().Set("Cache-Control", "no-cache")
		w.Write(body)
		return
	}
	http.NotFound(w, r)
}

// handleFile serves project files, running HTML documents through
// TransformIndexHTML and source files through Transform unless the
// request asks for the raw bytes.
func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	reqPath := strings.TrimPrefix(r.URL.Path, "/")
	raw := r.URL.Query().Has("raw")

	full := filepath.Join(s.root, filepath.FromSlash(reqPath))
	if full != s.root && !strings.HasPrefix(full, s.root+string(filepath.Separator)) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	info, err := os.Stat(full)
	if err == nil && info.IsDir() {
		full = filepath.Join(full, "index.html")
		info, err = os.Stat(full)
	}
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if strings.HasSuffix(full, ".html") {
		s.serveHTML(w, r, full)
		return
	}

	body, err := s.transformed(full, info.ModTime(), raw)
	if err != nil {
		log.Printf("devserver: transforming %s: %v", full, err)
		http.Error(w, "transform failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeFor(full))
	w.Write(body)
}

func (s *Server) serveHTML(w http.ResponseWriter, r *http.Request, full string) {
	data, err := os.ReadFile(full)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	doc := string(data)
	for _, p := range s.plugins {
		doc = p.TransformIndexHTML(doc)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(doc))
}

// transformed returns the plugin-transformed source of a file, cached per
// path and modification time.
func (s *Server) transformed(full string, mtime time.Time, raw bool) ([]byte, error) {
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, err
	}
	if raw {
		return data, nil
	}

	key := full + "|" + mtime.UTC().Format(time.RFC3339Nano)
	if cached, ok := s.transforms.Get(key); ok {
		return cached.([]byte), nil
	}

	for _, p := range s.plugins {
		data, err = p.Transform(data, full)
		if err != nil {
			return nil, fmt.Errorf("plugin %s: %w", p.Name(), err)
		}
	}
	s.transforms.Set(key, data, cache.DefaultExpiration)
	return data, nil
}

// Invalidate drops cached transforms for a file. The watcher calls this
// before broadcasting a reload so the next request recompiles.
func (s *Server) Invalidate(path string) {
	prefix := path + "|"
	for key := range s.transforms.Items() {
		if strings.HasPrefix(key, prefix) {
			s.transforms.Delete(key)
		}
	}
}

// moduleExtensions are served as JavaScript so the browser executes them
// as module imports regardless of what mime.TypeByExtension knows.
var moduleExtensions = map[string]bool{
	".js":  true,
	".mjs": true,
	".jsx": true,
	".ts":  true,
	".tsx": true,
	".vue": true,
}

func contentTypeFor(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if moduleExtensions[ext] {
		return "application/javascript; charset=utf-8"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

// Start begins listening on the configured port. Ready hooks run after
// the listener is bound and the address line is printed.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("devserver: listen %s: %w", addr, err)
	}

	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("devserver: serving %s at %s", s.root, s.URL())
	for _, fn := range s.onReady {
		fn()
	}
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
