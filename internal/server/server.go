// Package server exposes the block-list and PIN contract over HTTP for the
// extension popup and content script.
package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/markb/blockwarden/internal/db"
	"github.com/markb/blockwarden/internal/log"
	"github.com/markb/blockwarden/internal/pin"
	"github.com/markb/blockwarden/internal/realtime"
	"github.com/markb/blockwarden/internal/session"
	"github.com/markb/blockwarden/internal/store"
)

// Config holds server configuration.
type Config struct {
	JWTSecret      string
	AllowedOrigins []string // extension origins; empty means allow all
}

type Server struct {
	db       *db.DB
	store    *store.Store
	auth     *pin.Auth
	sessions *session.Manager
	hub      *realtime.Hub
	router   *chi.Mux

	// HTTP server for graceful shutdown
	httpServer *http.Server
}

// New wires the store, PIN authenticator, session manager and realtime hub
// around the shared database handle.
func New(database *db.DB, cfg Config) *Server {
	st := store.New(database)

	s := &Server{
		db:       database,
		store:    st,
		auth:     pin.NewAuth(st),
		sessions: session.NewManager(cfg.JWTSecret, 0),
		hub:      realtime.NewHub(),
		router:   chi.NewRouter(),
	}

	s.setupRoutes(cfg)
	return s
}

func (s *Server) setupRoutes(cfg Config) {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	s.router.Use(log.RequestLogger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/pin/status", s.handlePINStatus)
		r.Post("/pin/setup", s.handlePINSetup)
		r.Post("/pin/verify", s.handlePINVerify)
		r.Post("/pin/update", s.handlePINUpdate)

		// Reads are not PIN-gated; the content script needs the list
		// before anyone logs in.
		r.Get("/authors", s.handleListAuthors)

		r.Group(func(r chi.Router) {
			r.Use(s.sessionMiddleware)
			r.Post("/authors", s.handleAddAuthor)
			r.Delete("/authors/{id}", s.handleDeleteAuthor)
			r.Delete("/authors", s.handleClearAuthors)
		})
	})

	s.router.Route("/extension", func(r chi.Router) {
		r.Post("/message", s.handleMessage)
		r.Get("/realtime", s.hub.HandleWebSocket)
	})
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

func (s *Server) ListenAndServe(addr string) error {
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// broadcastBlocklist pushes the current list to subscribed content scripts
// after a mutation. Failures only cost a push; subscribers re-sync on the
// next fetch.
func (s *Server) broadcastBlocklist() {
	authors, err := s.store.ListAuthors()
	if err != nil {
		log.Warn("failed to load authors for broadcast", "error", err.Error())
		return
	}
	s.hub.Broadcast(authors)
}
