// Package mock provides a stand-in user service implementing the three
// endpoints the portal calls, backed by a SQLite store.
package mock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"

	"github.com/abdul-hamid-achik/userportal/packages/db"
	"github.com/abdul-hamid-achik/userportal/packages/portal"
)

// maxBodyBytes caps request bodies accepted by the mock.
const maxBodyBytes = 1 << 20

// Server is a mock user service
type Server struct {
	router  *Router
	store   *db.Store
	port    int
	delay   time.Duration
	token   string
	verbose bool
	logger  log.Interface
	newID   func() string
	stats   *Stats
}

// Option is a functional option for Server
type Option func(*Server)

// WithPort sets the server port
func WithPort(port int) Option {
	return func(s *Server) {
		s.port = port
	}
}

// WithDelay adds a delay to all responses
func WithDelay(delay time.Duration) Option {
	return func(s *Server) {
		s.delay = delay
	}
}

// WithVerbose enables per-request logging
func WithVerbose(verbose bool) Option {
	return func(s *Server) {
		s.verbose = verbose
	}
}

// WithToken makes PATCH and POST require "Authorization: Bearer <token>".
func WithToken(token string) Option {
	return func(s *Server) {
		s.token = token
	}
}

// WithLogger replaces the default logger
func WithLogger(l log.Interface) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithIDGenerator replaces the uuid generator used for new users
func WithIDGenerator(fn func() string) Option {
	return func(s *Server) {
		s.newID = fn
	}
}

// NewServer creates a mock server storing users in store
func NewServer(store *db.Store, opts ...Option) *Server {
	s := &Server{
		router: NewRouter(),
		store:  store,
		port:   8000,
		logger: log.WithField("component", "mock"),
		newID:  uuid.NewString,
		stats:  NewStats(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router.AddRoute(&Route{Method: http.MethodGet, Path: "/user", Name: "getUser", Handler: s.getUser})
	s.router.AddRoute(&Route{Method: http.MethodPatch, Path: "/user", Name: "patchUser", Handler: s.requireToken(s.patchUser)})
	s.router.AddRoute(&Route{Method: http.MethodPost, Path: "/add_user", Name: "addUser", Handler: s.requireToken(s.addUser)})
	return s
}

// StatsPath serves the latency summary. It is not counted in the stats.
const StatsPath = "/_stats"

// Handler returns the server's http.Handler
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(StatsPath, s.handleStats)
	mux.HandleFunc("/", s.handleRequest)
	return mux
}

// Stats returns the server's latency recorder.
func (s *Server) Stats() *Stats {
	return s.stats
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	writeJSON(w, http.StatusOK, s.stats.Summary())
}

// GetRoutes returns all registered routes
func (s *Server) GetRoutes() []*Route {
	return s.router.routes
}

// StartWithContext serves until ctx is cancelled
func (s *Server) StartWithContext(ctx context.Context) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	fields := log.Fields{
		"url":    fmt.Sprintf("http://localhost:%d", s.port),
		"routes": len(s.router.routes),
		"auth":   s.token != "",
	}
	if n, err := s.store.Count(ctx); err == nil {
		fields["users"] = n
	}
	s.logger.WithFields(fields).Info("mock server starting")

	if s.verbose {
		for _, route := range s.router.routes {
			s.logger.Infof("  %s %s (%s)", route.Method, route.Path, route.Name)
		}
	}

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) handleRequest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-r.Context().Done():
			return
		}
	}

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	name := "unmatched"
	route, allowed := s.router.Match(r.Method, r.URL.Path)
	switch {
	case route != nil:
		name = route.Name
		route.Handler(rec, r)
	case len(allowed) > 0:
		rec.Header().Set("Allow", strings.Join(allowed, ", "))
		writeDetail(rec, http.StatusMethodNotAllowed, "Method Not Allowed")
	default:
		writeDetail(rec, http.StatusNotFound, "Not Found")
	}

	s.stats.Record(name, rec.status, time.Since(start))

	if s.verbose {
		s.logger.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Info("request")
	}
}

func (s *Server) requireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" && r.Header.Get("Authorization") != "Bearer "+s.token {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		next(w, r)
	}
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.store.Get(r.Context(), r.URL.Query().Get(portal.FieldUserID))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeUser(w, http.StatusOK, u)
}

func (s *Server) patchUser(w http.ResponseWriter, r *http.Request) {
	fields, ok := readPayload(w, r, patchUserLoader)
	if !ok {
		return
	}
	id := fields[portal.FieldUserID]
	delete(fields, portal.FieldUserID)

	u, err := s.store.Update(r.Context(), id, fields)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeUser(w, http.StatusOK, u)
}

func (s *Server) addUser(w http.ResponseWriter, r *http.Request) {
	fields, ok := readPayload(w, r, addUserLoader)
	if !ok {
		return
	}
	delete(fields, portal.FieldUserID)

	u := &db.User{ID: s.newID(), Fields: fields}
	if err := s.store.Create(r.Context(), u); err != nil {
		s.writeStoreError(w, err)
		return
	}
	created, err := s.store.Get(r.Context(), u.ID)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeUser(w, http.StatusCreated, created)
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, db.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "User not found")
		return
	}
	s.logger.WithError(err).Error("store failure")
	writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
}

func writeUser(w http.ResponseWriter, status int, u *db.User) {
	p := portal.NewPayload()
	p.Set(portal.FieldUserID, u.ID)
	for _, col := range db.Columns {
		if v, ok := u.Fields[col]; ok {
			p.Set(col, v)
		}
	}
	writeJSON(w, status, p)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, msg)
}
