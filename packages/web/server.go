package web

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/apex/log"
	"golang.org/x/time/rate"

	"github.com/abdul-hamid-achik/userportal/packages/core/config"
	uphttp "github.com/abdul-hamid-achik/userportal/packages/http"
	"github.com/abdul-hamid-achik/userportal/packages/output"
	"github.com/abdul-hamid-achik/userportal/packages/portal"
)

// ErrRateLimited is shown when submissions arrive faster than allowed.
var ErrRateLimited = errors.New("too many requests; wait a moment and try again")

// Server is the web form UI
type Server struct {
	addr       string
	dispatcher *portal.Dispatcher
	logger     log.Interface
	transport  http.RoundTripper

	mu       sync.RWMutex
	cfg      *config.Config
	limiter  *rate.Limiter
	override *config.Config
}

// Option is a functional option for Server
type Option func(*Server)

// WithAddr sets the listen address, overriding the config
func WithAddr(addr string) Option {
	return func(s *Server) {
		s.addr = addr
	}
}

// WithLogger replaces the default logger
func WithLogger(l log.Interface) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithOverrides sets values that win over every (re)loaded config file.
func WithOverrides(cfg *config.Config) Option {
	return func(s *Server) {
		s.override = cfg
	}
}

// WithTransport sets the round tripper for outbound requests.
func WithTransport(rt http.RoundTripper) Option {
	return func(s *Server) {
		s.transport = rt
	}
}

// NewServer creates a server configured from cfg.
func NewServer(cfg *config.Config, opts ...Option) (*Server, error) {
	s := &Server{
		logger: log.WithField("component", "web"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.dispatcher = portal.NewDispatcher(nil)
	if err := s.Apply(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// Apply installs cfg (merged with overrides) as the current prefill
// defaults, timeout and rate limit. An invalid cfg leaves the server as is.
func (s *Server) Apply(cfg *config.Config) error {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cfg = config.DefaultConfig().Merge(cfg).Merge(s.override)
	if err := cfg.Validate(); err != nil {
		return err
	}
	timeout, _ := cfg.GetTimeout()

	clientOpts := []uphttp.ClientOption{
		uphttp.WithTimeout(timeout),
		uphttp.WithValidateSSL(cfg.GetValidateSSL()),
		uphttp.WithProxy(cfg.Proxy),
	}
	if s.transport != nil {
		clientOpts = append(clientOpts, uphttp.WithTransport(s.transport))
	}
	s.dispatcher.SetClient(uphttp.NewClient(clientOpts...))

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	s.mu.Lock()
	s.cfg = cfg
	s.limiter = limiter
	s.mu.Unlock()
	return nil
}

// Config returns the active configuration.
func (s *Server) Config() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Addr is the address StartWithContext listens on.
func (s *Server) Addr() string {
	if s.addr != "" {
		return s.addr
	}
	return s.Config().Listen
}

// Handler returns the server's http.Handler
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/", s.handleIndex)
	return mux
}

// StartWithContext serves until ctx is cancelled
func (s *Server) StartWithContext(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.logger.WithField("url", "http://"+server.Addr).Info("web UI starting")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		s.render(w, newPage(s.initialSubmission(r)))
	case http.MethodPost:
		s.handleSubmit(w, r)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) initialSubmission(r *http.Request) *submission {
	cfg := s.Config()
	action, err := portal.ParseAction(r.URL.Query().Get("action"))
	if err != nil {
		action = portal.ActionGetUser
	}
	return &submission{
		Action: action,
		Target: portal.Target{BaseURL: cfg.BaseURL, Token: cfg.Token},
		Values: portal.Values{},
	}
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sub, err := parseSubmission(r)
	if err != nil {
		http.Error(w, "bad form: "+err.Error(), http.StatusBadRequest)
		return
	}

	p := newPage(sub)
	if sub.Intent == intentSend {
		if s.allow() {
			p.View = s.send(r.Context(), sub)
		} else {
			p.Error = ErrRateLimited.Error()
		}
	}
	s.render(w, p)
}

func (s *Server) allow() bool {
	s.mu.RLock()
	limiter := s.limiter
	s.mu.RUnlock()
	return limiter == nil || limiter.Allow()
}

func (s *Server) send(ctx context.Context, sub *submission) *output.View {
	res := s.dispatcher.Submit(ctx, sub.Action, sub.Target, sub.Values)

	fields := log.Fields{
		"action":   sub.Action,
		"method":   res.Method,
		"url":      res.URL,
		"duration": res.Duration.String(),
	}
	if res.Failed() {
		s.logger.WithFields(fields).WithError(res.Err).Warn("request failed")
	} else {
		fields["status"] = res.Response.StatusCode
		s.logger.WithFields(fields).Info("request sent")
	}

	return output.Render(res)
}

func (s *Server) render(w http.ResponseWriter, p *page) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		s.logger.WithError(err).Error("rendering page")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}
