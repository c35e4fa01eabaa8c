package web

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/raphi011/ghv/internal/cache"
	"github.com/raphi011/ghv/internal/github"
	"github.com/raphi011/ghv/internal/log"
	"github.com/raphi011/ghv/internal/pipeline"
)

// shutdownTimeout bounds graceful shutdown once the run context is done.
const shutdownTimeout = 5 * time.Second

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// Client is the remote API plus its quota.
type Client interface {
	pipeline.Client
	RateLimit() (github.RateLimit, bool)
}

// Server answers profile lookups over HTTP.
type Server struct {
	client Client
	stores pipeline.Stores
	opts   pipeline.Options
	logger *log.Logger
	engine *gin.Engine
}

// New creates a server. Requests share stores; missing ones are created
// with the default TTL.
func New(client Client, stores pipeline.Stores, opts pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.FromContext(context.Background())
	}
	if stores.Profiles == nil || stores.Repos == nil {
		def := pipeline.NewStores(cache.DefaultTTL)
		if stores.Profiles == nil {
			stores.Profiles = def.Profiles
		}
		if stores.Repos == nil {
			stores.Repos = def.Repos
		}
	}

	s := &Server{
		client: client,
		stores: stores,
		opts:   opts,
		logger: logger,
		engine: gin.New(),
	}
	s.engine.Use(gin.Recovery(), s.requestLogger())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/", s.indexHandler)
	s.engine.GET("/u/:username", s.pageHandler)
	s.engine.GET("/api/users/:username", s.userHandler)
	s.engine.GET("/healthz", s.healthHandler)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Printf("Listening on http://%s\n", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestLogger logs each request in verbose mode.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		done := s.logger.Request(c.Request.Method, c.Request.URL.Path)
		c.Request = c.Request.WithContext(log.WithLogger(c.Request.Context(), s.logger))
		c.Next()
		done(c.Writer.Status(), time.Since(start))
	}
}

// lookup runs one search to completion and returns the page it built.
func (s *Server) lookup(ctx context.Context, username string) (pipeline.Snapshot, pipeline.Outcome) {
	rec := pipeline.NewRecorder()
	p := pipeline.New(s.client, s.stores, rec, s.opts)
	out := p.Search(ctx, username)
	if err := p.Wait(ctx); err != nil {
		s.logger.Debug("request ended before readmes settled", "user", username, "error", err)
	}
	return rec.Snapshot(), out
}

// statusFor maps a search outcome to an HTTP status.
func statusFor(out pipeline.Outcome) int {
	if out.State != pipeline.Errored {
		return http.StatusOK
	}
	var verr *pipeline.ValidationError
	switch {
	case errors.As(out.Err, &verr):
		return http.StatusBadRequest
	case errors.Is(out.Err, github.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(out.Err, github.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}

// indexHandler handles GET /.
func (s *Server) indexHandler(c *gin.Context) {
	if u := strings.TrimSpace(c.Query("u")); u != "" {
		c.Redirect(http.StatusSeeOther, "/u/"+url.PathEscape(u))
		return
	}
	s.writePage(c, http.StatusOK, "", pipeline.Snapshot{})
}

// pageHandler handles GET /u/:username.
func (s *Server) pageHandler(c *gin.Context) {
	username := c.Param("username")
	snap, out := s.lookup(c.Request.Context(), username)
	s.writePage(c, statusFor(out), username, snap)
}

func (s *Server) writePage(c *gin.Context, status int, query string, snap pipeline.Snapshot) {
	var buf bytes.Buffer
	if err := WritePage(&buf, query, snap); err != nil {
		c.String(http.StatusInternalServerError, "render page: %v", err)
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// userHandler handles GET /api/users/:username.
func (s *Server) userHandler(c *gin.Context) {
	snap, out := s.lookup(c.Request.Context(), c.Param("username"))
	status := statusFor(out)
	if status != http.StatusOK {
		c.JSON(status, gin.H{"error": snap.Error})
		return
	}
	c.JSON(status, snap)
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Caches    map[string]CacheHealth `json:"caches"`
	RateLimit *github.RateLimit      `json:"rate_limit,omitempty"`
}

// CacheHealth describes one cache.
type CacheHealth struct {
	Entries int         `json:"entries"`
	TTL     string      `json:"ttl"`
	Stats   cache.Stats `json:"stats"`
}

// healthHandler handles GET /healthz.
func (s *Server) healthHandler(c *gin.Context) {
	resp := HealthResponse{
		Status: "ok",
		Caches: map[string]CacheHealth{
			"profiles": cacheHealth(s.stores.Profiles),
			"repos":    cacheHealth(s.stores.Repos),
		},
	}
	if rl, ok := s.client.RateLimit(); ok {
		resp.RateLimit = &rl
	}
	c.JSON(http.StatusOK, resp)
}

type statsSource interface {
	Len() int
	TTL() time.Duration
	Stats() cache.Stats
}

func cacheHealth(store statsSource) CacheHealth {
	return CacheHealth{
		Entries: store.Len(),
		TTL:     store.TTL().String(),
		Stats:   store.Stats(),
	}
}
