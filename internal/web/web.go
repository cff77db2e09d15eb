package web

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"termcal/internal/config"
	"termcal/internal/ics"
	appLog "termcal/internal/log"
	"termcal/internal/pipeline"
)

// BuildFunc produces a fresh pipeline output.
type BuildFunc func(ctx context.Context) (*pipeline.Output, error)

// Server publishes the expanded term calendar over HTTP.
type Server struct {
	cfg   *config.Config
	build BuildFunc
	mux   *http.ServeMux

	// refreshMu serializes builds; the grid cache is shared between them.
	refreshMu sync.Mutex

	mu       sync.RWMutex
	snapshot *snapshot
}

// snapshot is the last successful build.
type snapshot struct {
	out     *pipeline.Output
	ics     string
	builtAt time.Time
}

// NewServer constructs a new Server. Nothing is built until Refresh runs.
func NewServer(cfg *config.Config, build BuildFunc) *Server {
	s := &Server{
		cfg:   cfg,
		build: build,
		mux:   http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		return s.basicAuthMiddleware(h)
	}
	return h
}

// Refresh rebuilds the calendar and swaps it in. On failure the previous
// snapshot keeps being served.
func (s *Server) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	out, err := s.build(ctx)
	if err != nil {
		appLog.Error("calendar refresh failed", err)
		return err
	}
	cal := ics.Export(out.Expanded.Occurrences, ics.ExportConfig{
		Location:    s.cfg.Location(),
		UseTimezone: s.cfg.UseTimezone,
		Language:    "fr",
	})
	snap := &snapshot{out: out, ics: cal.Serialize(), builtAt: time.Now()}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	appLog.Info("calendar refreshed", "occurrences", len(out.Expanded.Occurrences))
	return nil
}

func (s *Server) current() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// basicAuthEnabled reports whether HTTP Basic Auth is configured.
func (s *Server) basicAuthEnabled() bool {
	if s.cfg == nil || s.cfg.BasicAuth == nil {
		return false
	}
	return s.cfg.BasicAuth.Username != "" && s.cfg.BasicAuth.Password != ""
}

// basicAuthMiddleware wraps all handlers except /health with HTTP Basic Auth.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}
		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="termcal", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Run serves on cfg.Listen, refreshing on cfg.RefreshCron, until ctx is done.
func Run(ctx context.Context, s *Server) error {
	if err := s.Refresh(ctx); err != nil {
		return err
	}

	c := cron.New()
	if _, err := c.AddFunc(s.cfg.RefreshCron, func() {
		_ = s.Refresh(ctx)
	}); err != nil {
		return err
	}
	c.Start()
	defer c.Stop()

	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+s.cfg.Listen, "refresh", s.cfg.RefreshCron)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/calendar.ics", s.handleCalendar)
	s.mux.HandleFunc("/api/occurrences", s.handleOccurrences)
	s.mux.HandleFunc("/api/refresh", s.handleRefresh)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleCalendar(w http.ResponseWriter, _ *http.Request) {
	snap := s.current()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "calendar not built yet")
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Last-Modified", snap.builtAt.UTC().Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(snap.ics))
}

// occurrencesResponse is the JSON response shape for /api/occurrences.
type occurrencesResponse struct {
	Semester        int             `json:"semester"`
	DisplayTimeZone string          `json:"display_timezone"`
	BuiltAt         time.Time       `json:"built_at"`
	Occurrences     []occurrenceDTO `json:"occurrences"`
	EmptyStretches  int             `json:"empty_stretches"`
}

// occurrenceDTO is a JSON-friendly view of an occurrence. Start and End are
// anchored in the display timezone.
type occurrenceDTO struct {
	InstanceKey string    `json:"instance_key"`
	Name        string    `json:"name"`
	Categories  []string  `json:"categories"`
	Room        string    `json:"room"`
	Professor   string    `json:"professor,omitempty"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

func (s *Server) handleOccurrences(w http.ResponseWriter, _ *http.Request) {
	snap := s.current()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "calendar not built yet")
		return
	}
	loc := s.cfg.Location()
	occs := snap.out.Expanded.Occurrences
	dtos := make([]occurrenceDTO, 0, len(occs))
	for _, o := range occs {
		cats := make([]string, 0, 3)
		for _, c := range o.Categories.Categories() {
			cats = append(cats, c.String())
		}
		dtos = append(dtos, occurrenceDTO{
			InstanceKey: o.InstanceKey(),
			Name:        o.Name,
			Categories:  cats,
			Room:        o.Room,
			Professor:   o.Professor,
			Description: o.Data,
			Start:       anchor(o.Start, loc),
			End:         anchor(o.End, loc),
		})
	}
	writeJSON(w, http.StatusOK, occurrencesResponse{
		Semester:        snap.out.Timetable.Semester,
		DisplayTimeZone: loc.String(),
		BuiltAt:         snap.builtAt,
		Occurrences:     dtos,
		EmptyStretches:  len(snap.out.Expanded.Empty),
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}
	if err := s.Refresh(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "refresh failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// anchor re-reads a wall-clock instant in loc.
func anchor(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, loc)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
