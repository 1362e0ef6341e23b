package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"nutrilog/internal/core"
	applog "nutrilog/internal/log"
	"nutrilog/internal/middleware/ratelimit"
	"nutrilog/internal/middleware/trace"
)

// Summaries is the read side consumed by the API.
type Summaries interface {
	DailyTotals(ctx context.Context, windowDays int, today core.DateKey) ([]core.DailyTotal, error)
	Today(ctx context.Context, today core.DateKey) (core.DailyTotal, []core.IntakeItem, error)
	WeightSeries(ctx context.Context, windowDays int, today core.DateKey) ([]core.WeightEntry, error)
	Balance(ctx context.Context, windowDays int, today core.DateKey) ([]core.BalancePoint, error)
	ActivityDays(ctx context.Context) (core.ActivityDays, error)
	Budget(ctx context.Context) (float64, error)
	Favorites(ctx context.Context) ([]core.Favorite, error)
}

// Entries is the write side consumed by the API.
type Entries interface {
	LogFood(ctx context.Context, e core.FoodEntry) (string, error)
	LogWeight(ctx context.Context, w core.WeightEntry) (string, error)
	DeleteFood(ctx context.Context, date core.DateKey, description string) error
	AddFavorite(ctx context.Context, f core.Favorite) (string, error)
	DeleteFavorite(ctx context.Context, name string) error
	SetBudget(ctx context.Context, dailyKcal float64) error
}

// MacroResolver turns free-form descriptions and product codes into macros.
type MacroResolver interface {
	ResolveProduct(ctx context.Context, code, description string) (core.MacroEstimate, error)
	ResolveActivityKcal(ctx context.Context, description string, weightKg float64) (float64, error)
}

// Options tunes server behavior beyond the wired services.
type Options struct {
	WindowDays int
	Location   *time.Location
	Logger     *applog.Logger
	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

type Server struct {
	http.Server
	summaries Summaries
	entries   Entries
	resolver  MacroResolver

	windowDays int
	location   *time.Location
	now        func() time.Time

	rateLimiter  *ratelimit.Limiter
	structured   *applog.StructuredLogger
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, summaries Summaries, entries Entries, resolver MacroResolver, opts Options) *Server {
	if opts.WindowDays <= 0 {
		opts.WindowDays = 30
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = applog.New(applog.DefaultConfig())
	}

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
		},
		summaries:   summaries,
		entries:     entries,
		resolver:    resolver,
		windowDays:  opts.WindowDays,
		location:    opts.Location,
		now:         opts.Now,
		rateLimiter: ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		structured:  applog.NewStructuredLogger(opts.Logger),
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/api/food", s.handleFood)
	mux.HandleFunc("/api/weight", s.handleWeight)
	mux.HandleFunc("/api/summary/daily", s.handleDailySummary)
	mux.HandleFunc("/api/summary/today", s.handleTodaySummary)
	mux.HandleFunc("/api/summary/weight", s.handleWeightSummary)
	mux.HandleFunc("/api/summary/balance", s.handleBalance)
	mux.HandleFunc("/api/summary/activity", s.handleActivity)
	mux.HandleFunc("/api/resolve/product", s.handleResolveProduct)
	mux.HandleFunc("/api/resolve/activity", s.handleResolveActivity)
	mux.HandleFunc("/api/favorites", s.handleFavorites)
	mux.HandleFunc("/api/budget", s.handleBudget)

	tracer := trace.NewMiddleware(clientIP)
	limited := s.rateLimiter.Middleware(clientIP, nil)
	withLogger := applog.Middleware(opts.Logger.WithComponent(applog.ComponentHTTP))
	withRequestID := applog.RequestIDMiddleware(func(r *http.Request) string {
		return trace.GetRequestID(r.Context())
	})

	// Trace first so the request ID exists before the context logger picks
	// it up; rate limiting runs after logging so rejections still trace.
	s.Handler = tracer.Middleware(withLogger(withRequestID(limited(securityHeaders(mux)))))
	return s
}

// Shutdown stops the rate limiter cleanup goroutine and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// today resolves the current calendar day, honoring an explicit ?date=
// override so clients can backfill or inspect past days.
func (s *Server) today(r *http.Request) (core.DateKey, error) {
	if v := r.URL.Query().Get("date"); v != "" {
		return core.ParseDate(v)
	}
	return core.DateKeyFromTime(s.now().In(s.location)), nil
}

// window resolves the rolling window size, honoring ?window= overrides.
func (s *Server) window(r *http.Request) int {
	if v := r.URL.Query().Get("window"); v != "" {
		if n, err := parsePositiveInt(v); err == nil {
			return n
		}
	}
	return s.windowDays
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client address, honoring proxy headers.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
