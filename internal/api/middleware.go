package api

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const requestIDHeader = "X-Request-ID"

// requestID tags every request, keeping an id supplied by the client.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) accessLog(_ io.Writer, p handlers.LogFormatterParams) {
	s.log.Info().
		Str("method", p.Request.Method).
		Str("path", p.URL.Path).
		Int("status", p.StatusCode).
		Int("size", p.Size).
		Dur("took", time.Since(p.TimeStamp)).
		Str("request_id", p.Request.Header.Get(requestIDHeader)).
		Msg("http request")
}

type recoveryLogger struct {
	log zerolog.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Error().Msg(fmt.Sprint(v...))
}

// limiterIdle is how long a client may stay silent before its bucket is
// dropped.
const limiterIdle = 10 * time.Minute

// clientLimiter keeps one token bucket per client address. Buckets idle for
// longer than limiterIdle are swept on the next lookup after that interval.
type clientLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*clientBucket
	limit     rate.Limit
	burst     int
	now       func() time.Time
	lastSweep time.Time
}

type clientBucket struct {
	lim  *rate.Limiter
	seen time.Time
}

func newClientLimiter(perSecond float64, burst int) *clientLimiter {
	return &clientLimiter{
		limiters:  make(map[string]*clientBucket),
		limit:     rate.Limit(perSecond),
		burst:     burst,
		now:       time.Now,
		lastSweep: time.Now(),
	}
}

func (cl *clientLimiter) get(client string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	now := cl.now()
	if now.Sub(cl.lastSweep) >= limiterIdle {
		for addr, b := range cl.limiters {
			if now.Sub(b.seen) >= limiterIdle {
				delete(cl.limiters, addr)
			}
		}
		cl.lastSweep = now
	}
	if b, ok := cl.limiters[client]; ok {
		b.seen = now
		return b.lim
	}
	b := &clientBucket{lim: rate.NewLimiter(cl.limit, cl.burst), seen: now}
	cl.limiters[client] = b
	return b.lim
}

func rateLimit(cl *clientLimiter, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientAddr(r)
			if !cl.get(client).Allow() {
				log.Warn().Str("client", client).Msg("rate limit exceeded")
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
