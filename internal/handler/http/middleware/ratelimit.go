package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/fieldops-id/fieldops-backend-go/internal/handler/http/response"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long a key's limiter survives without traffic.
const limiterIdleTTL = 10 * time.Minute

// KeyFunc picks the bucket a request is charged to. An empty key skips limiting.
type KeyFunc func(r *http.Request) string

// ByIP keys on the client address. Put chi's RealIP in front when running behind a proxy.
func ByIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ByUser keys on the authenticated user and must run after AuthRequired.
func ByUser(r *http.Request) string {
	userID, _ := UserIDFromContext(r.Context())
	return userID
}

type RateLimiter struct {
	rps      rate.Limit
	burst    int
	keyFunc  KeyFunc
	mu       sync.Mutex
	limiters *gocache.Cache
}

func NewRateLimiter(rps float64, burst int, keyFunc KeyFunc) *RateLimiter {
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		keyFunc:  keyFunc,
		limiters: gocache.New(limiterIdleTTL, 2*limiterIdleTTL),
	}
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, found := l.limiters.Get(key); found {
		lim := v.(*rate.Limiter)
		l.limiters.Set(key, lim, gocache.DefaultExpiration)
		return lim
	}
	lim := rate.NewLimiter(l.rps, l.burst)
	l.limiters.Set(key, lim, gocache.DefaultExpiration)
	return lim
}

// Handler rejects requests over the limit with 429.
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := l.keyFunc(r)
		if key == "" || l.rps <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		if !l.limiter(key).Allow() {
			retryAfter := 1
			if l.rps < 1 {
				retryAfter = int(1 / float64(l.rps))
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			response.TooManyRequests(w, "Too many requests, please slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}
