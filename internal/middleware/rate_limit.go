package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// RateLimiter throttles requests per connecting peer. The key is the socket
// address, never a forwarding header, so clients cannot pick their bucket.
// Limiters unused for the idle period are evicted.
type RateLimiter struct {
	mu       sync.Mutex
	limiters *cache.Cache
	rps      rate.Limit
	burst    int
}

func NewRateLimiter(rps float64, burst int, idle time.Duration) *RateLimiter {
	return &RateLimiter{
		limiters: cache.New(idle, idle),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (l *RateLimiter) limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.limiters.Get(ip); ok {
		lim := v.(*rate.Limiter)
		l.limiters.SetDefault(ip, lim)
		return lim
	}
	lim := rate.NewLimiter(l.rps, l.burst)
	l.limiters.SetDefault(ip, lim)
	return lim
}

// Len reports how many peers currently hold a limiter.
func (l *RateLimiter) Len() int {
	return l.limiters.ItemCount()
}

func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !l.limiter(ip).Allow() {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
