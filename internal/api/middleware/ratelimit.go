package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/FWL-BookingService/internal/api/handlers"
)

const msgTooManyRequests = "Too many requests, please try again later"

// idleLimiterTTL время, после которого неиспользуемый лимитер клиента удаляется
const idleLimiterTTL = 10 * time.Minute

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter ограничивает частоту запросов по IP клиента
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	limit    rate.Limit
	burst    int
	// trustProxy адрес клиента берется из заголовков прокси
	trustProxy bool
	now        func() time.Time
	logger     Logger
}

// NewRateLimiter создает лимитер на requestsPerMinute запросов в минуту с запасом burst
func NewRateLimiter(requestsPerMinute float64, burst int, logger Logger) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*clientLimiter),
		limit:    rate.Limit(requestsPerMinute / 60),
		burst:    burst,
		now:      time.Now,
		logger:   logger,
	}
}

// SetTrustProxy включает чтение адреса клиента из X-Forwarded-For и X-Real-IP
// Без этого ключом лимита служит адрес TCP-соединения: иначе заголовок подменяется клиентом
func (rl *RateLimiter) SetTrustProxy(trust bool) {
	rl.trustProxy = trust
}

// Allow проверяет, разрешен ли запрос для данного ключа
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cl, ok := rl.limiters[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[key] = cl
	}
	cl.lastAccess = now

	return cl.limiter.AllowN(now, 1)
}

// Cleanup удаляет лимитеры клиентов, не обращавшихся дольше idleLimiterTTL
func (rl *RateLimiter) Cleanup() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-idleLimiterTTL)
	cleaned := 0
	for key, cl := range rl.limiters {
		if cl.lastAccess.Before(cutoff) {
			delete(rl.limiters, key)
			cleaned++
		}
	}
	return cleaned
}

// Run периодически чистит лимитеры до закрытия done
func (rl *RateLimiter) Run(done <-chan struct{}) {
	ticker := time.NewTicker(idleLimiterTTL / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := rl.Cleanup(); cleaned > 0 {
				rl.logger.Info("RateLimiter: cleaned up %d idle client limiters", cleaned)
			}
		case <-done:
			return
		}
	}
}

// Middleware возвращает HTTP middleware
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r, rl.trustProxy)
		if !rl.Allow(ip) {
			rl.logger.Warn("%s %s - rate limit exceeded: ip=%s", r.Method, r.URL.Path, ip)
			handlers.RespondTooManyRequests(w, msgTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP извлекает IP клиента. Заголовки прокси учитываются только при trustProxy
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			if ip := strings.TrimSpace(strings.SplitN(xff, ",", 2)[0]); ip != "" {
				return ip
			}
		}
		if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
