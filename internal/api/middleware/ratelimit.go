package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-CounselingService/internal/api/handlers"
)

const (
	// idleLimiterTTL через сколько неиспользуемый лимитер клиента удаляется
	idleLimiterTTL = 10 * time.Minute
	// sweepInterval как часто чистятся простаивающие лимитеры
	sweepInterval = time.Minute
	// DefaultMaxClients сколько клиентов отслеживается по отдельности
	DefaultMaxClients = 10000
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов с одного IP (token bucket)
// Клиент определяется по RemoteAddr. X-Forwarded-For учитывается только от доверенных прокси
type RateLimiter struct {
	mu         sync.Mutex
	clients    map[string]*clientLimiter
	overflow   *clientLimiter
	limit      rate.Limit
	burst      int
	maxClients int
	trusted    []*net.IPNet
	lastSweep  time.Time
	now        func() time.Time
}

// NewRateLimiter создает лимитер на requestsPerMinute запросов в минуту с запасом burst
// maxClients <= 0 означает DefaultMaxClients
func NewRateLimiter(requestsPerMinute, burst, maxClients int, trustedProxies []*net.IPNet) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	if maxClients <= 0 {
		maxClients = DefaultMaxClients
	}

	limit := rate.Limit(float64(requestsPerMinute) / 60.0)

	return &RateLimiter{
		clients:    make(map[string]*clientLimiter),
		overflow:   &clientLimiter{limiter: rate.NewLimiter(limit, burst)},
		limit:      limit,
		burst:      burst,
		maxClients: maxClients,
		trusted:    trustedProxies,
		now:        time.Now,
	}
}

// ParseTrustedProxies разбирает список адресов и подсетей (CIDR) доверенных прокси
func ParseTrustedProxies(raw []string) ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(raw))
	for _, item := range raw {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		if strings.Contains(item, "/") {
			_, ipNet, err := net.ParseCIDR(item)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", item, err)
			}
			nets = append(nets, ipNet)
			continue
		}

		ip := net.ParseIP(item)
		if ip == nil {
			return nil, fmt.Errorf("invalid trusted proxy %q", item)
		}
		bits := 8 * net.IPv6len
		if v4 := ip.To4(); v4 != nil {
			ip, bits = v4, 8*net.IPv4len
		}
		nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
	}
	return nets, nil
}

// Allow проверяет, можно ли обслужить ещё один запрос клиента
func (l *RateLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= sweepInterval {
		l.evict(now)
		l.lastSweep = now
	}

	c, ok := l.clients[client]
	if !ok {
		if len(l.clients) >= l.maxClients {
			l.evict(now)
			l.lastSweep = now
		}
		if len(l.clients) >= l.maxClients {
			// таблица заполнена: новые клиенты делят общий лимитер
			c = l.overflow
		} else {
			c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
			l.clients[client] = c
		}
	}
	c.lastSeen = now

	return c.limiter.AllowN(now, 1)
}

// Middleware отвечает 429, когда клиент исчерпал лимит
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(l.clientIP(r)) {
			w.Header().Set("Retry-After", "60")
			handlers.RespondTooManyRequests(w, "too many requests, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// evict удаляет лимитеры клиентов, не обращавшихся дольше idleLimiterTTL
func (l *RateLimiter) evict(now time.Time) {
	for ip, c := range l.clients {
		if now.Sub(c.lastSeen) > idleLimiterTTL {
			delete(l.clients, ip)
		}
	}
}

// clientIP адрес клиента
// Если соединение пришло от доверенного прокси, X-Forwarded-For читается справа налево
// до первого адреса не из доверенных сетей. Иначе заголовок игнорируется
func (l *RateLimiter) clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if !l.isTrusted(net.ParseIP(host)) {
		return host
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		ip := net.ParseIP(strings.TrimSpace(hops[i]))
		if ip == nil {
			// мусор в цепочке: дальше левее доверять нельзя
			break
		}
		if !l.isTrusted(ip) {
			return ip.String()
		}
	}

	return host
}

func (l *RateLimiter) isTrusted(ip net.IP) bool {
	if ip == nil {
		return false
	}
	for _, n := range l.trusted {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
