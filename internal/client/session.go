package client

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"

	"github.com/Belphemur/filmed/internal/config"
	"golang.org/x/time/rate"
)

// SessionPool holds equivalent HTTP clients sharing one logged-in session.
// Each call picks a client at random; there is no affinity.
type SessionPool struct {
	clients []*http.Client
}

// NewSessionPool creates cfg.Session.PoolSize clients carrying the session
// cookies and the X-Locale header. The clients share one rate limiter.
func NewSessionPool(cfg *config.Config) *SessionPool {
	header := http.Header{}
	header.Set("X-Locale", cfg.Locale)
	if cookie := SessionCookie(cfg.Session); cookie != "" {
		header.Set("Cookie", cookie)
	}

	var limiter *rate.Limiter
	if cfg.RateLimit.Source > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.Source), 1)
	}

	size := max(cfg.Session.PoolSize, 1)
	pool := &SessionPool{clients: make([]*http.Client, 0, size)}
	for range size {
		pool.clients = append(pool.clients, newHTTPClient(cfg, transportOptions{
			catalog: catalogSource,
			limiter: limiter,
			header:  header,
		}))
	}
	return pool
}

// Client returns one of the pool's clients, chosen uniformly at random.
func (p *SessionPool) Client() *http.Client {
	return p.clients[rand.IntN(len(p.clients))]
}

// Size returns the number of clients in the pool.
func (p *SessionPool) Size() int {
	return len(p.clients)
}

// SessionCookie formats the Cookie header of a session, or "" when no cookie is set.
func SessionCookie(s config.Session) string {
	token := strings.TrimSpace(s.Token)
	id := strings.TrimSpace(s.SessionID)
	jwt := strings.TrimSpace(s.JWT)
	if token == "" && id == "" && jwt == "" {
		return ""
	}
	return fmt.Sprintf("_fwuser_token=%s; _fwuser_sessionId=%s; JWT=%s;", token, id, jwt)
}
