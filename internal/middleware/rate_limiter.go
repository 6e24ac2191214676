package middleware

import (
	"sync"
	"time"

	appErrors "github.com/bielborgesc/piggino/internal/errors"

	"github.com/gin-gonic/gin"
)

// RateLimiter conta requisições por chave numa janela deslizante. A chave é
// o IP do cliente nas rotas públicas e o id do usuário nas autenticadas.
type RateLimiter struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	hits      map[string][]time.Time
	lastSweep time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		window:    window,
		hits:      make(map[string][]time.Time),
		lastSweep: time.Now(),
	}
}

// Allow registra uma requisição para a chave e diz se ela cabe na janela.
func (rl *RateLimiter) Allow(key string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.sweep(now)

	cutoff := now.Add(-rl.window)
	recent := rl.hits[key][:0]
	for _, hit := range rl.hits[key] {
		if hit.After(cutoff) {
			recent = append(recent, hit)
		}
	}

	if len(recent) >= rl.limit {
		rl.hits[key] = recent
		return false
	}

	rl.hits[key] = append(recent, now)
	return true
}

// sweep descarta chaves sem hits recentes, no máximo uma vez por janela.
// Roda dentro do lock de Allow, sem goroutine de limpeza.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	cutoff := now.Add(-rl.window)
	for key, hits := range rl.hits {
		if len(hits) == 0 || !hits[len(hits)-1].After(cutoff) {
			delete(rl.hits, key)
		}
	}
	rl.lastSweep = now
}

// RateLimit limita rotas públicas pelo IP de origem.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			abortRateLimited(c)
			return
		}
		c.Next()
	}
}

// RateLimitByUser limita rotas autenticadas pelo usuário do token. Antes do
// AuthMiddleware popular o contexto, cai para o IP de origem.
func RateLimitByUser(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if userID, exists := c.Get("user_id"); exists {
			if id, ok := userID.(string); ok && id != "" {
				key = "user:" + id
			}
		}

		if !limiter.Allow(key) {
			abortRateLimited(c)
			return
		}
		c.Next()
	}
}

func abortRateLimited(c *gin.Context) {
	appErr := appErrors.ErrRateLimited
	c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
		"error":   appErr.Code,
		"message": appErr.Message,
	})
}
