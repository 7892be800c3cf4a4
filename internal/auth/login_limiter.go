package auth

import (
	"context"
	"time"

	"github.com/forgiv/bloggy-server/internal/cache"
)

const loginFailuresKeyPrefix = "login_failures:"

// LoginLimiter tracks failed logins per username.
type LoginLimiter interface {
	Allow(ctx context.Context, username string) bool
	RecordFailure(ctx context.Context, username string)
	Reset(ctx context.Context, username string)
}

// CacheLoginLimiter counts failures in Redis. When Redis is unreachable the
// counters read as zero and every login is allowed.
type CacheLoginLimiter struct {
	cache       *cache.Client
	maxAttempts int
	window      time.Duration
}

// Ensure CacheLoginLimiter implements LoginLimiter
var _ LoginLimiter = (*CacheLoginLimiter)(nil)

// NewLoginLimiter creates a limiter allowing maxAttempts failures per window.
// A non-positive maxAttempts disables limiting.
func NewLoginLimiter(cache *cache.Client, maxAttempts int, window time.Duration) *CacheLoginLimiter {
	return &CacheLoginLimiter{cache: cache, maxAttempts: maxAttempts, window: window}
}

// Allow reports whether username may attempt another login.
func (l *CacheLoginLimiter) Allow(ctx context.Context, username string) bool {
	if l.maxAttempts <= 0 {
		return true
	}
	n, _ := l.cache.Count(ctx, loginFailuresKeyPrefix+username)
	return n < int64(l.maxAttempts)
}

// RecordFailure counts a failed attempt; the window starts at the first failure.
func (l *CacheLoginLimiter) RecordFailure(ctx context.Context, username string) {
	if l.maxAttempts <= 0 {
		return
	}
	_, _ = l.cache.Incr(ctx, loginFailuresKeyPrefix+username, l.window)
}

// Reset clears the failure counter after a successful login.
func (l *CacheLoginLimiter) Reset(ctx context.Context, username string) {
	if l.maxAttempts <= 0 {
		return
	}
	_ = l.cache.Delete(ctx, loginFailuresKeyPrefix+username)
}

// NoopLoginLimiter allows every attempt.
type NoopLoginLimiter struct{}

func (NoopLoginLimiter) Allow(context.Context, string) bool   { return true }
func (NoopLoginLimiter) RecordFailure(context.Context, string) {}
func (NoopLoginLimiter) Reset(context.Context, string)         {}
