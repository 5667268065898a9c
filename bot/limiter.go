/* limiter.go
 * Contains the per-user throttle applied to bets so a single user cannot flood the db with pick changes
 */

package bot

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type userLimiter struct {
	mu    sync.Mutex
	limit rate.Limit
	burst int
	users map[string]*rate.Limiter
}

// newUserLimiter allows perMinute bets per user, with bursts up to the same amount. Zero or less disables the throttle
func newUserLimiter(perMinute int) *userLimiter {
	if perMinute <= 0 {
		return nil
	}
	return &userLimiter{
		limit: rate.Every(time.Minute / time.Duration(perMinute)),
		burst: perMinute,
		users: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether the user may act now. A nil limiter allows everything
func (l *userLimiter) Allow(userID string) bool {
	if l == nil {
		return true
	}

	l.mu.Lock()
	limiter, ok := l.users[userID]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.users[userID] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}
