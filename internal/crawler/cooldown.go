package crawler

import (
	"errors"
	"fmt"
	"time"

	"sjsage522/dealcollector/logger"
	"sjsage522/dealcollector/services/cache"
)

// Cooldown remembers variants that were blocked or rate limited so the
// following runs leave them alone for a while. A nil cache disables it.
type Cooldown struct {
	cache    cache.CacheService
	duration time.Duration
}

// NewCooldown creates a cooldown backed by cacheSvc
func NewCooldown(cacheSvc cache.CacheService, duration time.Duration) *Cooldown {
	return &Cooldown{cache: cacheSvc, duration: duration}
}

func cooldownKey(variant string) string {
	return variant + "_rate_limited"
}

// Active reports whether variant is still cooling down. Cache failures
// count as not active.
func (c *Cooldown) Active(variant string) bool {
	if c == nil || c.cache == nil {
		return false
	}
	_, err := c.cache.Get(cooldownKey(variant))
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrNotFound) {
		logger.ForCache().Warn().Err(err).Str("variant", variant).Msg("cooldown lookup failed")
	}
	return false
}

// Arm starts the cooldown for variant
func (c *Cooldown) Arm(variant string) {
	if c == nil || c.cache == nil || c.duration <= 0 {
		return
	}
	value := []byte(fmt.Sprintf("%d", int(c.duration/time.Second)))
	if err := c.cache.Set(cooldownKey(variant), value, c.duration); err != nil {
		logger.ForCache().Warn().Err(err).Str("variant", variant).Msg("cooldown arm failed")
		return
	}
	logger.ForCache().Info().
		Str("variant", variant).
		Dur("duration", c.duration).
		Msg("variant cooling down")
}

// Duration is the configured cooldown length
func (c *Cooldown) Duration() time.Duration {
	if c == nil {
		return 0
	}
	return c.duration
}
