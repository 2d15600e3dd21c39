package internal

import (
	"sjsage522/dealcollector/services/cache"
	"sjsage522/dealcollector/services/metrics"
	"sjsage522/dealcollector/services/publisher"
)

// Dependencies holds all optional service dependencies. Nil members are
// disabled features.
type Dependencies struct {
	Cache     cache.CacheService
	Publisher publisher.Publisher
	Metrics   *metrics.Registry
}
