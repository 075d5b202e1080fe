package httpx

import (
	"net/http"
	"sync/atomic"
)

// HitCounter counts requests that pass through its middleware. The admin
// metrics page reads it and the reset endpoint zeroes it.
type HitCounter struct {
	hits atomic.Int64
}

func (c *HitCounter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.hits.Add(1)
		next.ServeHTTP(w, r)
	})
}

func (c *HitCounter) Load() int64 { return c.hits.Load() }

func (c *HitCounter) Reset() { c.hits.Store(0) }
