// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package forecast

import (
	"sync"
	"time"
)

// cacheLife is how long a cached percentile result stays usable.  Running
// the block assembly algorithm on every request is undesirable under bursty
// load, and mempool conditions rarely shift within this window.
const cacheLife = 30 * time.Second

// estimateCache memoizes the most recent percentile computation of a
// forecaster.  Multiple readers may call get concurrently; update is
// serialized against them.  The cache starts out stale.
type estimateCache struct {
	mtx         sync.RWMutex
	percentiles Percentiles
	lastUpdated time.Time

	// now is the clock source, overridable in tests.
	now func() time.Time
}

func newEstimateCache() *estimateCache {
	return &estimateCache{now: time.Now}
}

// get returns the cached percentiles when they are still fresh.  A stale
// entry is hidden from callers but not removed.
func (c *estimateCache) get() (Percentiles, bool) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	if c.lastUpdated.IsZero() || c.now().Sub(c.lastUpdated) > cacheLife {
		return Percentiles{}, false
	}
	return c.percentiles, true
}

// update overwrites the cached percentiles and resets their age.
func (c *estimateCache) update(p Percentiles) {
	c.mtx.Lock()
	c.percentiles = p
	c.lastUpdated = c.now()
	c.mtx.Unlock()
}
