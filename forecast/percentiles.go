// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package forecast

import (
	"github.com/btcsuite/feeforecast/feefrac"
)

const (
	// DefaultBlockMaxWeight is the reference maximum block weight the
	// percentile thresholds are taken against.
	DefaultBlockMaxWeight = 4000000

	// WitnessScaleFactor is the multiplier applied to a virtual size to
	// produce weight units.
	WitnessScaleFactor = 4
)

// Percentiles holds the fee rates at which cumulative block weight first
// reaches 25%, 50%, 75% and 95% of a reference maximum block weight when
// scanning transactions from the highest mining score down.
//
// P25 is therefore the highest band and P95 the lowest; after monotonicity
// correction P25 >= P50 >= P75 >= P95 holds in fee rate order.
type Percentiles struct {
	P25 feefrac.FeeFrac
	P50 feefrac.FeeFrac
	P75 feefrac.FeeFrac
	P95 feefrac.FeeFrac
}

// Empty returns whether no percentile slot carries data.
func (p *Percentiles) Empty() bool {
	return p.P25.IsEmpty() && p.P50.IsEmpty() && p.P75.IsEmpty() &&
		p.P95.IsEmpty()
}

// percentileCutoffs are the cumulative weight fractions, in percent, at
// which a slot is recorded.
var percentileCutoffs = [4]int64{25, 50, 75, 95}

// calcPercentiles computes the percentile fee rates of a histogram of
// (fee, vsize) entries ordered by descending mining score.
//
// Each slot records the entry at which cumulative weight first reaches its
// cutoff.  The mining score order is not guaranteed to be monotone in raw
// fee rate, so a slot value is clamped to never exceed the previous slot's
// fee rate.  If the scan ends before the 95% cutoff is reached the histogram
// does not carry enough weight and the empty Percentiles is returned.
func calcPercentiles(histogram []feefrac.FeeFrac, totalWeight int64) Percentiles {
	var slots [4]feefrac.FeeFrac
	var cutoffs [4]int64
	for i, pct := range percentileCutoffs {
		cutoffs[i] = totalWeight * pct / 100
	}

	var cumWeight int64
	for _, entry := range histogram {
		cumWeight += entry.Size * WitnessScaleFactor
		for i := range cutoffs {
			if cumWeight < cutoffs[i] || !slots[i].IsEmpty() {
				continue
			}
			value := entry
			if i > 0 && value.Cmp(slots[i-1]) > 0 {
				value = slots[i-1]
			}
			slots[i] = value
		}
	}

	// The scan must cover the full cutoff range to be usable.
	if slots[3].IsEmpty() {
		return Percentiles{}
	}

	return Percentiles{
		P25: slots[0],
		P50: slots[1],
		P75: slots[2],
		P95: slots[3],
	}
}
