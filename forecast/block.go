// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package forecast

import (
	"fmt"
	"sync"

	"github.com/btcsuite/feeforecast/feefrac"
)

const (
	// MaxNumberOfBlocks is how many recently mined blocks the block
	// forecaster keeps percentile fee rates for.
	MaxNumberOfBlocks = 6

	// BlockForecastMaxTarget is the largest confirmation target the
	// block forecaster produces estimates for.
	BlockForecastMaxTarget = 1
)

// BlockForecaster estimates the fee rate a transaction needs to pay to be
// included in the very next block by averaging the percentile fee rates of
// the last MaxNumberOfBlocks mined blocks.
//
// The forecaster is fed by the validation subsystem: each time a block
// connects, the transactions removed from the mempool for it are delivered
// to MempoolTxsRemovedForBlock.  The removed transactions are linearized
// into mining score order before their percentiles are recorded, so a child
// that paid for its parents is accounted at its package rate.
type BlockForecaster struct {
	mtx        sync.RWMutex
	window     []Percentiles
	bestHeight uint32
}

// NewBlockForecaster returns a block forecaster with an empty window.  It
// cannot produce estimates until MaxNumberOfBlocks blocks have been
// delivered to it.
func NewBlockForecaster() *BlockForecaster {
	return &BlockForecaster{
		window: make([]Percentiles, 0, MaxNumberOfBlocks),
	}
}

// Type returns the forecaster kind used as its registry key.
//
// This is part of the Forecaster interface implementation.
func (bf *BlockForecaster) Type() ForecastType {
	return BlockForecast
}

// MaxTarget returns the largest confirmation target the forecaster can
// produce an estimate for.
//
// This is part of the Forecaster interface implementation.
func (bf *BlockForecaster) MaxTarget() uint32 {
	return BlockForecastMaxTarget
}

// MempoolTxsRemovedForBlock records the percentile fee rates of a newly
// connected block.  The removed transactions must be in confirmation order,
// parents before children.  Blocks without a 75th percentile fee rate are
// not recorded; no percentiles at all are produced for a block whose
// transactions do not reach the 95% weight cutoff.  When the window is at
// capacity the oldest block's percentiles are evicted.
//
// This is intended to be invoked by the validation subsystem on each block
// connection and is safe for concurrent use with EstimateFee.
func (bf *BlockForecaster) MempoolTxsRemovedForBlock(removed []RemovedTx,
	height uint32) {

	// Linearization and percentile computation only touch local memory,
	// so they stay outside the window lock.
	histogram := linearize(removed)
	percentiles := calcPercentiles(histogram, DefaultBlockMaxWeight)

	bf.mtx.Lock()
	defer bf.mtx.Unlock()

	bf.bestHeight = height
	if percentiles.P75.IsEmpty() {
		log.Debugf("%v: block %d below percentile cutoffs, not recorded",
			BlockForecast, height)
		return
	}

	if len(bf.window) == MaxNumberOfBlocks {
		bf.window = bf.window[1:]
	}
	bf.window = append(bf.window, percentiles)
}

// EstimateFee produces a fee rate forecast for inclusion in the next block
// by averaging the recorded window.  The low priority band is the average
// 75th percentile fee rate and the high priority band the average 50th.
//
// This is part of the Forecaster interface implementation.
func (bf *BlockForecaster) EstimateFee(target ConfirmationTarget) ForecastResult {
	bf.mtx.RLock()
	defer bf.mtx.RUnlock()

	response := ForecastResponse{
		Forecaster:         BlockForecast,
		CurrentBlockHeight: bf.bestHeight,
	}

	if target.Kind != TargetInBlocks {
		return errorResult(response,
			"Forecaster can only provide an estimate for block targets")
	}
	if target.Value == 0 {
		return errorResult(response,
			"Confirmation target must be greater than zero")
	}
	if target.Value > BlockForecastMaxTarget {
		return errorResult(response, fmt.Sprintf("Confirmation target "+
			"%d is above the maximum limit of %d", target.Value,
			BlockForecastMaxTarget))
	}
	if len(bf.window) < MaxNumberOfBlocks {
		return errorResult(response,
			"Insufficient block data to perform an estimate")
	}

	var sum25, sum50, sum75, sum95 int64
	for _, percentiles := range bf.window {
		sum25 += percentiles.P25.FeePerKVB()
		sum50 += percentiles.P50.FeePerKVB()
		sum75 += percentiles.P75.FeePerKVB()
		sum95 += percentiles.P95.FeePerKVB()
	}
	avg := Percentiles{
		P25: feefrac.FromPerKVB(sum25 / MaxNumberOfBlocks),
		P50: feefrac.FromPerKVB(sum50 / MaxNumberOfBlocks),
		P75: feefrac.FromPerKVB(sum75 / MaxNumberOfBlocks),
		P95: feefrac.FromPerKVB(sum95 / MaxNumberOfBlocks),
	}

	log.Debugf("%v: height %d, 25th percentile %v, 50th percentile %v, "+
		"75th percentile %v, 95th percentile %v", BlockForecast,
		bf.bestHeight, avg.P25, avg.P50, avg.P75, avg.P95)

	response.LowPriority = avg.P75
	response.HighPriority = avg.P50
	return ForecastResult{Response: response}
}
