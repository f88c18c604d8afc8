// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package forecast

import (
	"fmt"
)

// MempoolForecastMaxTarget is the largest confirmation target the mempool
// forecaster produces estimates for.  Mempool conditions are likely to
// change beyond it.
const MempoolForecastMaxTarget = 2

// MempoolForecaster estimates the fee rate a transaction needs to pay to be
// included in one of the next blocks.  It asks the block assembler to
// compose a candidate next block out of the current mempool, computes
// percentile fee rates over the candidate's transactions and caches the
// result so bursty request loads do not rebuild the block every time.
type MempoolForecaster struct {
	mempool   TxMempool
	chain     ChainState
	assembler BlockAssembler
	cache     *estimateCache
}

// NewMempoolForecaster returns a mempool forecaster drawing on the given
// collaborators.
func NewMempoolForecaster(mempool TxMempool, chain ChainState,
	assembler BlockAssembler) *MempoolForecaster {

	return &MempoolForecaster{
		mempool:   mempool,
		chain:     chain,
		assembler: assembler,
		cache:     newEstimateCache(),
	}
}

// Type returns the forecaster kind used as its registry key.
//
// This is part of the Forecaster interface implementation.
func (mf *MempoolForecaster) Type() ForecastType {
	return MempoolForecast
}

// MaxTarget returns the largest confirmation target the forecaster can
// produce an estimate for.
//
// This is part of the Forecaster interface implementation.
func (mf *MempoolForecaster) MaxTarget() uint32 {
	return MempoolForecastMaxTarget
}

// EstimateFee produces a fee rate forecast for the given confirmation
// target from the current mempool contents.  The low priority band is the
// 75th percentile fee rate of the candidate next block and the high
// priority band the 50th.
//
// This is part of the Forecaster interface implementation.
func (mf *MempoolForecaster) EstimateFee(target ConfirmationTarget) ForecastResult {
	response := ForecastResponse{Forecaster: MempoolForecast}

	tip := mf.chain.ActiveTip()
	if tip == nil {
		return errorResult(response, "No active chainstate available")
	}
	response.CurrentBlockHeight = tip.Height

	if target.Kind != TargetInBlocks {
		return errorResult(response,
			"Forecaster can only provide an estimate for block targets")
	}
	if target.Value == 0 {
		return errorResult(response,
			"Confirmation target must be greater than zero")
	}
	if target.Value > MempoolForecastMaxTarget {
		return errorResult(response, fmt.Sprintf("Confirmation target "+
			"%d is above the maximum limit of %d, mempool conditions "+
			"might change and forecasts above %d blocks may be "+
			"unreliable", target.Value, MempoolForecastMaxTarget,
			MempoolForecastMaxTarget))
	}

	if cached, ok := mf.cache.get(); ok {
		log.Debugf("%v: using cached value", MempoolForecast)
		response.LowPriority = cached.P75
		response.HighPriority = cached.P50
		return ForecastResult{Response: response}
	}

	// An empty mempool cannot yield a template worth building.
	if mf.mempool.Count() == 0 {
		return errorResult(response, "No enough transactions in the "+
			"mempool to provide a fee rate forecast")
	}

	// From here on, the assembler call is the only step that touches the
	// chain state and mempool locks.  Percentile computation and the cache update
	// below only touch local memory.
	template, err := mf.assembler.CreateNewBlock(nil)
	if err != nil {
		return errorResult(response, err.Error())
	}
	if len(template.FeeRateHistogram) == 0 {
		return errorResult(response, "No enough transactions in the "+
			"mempool to provide a fee rate forecast")
	}

	percentiles := calcPercentiles(template.FeeRateHistogram,
		DefaultBlockMaxWeight)
	if percentiles.Empty() {
		return errorResult(response, "Forecaster unable to provide an "+
			"estimate due to insufficient data")
	}
	mf.cache.update(percentiles)

	log.Debugf("%v: height %d, 25th percentile %v, 50th percentile %v, "+
		"75th percentile %v, 95th percentile %v", MempoolForecast,
		tip.Height, percentiles.P25, percentiles.P50, percentiles.P75,
		percentiles.P95)

	response.LowPriority = percentiles.P75
	response.HighPriority = percentiles.P50
	return ForecastResult{Response: response}
}
