// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package forecast

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/stretchr/testify/require"

	"github.com/btcsuite/feeforecast/feefrac"
)

// connectBlock delivers a full block's worth of unrelated transactions to
// the forecaster, every transaction paying feePerTx over 50,000 vbytes.
func connectBlock(bf *BlockForecaster, builder *txBuilder,
	feePerTx btcutil.Amount, height uint32) {

	removed := make([]RemovedTx, 20)
	for i := range removed {
		removed[i] = builder.tx(feePerTx, 50000)
	}
	bf.MempoolTxsRemovedForBlock(removed, height)
}

func TestBlockForecasterInsufficientData(t *testing.T) {
	var builder txBuilder
	bf := NewBlockForecaster()

	result := bf.EstimateFee(blockTarget(1))
	require.True(t, result.Empty())
	require.Equal(t, "Insufficient block data to perform an estimate",
		result.Err)

	// One block short of a full window is still insufficient.
	for i := 0; i < MaxNumberOfBlocks-1; i++ {
		connectBlock(bf, &builder, 50000, uint32(800001+i))
	}
	result = bf.EstimateFee(blockTarget(1))
	require.True(t, result.Empty())
	require.Equal(t, "Insufficient block data to perform an estimate",
		result.Err)
}

func TestBlockForecasterTargetValidation(t *testing.T) {
	bf := NewBlockForecaster()

	result := bf.EstimateFee(blockTarget(0))
	require.Equal(t, "Confirmation target must be greater than zero",
		result.Err)

	result = bf.EstimateFee(blockTarget(BlockForecastMaxTarget + 1))
	require.Contains(t, result.Err, "above the maximum limit of 1")
}

// TestBlockForecasterAverages fills the window and checks the estimate is
// the elementwise per-kvB average of the recorded blocks.
func TestBlockForecasterAverages(t *testing.T) {
	var builder txBuilder
	bf := NewBlockForecaster()

	// Six blocks at 1000..6000 sat/kvB: 50,000 sat to 300,000 sat over
	// 50,000 vbytes.
	for i := 1; i <= MaxNumberOfBlocks; i++ {
		connectBlock(bf, &builder, btcutil.Amount(i*50000),
			uint32(800000+i))
	}

	result := bf.EstimateFee(blockTarget(1))
	require.Empty(t, result.Err)
	require.False(t, result.Empty())
	require.Equal(t, BlockForecast, result.Response.Forecaster)
	require.EqualValues(t, 800006, result.Response.CurrentBlockHeight)

	// Every block's percentile bands equal its uniform fee rate, so the
	// average of 1000..6000 sat/kvB is 3500 for both bands.
	require.Equal(t, feefrac.FromPerKVB(3500), result.Response.LowPriority)
	require.Equal(t, feefrac.FromPerKVB(3500), result.Response.HighPriority)
}

// TestBlockForecasterEviction ensures the window is bounded and the oldest
// block falls out first.
func TestBlockForecasterEviction(t *testing.T) {
	var builder txBuilder
	bf := NewBlockForecaster()

	for i := 1; i <= MaxNumberOfBlocks+1; i++ {
		connectBlock(bf, &builder, btcutil.Amount(i*50000),
			uint32(800000+i))
	}
	require.Len(t, bf.window, MaxNumberOfBlocks)

	// With block 1 evicted the window holds 2000..7000 sat/kvB.
	result := bf.EstimateFee(blockTarget(1))
	require.Empty(t, result.Err)
	require.Equal(t, feefrac.FromPerKVB(4500), result.Response.HighPriority)
}

// TestBlockForecasterSkipsThinBlocks ensures blocks that do not reach the
// percentile cutoffs are not recorded in the window.
func TestBlockForecasterSkipsThinBlocks(t *testing.T) {
	var builder txBuilder
	bf := NewBlockForecaster()

	removed := []RemovedTx{builder.tx(1000, 250)}
	bf.MempoolTxsRemovedForBlock(removed, 800001)
	require.Empty(t, bf.window)

	// The height still advances for diagnostics.
	require.EqualValues(t, 800001, bf.bestHeight)
}
