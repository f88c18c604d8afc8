// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package forecast

import (
	"github.com/btcsuite/feeforecast/feefrac"
)

// ForecastType identifies the kind of a fee rate forecaster.  It is used as
// the key of the coordinator's forecaster registry.
type ForecastType int

const (
	// MempoolForecast is the forecaster that derives an estimate from a
	// candidate next block built out of unconfirmed transactions.
	MempoolForecast ForecastType = iota

	// BlockPolicyEstimator is the long-horizon estimator that tracks
	// historical confirmation statistics per fee rate bucket.
	BlockPolicyEstimator

	// BlockForecast is the forecaster that averages the percentile fee
	// rates of recently mined blocks.
	BlockForecast
)

// String returns the forecast type as a human readable name.
func (t ForecastType) String() string {
	switch t {
	case MempoolForecast:
		return "Mempool Forecast"
	case BlockPolicyEstimator:
		return "Block Policy Estimator"
	case BlockForecast:
		return "Block Forecast"
	}
	return "Unknown Forecaster"
}

// TargetKind is the unit a confirmation target is expressed in.
type TargetKind int

const (
	// TargetInBlocks expresses a confirmation target as a number of
	// future blocks.
	TargetInBlocks TargetKind = iota
)

// ConfirmationTarget is the horizon within which a caller wants a
// transaction confirmed.
type ConfirmationTarget struct {
	// Value is the target magnitude.  It must be positive.
	Value uint32

	// Kind is the unit of Value.
	Kind TargetKind
}

// ForecastResponse carries the fee rate bands produced by a forecaster.
//
// When the response is non-empty, LowPriority never exceeds HighPriority:
// the low priority band is the cheaper, slower one.
type ForecastResponse struct {
	// Forecaster identifies which forecaster produced the response.
	Forecaster ForecastType

	// CurrentBlockHeight is the chain height the forecast was made at.
	CurrentBlockHeight uint32

	// LowPriority is the fee rate band for callers content with slower
	// inclusion.
	LowPriority feefrac.FeeFrac

	// HighPriority is the fee rate band for callers that want inclusion
	// as soon as possible.
	HighPriority feefrac.FeeFrac
}

// ForecastResult is the outcome of polling a single forecaster: either a
// valid response, or an empty response along with a diagnostic explaining
// why no estimate could be made.
type ForecastResult struct {
	// Response holds the estimate.  Its Forecaster and
	// CurrentBlockHeight fields are populated even on failure when
	// known.
	Response ForecastResponse

	// Err is the diagnostic message for an empty response.  It is the
	// empty string on success.
	Err string
}

// Empty returns whether the result carries no estimate.
func (r *ForecastResult) Empty() bool {
	return r.Response.LowPriority.IsEmpty() &&
		r.Response.HighPriority.IsEmpty()
}

// Less returns whether r is the better, cheaper result by comparing high
// priority fee rates.
func (r *ForecastResult) Less(other *ForecastResult) bool {
	return r.Response.HighPriority.Cmp(other.Response.HighPriority) < 0
}

// Forecaster is the interface every fee rate forecaster satisfies.
//
// Implementations must be safe for concurrent access.
type Forecaster interface {
	// EstimateFee returns a fee rate forecast for the given confirmation
	// target.  Failures are reported as diagnostics inside the result,
	// never as panics or Go errors.
	EstimateFee(target ConfirmationTarget) ForecastResult

	// Type returns the forecaster kind used as its registry key.
	Type() ForecastType

	// MaxTarget returns the largest confirmation target the forecaster
	// can produce an estimate for.
	MaxTarget() uint32
}

// errorResult builds an empty result carrying a diagnostic message.
func errorResult(response ForecastResponse, msg string) ForecastResult {
	return ForecastResult{Response: response, Err: msg}
}
