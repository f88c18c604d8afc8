// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package forecast

import (
	"fmt"

	"github.com/btcsuite/feeforecast/feefrac"
	"github.com/btcsuite/feeforecast/policyest"
)

// FeeEstimator manages a set of registered fee rate forecasters and combines
// their outputs into a single estimate.
//
// When an estimate is requested, the policy estimator and the mempool
// forecaster are polled and the cheaper acceptable answer is selected; the
// block forecaster is polled for next-block targets only when neither of
// them answered.  Diagnostics from every polled forecaster are always
// returned to the caller, whether or not an answer was selected.
type FeeEstimator struct {
	mempool TxMempool

	// forecasters maps each forecaster type to its registered forecaster.  The map
	// is populated during initialization, before worker threads issue
	// requests, and is read-only afterwards.
	forecasters map[ForecastType]Forecaster

	// policy is the optional long-horizon policy estimator.
	policy *policyest.Estimator
}

// NewFeeEstimator returns a fee estimator without a long-horizon policy
// estimator.  Forecasters are registered after construction.
func NewFeeEstimator(mempool TxMempool) *FeeEstimator {
	return &FeeEstimator{
		mempool:     mempool,
		forecasters: make(map[ForecastType]Forecaster),
	}
}

// NewFeeEstimatorWithPolicy returns a fee estimator backed by a long-horizon
// policy estimator persisting its state to dbPath.  When readStaleEstimates
// is set, bucket statistics found on disk replace the configured ones even
// if the configurations differ.
func NewFeeEstimatorWithPolicy(mempool TxMempool, dbPath string,
	readStaleEstimates bool) (*FeeEstimator, error) {

	policy, err := policyest.NewEstimator(&policyest.EstimatorConfig{
		MaxConfirms:        policyest.DefaultMaxConfirms,
		MinBucketFee:       1000,
		MaxBucketFee:       1000 * 100,
		FeeRateStep:        policyest.DefaultFeeRateStep,
		DatabaseFile:       dbPath,
		ReadStaleEstimates: readStaleEstimates,
	})
	if err != nil {
		return nil, err
	}

	return &FeeEstimator{
		mempool:     mempool,
		forecasters: make(map[ForecastType]Forecaster),
		policy:      policy,
	}, nil
}

// PolicyEstimator returns the long-horizon policy estimator, or nil when the
// fee estimator was constructed without one.  The caller owns feeding it
// mempool and block data.
func (fe *FeeEstimator) PolicyEstimator() *policyest.Estimator {
	return fe.policy
}

// RegisterForecaster registers a forecaster keyed by its type.  Registering
// a second forecaster of the same type replaces the first.  Registration
// must complete before estimate requests are issued.
func (fe *FeeEstimator) RegisterForecaster(f Forecaster) {
	fe.forecasters[f.Type()] = f
}

// MaxForecastingTarget returns the largest confirmation target any
// registered forecaster can answer.
func (fe *FeeEstimator) MaxForecastingTarget() uint32 {
	var maxTarget uint32
	for _, f := range fe.forecasters {
		if f.MaxTarget() > maxTarget {
			maxTarget = f.MaxTarget()
		}
	}
	return maxTarget
}

// EstimateFee polls the registered forecasters for the given confirmation
// target and returns the cheapest valid forecast along with the diagnostics
// of every polled forecaster.  A nil result means no forecaster could
// answer; the diagnostics then explain why.
func (fe *FeeEstimator) EstimateFee(target ConfirmationTarget) (*ForecastResult, []string) {
	var errs []string

	if target.Value == 0 {
		errs = append(errs, "Confirmation target must be greater than zero.")
		return nil, errs
	}
	if fe.mempool == nil {
		errs = append(errs, "Mempool not available.")
		return nil, errs
	}
	if !fe.mempool.LoadTried() {
		errs = append(errs, "Mempool not finished loading; can't get "+
			"accurate fee rate forecast")
		return nil, errs
	}

	// Poll the long-horizon policy estimator and the mempool forecaster.
	// The cheaper of the two answers wins; ties keep the mempool
	// forecast since it reflects current demand.
	policyResult := fe.policyEstimate(target)
	if policyResult != nil && policyResult.Empty() && policyResult.Err != "" {
		errs = append(errs, fmt.Sprintf("%v: %s",
			policyResult.Response.Forecaster, policyResult.Err))
	}

	var mempoolResult *ForecastResult
	if mf, ok := fe.forecasters[MempoolForecast]; ok {
		result := mf.EstimateFee(target)
		mempoolResult = &result
		if result.Empty() && result.Err != "" {
			errs = append(errs, fmt.Sprintf("%v: %s",
				result.Response.Forecaster, result.Err))
		}
	}

	var selected *ForecastResult
	if mempoolResult != nil && !mempoolResult.Empty() {
		selected = mempoolResult
	}
	if policyResult != nil && !policyResult.Empty() {
		if selected == nil || policyResult.Less(selected) {
			selected = policyResult
		}
	}

	// The block forecaster covers only the next-block horizon.  It
	// substitutes when neither of the others produced an answer there.
	if selected == nil && target.Value <= BlockForecastMaxTarget {
		if bf, ok := fe.forecasters[BlockForecast]; ok {
			result := bf.EstimateFee(target)
			if !result.Empty() {
				selected = &result
			} else if result.Err != "" {
				errs = append(errs, fmt.Sprintf("%v: %s",
					result.Response.Forecaster, result.Err))
			}
		}
	}

	if selected == nil {
		return nil, errs
	}

	log.Debugf("%v: block height %d, low priority feerate %v, high "+
		"priority feerate %v", selected.Response.Forecaster,
		selected.Response.CurrentBlockHeight,
		selected.Response.LowPriority, selected.Response.HighPriority)

	return selected, errs
}

// policyEstimate asks the long-horizon policy estimator for both bands of
// the given target.  It returns nil when no policy estimator is attached.
func (fe *FeeEstimator) policyEstimate(target ConfirmationTarget) *ForecastResult {
	if fe.policy == nil {
		return nil
	}

	response := ForecastResponse{Forecaster: BlockPolicyEstimator}
	if target.Kind != TargetInBlocks {
		return &ForecastResult{
			Response: response,
			Err:      "Forecaster can only provide an estimate for block targets",
		}
	}

	var feeCalcConservative, feeCalcEconomical policyest.FeeCalculation
	conservative := fe.policy.EstimateSmartFee(int32(target.Value),
		&feeCalcConservative, true)
	economical := fe.policy.EstimateSmartFee(int32(target.Value),
		&feeCalcEconomical, false)

	if feeCalcConservative.BestHeight > 0 {
		response.CurrentBlockHeight = uint32(feeCalcConservative.BestHeight)
	}
	if conservative == 0 || economical == 0 {
		return &ForecastResult{
			Response: response,
			Err:      "Insufficient data or no feerate found",
		}
	}

	response.HighPriority = feefrac.FromPerKVB(int64(conservative))
	response.LowPriority = feefrac.FromPerKVB(int64(economical))
	return &ForecastResult{Response: response}
}
