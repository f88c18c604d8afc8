// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package policyest

import (
	"encoding/binary"
	"errors"
	"path/filepath"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
)

func testConfig() *EstimatorConfig {
	return &EstimatorConfig{
		MaxConfirms:  DefaultMaxConfirms,
		MinBucketFee: 1000,
		MaxBucketFee: 100000,
		FeeRateStep:  DefaultFeeRateStep,
	}
}

// estimatorTester drives an estimator through mempool and block events.
type estimatorTester struct {
	t       *testing.T
	est     *Estimator
	counter uint64
	height  int64
	mempool []*btcutil.Tx
}

func newEstimatorTester(t *testing.T, est *Estimator) *estimatorTester {
	est.Enable(1000)
	return &estimatorTester{t: t, est: est, height: 1000}
}

// addTx tracks a new mempool transaction paying the given rate in sat/kvB.
func (et *estimatorTester) addTx(rate int64) *btcutil.Tx {
	et.counter++
	msgTx := wire.NewMsgTx(wire.TxVersion)
	var prev chainhash.Hash
	binary.LittleEndian.PutUint64(prev[:8], et.counter)
	msgTx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&prev, 0), nil, nil))
	msgTx.AddTxOut(wire.NewTxOut(int64(et.counter), nil))

	tx := btcutil.NewTx(msgTx)
	et.est.AddMempoolTransaction(tx.Hash(), rate, 1000)
	et.mempool = append(et.mempool, tx)
	return tx
}

// mineBlock confirms all currently tracked mempool transactions in the next
// block.
func (et *estimatorTester) mineBlock() {
	et.height++
	require.NoError(et.t,
		et.est.ProcessBlockTransactions(et.height, et.mempool))
	et.mempool = nil
}

// mineEmptyBlock advances the chain without confirming anything.
func (et *estimatorTester) mineEmptyBlock() {
	et.height++
	require.NoError(et.t,
		et.est.ProcessBlockTransactions(et.height, nil))
}

func TestNewEstimatorConfigValidation(t *testing.T) {
	cfg := testConfig()
	cfg.MaxBucketFee = cfg.MinBucketFee
	_, err := NewEstimator(cfg)
	require.Error(t, err)

	cfg = testConfig()
	cfg.FeeRateStep = 1.0
	_, err = NewEstimator(cfg)
	require.Error(t, err)

	cfg = testConfig()
	cfg.MinBucketFee = 0
	_, err = NewEstimator(cfg)
	require.Error(t, err)

	cfg = testConfig()
	cfg.MaxConfirms = maxAllowedConfirms + 1
	_, err = NewEstimator(cfg)
	require.Error(t, err)
}

func TestEstimateErrors(t *testing.T) {
	est, err := NewEstimator(testConfig())
	require.NoError(t, err)

	// No data tracked yet.
	_, err = est.estimate(1, conservativeSuccessPct)
	require.ErrorIs(t, err, errNotEnoughTxs)

	// Invalid and out of range targets.
	_, err = est.estimate(0, conservativeSuccessPct)
	require.Error(t, err)

	_, err = est.estimate(int32(DefaultMaxConfirms)+1, conservativeSuccessPct)
	var confErr errTargetConfTooLarge
	require.True(t, errors.As(err, &confErr))
	require.EqualValues(t, DefaultMaxConfirms, confErr.maxTarget)
}

// TestEstimateSmartFee checks both success thresholds and the zero return
// when no answer is available.
func TestEstimateSmartFee(t *testing.T) {
	est, err := NewEstimator(testConfig())
	require.NoError(t, err)

	// No data: zero rate, best height still reported.
	est.Enable(1000)
	var feeCalc FeeCalculation
	rate := est.EstimateSmartFee(1, &feeCalc, true)
	require.Zero(t, rate)
	require.EqualValues(t, 1000, feeCalc.BestHeight)
	require.EqualValues(t, 1, feeCalc.DesiredTarget)
	require.Zero(t, feeCalc.ReturnedTarget)

	// A uniform set of next-block confirmations answers with that rate
	// at both thresholds.
	et := newEstimatorTester(t, est)
	for i := 0; i < 10; i++ {
		et.addTx(30000)
	}
	et.mineBlock()

	conservative := est.EstimateSmartFee(1, &feeCalc, true)
	require.EqualValues(t, 30000, conservative)
	require.EqualValues(t, et.height, feeCalc.BestHeight)
	require.EqualValues(t, 1, feeCalc.ReturnedTarget)

	economical := est.EstimateSmartFee(1, nil, false)
	require.EqualValues(t, 30000, economical)

	// Out of range targets yield no answer rather than an error.
	require.Zero(t, est.EstimateSmartFee(int32(DefaultMaxConfirms)+1,
		nil, true))
}

// TestEstimateStuckTransactionsPenalize ensures unconfirmed transactions
// older than the target count as failures against their bucket.
func TestEstimateStuckTransactionsPenalize(t *testing.T) {
	est, err := NewEstimator(testConfig())
	require.NoError(t, err)
	et := newEstimatorTester(t, est)

	for i := 0; i < 10; i++ {
		et.addTx(30000)
	}
	et.mineBlock()
	require.EqualValues(t, 30000, est.EstimateSmartFee(1, nil, true))

	// Ten more transactions at the same rate enter the mempool and then
	// sit through a block without confirming: the bucket's success ratio
	// collapses and the estimate disappears.
	for i := 0; i < 10; i++ {
		et.addTx(30000)
	}
	et.mineEmptyBlock()
	require.Zero(t, est.EstimateSmartFee(1, nil, true))
}

// TestEstimateSlowConfirmationRaisesRate ensures a cheap bucket that fails
// to confirm quickly is skipped in favor of the faster, more expensive one.
func TestEstimateSlowConfirmationRaisesRate(t *testing.T) {
	est, err := NewEstimator(testConfig())
	require.NoError(t, err)
	et := newEstimatorTester(t, est)

	// Expensive transactions confirm in the next block; cheap ones take
	// three blocks.
	var fast, cheap []*btcutil.Tx
	for i := 0; i < 10; i++ {
		fast = append(fast, et.addTx(50000))
		cheap = append(cheap, et.addTx(5000))
	}
	et.mempool = fast
	et.mineBlock()
	et.mineEmptyBlock()
	et.height++
	require.NoError(t, est.ProcessBlockTransactions(et.height, cheap))

	// At target 1 only the expensive bucket qualifies.
	require.EqualValues(t, 50000, est.EstimateSmartFee(1, nil, true))

	// At target 3 the cheap bucket qualifies too and wins.
	rate := est.EstimateSmartFee(3, nil, true)
	require.Greater(t, int64(rate), int64(0))
	require.Less(t, int64(rate), int64(50000))
}

// TestMempoolTracking exercises add/remove bookkeeping.
func TestMempoolTracking(t *testing.T) {
	est, err := NewEstimator(testConfig())
	require.NoError(t, err)

	// Transactions are ignored before the estimator is enabled.
	var hash chainhash.Hash
	est.AddMempoolTransaction(&hash, 30000, 1000)
	require.Empty(t, est.tracked)

	et := newEstimatorTester(t, est)
	tx := et.addTx(30000)
	require.Len(t, est.tracked, 1)

	// A duplicate add is not double counted.
	est.AddMempoolTransaction(tx.Hash(), 30000, 1000)
	require.Len(t, est.tracked, 1)

	// Transactions below the minimum tracked rate are ignored.
	var lowHash chainhash.Hash
	lowHash[0] = 0xff
	est.AddMempoolTransaction(&lowHash, 1, 1000)
	require.Len(t, est.tracked, 1)

	est.RemoveMempoolTransaction(tx.Hash())
	require.Empty(t, est.tracked)

	// Removing an unknown transaction is a no-op.
	est.RemoveMempoolTransaction(tx.Hash())
}

// TestTrackedTxPruning ensures transactions that linger unconfirmed past
// the horizon are eventually dropped from tracking.
func TestTrackedTxPruning(t *testing.T) {
	est, err := NewEstimator(testConfig())
	require.NoError(t, err)
	et := newEstimatorTester(t, est)

	et.addTx(30000)
	et.mempool = nil
	require.Len(t, est.tracked, 1)

	horizon := trackedTxHorizonFactor * int(DefaultMaxConfirms)
	for i := 0; i <= horizon; i++ {
		et.mineEmptyBlock()
	}
	require.Empty(t, est.tracked)
}

// TestDatabasePersistence stores estimator state in leveldb and reloads it.
func TestDatabasePersistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "feesdb")

	cfg := testConfig()
	cfg.DatabaseFile = dbPath
	est, err := NewEstimator(cfg)
	require.NoError(t, err)

	et := newEstimatorTester(t, est)
	for i := 0; i < 10; i++ {
		et.addTx(30000)
	}
	et.mineBlock()

	rate := est.EstimateSmartFee(1, nil, true)
	require.EqualValues(t, 30000, rate)
	est.Close()

	// Reopening with the same config loads the stored statistics, chain
	// height and reproduces the estimate.
	cfg = testConfig()
	cfg.DatabaseFile = dbPath
	est, err = NewEstimator(cfg)
	require.NoError(t, err)
	defer est.Close()

	require.True(t, est.IsEnabled())
	var feeCalc FeeCalculation
	reloaded := est.EstimateSmartFee(1, &feeCalc, true)
	require.Equal(t, rate, reloaded)
	require.EqualValues(t, et.height, feeCalc.BestHeight)
}

// TestDatabaseConfigMismatch ensures an incompatible on-disk configuration
// is rejected unless stale estimates were requested.
func TestDatabaseConfigMismatch(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "feesdb")

	cfg := testConfig()
	cfg.DatabaseFile = dbPath
	est, err := NewEstimator(cfg)
	require.NoError(t, err)
	est.Close()

	mismatched := testConfig()
	mismatched.FeeRateStep = 1.5
	mismatched.DatabaseFile = dbPath
	_, err = NewEstimator(mismatched)
	require.Error(t, err)

	mismatched.ReadStaleEstimates = true
	est, err = NewEstimator(mismatched)
	require.NoError(t, err)
	est.Close()
}
