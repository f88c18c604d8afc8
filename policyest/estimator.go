// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package policyest

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/syndtr/goleveldb/leveldb"
)

const (
	// DefaultMaxConfirms is the default largest confirmation target
	// tracked by the estimator.
	DefaultMaxConfirms uint32 = 32

	// DefaultFeeRateStep is the default multiplier between two
	// consecutive fee rate buckets.
	DefaultFeeRateStep float64 = 1.1

	// defaultDecay is the per-block factor applied to recorded
	// statistics so the estimator follows a changing fee environment.
	defaultDecay float64 = 0.998

	// conservativeSuccessPct is the fraction of tracked transactions in
	// a bucket group that must have confirmed within the target for the
	// group to back a conservative (high priority) estimate.
	conservativeSuccessPct = 0.95

	// economicalSuccessPct is the success fraction used for economical
	// (low priority) estimates.
	economicalSuccessPct = 0.85

	// minGroupCount is how many observations a group of adjacent buckets
	// must exceed before its success ratio is considered meaningful.
	minGroupCount = 1.0

	// maxAllowedBuckets bounds the number of fee rate buckets accepted
	// from configuration or from a database file.
	maxAllowedBuckets = 2000

	// maxAllowedConfirms bounds the confirmation target range accepted
	// from configuration or from a database file.
	maxAllowedConfirms = 788

	// trackedTxHorizonFactor times the maximum target is how long an
	// unconfirmed transaction keeps counting against its bucket before
	// it is dropped from tracking.
	trackedTxHorizonFactor = 2
)

var (
	// errNoSuccessPctBucket is returned when the very first bucket group
	// with enough observations already fails the success threshold.
	errNoSuccessPctBucket = errors.New("no bucket group meets the " +
		"required success percentage")

	// errNotEnoughTxs is returned when the recorded statistics are too
	// thin to evaluate any bucket group.
	errNotEnoughTxs = errors.New("not enough transactions seen for " +
		"estimation")

	dbByteOrder = binary.BigEndian

	dbKeyVersion    = []byte("version")
	dbKeyBounds     = []byte("bucketBounds")
	dbKeyMaxTarget  = []byte("maxTarget")
	dbKeyBestHeight = []byte("bestHeight")
	dbKeyStats      = []byte("confirmStats")
)

// dbVersion is the schema version written to new database files.
const dbVersion byte = 1

// errTargetConfTooLarge is returned when a caller requests a confirmation
// target beyond the tracked range.
type errTargetConfTooLarge struct {
	maxTarget int32
	reqTarget int32
}

func (e errTargetConfTooLarge) Error() string {
	return fmt.Sprintf("target confirmation requested (%d) higher than "+
		"maximum confirmation range tracked by estimator (%d)", e.reqTarget,
		e.maxTarget)
}

// confirmStats is the decayed confirmation history of one fee rate bucket.
type confirmStats struct {
	// withinTarget[i] accumulates transactions from this bucket that
	// confirmed within i+1 blocks of entering the mempool.  The counts
	// are cumulative across targets: a transaction confirmed in one
	// block is counted at every index.
	withinTarget []float64

	// minedCount accumulates every mined transaction from this bucket,
	// including ones that took longer than the largest tracked target.
	minedCount float64

	// feeSum accumulates the fee rates of the mined transactions, used
	// to answer with the typical rate actually paid in the bucket.
	feeSum float64
}

// trackedTx is an unconfirmed transaction this node saw enter its mempool.
type trackedTx struct {
	height int64
	rate   float64
	bucket int
}

// EstimatorConfig stores the construction parameters of an estimator.
type EstimatorConfig struct {
	// MaxConfirms is the largest confirmation target to track.  Zero
	// selects DefaultMaxConfirms.
	MaxConfirms uint32

	// MinBucketFee is the fee rate (sat/kvB) of the lowest tracked
	// bucket.  Transactions paying less are ignored.
	MinBucketFee btcutil.Amount

	// MaxBucketFee caps the bounded buckets: every bounded bucket's
	// upper bound lies below it.  A final unbounded bucket catches
	// everything else.
	//
	// It MUST be higher than MinBucketFee.
	MaxBucketFee btcutil.Amount

	// FeeRateStep is the multiplier between consecutive bucket bounds.
	//
	// It MUST have a value > 1.0.
	FeeRateStep float64

	// DatabaseFile is the location of the estimator database file.  If
	// empty, the estimator state is not backed by the filesystem.
	DatabaseFile string

	// ReadStaleEstimates indicates whether bucket statistics found in
	// the database replace the configured layout on load instead of
	// being validated against it.
	ReadStaleEstimates bool
}

// FeeCalculation reports how an estimate produced by EstimateSmartFee was
// derived.
type FeeCalculation struct {
	// BestHeight is the chain height the estimator statistics were
	// current at.
	BestHeight int64

	// DesiredTarget is the confirmation target the caller asked for.
	DesiredTarget int32

	// ReturnedTarget is the confirmation target the estimate was
	// actually answered at.  Zero when no answer was found.
	ReturnedTarget int32
}

// Estimator tracks how long transactions at each fee rate took to confirm
// and answers what rate historically confirmed within a requested target.
//
// Transactions are observed entering the mempool, assigned to a geometric
// fee rate bucket, and scored when a later block mines them.  Unconfirmed
// transactions older than a requested target count against their bucket, so
// a rate the network is currently ignoring cannot back an estimate.
type Estimator struct {
	// bounds holds the ascending bucket upper bounds in sat/kvB.  The
	// final bound is +Inf.
	bounds []float64

	// stats holds one confirmation history per bucket.
	stats []confirmStats

	// tracked maps the unconfirmed transactions this node saw enter its
	// mempool to their entry data.
	tracked map[chainhash.Hash]trackedTx

	maxTarget  int32
	decay      float64
	bestHeight int64
	db         *leveldb.DB
	mtx        sync.RWMutex
}

// feeBucketBounds generates the geometric ladder of bucket upper bounds,
// capped by a final unbounded bucket.
func feeBucketBounds(minFee, maxFee, step float64) []float64 {
	var bounds []float64
	for f := minFee; f < maxFee; f *= step {
		bounds = append(bounds, f)
	}
	return append(bounds, math.Inf(1))
}

// NewEstimator returns an estimator for the given config.  The estimator
// needs to observe mempool and mined transactions before it can answer
// estimates.
func NewEstimator(cfg *EstimatorConfig) (*Estimator, error) {
	if cfg.MaxBucketFee <= cfg.MinBucketFee {
		return nil, errors.New("maximum bucket fee should not be lower " +
			"than minimum bucket fee")
	}
	if cfg.FeeRateStep <= 1.0 {
		return nil, errors.New("fee rate step should not be <= 1.0")
	}
	if cfg.MinBucketFee <= 0 {
		return nil, errors.New("minimum bucket fee rate cannot be <= 0")
	}
	if cfg.MaxConfirms > maxAllowedConfirms {
		return nil, fmt.Errorf("confirmation count requested (%d) larger "+
			"than maximum allowed (%d)", cfg.MaxConfirms, maxAllowedConfirms)
	}

	maxTarget := cfg.MaxConfirms
	if maxTarget == 0 {
		maxTarget = DefaultMaxConfirms
	}

	bounds := feeBucketBounds(float64(cfg.MinBucketFee),
		float64(cfg.MaxBucketFee), cfg.FeeRateStep)
	if len(bounds) > maxAllowedBuckets {
		return nil, fmt.Errorf("bucket fee configuration yields %d "+
			"buckets, more than the allowed %d", len(bounds),
			maxAllowedBuckets)
	}

	est := &Estimator{
		bounds:     bounds,
		stats:      newConfirmStats(len(bounds), int32(maxTarget)),
		tracked:    make(map[chainhash.Hash]trackedTx),
		maxTarget:  int32(maxTarget),
		decay:      defaultDecay,
		bestHeight: -1,
	}

	if cfg.DatabaseFile != "" {
		db, err := leveldb.OpenFile(cfg.DatabaseFile, nil)
		if err != nil {
			return nil, fmt.Errorf("error opening estimator database: %v", err)
		}
		est.db = db

		if err := est.load(cfg.ReadStaleEstimates); err != nil {
			db.Close()
			return nil, fmt.Errorf("error loading estimator data from "+
				"db: %v", err)
		}
	}

	return est, nil
}

func newConfirmStats(nbBuckets int, maxTarget int32) []confirmStats {
	stats := make([]confirmStats, nbBuckets)
	for i := range stats {
		stats[i].withinTarget = make([]float64, maxTarget)
	}
	return stats
}

// bucketFor returns the index of the bucket a fee rate falls into.  The
// final unbounded bucket catches every rate above the configured maximum.
func (e *Estimator) bucketFor(rate float64) int {
	return sort.SearchFloat64s(e.bounds, rate)
}

// Enable establishes the current best height of the blockchain after
// initializing the chain.  New mempool transactions are recorded as
// entering at this height.
func (e *Estimator) Enable(bestHeight int64) {
	log.Debugf("Setting best height as %d", bestHeight)
	e.mtx.Lock()
	e.bestHeight = bestHeight
	e.mtx.Unlock()
}

// IsEnabled returns whether the estimator is ready to accept new mined and
// mempool transactions.
func (e *Estimator) IsEnabled() bool {
	e.mtx.RLock()
	enabled := e.bestHeight > -1
	e.mtx.RUnlock()
	return enabled
}

// AddMempoolTransaction starts tracking a transaction that entered the
// mempool, paying the given total fee (satoshis) for the given virtual size
// (vbytes).  Transactions paying below the lowest tracked bucket are
// ignored; they only compete for the limited zero fee space of blocks.
//
// This is safe to be called from multiple goroutines.
func (e *Estimator) AddMempoolTransaction(txHash *chainhash.Hash, fee, size int64) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if e.bestHeight < 0 || size <= 0 {
		return
	}
	if _, exists := e.tracked[*txHash]; exists {
		// A transaction is only counted once.
		return
	}

	rate := float64(fee) * 1000 / float64(size)
	if rate < e.bounds[0] {
		return
	}

	log.Debugf("Tracking mempool tx %s at %.0f sat/kvB", txHash, rate)

	e.tracked[*txHash] = trackedTx{
		height: e.bestHeight,
		rate:   rate,
		bucket: e.bucketFor(rate),
	}
}

// RemoveMempoolTransaction stops tracking a transaction that left the
// mempool without confirming, such as by eviction or replacement.
//
// This is safe to be called from multiple goroutines.
func (e *Estimator) RemoveMempoolTransaction(txHash *chainhash.Hash) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if _, exists := e.tracked[*txHash]; !exists {
		return
	}
	log.Debugf("Dropping tx %s from tracking", txHash)
	delete(e.tracked, *txHash)
}

// ProcessBlockTransactions scores the transactions mined in a block at the
// given height, decays the recorded statistics and persists them when a
// database is attached.
//
// This is safe to be called from multiple goroutines.
func (e *Estimator) ProcessBlockTransactions(blockHeight int64,
	txs []*btcutil.Tx) error {

	e.mtx.Lock()
	defer e.mtx.Unlock()

	if e.bestHeight < 0 {
		return nil
	}
	if blockHeight <= e.bestHeight {
		// Reorgs are not explicitly tracked.
		log.Warnf("Trying to process mined transactions at block %d when "+
			"previous best block was at height %d", blockHeight,
			e.bestHeight)
		return nil
	}

	e.decayStats()
	e.bestHeight = blockHeight

	for _, tx := range txs {
		e.recordMined(blockHeight, tx.Hash())
	}
	e.pruneTracked(blockHeight)

	if e.db != nil {
		return e.persist()
	}
	return nil
}

// decayStats ages every recorded statistic by one block.
func (e *Estimator) decayStats() {
	for i := range e.stats {
		s := &e.stats[i]
		s.minedCount *= e.decay
		s.feeSum *= e.decay
		for j := range s.withinTarget {
			s.withinTarget[j] *= e.decay
		}
	}
}

// recordMined scores a single mined transaction against its bucket.
func (e *Estimator) recordMined(blockHeight int64, txHash *chainhash.Hash) {
	desc, exists := e.tracked[*txHash]
	if !exists {
		// Only transactions this node saw in its own mempool count.
		// Counting unknown ones would let miners inflate the estimates
		// with fabricated high fee transactions they never broadcast.
		log.Tracef("Ignoring unknown mined tx %s", txHash)
		return
	}
	delete(e.tracked, *txHash)

	if blockHeight <= desc.height {
		log.Errorf("Mined transaction %s (%d) that was known from "+
			"mempool at a higher block height (%d)", txHash, blockHeight,
			desc.height)
		return
	}

	blocksToConfirm := blockHeight - desc.height
	log.Debugf("Scoring mined tx %s (rate %.0f, delay %d)", txHash,
		desc.rate, blocksToConfirm)

	s := &e.stats[desc.bucket]
	for i := int(blocksToConfirm) - 1; i < len(s.withinTarget); i++ {
		s.withinTarget[i]++
	}
	// A transaction slower than every tracked target still counts as
	// mined, weighing the bucket's success ratios down.
	s.minedCount++
	s.feeSum += desc.rate
}

// pruneTracked drops unconfirmed transactions that have lingered past the
// tracking horizon.  They have already counted against their bucket for
// every target; keeping them longer only grows the map.
func (e *Estimator) pruneTracked(blockHeight int64) {
	horizon := int64(trackedTxHorizonFactor * e.maxTarget)
	for hash, desc := range e.tracked {
		if blockHeight-desc.height > horizon {
			log.Tracef("Dropping stale tracked tx %s", hash)
			delete(e.tracked, hash)
		}
	}
}

// stuckByBucket counts, per bucket, the tracked transactions that have
// already waited at least target blocks without confirming.
func (e *Estimator) stuckByBucket(target int32) []float64 {
	stuck := make([]float64, len(e.stats))
	for _, desc := range e.tracked {
		if e.bestHeight-desc.height >= int64(target) {
			stuck[desc.bucket]++
		}
	}
	return stuck
}

// estimate walks the buckets from the most expensive down, merging adjacent
// buckets into groups until a group holds enough observations to judge.  A
// group passes when the fraction of its transactions confirmed within the
// target, counting stuck mempool transactions as failures, meets
// successPct.  The answer is the average mined fee rate of the cheapest
// passing group; the walk stops at the first failing group since every
// cheaper rate would fare worse.
//
// Callers must hold the estimator lock.
func (e *Estimator) estimate(target int32, successPct float64) (float64, error) {
	if target <= 0 {
		return 0, errors.New("target confirmation range cannot be <= 0")
	}
	if target > e.maxTarget {
		return 0, errTargetConfTooLarge{
			maxTarget: e.maxTarget,
			reqTarget: target,
		}
	}

	stuck := e.stuckByBucket(target)
	targetIdx := int(target) - 1

	var okCount, minedCount, totalCount, feeSum float64
	bestFee := 0.0
	found := false
	evaluated := false
	for b := len(e.stats) - 1; b >= 0; b-- {
		s := &e.stats[b]
		okCount += s.withinTarget[targetIdx]
		minedCount += s.minedCount
		totalCount += s.minedCount + stuck[b]
		feeSum += s.feeSum

		if totalCount <= minGroupCount {
			continue
		}
		evaluated = true
		if okCount/totalCount < successPct {
			break
		}
		if minedCount > 0 {
			bestFee = feeSum / minedCount
			found = true
		}
		okCount, minedCount, totalCount, feeSum = 0, 0, 0, 0
	}

	if !found {
		if !evaluated {
			return 0, errNotEnoughTxs
		}
		return 0, errNoSuccessPctBucket
	}
	return bestFee, nil
}

// EstimateSmartFee calculates the suggested fee rate (sat/kvB) for
// confirmation within target blocks, at the conservative or economical
// success threshold.  When feeCalc is non-nil it is filled with how the
// estimate was derived.  A zero return means no answer could be produced
// for the requested target; callers report that as missing data.
//
// This is safe to be called from multiple goroutines.
func (e *Estimator) EstimateSmartFee(target int32, feeCalc *FeeCalculation,
	conservative bool) btcutil.Amount {

	successPct := economicalSuccessPct
	if conservative {
		successPct = conservativeSuccessPct
	}

	e.mtx.RLock()
	defer e.mtx.RUnlock()

	if feeCalc != nil {
		feeCalc.BestHeight = e.bestHeight
		feeCalc.DesiredTarget = target
	}

	rate, err := e.estimate(target, successPct)
	if err != nil {
		log.Debugf("Smart fee estimate at target %d unavailable: %v",
			target, err)
		return 0
	}

	rate = math.Round(rate)
	if rate < e.bounds[0] {
		// Never suggest less than the lowest tracked rate.
		rate = e.bounds[0]
	}
	if feeCalc != nil {
		feeCalc.ReturnedTarget = target
	}

	return btcutil.Amount(rate)
}

// DumpBuckets returns the internal estimator state as a table: one row per
// bucket with its mined count, average paid rate, and the fraction of its
// transactions confirmed within each tracked target.
func (e *Estimator) DumpBuckets() string {
	e.mtx.RLock()
	defer e.mtx.RUnlock()

	var b strings.Builder
	fmt.Fprintf(&b, "%16s %10s %14s", "bucket sat/kvB", "mined", "avg sat/kvB")
	for t := int32(1); t <= e.maxTarget; t++ {
		fmt.Fprintf(&b, " %7s", fmt.Sprintf("<=%d", t))
	}
	b.WriteByte('\n')

	for i := range e.stats {
		s := &e.stats[i]
		avg := 0.0
		if s.minedCount > 0 {
			avg = s.feeSum / s.minedCount
		}
		fmt.Fprintf(&b, "%16.0f %10.1f %14.0f", e.bounds[i],
			s.minedCount, avg)
		for _, ok := range s.withinTarget {
			ratio := 0.0
			if s.minedCount > 0 {
				ratio = ok / s.minedCount
			}
			fmt.Fprintf(&b, " %7.2f", ratio)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Close closes the database (if it is currently opened).
func (e *Estimator) Close() {
	e.mtx.Lock()

	if e.db != nil {
		log.Trace("Closing fee estimator database")
		e.db.Close()
		e.db = nil
	}

	e.mtx.Unlock()
}

// encodeStats flattens the bucket statistics into the single value stored
// under dbKeyStats: per bucket, the mined count, fee sum and the
// withinTarget counters.
func (e *Estimator) encodeStats() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	for i := range e.stats {
		s := &e.stats[i]
		record := append([]float64{s.minedCount, s.feeSum},
			s.withinTarget...)
		if err := binary.Write(buf, dbByteOrder, record); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// decodeStats is the inverse of encodeStats for a table of the given
// dimensions.
func decodeStats(data []byte, nbBuckets int, maxTarget int32) ([]confirmStats, error) {
	recordLen := (2 + int(maxTarget)) * 8
	if len(data) != nbBuckets*recordLen {
		return nil, fmt.Errorf("confirmation stats have wrong size (%d "+
			"bytes for %d buckets)", len(data), nbBuckets)
	}

	stats := newConfirmStats(nbBuckets, maxTarget)
	record := make([]float64, 2+maxTarget)
	reader := bytes.NewReader(data)
	for i := range stats {
		if err := binary.Read(reader, dbByteOrder, record); err != nil {
			return nil, err
		}
		stats[i].minedCount = record[0]
		stats[i].feeSum = record[1]
		copy(stats[i].withinTarget, record[2:])
	}
	return stats, nil
}

// persist writes the mutable estimator state to the database.  The bucket
// layout is immutable after construction and only written by load.
//
// Callers must hold the estimator lock.
func (e *Estimator) persist() error {
	statsBytes, err := e.encodeStats()
	if err != nil {
		return fmt.Errorf("error encoding confirmation stats: %v", err)
	}

	var heightBytes [8]byte
	dbByteOrder.PutUint64(heightBytes[:], uint64(e.bestHeight))

	batch := new(leveldb.Batch)
	batch.Put(dbKeyBestHeight, heightBytes[:])
	batch.Put(dbKeyStats, statsBytes)
	if err := e.db.Write(batch, nil); err != nil {
		return fmt.Errorf("error writing update to estimator db file: %v",
			err)
	}
	return nil
}

// initDatabase writes the full estimator state, including the bucket
// layout, into a fresh database file.
func (e *Estimator) initDatabase() error {
	boundsBytes := bytes.NewBuffer(nil)
	if err := binary.Write(boundsBytes, dbByteOrder, e.bounds); err != nil {
		return fmt.Errorf("error encoding bucket bounds: %v", err)
	}

	var maxTargetBytes [4]byte
	dbByteOrder.PutUint32(maxTargetBytes[:], uint32(e.maxTarget))

	batch := new(leveldb.Batch)
	batch.Put(dbKeyVersion, []byte{dbVersion})
	batch.Put(dbKeyMaxTarget, maxTargetBytes[:])
	batch.Put(dbKeyBounds, boundsBytes.Bytes())
	if err := e.db.Write(batch, nil); err != nil {
		return fmt.Errorf("error writing initial estimator db file: %v", err)
	}
	if err := e.persist(); err != nil {
		return err
	}

	log.Debug("Initialized fee estimator database")
	return nil
}

// load restores the estimator state from the opened database, initializing
// a fresh file when it holds no data yet.
//
// When replaceBuckets is unset, the stored bucket layout and target range
// must match the configured ones; a mismatch means the file belongs to a
// different configuration and an error is returned rather than mixing
// statistics across layouts.  When set, the stored layout replaces the
// configured one wholesale.
//
// Tracked mempool transactions are never stored: persisting them without
// the mempool's own state would leave them counting against their buckets
// forever.
func (e *Estimator) load(replaceBuckets bool) error {
	version, err := e.db.Get(dbKeyVersion, nil)
	if err != nil && !errors.Is(err, leveldb.ErrNotFound) {
		return fmt.Errorf("error reading version from db: %v", err)
	}
	if len(version) == 0 {
		return e.initDatabase()
	}
	if len(version) != 1 || version[0] != dbVersion {
		return fmt.Errorf("incompatible database version: %d", version)
	}

	maxTargetBytes, err := e.db.Get(dbKeyMaxTarget, nil)
	if err != nil {
		return fmt.Errorf("error reading max target from db file: %v", err)
	}
	if len(maxTargetBytes) != 4 {
		return errors.New("wrong number of bytes in stored max target")
	}
	fileMaxTarget := int32(dbByteOrder.Uint32(maxTargetBytes))
	if fileMaxTarget <= 0 || fileMaxTarget > maxAllowedConfirms {
		return fmt.Errorf("max target stored in database (%d) out of "+
			"the allowed range", fileMaxTarget)
	}

	boundsBytes, err := e.db.Get(dbKeyBounds, nil)
	if err != nil {
		return fmt.Errorf("error reading bucket bounds from db file: %v", err)
	}
	nbBuckets := len(boundsBytes) / 8
	if nbBuckets == 0 || nbBuckets > maxAllowedBuckets {
		return fmt.Errorf("database holds %d fee buckets, outside the "+
			"allowed range", nbBuckets)
	}
	fileBounds := make([]float64, nbBuckets)
	err = binary.Read(bytes.NewReader(boundsBytes), dbByteOrder, fileBounds)
	if err != nil {
		return fmt.Errorf("error decoding bucket bounds: %v", err)
	}

	if !replaceBuckets {
		if fileMaxTarget != e.maxTarget {
			return errors.New("max confirmation target in database file " +
				"different than currently configured")
		}
		if len(fileBounds) != len(e.bounds) {
			return errors.New("number of fee buckets stored in database " +
				"file different than currently configured")
		}
		for i, bound := range fileBounds {
			if bound != e.bounds[i] {
				return errors.New("bucket fee bounds stored in database " +
					"file different than currently configured")
			}
		}
	}

	statsBytes, err := e.db.Get(dbKeyStats, nil)
	if err != nil {
		return fmt.Errorf("error reading confirmation stats from db "+
			"file: %v", err)
	}
	fileStats, err := decodeStats(statsBytes, nbBuckets, fileMaxTarget)
	if err != nil {
		return err
	}

	heightBytes, err := e.db.Get(dbKeyBestHeight, nil)
	if err != nil {
		return fmt.Errorf("error reading best height from db file: %v", err)
	}
	if len(heightBytes) != 8 {
		return errors.New("wrong number of bytes in stored best height")
	}

	e.bounds = fileBounds
	e.maxTarget = fileMaxTarget
	e.stats = fileStats
	e.bestHeight = int64(dbByteOrder.Uint64(heightBytes))
	log.Debug("Loaded fee estimator database")

	return nil
}
