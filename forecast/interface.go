// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package forecast

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/btcsuite/feeforecast/feefrac"
)

// TxMempool defines the view of the mempool the fee estimator needs.
//
// The interface contract requires that all of these methods are safe for
// concurrent access.
type TxMempool interface {
	// LoadTried returns whether the initial load of persisted mempool
	// transactions has been attempted.  Estimates made before that are
	// not meaningful.
	LoadTried() bool

	// Count returns the number of transactions in the main pool.
	Count() int
}

// BlockIndex describes a block in the best chain.
type BlockIndex struct {
	// Height is the block height in the best chain.
	Height uint32

	// Hash is the block hash.
	Hash chainhash.Hash
}

// ChainState defines the view of the chain state the forecasters need.
//
// The interface contract requires that all of these methods are safe for
// concurrent access.
type ChainState interface {
	// ActiveTip returns the current best chain tip, or nil when no
	// active chain state is available.
	ActiveTip() *BlockIndex
}

// BlockTemplate is a candidate block produced by a block assembler.
type BlockTemplate struct {
	// FeeRateHistogram holds one entry per selected transaction,
	// ordered by descending mining score.
	FeeRateHistogram []feefrac.FeeFrac
}

// BlockAssembler defines the block assembly capability the mempool
// forecaster uses to compose a hypothetical next block.
//
// The interface contract requires that all of these methods are safe for
// concurrent access.
type BlockAssembler interface {
	// CreateNewBlock assembles a candidate next block paying to the
	// provided placeholder script using the current mempool contents.
	// The template is not validity checked since it is never mined.
	CreateNewBlock(payToScript []byte) (*BlockTemplate, error)
}

// RemovedTx describes a transaction removed from the mempool because a block
// connecting to the best chain confirmed it.  The validation subsystem
// delivers these to the block forecaster in confirmation order, parents
// before children.
type RemovedTx struct {
	// Tx is the removed transaction.
	Tx *btcutil.Tx

	// Fee is the total fee the transaction pays in satoshis.
	Fee btcutil.Amount

	// VSize is the virtual size of the transaction in vbytes.
	VSize int64
}
