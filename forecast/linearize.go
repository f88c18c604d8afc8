// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package forecast

import (
	"sort"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/btcsuite/feeforecast/feefrac"
)

// linearEntry tracks one removed transaction during linearization along with
// its running ancestor package totals.
type linearEntry struct {
	txid         chainhash.Hash
	order        int
	fee          btcutil.Amount
	vsize        int64
	ancestorFee  btcutil.Amount
	ancestorSize int64
}

// ancestorScore returns the entry's current ancestor package fee rate.
func (e *linearEntry) ancestorScore() feefrac.FeeFrac {
	return feefrac.FeeFrac{Fee: e.ancestorFee, Size: e.ancestorSize}
}

// linearize arranges one block's worth of removed transactions in the order
// a profit-maximizing miner would have selected them and emits one fee
// fraction per transaction carrying its mining score.
//
// The mining score of a transaction is the fee rate of the best remaining
// ancestor package it belongs to: a child paying for its parents lifts the
// parents to the package rate.  The algorithm repeatedly selects the
// remaining transaction with the highest ancestor package fee rate, emits
// its not yet included ancestors as a package at that rate, and deducts the
// included fees and sizes from the package totals of every remaining
// descendant.
//
// The returned histogram is ordered by descending mining score and is
// suitable for percentile computation.  Ties between equal package rates are
// broken by confirmation order.
func linearize(removed []RemovedTx) []feefrac.FeeFrac {
	graph := deriveAncestry(removed)

	entries := make(map[chainhash.Hash]*linearEntry, len(removed))
	for i, r := range removed {
		entries[*r.Tx.Hash()] = &linearEntry{
			txid:  *r.Tx.Hash(),
			order: i,
			fee:   r.Fee,
			vsize: r.VSize,
		}
	}
	for _, entry := range entries {
		for anc := range graph[entry.txid].ancestors {
			entry.ancestorFee += entries[anc].fee
			entry.ancestorSize += entries[anc].vsize
		}
	}

	histogram := make([]feefrac.FeeFrac, 0, len(removed))
	for len(entries) > 0 {
		// Select the best remaining ancestor package.
		var best *linearEntry
		for _, entry := range entries {
			if best == nil {
				best = entry
				continue
			}
			cmp := entry.ancestorScore().Cmp(best.ancestorScore())
			if cmp > 0 || (cmp == 0 && entry.order < best.order) {
				best = entry
			}
		}

		// The package is the selected transaction plus all of its
		// ancestors that have not been included yet, emitted in
		// confirmation order.
		var pkg []*linearEntry
		for anc := range graph[best.txid].ancestors {
			if entry, ok := entries[anc]; ok {
				pkg = append(pkg, entry)
			}
		}
		sort.Slice(pkg, func(i, j int) bool {
			return pkg[i].order < pkg[j].order
		})

		pkgFee, pkgSize := best.ancestorFee, best.ancestorSize
		for _, member := range pkg {
			histogram = append(histogram, feefrac.FeeFrac{
				Fee:  btcutil.Amount(int64(pkgFee) * member.vsize / pkgSize),
				Size: member.vsize,
			})
			delete(entries, member.txid)
		}

		// Remaining descendants no longer pay for the included
		// package members.
		for _, member := range pkg {
			for desc := range graph[member.txid].descendants {
				if entry, ok := entries[desc]; ok {
					entry.ancestorFee -= member.fee
					entry.ancestorSize -= member.vsize
				}
			}
		}
	}

	return histogram
}
