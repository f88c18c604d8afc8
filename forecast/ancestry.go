// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package forecast

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// txRelatives holds the ancestor and descendant id sets of a transaction.
// A transaction is a member of both of its own sets.
type txRelatives struct {
	ancestors   map[chainhash.Hash]struct{}
	descendants map[chainhash.Hash]struct{}
}

// txAncestry maps each transaction id to its ancestor and descendant
// closures within one block's worth of removed transactions.
type txAncestry map[chainhash.Hash]*txRelatives

// deriveAncestry computes the ancestor and descendant closures of the
// transactions removed from the mempool for a block.  The slice must be in
// confirmation order, parents before children, which is the order blocks
// commit transactions in.
//
// Inputs whose referenced transaction is not part of the removed set, such
// as outputs confirmed in earlier blocks or coinbases, do not contribute
// relatives.
func deriveAncestry(removed []RemovedTx) txAncestry {
	graph := make(txAncestry, len(removed))
	for _, r := range removed {
		txid := *r.Tx.Hash()
		rel := &txRelatives{
			ancestors:   map[chainhash.Hash]struct{}{txid: {}},
			descendants: map[chainhash.Hash]struct{}{txid: {}},
		}
		graph[txid] = rel

		for _, txIn := range r.Tx.MsgTx().TxIn {
			parent, ok := graph[txIn.PreviousOutPoint.Hash]
			if !ok {
				continue
			}

			// Every ancestor of the parent is an ancestor of this
			// transaction, and this transaction is a descendant of
			// each of them.
			for anc := range parent.ancestors {
				rel.ancestors[anc] = struct{}{}
				graph[anc].descendants[txid] = struct{}{}
			}
		}
	}
	return graph
}
