// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package forecast

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"github.com/btcsuite/feeforecast/feefrac"
)

// TestLinearizeUnrelated verifies unrelated transactions are emitted in
// descending fee rate order, each at its own rate.
func TestLinearizeUnrelated(t *testing.T) {
	var builder txBuilder
	cheap := builder.tx(1000, 100)
	mid := builder.tx(3000, 100)
	rich := builder.tx(9000, 100)
	removed := []RemovedTx{cheap, mid, rich}

	histogram := linearize(removed)
	want := []feefrac.FeeFrac{
		{Fee: 9000, Size: 100},
		{Fee: 3000, Size: 100},
		{Fee: 1000, Size: 100},
	}
	require.Equal(t, want, histogram, spew.Sdump(histogram))
}

// TestLinearizeChildPaysForParent verifies a high fee child lifts its cheap
// parent to the package rate and both precede an intermediate standalone
// transaction.
func TestLinearizeChildPaysForParent(t *testing.T) {
	var builder txBuilder
	parent := builder.tx(1000, 100)
	child := builder.tx(9000, 100, parent)
	standalone := builder.tx(3000, 100)
	removed := []RemovedTx{parent, child, standalone}

	histogram := linearize(removed)

	// The parent/child package pays 10,000 sat over 200 vbytes, a rate
	// above the standalone's 3,000 sat over 100 vbytes.  Both package
	// members are emitted at the package rate, parent first.
	want := []feefrac.FeeFrac{
		{Fee: 5000, Size: 100},
		{Fee: 5000, Size: 100},
		{Fee: 3000, Size: 100},
	}
	require.Equal(t, want, histogram, spew.Sdump(histogram))
}

// TestLinearizeDeductsIncludedAncestors verifies that once a package is
// included, a remaining descendant is scored only on what it still pays
// for.
func TestLinearizeDeductsIncludedAncestors(t *testing.T) {
	var builder txBuilder
	parent := builder.tx(8000, 100)
	child := builder.tx(2000, 100, parent)
	removed := []RemovedTx{parent, child}

	histogram := linearize(removed)

	// The parent is selected on its own at 8,000/100; the child is then
	// scored at its individual 2,000/100 rather than the combined rate.
	want := []feefrac.FeeFrac{
		{Fee: 8000, Size: 100},
		{Fee: 2000, Size: 100},
	}
	require.Equal(t, want, histogram)
}

// TestLinearizeFeedsPercentiles runs the full pipeline over a block's worth
// of removed transactions and checks the monotonicity invariant holds on
// the resulting percentiles.
func TestLinearizeFeedsPercentiles(t *testing.T) {
	var builder txBuilder
	var removed []RemovedTx
	// 40 chains of a cheap parent and a child paying a descending fee,
	// together filling the reference block weight.
	for i := 0; i < 40; i++ {
		parent := builder.tx(1000, 12500)
		child := builder.tx(btcutil.Amount(4000000-i*50000), 12500, parent)
		removed = append(removed, parent, child)
	}

	histogram := linearize(removed)
	require.Len(t, histogram, 80)

	percentiles := calcPercentiles(histogram, DefaultBlockMaxWeight)
	require.False(t, percentiles.Empty())
	requireMonotone(t, percentiles)
}
