// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package feefrac provides an exact fee rate representation as a fraction of
// a total fee in satoshis over a virtual size in vbytes.
package feefrac

import (
	"fmt"
	"math/bits"

	"github.com/btcsuite/btcd/btcutil"
)

// FeeFrac is a fee rate expressed as the raw (fee, size) pair it was derived
// from.  Keeping the pair instead of a divided-out rate allows comparisons
// without any loss of precision.  Both fields are non-negative.
//
// The zero value is the "no data" sentinel.
type FeeFrac struct {
	// Fee is the total fee in satoshis.
	Fee btcutil.Amount

	// Size is the virtual size in vbytes the fee pays for.
	Size int64
}

// IsEmpty returns whether the fee fraction carries no data.  A fraction with
// either a zero fee or a zero size cannot express a usable fee rate.
func (f FeeFrac) IsEmpty() bool {
	return f.Fee == 0 || f.Size == 0
}

// Cmp compares the fee rates of two fractions and returns -1, 0 or 1 when f
// is respectively lower than, equal to or higher than other.  The comparison
// cross-multiplies into 128 bits, so rates such as 3/2 and 6/4 compare equal
// and no overflow is possible for any representable fee and size.
//
// An empty fraction compares lower than any non-empty one.
func (f FeeFrac) Cmp(other FeeFrac) int {
	if f.Size == 0 || other.Size == 0 {
		switch {
		case f.Size == other.Size:
			return 0
		case f.Size == 0:
			return -1
		default:
			return 1
		}
	}

	lhsHi, lhsLo := bits.Mul64(uint64(f.Fee), uint64(other.Size))
	rhsHi, rhsLo := bits.Mul64(uint64(other.Fee), uint64(f.Size))
	switch {
	case lhsHi != rhsHi:
		if lhsHi < rhsHi {
			return -1
		}
		return 1
	case lhsLo != rhsLo:
		if lhsLo < rhsLo {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// FeePerKVB returns the fee rate normalized to satoshis per kilo-vbyte,
// rounded down.  An empty fraction normalizes to zero.
func (f FeeFrac) FeePerKVB() int64 {
	if f.Size == 0 {
		return 0
	}
	return int64(f.Fee) * 1000 / f.Size
}

// FromPerKVB returns the fee fraction representing a rate given in satoshis
// per kilo-vbyte.
func FromPerKVB(rate int64) FeeFrac {
	if rate == 0 {
		return FeeFrac{}
	}
	return FeeFrac{Fee: btcutil.Amount(rate), Size: 1000}
}

// String returns the fee fraction as a human readable sat/kvB rate.
func (f FeeFrac) String() string {
	return fmt.Sprintf("%d sat/kvB", f.FeePerKVB())
}
