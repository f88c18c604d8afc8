// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package policyest tracks long-horizon confirmation statistics to estimate
fee rates for new transactions.

Unlike the short-horizon forecasters in package forecast, which read the
current mempool and the last handful of blocks, this estimator accumulates
history: every transaction observed entering the mempool is recorded, and
when it is later mined the estimator notes how many blocks it waited at
which fee rate.  Mined transactions are grouped into geometric fee rate
buckets and confirmation ranges, producing a table of how often each bucket
confirmed within each range.  Older observations are decayed on every new
block so the table follows a changing fee environment.

An estimate for a confirmation target is found by walking the buckets from
the most expensive down, merging adjacent buckets until enough observations
accumulate to judge them: the answer is the typical fee rate of the
cheapest group that still confirmed within the target often enough, with
transactions sitting unconfirmed past the target counted as failures.  Two
success thresholds are supported: a conservative one for callers that want
a high degree of certainty and a cheaper economical one.

Only transactions the local node saw in its own mempool are counted.  This
stops miners from nudging the estimates upwards with fabricated high fee
transactions they never broadcast: to influence the statistics a
transaction must be published, at which point a competing miner may collect
its fee.

The estimator state can optionally be persisted to a leveldb database so a
restarted node does not start from scratch.  Mempool observations are not
persisted, only confirmed bucket statistics.
*/
package policyest
