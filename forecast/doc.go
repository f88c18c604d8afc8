// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package forecast provides short-horizon transaction fee rate forecasting.

A fee rate forecast answers the question "what fee rate does a transaction
need to pay to confirm within the next N blocks".  No single data source
answers it reliably on its own, so this package aggregates several
independent forecasters and reconciles their answers:

  - The mempool forecaster builds a hypothetical next block out of the
    currently unconfirmed transactions and reads fee rate percentiles off
    it.  It reflects current demand, but only for the shortest targets.

  - The block forecaster watches the transactions confirmed by the last few
    mined blocks, reconstructs their mining scores (accounting for children
    that paid for their parents), and averages the per-block fee rate
    percentiles.

  - The long-horizon policy estimator (package policyest) tracks historical
    confirmation statistics per fee rate bucket and covers targets the
    other two cannot.

The FeeEstimator coordinator holds the registry of forecasters.  For each
request it polls the policy estimator and the mempool forecaster and selects
the cheaper non-empty answer, preferring the mempool forecast on ties.  The
block forecaster is polled only for next-block targets, and only when
neither of the other two produced an answer.
Forecaster failures are diagnostics, not errors: the caller always receives
the full list of messages from forecasters that could not answer.

Each forecast carries two bands: a high priority fee rate for inclusion as
soon as possible and a cheaper low priority rate for callers that can wait.
*/
package forecast
