// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Tool dumpfeedb can be used to dump the internal state of the buckets of a
// policy estimator's fee db so that it can be externally analyzed.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btclog"
	flags "github.com/jessevdk/go-flags"
	"github.com/jrick/logrotate/rotator"

	"github.com/btcsuite/feeforecast/policyest"
)

type config struct {
	DB         string `short:"b" long:"db" description:"Path to fee database"`
	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level (trace, debug, info, warn, error, critical)"`
	LogFile    string `long:"logfile" description:"Also write logging output to this file"`
}

// logWriter outputs to standard output and, when a rotator has been set up,
// to the rotated log file as well.
type logWriter struct {
	rotator *rotator.Rotator
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	os.Stdout.Write(p)
	if w.rotator != nil {
		w.rotator.Write(p)
	}
	return len(p), nil
}

func main() {
	cfg := config{
		DB: filepath.Join(btcutil.AppDataDir("feeforecast", false),
			"data", "mainnet", "feesdb"),
		DebugLevel: "info",
	}

	parser := flags.NewParser(&cfg, flags.Default)
	_, err := parser.Parse()
	if err != nil {
		var e *flags.Error
		if !errors.As(err, &e) || e.Type != flags.ErrHelp {
			parser.WriteHelp(os.Stderr)
		}
		return
	}

	writer := &logWriter{}
	if cfg.LogFile != "" {
		logDir, _ := filepath.Split(cfg.LogFile)
		if err := os.MkdirAll(logDir, 0700); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create log directory: %v\n", err)
			os.Exit(1)
		}
		r, err := rotator.New(cfg.LogFile, 10*1024, false, 3)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create file rotator: %v\n", err)
			os.Exit(1)
		}
		defer r.Close()
		writer.rotator = r
	}

	backend := btclog.NewBackend(writer)
	logger := backend.Logger("FEES")
	level, _ := btclog.LevelFromString(cfg.DebugLevel)
	logger.SetLevel(level)
	policyest.UseLogger(logger)

	est, err := policyest.NewEstimator(&policyest.EstimatorConfig{
		DatabaseFile:       cfg.DB,
		ReadStaleEstimates: true,
		MinBucketFee:       1,
		MaxBucketFee:       2,
		FeeRateStep:        policyest.DefaultFeeRateStep,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open estimator database: %v\n", err)
		os.Exit(1)
	}
	defer est.Close()

	fmt.Println(est.DumpBuckets())
}
