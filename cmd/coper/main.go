// SPDX-License-Identifier: MIT

// Command coper runs the covariance and partial-correlation routines on
// matrix files.
//
// Usage:
//
//	coper list
//	coper run cov_sam -i data.csv -o cov.csv
//	coper run cov2pcor -i cov.csv -o pcor.cpm --cond-threshold 1e10
//	coper pipeline -i data.csv -o pcor.csv --cov-out cov.csv --method lw
//	coper batch pcor_sam --out-dir out/ --jobs 4 a.csv b.csv.zst c.cpm
//	coper network -i pcor.csv --threshold 0.1 --components
//
// Formats follow the file extension (.csv, .tsv, .cpm, optionally .zst).
// --format forces the output format only; inputs are always read by their
// extension. Any error exits with status 1.
package main

import (
	"log"
	"os"
)

func main() {
	logger := log.New(os.Stderr, "coper: ", 0)
	if err := newRootCmd(os.Stdout, logger).Execute(); err != nil {
		logger.Printf("%v", err)
		os.Exit(1)
	}
}
