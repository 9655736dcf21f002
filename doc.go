// Package coper estimates covariance structure from tabular numeric data and
// derives partial correlations from it.
//
// 🚀 What is coper?
//
//	A small, pure-Go toolkit built around two stateless routines:
//		• Covariance estimation: SAM (unbiased sample), ML and Ledoit-Wolf shrinkage
//		• Partial correlation: Σ → P = Σ⁻¹ → PC[i,j] = −P[i,j]/√(P[i,i]·P[j,j])
//
// ✨ Why choose coper?
//
//   - Pure functions – inputs are never mutated, outputs are freshly allocated
//   - Typed failures – every error matches one of a handful of sentinels
//   - No hidden state – routines are safe to call from many goroutines
//
// Under the hood, everything is organized under a few subpackages:
//
//	matrix/     Dense storage, validators, LU/Inverse, centering & covariance kernels
//	covariance/ CovarianceEstimator (SAM, ML, Ledoit-Wolf) and ToCorrelation
//	pcor/       PartialCorrelationDeriver with conditioning and range checks
//	registry/   fixed name → routine dispatch table with panic recovery
//	network/    conditional-independence graph over a partial-correlation matrix
//	matio/      CSV / binary matrix files, optional zstd compression
//	cmd/coper/  command-line front end over registry + matio
//
// Quick example:
//
//	cov, err := covariance.Estimate(X)            // p×p, SAM by default
//	pc, err := pcor.Derive(cov)                   // p×p, unit diagonal
//
// This package itself only holds the shared error taxonomy (errors.go).
//
//	go get github.com/katalvlaran/coper
package coper
