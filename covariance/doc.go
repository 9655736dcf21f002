// SPDX-License-Identifier: MIT

// Package covariance estimates the covariance matrix of a data matrix
// X (n observations × p variables).
//
// Estimators (see Method):
//
//   - SAM (default): the unbiased sample covariance
//     Σᵢⱼ = Σₖ (xₖᵢ − μᵢ)(xₖⱼ − μⱼ) / (n − 1), computed in two passes
//     (column means first, then centered cross-products).
//   - ML: the same cross-products divided by n.
//   - Ledoit–Wolf: the ML covariance shrunk towards μI with the optimal
//     linear intensity, positive definite even when p > n.
//
// Every estimator returns an exactly symmetric p×p *matrix.Dense and never
// mutates X. Errors match the root package taxonomy (coper.ErrInvalidDimension,
// coper.ErrNonFiniteInput) via errors.Is.
//
// Example:
//
//	cov, err := covariance.Estimate(X)                                     // SAM
//	lw, err := covariance.Estimate(X, covariance.WithMethod(covariance.MethodLedoitWolf))
package covariance
