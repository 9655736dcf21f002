// SPDX-License-Identifier: MIT
// Package covariance defines estimator methods and the result record.
package covariance

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/coper/matrix"
)

// Method selects the covariance estimator.
//
//   - MethodSAM       : unbiased sample covariance, divisor n−1 (1 when n = 1).
//     The default; the "SAM" routine of the registry.
//
//   - MethodML        : maximum-likelihood covariance, divisor n.
//
//   - MethodLedoitWolf: linear shrinkage of the ML covariance towards μI with the
//     optimal intensity of Ledoit & Wolf (2004). Always positive definite when
//     the data are not constant, even for p > n.
type Method int

const (
	// MethodSAM is the unbiased sample covariance.
	MethodSAM Method = iota

	// MethodML is the maximum-likelihood covariance.
	MethodML

	// MethodLedoitWolf is the Ledoit-Wolf shrinkage covariance.
	MethodLedoitWolf
)

// ErrUnknownMethod is returned by ParseMethod for an unrecognized name.
var ErrUnknownMethod = errors.New("covariance: unknown method")

// methodNames maps every accepted spelling onto a Method.
var methodNames = map[string]Method{
	"sam":         MethodSAM,
	"sample":      MethodSAM,
	"ml":          MethodML,
	"mle":         MethodML,
	"lw":          MethodLedoitWolf,
	"ledoit-wolf": MethodLedoitWolf,
	"ledoitwolf":  MethodLedoitWolf,
}

// String returns the canonical short name ("sam", "ml", "lw").
func (m Method) String() string {
	switch m {
	case MethodSAM:
		return "sam"
	case MethodML:
		return "ml"
	case MethodLedoitWolf:
		return "lw"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// valid reports whether m is one of the declared methods.
func (m Method) valid() bool {
	return m >= MethodSAM && m <= MethodLedoitWolf
}

// ParseMethod resolves a case-insensitive method name.
// The empty string resolves to MethodSAM.
func ParseMethod(s string) (Method, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return MethodSAM, nil
	}
	if m, ok := methodNames[key]; ok {
		return m, nil
	}

	return MethodSAM, fmt.Errorf("%q: %w", s, ErrUnknownMethod)
}

// Result carries the estimate and the by-products callers commonly need.
//
// Fields:
//   - Cov      : p×p covariance matrix (exactly symmetric).
//   - Means    : column means of X (len p).
//   - Method   : estimator used.
//   - Shrinkage: Ledoit-Wolf intensity in [0,1]; 0 for the other methods.
//   - N        : number of observations.
type Result struct {
	Cov       *matrix.Dense
	Means     []float64
	Method    Method
	Shrinkage float64
	N         int
}
