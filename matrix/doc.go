// SPDX-License-Identifier: MIT

// Package matrix is the dense numeric substrate under the covariance and
// partial-correlation routines.
//
// The matrix package provides:
//
//   - Dense: a row-major float64 container with error-returning accessors and
//     an optional finite-only numeric policy (WithValidateNaNInf).
//   - Validators (ValidateSquare, ValidateFinite, ValidateSymmetric, ...) that
//     return tagged sentinel errors usable with errors.Is.
//   - Kernels: Add, Mul, Transpose, Scale, LU with partial
//     pivoting and an LU-based Inverse.
//   - Column statistics: CenterColumns, Scatter, Covariance, CovToCorrelation.
//   - A copy-based bridge to gonum (ToGonum, FromGonum).
//
// All routines allocate their outputs and never mutate inputs. Loop orders are
// fixed, so results are bitwise reproducible for identical inputs.
package matrix
