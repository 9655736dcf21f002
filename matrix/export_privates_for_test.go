// SPDX-License-Identifier: MIT

package matrix

// Test-Bridge (White-Box) for private kernels and option resolution.
//
// Purpose:
//   - Expose unexported ew* micro-kernels and gatherOptions to matrix_test.
//   - Compiled only with tests (the file name ends in _test.go); carries no logic.
//
// AI-Hints:
//   - If a private helper changes signature, mirror the change here once.

var (
	// ExportedNewDenseWithPolicy exposes newDenseWithPolicy for white-box tests.
	ExportedNewDenseWithPolicy = newDenseWithPolicy
	// ExportedToDense exposes the scratch-copy helper used by LU/Inverse.
	ExportedToDense = toDense
)

// EwBroadcastSubCols_TestOnly forwards to ewBroadcastSubCols.
func EwBroadcastSubCols_TestOnly(X Matrix, colMeans []float64) (*Dense, error) {
	return ewBroadcastSubCols(X, colMeans)
}

// EwScaleCols_TestOnly forwards to ewScaleCols.
func EwScaleCols_TestOnly(X Matrix, scale []float64) (*Dense, error) {
	return ewScaleCols(X, scale)
}

// GatherOptions_TestOnly forwards to gatherOptions.
func GatherOptions_TestOnly(opts ...Option) Options {
	return gatherOptions(opts...)
}
