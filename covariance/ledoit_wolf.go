// SPDX-License-Identifier: MIT

package covariance

import (
	"github.com/katalvlaran/coper/matrix"
)

// ledoitWolf shrinks the ML covariance towards a scaled identity.
// Implementation:
//   - Stage 1: S = scatter/n, μ = tr(S)/p.
//   - Stage 2: δ² = ‖S − μI‖², with ‖A‖² = Σᵢⱼ aᵢⱼ²/p.
//   - Stage 3: β̄² = (1/n²)·Σₖ ‖xₖxₖᵀ − S‖² over the centered rows xₖ; β² = min(β̄², δ²).
//   - Stage 4: s = β²/δ², Σ* = s·μI + (1 − s)·S.
//
// Behavior highlights:
//   - δ² = 0 (S already a multiple of I, including the all-zero case) returns S with s = 0.
//   - Only the upper triangle is visited; every term is symmetric in (i,j).
//
// Complexity:
//   - Time O(n·p²), Space O(n·p + p²).
func ledoitWolf(X matrix.Matrix, scatter *matrix.Dense) (*matrix.Dense, float64, error) {
	n, p := X.Rows(), X.Cols()
	S, err := matrix.Scale(scatter, 1.0/float64(n))
	if err != nil {
		return nil, 0, err
	}
	Xc, _, err := matrix.CenterColumns(X)
	if err != nil {
		return nil, 0, err
	}

	// Pull S once into rows; both loops below are upper-triangle walks.
	sRows := make([][]float64, p)
	var i, j, k int
	for i = 0; i < p; i++ {
		if sRows[i], err = S.Row(i); err != nil {
			return nil, 0, err
		}
	}

	var mu float64
	for i = 0; i < p; i++ {
		mu += sRows[i][i]
	}
	mu /= float64(p)

	// pairWeight counts off-diagonal pairs twice in the Frobenius sums.
	pairWeight := func(i, j int) float64 {
		if i == j {
			return 1
		}
		return 2
	}

	var delta2, d float64
	for i = 0; i < p; i++ {
		for j = i; j < p; j++ {
			d = sRows[i][j]
			if i == j {
				d -= mu
			}
			delta2 += pairWeight(i, j) * d * d
		}
	}
	delta2 /= float64(p)
	if delta2 == 0 {
		return S, 0, nil
	}

	var betaBar2 float64
	var row []float64
	for k = 0; k < n; k++ {
		if row, err = Xc.Row(k); err != nil {
			return nil, 0, err
		}
		for i = 0; i < p; i++ {
			for j = i; j < p; j++ {
				d = row[i]*row[j] - sRows[i][j]
				betaBar2 += pairWeight(i, j) * d * d
			}
		}
	}
	betaBar2 /= float64(p) * float64(n) * float64(n)

	beta2 := betaBar2
	if beta2 > delta2 {
		beta2 = delta2
	}
	shrink := beta2 / delta2

	out, err := matrix.Scale(S, 1-shrink)
	if err != nil {
		return nil, 0, err
	}
	var v float64
	for i = 0; i < p; i++ {
		if v, err = out.At(i, i); err != nil {
			return nil, 0, err
		}
		if err = out.Set(i, i, v+shrink*mu); err != nil {
			return nil, 0, err
		}
	}

	return out, shrink, nil
}
