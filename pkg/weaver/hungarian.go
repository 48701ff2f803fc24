// Copyright QSoC Authors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package weaver

import "math"

// hungarianMaximize solves the square assignment problem that maximizes
// total score, returning assignment where assignment[row] is the column
// assigned to that row. No suitable assignment/matching library exists
// among the retrieved example repositories, so this is a direct
// implementation of the classical O(n^3) Kuhn-Munkres algorithm.
func hungarianMaximize(score [][]float64) []int {
	n := len(score)
	if n == 0 {
		return nil
	}

	maxVal := 0.0

	for _, row := range score {
		for _, v := range row {
			if v > maxVal {
				maxVal = v
			}
		}
	}

	cost := make([][]float64, n)
	for i := range cost {
		cost[i] = make([]float64, n)
		for j := range cost[i] {
			cost[i][j] = maxVal - score[i][j]
		}
	}

	return hungarianMinimize(cost)
}

// hungarianMinimize is the textbook potentials-based Hungarian algorithm on
// an n x n cost matrix, returning assignment[row] = column.
func hungarianMinimize(cost [][]float64) []int {
	n := len(cost)
	const inf = math.MaxFloat64 / 2

	u := make([]float64, n+1)
	v := make([]float64, n+1)
	p := make([]int, n+1) // p[j] = 1-indexed row assigned to column j
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0

		minv := make([]float64, n+1)
		used := make([]bool, n+1)

		for j := range minv {
			minv[j] = inf
		}

		for {
			used[j0] = true

			i0 := p[j0]
			delta := inf
			j1 := -1

			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}

				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}

				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}

			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	assignment := make([]int, n)
	for i := range assignment {
		assignment[i] = -1
	}

	for j := 1; j <= n; j++ {
		if p[j] > 0 {
			assignment[p[j]-1] = j - 1
		}
	}

	return assignment
}
