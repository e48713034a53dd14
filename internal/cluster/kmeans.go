package cluster

import (
	"errors"
	"math"
	"math/rand"
)

// KMeansResult holds the outcome of one Lloyd run.
type KMeansResult struct {
	Assignments []int
	Centroids   []float64
}

// KMeans clusters one-dimensional data into k groups using kmeans++ seeding
// followed by Lloyd iterations. The rng makes runs reproducible.
func KMeans(data []float64, k int, maxIter int, rng *rand.Rand) (KMeansResult, error) {
	if k <= 0 {
		return KMeansResult{}, errors.New("k must be positive")
	}
	if len(data) < k {
		return KMeansResult{}, errors.New("fewer data points than clusters")
	}
	if maxIter <= 0 {
		maxIter = 300
	}

	centroids := seedPlusPlus(data, k, rng)
	assignments := make([]int, len(data))

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, x := range data {
			best := nearestCentroid(x, centroids)
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}
		if iter > 0 && !changed {
			break
		}

		sums := make([]float64, k)
		counts := make([]int, k)
		for i, x := range data {
			sums[assignments[i]] += x
			counts[assignments[i]]++
		}
		for j := range centroids {
			if counts[j] > 0 {
				centroids[j] = sums[j] / float64(counts[j])
			} else {
				// Re-seed an emptied cluster on a random point.
				centroids[j] = data[rng.Intn(len(data))]
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	return KMeansResult{Assignments: assignments, Centroids: centroids}, nil
}

// seedPlusPlus picks initial centroids with probability proportional to the
// squared distance from the nearest centroid chosen so far.
func seedPlusPlus(data []float64, k int, rng *rand.Rand) []float64 {
	centroids := make([]float64, 0, k)
	centroids = append(centroids, data[rng.Intn(len(data))])

	dists := make([]float64, len(data))
	for len(centroids) < k {
		var total float64
		for i, x := range data {
			d := x - centroids[nearestCentroid(x, centroids)]
			dists[i] = d * d
			total += dists[i]
		}
		if total == 0 {
			// All remaining points coincide with a centroid.
			centroids = append(centroids, data[rng.Intn(len(data))])
			continue
		}
		target := rng.Float64() * total
		var cum float64
		chosen := len(data) - 1
		for i, d := range dists {
			cum += d
			if cum >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, data[chosen])
	}
	return centroids
}

func nearestCentroid(x float64, centroids []float64) int {
	best := 0
	bestDist := math.Abs(x - centroids[0])
	for j := 1; j < len(centroids); j++ {
		if d := math.Abs(x - centroids[j]); d < bestDist {
			best = j
			bestDist = d
		}
	}
	return best
}
