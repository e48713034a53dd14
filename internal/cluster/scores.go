package cluster

import "math"

// Silhouette computes the mean silhouette coefficient over the samples.
// Points in singleton clusters contribute zero.
func Silhouette(data []float64, labels []int) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	counts := map[int]int{}
	for _, l := range labels {
		counts[l]++
	}
	if len(counts) < 2 {
		return 0
	}

	var total float64
	for i, x := range data {
		if counts[labels[i]] <= 1 {
			continue
		}
		// Mean intra-cluster distance and the smallest mean distance to
		// another cluster.
		sums := map[int]float64{}
		for j, y := range data {
			if i == j {
				continue
			}
			sums[labels[j]] += math.Abs(x - y)
		}
		a := sums[labels[i]] / float64(counts[labels[i]]-1)
		b := math.Inf(1)
		for l, sum := range sums {
			if l == labels[i] {
				continue
			}
			if mean := sum / float64(counts[l]); mean < b {
				b = mean
			}
		}
		if maxAB := math.Max(a, b); maxAB > 0 {
			total += (b - a) / maxAB
		}
	}
	return total / float64(n)
}

// CalinskiHarabasz computes the variance ratio criterion. Higher is better.
func CalinskiHarabasz(data []float64, labels []int) float64 {
	n := len(data)
	centroids, counts, overall := clusterStats(data, labels)
	k := len(centroids)
	if k < 2 || n <= k {
		return 0
	}

	var between, within float64
	for l, c := range centroids {
		d := c - overall
		between += float64(counts[l]) * d * d
	}
	for i, x := range data {
		d := x - centroids[labels[i]]
		within += d * d
	}
	if within == 0 {
		return 0
	}
	return (between / float64(k-1)) / (within / float64(n-k))
}

// DaviesBouldin computes the average worst-case cluster similarity. Lower is
// better.
func DaviesBouldin(data []float64, labels []int) float64 {
	centroids, counts, _ := clusterStats(data, labels)
	k := len(centroids)
	if k < 2 {
		return 0
	}

	scatter := map[int]float64{}
	for i, x := range data {
		scatter[labels[i]] += math.Abs(x - centroids[labels[i]])
	}
	for l := range scatter {
		scatter[l] /= float64(counts[l])
	}

	ids := make([]int, 0, k)
	for l := range centroids {
		ids = append(ids, l)
	}

	var total float64
	for _, i := range ids {
		worst := 0.0
		for _, j := range ids {
			if i == j {
				continue
			}
			sep := math.Abs(centroids[i] - centroids[j])
			if sep == 0 {
				continue
			}
			if r := (scatter[i] + scatter[j]) / sep; r > worst {
				worst = r
			}
		}
		total += worst
	}
	return total / float64(k)
}

func clusterStats(data []float64, labels []int) (centroids map[int]float64, counts map[int]int, overall float64) {
	centroids = map[int]float64{}
	counts = map[int]int{}
	for i, x := range data {
		centroids[labels[i]] += x
		counts[labels[i]]++
		overall += x
	}
	for l := range centroids {
		centroids[l] /= float64(counts[l])
	}
	if len(data) > 0 {
		overall /= float64(len(data))
	}
	return centroids, counts, overall
}
