package cluster

import (
	"errors"
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"
)

// EvaluateOptions controls cluster-count evaluation.
type EvaluateOptions struct {
	// StartK and EndK bound the candidate cluster counts, half-open.
	StartK int
	EndK   int
	// SampleLimit caps how many points feed the silhouette score; the full
	// data set always feeds the other two indices.
	SampleLimit int
	// NormMethod is one of probability, minmax, scale, zscore.
	NormMethod string
	Seed       int64
	Workers    int
}

// Row is the scored outcome for one candidate cluster count.
type Row struct {
	K                int
	Silhouette       float64
	CalinskiHarabasz float64
	DaviesBouldin    float64
	Total            float64
}

// Report carries normalized rows plus the entropy weights applied to the
// three indices.
type Report struct {
	Rows    []Row
	Weights [3]float64
}

// Evaluate runs k-means for each candidate count and ranks the counts by an
// entropy-weighted combination of three validity indices.
func Evaluate(data []float64, opts EvaluateOptions) (Report, error) {
	if opts.EndK <= opts.StartK {
		return Report{}, errors.New("empty cluster count range")
	}
	if opts.StartK < 2 {
		return Report{}, errors.New("cluster counts start at 2")
	}
	if len(data) < opts.EndK {
		return Report{}, fmt.Errorf("need at least %d data points", opts.EndK)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	ks := make([]int, 0, opts.EndK-opts.StartK)
	for k := opts.StartK; k < opts.EndK; k++ {
		ks = append(ks, k)
	}

	sil := make([]float64, len(ks))
	ch := make([]float64, len(ks))
	db := make([]float64, len(ks))

	var group errgroup.Group
	group.SetLimit(workers)
	for i, k := range ks {
		group.Go(func() error {
			rng := rand.New(rand.NewSource(opts.Seed + int64(k)))
			res, err := KMeans(data, k, 0, rng)
			if err != nil {
				return fmt.Errorf("k=%d: %w", k, err)
			}
			silData, silLabels := sampleForSilhouette(data, res.Assignments, opts.SampleLimit, rng)
			sil[i] = Silhouette(silData, silLabels)
			ch[i] = CalinskiHarabasz(data, res.Assignments)
			db[i] = DaviesBouldin(data, res.Assignments)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Report{}, err
	}

	normSil, normCH, normDB, err := normalizeIndices(opts.NormMethod, sil, ch, db)
	if err != nil {
		return Report{}, err
	}

	weights := EntropyWeights([][]float64{sil, ch, db}, []IndicatorType{Positive, Positive, Negative})

	report := Report{Weights: [3]float64{weights[0], weights[1], weights[2]}}
	for i, k := range ks {
		report.Rows = append(report.Rows, Row{
			K:                k,
			Silhouette:       normSil[i],
			CalinskiHarabasz: normCH[i],
			DaviesBouldin:    normDB[i],
			Total:            normSil[i]*weights[0] + normCH[i]*weights[1] + normDB[i]*weights[2],
		})
	}
	return report, nil
}

func normalizeIndices(method string, sil, ch, db []float64) ([]float64, []float64, []float64, error) {
	switch method {
	case "", "probability":
		return ProbabilityNorm(sil), ProbabilityNorm(ch), ProbabilityNorm(db), nil
	case "minmax":
		return MinMaxNorm(sil), MinMaxNorm(ch), MinMaxNormRev(db), nil
	case "scale":
		return ScaleNorm(sil), ScaleNorm(ch), ScaleNorm(db), nil
	case "zscore":
		return ZScoreNorm(sil), ZScoreNorm(ch), ZScoreNorm(db), nil
	default:
		return nil, nil, nil, fmt.Errorf("unsupported normalization method %q", method)
	}
}

// sampleForSilhouette samples up to limit points so the quadratic
// silhouette computation stays tractable on large columns.
func sampleForSilhouette(data []float64, labels []int, limit int, rng *rand.Rand) ([]float64, []int) {
	if limit <= 0 || len(data) <= limit {
		return data, labels
	}
	indices := rng.Perm(len(data))[:limit]
	sampledData := make([]float64, limit)
	sampledLabels := make([]int, limit)
	for i, idx := range indices {
		sampledData[i] = data[idx]
		sampledLabels[i] = labels[idx]
	}
	return sampledData, sampledLabels
}
