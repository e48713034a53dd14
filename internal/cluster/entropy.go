package cluster

import "math"

// IndicatorType marks whether larger indicator values are better (Positive)
// or worse (Negative).
type IndicatorType int

const (
	Positive IndicatorType = iota
	Negative
)

const entropyEpsilon = 1e-12

// EntropyWeights derives indicator weights from the entropy weight method:
// indicators whose values vary more across samples carry more information
// and receive larger weights. Degenerate inputs fall back to equal weights.
func EntropyWeights(indicators [][]float64, types []IndicatorType) []float64 {
	numIndicators := len(indicators)
	if numIndicators == 0 {
		return nil
	}
	numSamples := len(indicators[0])
	if numSamples == 0 {
		return make([]float64, numIndicators)
	}
	if numSamples == 1 {
		return equalWeights(numIndicators)
	}

	// Min-max normalize each indicator, inverting negative ones. A constant
	// column normalizes to all ones, which yields maximum entropy and zero
	// weight below.
	normalized := make([][]float64, numIndicators)
	for j, values := range indicators {
		lo, hi := minMax(values)
		col := make([]float64, numSamples)
		if math.Abs(hi-lo) < entropyEpsilon {
			for i := range col {
				col[i] = 1
			}
		} else {
			for i, v := range values {
				var norm float64
				if types[j] == Positive {
					norm = (v - lo) / (hi - lo)
				} else {
					norm = (hi - v) / (hi - lo)
				}
				col[i] = math.Min(math.Max(norm, 0), 1)
			}
		}
		normalized[j] = col
	}

	// Per-indicator sample proportions.
	proportions := make([][]float64, numIndicators)
	for j, col := range normalized {
		var sum float64
		for _, v := range col {
			sum += v
		}
		p := make([]float64, numSamples)
		if math.Abs(sum) < entropyEpsilon {
			for i := range p {
				p[i] = 1 / float64(numSamples)
			}
		} else {
			for i, v := range col {
				p[i] = v / sum
			}
		}
		proportions[j] = p
	}

	// Entropy per indicator, scaled by 1/ln(m) so it lands in [0, 1].
	kEntropy := 1 / math.Log(float64(numSamples))
	diversities := make([]float64, numIndicators)
	var sumDiversities float64
	for j, p := range proportions {
		var sumTerm float64
		for _, pij := range p {
			if pij > entropyEpsilon {
				sumTerm += pij * math.Log(pij)
			}
		}
		entropy := math.Min(math.Max(-kEntropy*sumTerm, 0), 1)
		diversities[j] = 1 - entropy
		sumDiversities += diversities[j]
	}

	if math.Abs(sumDiversities) < entropyEpsilon {
		return equalWeights(numIndicators)
	}
	weights := make([]float64, numIndicators)
	for j, d := range diversities {
		weights[j] = d / sumDiversities
	}
	return weights
}

func equalWeights(n int) []float64 {
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1 / float64(n)
	}
	return weights
}
