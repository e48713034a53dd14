package cluster

import "math"

// ProbabilityNorm scales values so they sum to one.
func ProbabilityNorm(seq []float64) []float64 {
	var sum float64
	for _, v := range seq {
		sum += v
	}
	out := make([]float64, len(seq))
	for i, v := range seq {
		out[i] = v / sum
	}
	return out
}

// MinMaxNorm maps values linearly onto [0, 1].
func MinMaxNorm(seq []float64) []float64 {
	lo, hi := minMax(seq)
	out := make([]float64, len(seq))
	for i, v := range seq {
		out[i] = (v - lo) / (hi - lo)
	}
	return out
}

// MinMaxNormRev maps values onto [0, 1] with the ordering reversed, for
// indicators where smaller is better.
func MinMaxNormRev(seq []float64) []float64 {
	lo, hi := minMax(seq)
	out := make([]float64, len(seq))
	for i, v := range seq {
		out[i] = (hi - v) / (hi - lo)
	}
	return out
}

// ScaleNorm divides values by the sequence maximum.
func ScaleNorm(seq []float64) []float64 {
	_, hi := minMax(seq)
	out := make([]float64, len(seq))
	for i, v := range seq {
		out[i] = v / hi
	}
	return out
}

// ZScoreNorm standardizes values to zero mean and unit deviation.
func ZScoreNorm(seq []float64) []float64 {
	mean := mean(seq)
	sd := StdDev(seq)
	out := make([]float64, len(seq))
	for i, v := range seq {
		out[i] = (v - mean) / sd
	}
	return out
}

// StdDev returns the population standard deviation.
func StdDev(seq []float64) float64 {
	m := mean(seq)
	var sum float64
	for _, v := range seq {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(seq)))
}

func mean(seq []float64) float64 {
	var sum float64
	for _, v := range seq {
		sum += v
	}
	return sum / float64(len(seq))
}

func minMax(seq []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range seq {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
