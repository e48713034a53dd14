// Package cluster implements one-dimensional k-means with validity scoring.
//
// Evaluate runs k-means across a range of candidate cluster counts, scores
// each count with silhouette, Calinski-Harabasz, and Davies-Bouldin indices,
// and ranks the counts by an entropy-weighted combined score.
package cluster
