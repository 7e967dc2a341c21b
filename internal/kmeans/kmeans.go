// Package kmeans implements Lloyd's k-means over 2-D points starting from
// caller-supplied centroids. Identical input always yields identical labels.
package kmeans

import (
	"errors"
	"fmt"
)

// DefaultMaxIterations bounds the number of Lloyd iterations.
const DefaultMaxIterations = 300

// ErrNoPoints is returned when there is nothing to cluster.
var ErrNoPoints = errors.New("kmeans: no points")

// Func is the signature of a vector-clustering primitive: given N points,
// k and k initial centroids it returns N labels in [0, k).
type Func func(points [][2]float64, k int, seeds [][2]float64) ([]int, error)

type options struct {
	maxIterations int
}

// Option configures a clustering run.
type Option func(*options)

// WithMaxIterations overrides DefaultMaxIterations.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxIterations = n
		}
	}
}

// Cluster assigns every point to one of k clusters. Ties go to the centroid
// with the lowest index; a centroid that loses all of its points keeps its
// previous position.
func Cluster(points [][2]float64, k int, seeds [][2]float64, opts ...Option) ([]int, error) {
	o := options{maxIterations: DefaultMaxIterations}
	for _, opt := range opts {
		opt(&o)
	}

	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	if k <= 0 {
		return nil, fmt.Errorf("kmeans: k must be positive, got %d", k)
	}
	if len(seeds) != k {
		return nil, fmt.Errorf("kmeans: got %d seeds for k=%d", len(seeds), k)
	}

	centroids := make([][2]float64, k)
	copy(centroids, seeds)

	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = -1
	}

	for iter := 0; iter < o.maxIterations; iter++ {
		changed := false
		for i, p := range points {
			best := nearest(p, centroids)
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}
		recompute(points, labels, centroids)
	}

	return labels, nil
}

// New returns Cluster bound to opts as a Func.
func New(opts ...Option) Func {
	return func(points [][2]float64, k int, seeds [][2]float64) ([]int, error) {
		return Cluster(points, k, seeds, opts...)
	}
}

func nearest(p [2]float64, centroids [][2]float64) int {
	best := 0
	bestDist := sqDist(p, centroids[0])
	for c := 1; c < len(centroids); c++ {
		if d := sqDist(p, centroids[c]); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func recompute(points [][2]float64, labels []int, centroids [][2]float64) {
	sums := make([][2]float64, len(centroids))
	counts := make([]int, len(centroids))
	for i, p := range points {
		l := labels[i]
		sums[l][0] += p[0]
		sums[l][1] += p[1]
		counts[l]++
	}
	for c := range centroids {
		if counts[c] == 0 {
			continue
		}
		centroids[c] = [2]float64{
			sums[c][0] / float64(counts[c]),
			sums[c][1] / float64(counts[c]),
		}
	}
}

func sqDist(a, b [2]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return dx*dx + dy*dy
}
