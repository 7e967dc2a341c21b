package kmeans

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCluster_TwoObviousGroups(t *testing.T) {
	points := [][2]float64{
		{0, 0}, {0, 1}, {1, 0},
		{10, 10}, {10, 11}, {11, 10},
	}
	seeds := [][2]float64{{0, 0}, {10, 10}}

	labels, err := Cluster(points, 2, seeds)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 1, 1, 1}, labels)
}

func TestCluster_SeedsDetermineLabelOrder(t *testing.T) {
	points := [][2]float64{{0, 0}, {10, 10}}
	seeds := [][2]float64{{10, 10}, {0, 0}}

	labels, err := Cluster(points, 2, seeds)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, labels)
}

func TestCluster_Deterministic(t *testing.T) {
	points := [][2]float64{{1, 2}, {3, 1}, {8, 9}, {7, 7}, {4, 4}, {0, 9}}
	seeds := [][2]float64{{1, 2}, {8, 9}, {0, 9}}

	first, err := Cluster(points, 3, seeds)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Cluster(points, 3, seeds)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCluster_LabelsInRange(t *testing.T) {
	points := [][2]float64{{0, 0}, {0, 0}, {0, 0}}
	// Duplicate seeds: ties go to the lowest index, so label 1 is never used.
	seeds := [][2]float64{{0, 0}, {0, 0}}

	labels, err := Cluster(points, 2, seeds)
	require.NoError(t, err)
	for _, l := range labels {
		assert.GreaterOrEqual(t, l, 0)
		assert.Less(t, l, 2)
	}
	assert.Equal(t, []int{0, 0, 0}, labels)
}

func TestCluster_Errors(t *testing.T) {
	tests := []struct {
		name   string
		points [][2]float64
		k      int
		seeds  [][2]float64
	}{
		{"no points", nil, 1, [][2]float64{{0, 0}}},
		{"zero k", [][2]float64{{0, 0}}, 0, nil},
		{"seed count mismatch", [][2]float64{{0, 0}}, 2, [][2]float64{{0, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Cluster(tt.points, tt.k, tt.seeds)
			require.Error(t, err)
		})
	}

	_, err := Cluster(nil, 1, [][2]float64{{0, 0}})
	assert.True(t, errors.Is(err, ErrNoPoints))
}

func TestNew_AppliesOptions(t *testing.T) {
	points := [][2]float64{{0, 0}, {1, 0}, {9, 0}, {10, 0}}
	seeds := [][2]float64{{0, 0}, {1, 0}}

	// One iteration only assigns to the seeds without moving them.
	labels, err := New(WithMaxIterations(1))(points, 2, seeds)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 1, 1}, labels)

	// Converged run moves the second centroid to the right-hand group.
	labels, err = New()(points, 2, seeds)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 1, 1}, labels)
}
