package cluster

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/LMDG1/LotteThesisMindSortCode/internal/item"
	"github.com/LMDG1/LotteThesisMindSortCode/internal/kmeans"
)

// DefaultK is the default number of clusters per session.
const DefaultK = 4

// seedStep is the fractional offset between consecutive centroid seeds.
const seedStep = 0.2

// Strategy partitions an item set into clusters with IDs 0..n-1.
type Strategy interface {
	Assign(items []*item.Item) ([]*Cluster, error)
	Name() string
}

// CentroidSeeds picks k initial centroids from points. Seed i (1-based) is
// the point at fractional offset 0.2*i of the list, wrapped to its length,
// so the same point list always yields the same seeds.
func CentroidSeeds(points [][2]float64, k int) [][2]float64 {
	n := len(points)
	if n == 0 || k <= 0 {
		return nil
	}
	seeds := make([][2]float64, k)
	for i := 1; i <= k; i++ {
		seeds[i-1] = points[seedOffset(i, n)]
	}
	return seeds
}

func seedOffset(i, n int) int {
	return int(seedStep*float64(i)*float64(n)) % n
}

// Vector clusters items by position using a vector-clustering primitive.
type Vector struct {
	K         int
	Primitive kmeans.Func
}

var _ Strategy = (*Vector)(nil)

// NewVector returns a Vector strategy backed by kmeans.Cluster.
func NewVector(k int) *Vector {
	return &Vector{K: k, Primitive: kmeans.New()}
}

func (v *Vector) Name() string { return "vector" }

// Assign builds one cluster per distinct label. Cluster IDs follow ascending
// label order without gaps, so a label the primitive never used does not
// leave a hole.
func (v *Vector) Assign(items []*item.Item) ([]*Cluster, error) {
	labels, k, err := v.labels(items)
	if err != nil {
		return nil, err
	}

	groups := make([][]*item.Item, k)
	for i, l := range labels {
		groups[l] = append(groups[l], items[i])
	}

	clusters := make([]*Cluster, 0, k)
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		clusters = append(clusters, New(len(clusters), g))
	}
	return clusters, nil
}

// labels runs the primitive and validates its output. It returns the
// effective k, which is capped at the number of items.
func (v *Vector) labels(items []*item.Item) ([]int, int, error) {
	if len(items) == 0 {
		return nil, 0, &ConfigError{Field: "items", Reason: "item set is empty"}
	}
	if v.K <= 0 {
		return nil, 0, &ConfigError{Field: "k", Reason: fmt.Sprintf("must be positive, got %d", v.K)}
	}
	primitive := v.Primitive
	if primitive == nil {
		primitive = kmeans.New()
	}

	k := min(v.K, len(items))
	points := make([][2]float64, len(items))
	for i, p := range item.Positions(items) {
		points[i] = [2]float64{p.X, p.Y}
	}

	labels, err := primitive(points, k, CentroidSeeds(points, k))
	if err != nil {
		return nil, 0, fmt.Errorf("vector clustering: %w", err)
	}
	if len(labels) != len(items) {
		return nil, 0, &InconsistencyError{
			ItemIndex: -1,
			Reason:    fmt.Sprintf("primitive returned %d labels for %d items", len(labels), len(items)),
		}
	}
	for i, l := range labels {
		if l < 0 || l >= k {
			return nil, 0, &InconsistencyError{
				ItemIndex: items[i].Index,
				Reason:    fmt.Sprintf("label %d outside [0, %d)", l, k),
			}
		}
	}
	return labels, k, nil
}

// SizeMatchedRandom keeps the cluster sizes of the Vector strategy but fills
// the clusters with a uniformly shuffled item list.
type SizeMatchedRandom struct {
	K         int
	Primitive kmeans.Func

	// Rand is used for the shuffle; nil means the package-level source.
	Rand *rand.Rand
}

var _ Strategy = (*SizeMatchedRandom)(nil)

// NewSizeMatchedRandom returns a SizeMatchedRandom strategy backed by kmeans.Cluster.
func NewSizeMatchedRandom(k int, r *rand.Rand) *SizeMatchedRandom {
	return &SizeMatchedRandom{K: k, Primitive: kmeans.New(), Rand: r}
}

func (s *SizeMatchedRandom) Name() string { return "random" }

func (s *SizeMatchedRandom) Assign(items []*item.Item) ([]*Cluster, error) {
	vec := &Vector{K: s.K, Primitive: s.Primitive}
	semantic, err := vec.Assign(items)
	if err != nil {
		return nil, err
	}

	shuffled := make([]*item.Item, len(items))
	copy(shuffled, items)
	shuffle(s.Rand, len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	clusters := make([]*Cluster, 0, len(semantic))
	start := 0
	for _, c := range semantic {
		end := start + c.Len()
		clusters = append(clusters, New(c.ID, shuffled[start:end]))
		start = end
	}
	return clusters, nil
}

// Sizes returns the member counts of clusters in ID order.
func Sizes(clusters []*Cluster) []int {
	sizes := make([]int, len(clusters))
	for _, c := range clusters {
		sizes[c.ID] = c.Len()
	}
	return sizes
}

// Singletons returns the IDs of clusters holding a single item, ascending.
// Such a cluster cannot stay in step with the round schedule, so a session
// built on it usually ends in a RoundOverrunError.
func Singletons(clusters []*Cluster) []int {
	var ids []int
	for _, c := range clusters {
		if c.Len() == 1 {
			ids = append(ids, c.ID)
		}
	}
	sort.Ints(ids)
	return ids
}

// SortedByID returns clusters ordered by ID.
func SortedByID(clusters []*Cluster) []*Cluster {
	out := make([]*Cluster, len(clusters))
	copy(out, clusters)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func shuffle(r *rand.Rand, n int, swap func(i, j int)) {
	if r != nil {
		r.Shuffle(n, swap)
		return
	}
	rand.Shuffle(n, swap)
}
