package cluster

import (
	"fmt"

	"github.com/LMDG1/LotteThesisMindSortCode/internal/item"
)

// Set is a validated partition of an item set into clusters, with an
// item index for constant-time lookup.
type Set struct {
	clusters []*Cluster
	byItem   map[int]*Cluster
	items    map[int]*item.Item
}

// NewSet checks that clusters partition items exactly: every item belongs
// to one cluster, no cluster is empty and nothing else appears.
func NewSet(items []*item.Item, clusters []*Cluster) (*Set, error) {
	want := make(map[int]*item.Item, len(items))
	for _, it := range items {
		if _, dup := want[it.Index]; dup {
			return nil, &InconsistencyError{ItemIndex: it.Index, Reason: "duplicate item index"}
		}
		want[it.Index] = it
	}

	s := &Set{
		clusters: clusters,
		byItem:   make(map[int]*Cluster, len(items)),
		items:    want,
	}
	for i, c := range clusters {
		if c.ID != i {
			return nil, &InconsistencyError{ItemIndex: -1, Reason: fmt.Sprintf("cluster at position %d has id %d", i, c.ID)}
		}
		if c.Len() == 0 {
			return nil, &InconsistencyError{ItemIndex: -1, Reason: fmt.Sprintf("cluster %d is empty", c.ID)}
		}
		for _, it := range c.Members() {
			if want[it.Index] != it {
				return nil, &InconsistencyError{ItemIndex: it.Index, Reason: "not part of the item set"}
			}
			if prev, ok := s.byItem[it.Index]; ok {
				return nil, &InconsistencyError{
					ItemIndex: it.Index,
					Reason:    fmt.Sprintf("assigned to clusters %d and %d", prev.ID, c.ID),
				}
			}
			s.byItem[it.Index] = c
		}
	}
	for _, it := range items {
		if _, ok := s.byItem[it.Index]; !ok {
			return nil, &InconsistencyError{ItemIndex: it.Index, Reason: "not assigned to any cluster"}
		}
	}
	return s, nil
}

// Clusters returns the clusters in ID order.
func (s *Set) Clusters() []*Cluster {
	return s.clusters
}

// Len returns the number of clusters.
func (s *Set) Len() int {
	return len(s.clusters)
}

// Of returns the cluster containing it.
func (s *Set) Of(it *item.Item) (*Cluster, error) {
	if it != nil && s.items[it.Index] == it {
		if c, ok := s.byItem[it.Index]; ok {
			return c, nil
		}
	}
	idx := -1
	if it != nil {
		idx = it.Index
	}
	return nil, &InconsistencyError{ItemIndex: idx, Reason: "not found in any cluster"}
}

// RotateAll advances every cluster's SortingID by one step.
func (s *Set) RotateAll() {
	n := len(s.clusters)
	for _, c := range s.clusters {
		c.IncreaseSortingID(n)
	}
}
