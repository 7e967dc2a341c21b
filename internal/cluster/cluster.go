// Package cluster groups items into fixed clusters and tracks the per-cluster
// counters the scheduler uses to pace presentation.
package cluster

import "github.com/LMDG1/LotteThesisMindSortCode/internal/item"

// Cluster is a fixed group of items sharing one presentation priority and
// one pass counter.
type Cluster struct {
	// ID is assigned at creation and never reused within a scheduler.
	ID int

	// SortingID orders clusters for presentation; lower is shown sooner.
	SortingID int

	// TimesSeen counts completed lockstep passes over Members.
	TimesSeen int

	members []*item.Item
}

// New creates a cluster whose sorting position starts at its ID.
func New(id int, members []*item.Item) *Cluster {
	m := make([]*item.Item, len(members))
	copy(m, members)
	return &Cluster{
		ID:        id,
		SortingID: id,
		members:   m,
	}
}

// Members returns the cluster's items. The slice must not be modified.
func (c *Cluster) Members() []*item.Item {
	return c.members
}

// Len returns the number of members.
func (c *Cluster) Len() int {
	return len(c.members)
}

// IncreaseSortingID moves the cluster one step along the round-robin.
func (c *Cluster) IncreaseSortingID(numClusters int) {
	c.SortingID = (c.SortingID + 1) % numClusters
}

// AllMembersSeenOnceMore reports whether every member has been answered
// exactly once more than the cluster's recorded pass count.
func (c *Cluster) AllMembersSeenOnceMore() bool {
	for _, it := range c.members {
		if it.TimesSeen()-c.TimesSeen != 1 {
			return false
		}
	}
	return true
}

// RegisterPassIfComplete counts a pass when all members are in lockstep and
// returns the pass count.
func (c *Cluster) RegisterPassIfComplete() int {
	if c.AllMembersSeenOnceMore() {
		c.TimesSeen++
	}
	return c.TimesSeen
}
