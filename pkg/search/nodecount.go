package search

import "go.uber.org/atomic"

// NodeCount holds the atomic counters a single search call accumulates. Relaxed ordering is
// sufficient throughout: exact counts are only needed for user-facing reporting, never for
// correctness (§5).
type NodeCount struct {
	nodes    atomic.Uint64
	leaves   atomic.Uint64
	qnodes   atomic.Uint64
	seldepth atomic.Uint64
}

func (n *NodeCount) addNode() {
	n.nodes.Inc()
}

func (n *NodeCount) addLeaf() {
	n.leaves.Inc()
}

func (n *NodeCount) addQNode() {
	n.qnodes.Inc()
}

func (n *NodeCount) observeDepth(ply int) {
	for {
		cur := n.seldepth.Load()
		if uint64(ply) <= cur {
			return
		}
		if n.seldepth.CAS(cur, uint64(ply)) {
			return
		}
	}
}

// Nodes is the raw interior-node counter (excludes qsearch nodes).
func (n *NodeCount) Nodes() uint64 {
	return n.nodes.Load()
}

// Searched is nodes + qnodes - leaves: leaves are counted once as an interior node entering
// qsearch and once as a qsearch node, so subtracting avoids double-counting them (§3).
func (n *NodeCount) Searched() uint64 {
	return n.nodes.Load() + n.qnodes.Load() - n.leaves.Load()
}

// Seldepth is the deepest ply reached by this search, including quiescence.
func (n *NodeCount) Seldepth() int {
	return int(n.seldepth.Load())
}
