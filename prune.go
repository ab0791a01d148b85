package main

// Prune collapses every subtree whose leaves are all within tolerance of
// that subtree root's average color, replacing the subtree with a single
// leaf holding the average. Each node is tested once, top-down, and the
// children are visited only when the node itself does not qualify, so the
// collapse always happens as high in the tree as possible.
//
// A tree may be pruned only once: after a prune the stored averages no
// longer describe pixel-exact leaves, so a repeat call (on this tree or on
// a clone of it) reports ErrAlreadyPruned instead of testing a stale
// invariant.
func (t *QTree) Prune(tolerance float64) error {
	if tolerance < 0 {
		return ErrInvalidTolerance
	}
	if t.pruned {
		return ErrAlreadyPruned
	}
	t.pruned = true
	pruneSubtree(t.root, tolerance)
	return nil
}

func pruneSubtree(nd *Node, tolerance float64) {
	if nd == nil || nd.isLeaf() {
		return
	}

	if leavesWithin(nd, tolerance, nd.avg) {
		// Detaching the children is all it takes to make the node a leaf;
		// the subtree becomes garbage.
		nd.nw, nd.ne, nd.sw, nd.se = nil, nil, nil, nil
		return
	}

	pruneSubtree(nd.nw, tolerance)
	pruneSubtree(nd.ne, tolerance)
	pruneSubtree(nd.sw, tolerance)
	pruneSubtree(nd.se, tolerance)
}

// leavesWithin reports whether every leaf under nd is within tolerance of
// avg. Absent children pass trivially.
func leavesWithin(nd *Node, tolerance float64, avg Pixel) bool {
	if nd == nil {
		return true
	}
	if nd.isLeaf() {
		return nd.avg.DistanceTo(avg) <= tolerance
	}
	return leavesWithin(nd.nw, tolerance, avg) &&
		leavesWithin(nd.ne, tolerance, avg) &&
		leavesWithin(nd.sw, tolerance, avg) &&
		leavesWithin(nd.se, tolerance, avg)
}

// toleranceForQuality maps a familiar 0..100 quality knob onto a prune
// tolerance: 100 keeps the image lossless-exact, lower values allow
// progressively coarser collapses. The top of the range (tolerance about
// 440) exceeds the largest possible RGB distance, collapsing everything.
func toleranceForQuality(q int) float64 {
	if q < 0 {
		q = 0
	}
	if q > 100 {
		q = 100
	}
	return float64(100-q) * 4.4
}
