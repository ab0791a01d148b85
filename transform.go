package main

import "image"

// Geometric transforms. Both rearrange child links in place and rewrite
// node coordinates so that the nw/ne/sw/se links always name the visual
// quadrant a child renders into. After a transform the construction-time
// asymmetry (only eastern/southern children absent on thin rectangles) may
// be mirrored; that is the expected shape and is left as is.

// FlipHorizontal mirrors the rendered image across a vertical axis. Applying
// it twice restores the original. Safe on pruned and rotated trees.
func (t *QTree) FlipHorizontal() {
	flipNode(t.root, t.width)
}

func flipNode(nd *Node, width int) {
	if nd == nil {
		return
	}

	nd.nw, nd.ne = nd.ne, nd.nw
	nd.sw, nd.se = nd.se, nd.sw

	left := width - 1 - nd.lowRight.X
	right := width - 1 - nd.upLeft.X
	if left > right {
		left, right = right, left
	}
	nd.upLeft.X = left
	nd.lowRight.X = right

	flipNode(nd.nw, width)
	flipNode(nd.ne, width)
	flipNode(nd.sw, width)
	flipNode(nd.se, width)
}

// RotateCCW rotates the rendered image 90 degrees counter-clockwise,
// swapping the tree's dimensions. Four applications compose to the
// identity. Safe on pruned and flipped trees.
func (t *QTree) RotateCCW() {
	t.width, t.height = t.height, t.width
	// The post-swap height equals the pre-rotation width, which is the
	// constant every node's coordinate remap needs. Captured once here so
	// the traversal never re-reads mutating tree state.
	rotateNode(t.root, t.height)
}

func rotateNode(nd *Node, height int) {
	if nd == nil {
		return
	}

	nd.nw, nd.sw, nd.se, nd.ne = nd.ne, nd.nw, nd.sw, nd.se

	ul := image.Pt(nd.upLeft.Y, height-nd.lowRight.X-1)
	lr := image.Pt(nd.lowRight.Y, height-nd.upLeft.X-1)
	nd.upLeft = ul
	nd.lowRight = lr

	rotateNode(nd.nw, height)
	rotateNode(nd.ne, height)
	rotateNode(nd.se, height)
	rotateNode(nd.sw, height)
}
