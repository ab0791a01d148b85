package main

import (
	"errors"
	"image"
)

// Quadtree decomposition of a raster image. Every leaf of a freshly built
// tree corresponds to one pixel; every interior node covers a rectangle of
// pixels and stores the exact area-weighted average color of that rectangle.
//
// A node's rectangle is split as evenly as possible along both axes, with
// any odd leftover row/column absorbed into the upper/left side. A rectangle
// one pixel wide splits only vertically (nw/sw), one pixel tall only
// horizontally (nw/ne), so the children always tile the parent exactly.

var (
	ErrEmptyImage       = errors.New("qtree: image has zero width or height")
	ErrInvalidScale     = errors.New("qtree: render scale must be at least 1")
	ErrInvalidTolerance = errors.New("qtree: prune tolerance must be non-negative")
	ErrAlreadyPruned    = errors.New("qtree: tree (or the tree it was cloned from) has already been pruned")
)

// Node is one rectangular region of the image: inclusive corner coordinates,
// the region's average color, and up to four children. All four children nil
// means the node is a leaf, covering either a single source pixel or a whole
// region collapsed by Prune.
type Node struct {
	upLeft   image.Point
	lowRight image.Point
	avg      Pixel

	nw, ne, sw, se *Node
}

func (n *Node) isLeaf() bool {
	return n.nw == nil && n.ne == nil && n.sw == nil && n.se == nil
}

// area returns the number of pixels the node's rectangle covers.
func (n *Node) area() int {
	return (n.lowRight.X - n.upLeft.X + 1) * (n.lowRight.Y - n.upLeft.Y + 1)
}

// QTree owns the root node and the dimensions of the image the tree renders
// to. RotateCCW swaps the stored dimensions; everything else preserves them.
type QTree struct {
	root   *Node
	width  int
	height int

	// pruned records that Prune already ran, on this tree or on the tree it
	// was cloned from. Averages no longer match pixel-exact leaves after a
	// prune, so a second prune would test a stale invariant.
	pruned bool
}

// NewQTree builds the full decomposition of img down to single-pixel leaves.
// The image must be anchored at (0,0), as returned by toRGBA.
func NewQTree(img *image.RGBA) (*QTree, error) {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w < 1 || h < 1 {
		return nil, ErrEmptyImage
	}

	t := &QTree{width: w, height: h}
	t.root = buildNode(img, image.Pt(0, 0), image.Pt(w-1, h-1))
	return t, nil
}

// buildNode recursively decomposes the inclusive rectangle [ul, lr].
func buildNode(img *image.RGBA, ul, lr image.Point) *Node {
	if ul == lr {
		return &Node{upLeft: ul, lowRight: lr, avg: pixelAt(img, ul.X, ul.Y)}
	}

	midX := (ul.X + lr.X) / 2
	midY := (ul.Y + lr.Y) / 2

	nd := &Node{upLeft: ul, lowRight: lr}
	nd.nw = buildNode(img, ul, image.Pt(midX, midY))

	if lr.X == ul.X {
		// One column: only a vertical split is possible.
		nd.sw = buildNode(img, image.Pt(ul.X, midY+1), image.Pt(midX, lr.Y))
	} else {
		nd.ne = buildNode(img, image.Pt(midX+1, ul.Y), image.Pt(lr.X, midY))
		if ul.Y != lr.Y {
			nd.sw = buildNode(img, image.Pt(ul.X, midY+1), image.Pt(midX, lr.Y))
			nd.se = buildNode(img, image.Pt(midX+1, midY+1), lr)
		}
	}

	nd.avg = weightedAverage(nd)
	return nd
}

// weightedAverage computes the parent average from the children, each child
// weighted by its pixel area. The children tile the parent, so their areas
// sum to the parent's. Integer channels truncate via integer division; the
// alpha channel divides in floating point.
func weightedAverage(nd *Node) Pixel {
	var totalR, totalG, totalB int
	var totalA float64

	for _, c := range []*Node{nd.nw, nd.ne, nd.sw, nd.se} {
		if c == nil {
			continue
		}
		a := c.area()
		totalR += c.avg.R * a
		totalG += c.avg.G * a
		totalB += c.avg.B * a
		totalA += c.avg.A * float64(a)
	}

	total := nd.area()
	return Pixel{
		R: totalR / total,
		G: totalG / total,
		B: totalB / total,
		A: totalA / float64(total),
	}
}

// Width returns the horizontal extent of the rendered image at scale 1.
func (t *QTree) Width() int { return t.width }

// Height returns the vertical extent of the rendered image at scale 1.
func (t *QTree) Height() int { return t.height }

// CountNodes returns the total number of nodes in the tree.
func (t *QTree) CountNodes() int {
	return countNodes(t.root)
}

func countNodes(nd *Node) int {
	if nd == nil {
		return 0
	}
	return 1 + countNodes(nd.nw) + countNodes(nd.ne) + countNodes(nd.sw) + countNodes(nd.se)
}

// CountLeaves returns the number of leaves. On an unpruned tree this equals
// width*height; Prune only ever lowers it.
func (t *QTree) CountLeaves() int {
	return countLeaves(t.root)
}

func countLeaves(nd *Node) int {
	if nd == nil {
		return 0
	}
	if nd.isLeaf() {
		return 1
	}
	return countLeaves(nd.nw) + countLeaves(nd.ne) + countLeaves(nd.sw) + countLeaves(nd.se)
}

// Clone returns a deep copy. The copy shares no nodes with the receiver, so
// transforming or pruning one never affects the other.
func (t *QTree) Clone() *QTree {
	return &QTree{
		root:   copyNode(t.root),
		width:  t.width,
		height: t.height,
		pruned: t.pruned,
	}
}

func copyNode(nd *Node) *Node {
	if nd == nil {
		return nil
	}
	return &Node{
		upLeft:   nd.upLeft,
		lowRight: nd.lowRight,
		avg:      nd.avg,
		nw:       copyNode(nd.nw),
		ne:       copyNode(nd.ne),
		sw:       copyNode(nd.sw),
		se:       copyNode(nd.se),
	}
}

// Clear detaches the whole node graph and zeroes the dimensions. The tree is
// unusable afterwards except as an assignment target.
func (t *QTree) Clear() {
	t.root = nil
	t.width = 0
	t.height = 0
	t.pruned = false
}
