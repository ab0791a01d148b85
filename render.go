package main

import "image"

// Render draws the tree onto a fresh raster of size (width*scale,
// height*scale). Each leaf fills its whole rectangle, scaled by the integer
// factor in both dimensions, with the leaf's average color; no interpolation
// is done, so upscaled output is made of uniform blocks. Works on pruned and
// transformed trees.
func (t *QTree) Render(scale int) (*image.RGBA, error) {
	if scale < 1 {
		return nil, ErrInvalidScale
	}

	img := image.NewRGBA(image.Rect(0, 0, t.width*scale, t.height*scale))
	renderNode(img, t.root, scale)
	return img, nil
}

func renderNode(img *image.RGBA, nd *Node, scale int) {
	if nd == nil {
		return
	}
	if nd.isLeaf() {
		drawBlock(img, nd, scale)
		return
	}
	renderNode(img, nd.nw, scale)
	renderNode(img, nd.ne, scale)
	renderNode(img, nd.sw, scale)
	renderNode(img, nd.se, scale)
}

// drawBlock fills the leaf's rectangle, scaled up, with its average color.
func drawBlock(img *image.RGBA, nd *Node, scale int) {
	c := nd.avg.RGBA()
	x0 := nd.upLeft.X * scale
	y0 := nd.upLeft.Y * scale
	x1 := (nd.lowRight.X + 1) * scale
	y1 := (nd.lowRight.Y + 1) * scale

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}
