package main

import (
	"image"
	"testing"
)

func TestFlipHorizontal_Mirrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		w, h int
	}{
		{name: "even", w: 8, h: 6},
		{name: "odd", w: 13, h: 9},
		{name: "column", w: 1, h: 7},
		{name: "row", w: 7, h: 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			img := makeTestImage(tc.w, tc.h)
			tree := mustBuild(t, img)
			tree.FlipHorizontal()

			out, err := tree.Render(1)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			for y := 0; y < tc.h; y++ {
				for x := 0; x < tc.w; x++ {
					if got, want := out.RGBAAt(x, y), img.RGBAAt(tc.w-1-x, y); got != want {
						t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestFlipHorizontal_Involution(t *testing.T) {
	img := makeTestImage(13, 9)

	t.Run("unpruned", func(t *testing.T) {
		tree := mustBuild(t, img)
		tree.FlipHorizontal()
		tree.FlipHorizontal()
		out, err := tree.Render(1)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if !sameImage(img, out) {
			t.Fatalf("double flip does not restore the original")
		}
	})

	t.Run("pruned", func(t *testing.T) {
		tree := mustBuild(t, img)
		if err := tree.Prune(80); err != nil {
			t.Fatalf("Prune: %v", err)
		}
		want, err := tree.Render(1)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		tree.FlipHorizontal()
		tree.FlipHorizontal()
		got, err := tree.Render(1)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if !sameImage(want, got) {
			t.Fatalf("double flip changed a pruned tree's render")
		}
	})
}

func TestRotateCCW_Mapping(t *testing.T) {
	for _, tc := range []struct {
		name string
		w, h int
	}{
		{name: "wide", w: 6, h: 3},
		{name: "tall", w: 3, h: 6},
		{name: "odd", w: 13, h: 9},
		{name: "column", w: 1, h: 5},
	} {
		t.Run(tc.name, func(t *testing.T) {
			img := makeTestImage(tc.w, tc.h)
			tree := mustBuild(t, img)
			tree.RotateCCW()

			if tree.Width() != tc.h || tree.Height() != tc.w {
				t.Fatalf("dimensions = %dx%d, want %dx%d", tree.Width(), tree.Height(), tc.h, tc.w)
			}

			out, err := tree.Render(1)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			// CCW: source pixel (x, y) lands at (y, w-1-x).
			for y := 0; y < tc.w; y++ {
				for x := 0; x < tc.h; x++ {
					if got, want := out.RGBAAt(x, y), img.RGBAAt(tc.w-1-y, x); got != want {
						t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestRotateCCW_Periodicity(t *testing.T) {
	img := makeTestImage(13, 9)
	tree := mustBuild(t, img)

	for i := 0; i < 4; i++ {
		tree.RotateCCW()
	}
	out, err := tree.Render(1)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !sameImage(img, out) {
		t.Fatalf("four rotations do not restore the original")
	}
}

func TestRotateCCW_OnPruned(t *testing.T) {
	img := makeTestImage(16, 12)
	tree := mustBuild(t, img)
	if err := tree.Prune(120); err != nil {
		t.Fatalf("Prune: %v", err)
	}
	want, err := tree.Render(1)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for i := 0; i < 4; i++ {
		tree.RotateCCW()
	}
	got, err := tree.Render(1)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !sameImage(want, got) {
		t.Fatalf("four rotations changed a pruned tree's render")
	}
}

// Flips and rotations compose: rotate+flip+flip+rotate^3 is the identity.
func TestTransform_Composition(t *testing.T) {
	img := makeTestImage(11, 7)
	tree := mustBuild(t, img)

	tree.RotateCCW()
	tree.FlipHorizontal()
	tree.FlipHorizontal()
	tree.RotateCCW()
	tree.RotateCCW()
	tree.RotateCCW()

	out, err := tree.Render(1)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !sameImage(img, out) {
		t.Fatalf("composed transforms do not restore the original")
	}
}

// After a transform the node coordinates must stay consistent with the
// tree's dimensions: every leaf inside bounds, the root spanning them.
func TestTransform_CoordinateInvariant(t *testing.T) {
	tree := mustBuild(t, makeTestImage(13, 9))
	tree.FlipHorizontal()
	tree.RotateCCW()

	root := tree.root
	if root.upLeft != image.Pt(0, 0) || root.lowRight != image.Pt(tree.Width()-1, tree.Height()-1) {
		t.Fatalf("root spans %v..%v, want (0,0)..(%d,%d)",
			root.upLeft, root.lowRight, tree.Width()-1, tree.Height()-1)
	}

	var walk func(nd *Node)
	walk = func(nd *Node) {
		if nd == nil {
			return
		}
		if nd.upLeft.X > nd.lowRight.X || nd.upLeft.Y > nd.lowRight.Y {
			t.Fatalf("corner ordering broken at %v..%v", nd.upLeft, nd.lowRight)
		}
		if nd.upLeft.X < 0 || nd.upLeft.Y < 0 ||
			nd.lowRight.X >= tree.Width() || nd.lowRight.Y >= tree.Height() {
			t.Fatalf("node %v..%v out of %dx%d bounds", nd.upLeft, nd.lowRight, tree.Width(), tree.Height())
		}
		walk(nd.nw)
		walk(nd.ne)
		walk(nd.sw)
		walk(nd.se)
	}
	walk(root)
}
