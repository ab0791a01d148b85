package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

func usage() {
	fmt.Fprint(os.Stderr, `Usage:
  compressor [flags] <input-image> [output]
  compressor <input.qtc>           decode a container back to PNG

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	var (
		quality   = flag.Int("quality", 80, "compression quality 0-100 (100 = lossless)")
		tolerance = flag.Float64("tolerance", -1, "prune tolerance; overrides -quality when non-negative")
		scale     = flag.Int("scale", 1, "integer upscale factor for the output")
		flip      = flag.Bool("flip", false, "mirror the image horizontally")
		rotate    = flag.Int("rotate", 0, "rotate 90 degrees counter-clockwise this many times")
		blur      = flag.Float64("blur", 0, "Gaussian blur sigma applied before compression")
		resize    = flag.String("resize", "", "resize input to WxH before compression (either side may be empty)")
		useQTC    = flag.Bool("qtc", false, "write a .qtc container instead of PNG")
		stats     = flag.Bool("stats", false, "print a compression report")
	)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		usage()
		os.Exit(1)
	}

	inputPath := flag.Arg(0)
	ext := strings.ToLower(filepath.Ext(inputPath))
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))

	// A .qtc input decodes straight back to PNG.
	if ext == ".qtc" {
		outPath := base + ".png"
		if flag.NArg() == 2 {
			outPath = flag.Arg(1)
		}
		if err := decodeToPNG(inputPath, outPath); err != nil {
			fmt.Fprintln(os.Stderr, "decode error:", err)
			os.Exit(1)
		}
		fmt.Printf("Decoded %s -> %s\n", inputPath, outPath)
		return
	}

	tol := *tolerance
	if tol < 0 {
		tol = toleranceForQuality(*quality)
	}

	outPath := base + "_compressed.png"
	if *useQTC {
		outPath = base + ".qtc"
	}
	if flag.NArg() == 2 {
		outPath = flag.Arg(1)
	}

	rw, rh, err := parseResize(*resize)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid -resize:", err)
		os.Exit(1)
	}

	report, err := compressFile(inputPath, outPath, compressOptions{
		tolerance: tol,
		scale:     *scale,
		flip:      *flip,
		rotations: *rotate,
		blurSigma: *blur,
		resizeW:   rw,
		resizeH:   rh,
		container: *useQTC,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "compress error:", err)
		os.Exit(1)
	}

	fmt.Printf("Compressed %s (tolerance=%.1f) -> %s\n", inputPath, tol, outPath)
	if *stats {
		report.print()
	}
}

type compressOptions struct {
	tolerance float64
	scale     int
	flip      bool
	rotations int
	blurSigma float64
	resizeW   int
	resizeH   int
	container bool
}

type compressReport struct {
	nodesBefore  int
	leavesBefore int
	nodesAfter   int
	leavesAfter  int
	inputBytes   int64
	outputBytes  int64
}

func (r compressReport) print() {
	fmt.Println("--- Compression Report ---")
	fmt.Printf("  Nodes:  %d -> %d\n", r.nodesBefore, r.nodesAfter)
	fmt.Printf("  Leaves: %d -> %d\n", r.leavesBefore, r.leavesAfter)
	fmt.Printf("  Input Bytes:  %d\n", r.inputBytes)
	fmt.Printf("  Output Bytes: %d\n", r.outputBytes)
	if r.outputBytes > 0 {
		fmt.Printf("  Ratio (input/output): %.2f\n", float64(r.inputBytes)/float64(r.outputBytes))
	}
	fmt.Println("--- End Compression Report ---")
}

func compressFile(inPath, outPath string, opts compressOptions) (compressReport, error) {
	var report compressReport

	in, err := os.Open(inPath)
	if err != nil {
		return report, err
	}
	defer in.Close()

	if fi, err := in.Stat(); err == nil {
		report.inputBytes = fi.Size()
	}

	src, _, err := image.Decode(in)
	if err != nil {
		return report, err
	}

	rgba := toRGBA(src)
	rgba = resizeImage(rgba, opts.resizeW, opts.resizeH)
	rgba = blurImage(rgba, opts.blurSigma)

	tree, err := NewQTree(rgba)
	if err != nil {
		return report, err
	}
	report.nodesBefore = tree.CountNodes()
	report.leavesBefore = tree.CountLeaves()

	if err := tree.Prune(opts.tolerance); err != nil {
		return report, err
	}
	if opts.flip {
		tree.FlipHorizontal()
	}
	for i := 0; i < opts.rotations; i++ {
		tree.RotateCCW()
	}
	report.nodesAfter = tree.CountNodes()
	report.leavesAfter = tree.CountLeaves()

	rendered, err := tree.Render(opts.scale)
	if err != nil {
		return report, err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return report, err
	}
	defer out.Close()

	if opts.container {
		enc, err := EncodeQTC(rendered)
		if err != nil {
			return report, err
		}
		if _, err := out.Write(enc); err != nil {
			return report, err
		}
		report.outputBytes = int64(len(enc))
		return report, nil
	}

	if err := png.Encode(out, rendered); err != nil {
		return report, err
	}
	if fi, err := out.Stat(); err == nil {
		report.outputBytes = fi.Size()
	}
	return report, nil
}

func decodeToPNG(inPath, outPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}

	img, err := DecodeQTC(data)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	return png.Encode(out, img)
}

// parseResize parses "WxH"; either side may be empty to keep the aspect ratio.
func parseResize(s string) (w, h int, err error) {
	if s == "" {
		return 0, 0, nil
	}
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want WxH, got %q", s)
	}
	if parts[0] != "" {
		if w, err = strconv.Atoi(parts[0]); err != nil {
			return 0, 0, err
		}
	}
	if parts[1] != "" {
		if h, err = strconv.Atoi(parts[1]); err != nil {
			return 0, 0, err
		}
	}
	if w < 0 || h < 0 {
		return 0, 0, fmt.Errorf("dimensions must be non-negative")
	}
	return w, h, nil
}
