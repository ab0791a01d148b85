package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"io"
	"runtime"

	"github.com/klauspost/compress/zstd"
)

// QTC is a minimal compressed raster container for quadtree output. Pruned
// renders are long runs of identical blocks, which zstd squeezes very well,
// so the container stores the raw RGBA rows behind a zstd frame rather than
// any tree structure.
//
// Layout: magic "QTC1" (4 bytes) + width uint16 + height uint16, followed by
// a single zstd frame holding width*height*4 row-major RGBA bytes.

const magicQTC = "QTC1"

var (
	ErrInvalidMagic  = errors.New("qtc: invalid magic")
	ErrTruncated     = errors.New("qtc: truncated payload")
	ErrImageTooLarge = errors.New("qtc: image dimensions exceed 65535")
)

// EncodeQTC packs img into the QTC container. The image bounds must be
// anchored at (0,0); use toRGBA for arbitrary input.
func EncodeQTC(img *image.RGBA) ([]byte, error) {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w > 0xFFFF || h > 0xFFFF {
		return nil, ErrImageTooLarge
	}

	b := &bytes.Buffer{}
	if err := writeHeader(b, uint16(w), uint16(h)); err != nil {
		return nil, err
	}

	enc, err := zstd.NewWriter(b, zstd.WithEncoderConcurrency(runtime.NumCPU()))
	if err != nil {
		return nil, err
	}
	// Pix may carry stride padding; write row by row so the payload is
	// exactly w*h*4 bytes.
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		if _, err := enc.Write(row); err != nil {
			enc.Close()
			return nil, err
		}
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// DecodeQTC unpacks a QTC container produced by EncodeQTC.
func DecodeQTC(data []byte) (*image.RGBA, error) {
	r := bytes.NewReader(data)
	w, h, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	plain, err := io.ReadAll(dec)
	if err != nil {
		return nil, err
	}
	if len(plain) < w*h*4 {
		return nil, ErrTruncated
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		copy(dst.Pix[y*dst.Stride:], plain[y*w*4:(y+1)*w*4])
	}
	return dst, nil
}

func writeHeader(b *bytes.Buffer, w, h uint16) error {
	if _, err := b.Write([]byte(magicQTC)); err != nil {
		return err
	}
	if err := binary.Write(b, binary.BigEndian, w); err != nil {
		return err
	}
	return binary.Write(b, binary.BigEndian, h)
}

func readHeader(r *bytes.Reader) (w, h int, err error) {
	magic := make([]byte, len(magicQTC))
	if _, err = io.ReadFull(r, magic); err != nil {
		return 0, 0, ErrTruncated
	}
	if string(magic) != magicQTC {
		return 0, 0, ErrInvalidMagic
	}

	var w16, h16 uint16
	if err = binary.Read(r, binary.BigEndian, &w16); err != nil {
		return 0, 0, ErrTruncated
	}
	if err = binary.Read(r, binary.BigEndian, &h16); err != nil {
		return 0, 0, ErrTruncated
	}
	return int(w16), int(h16), nil
}
