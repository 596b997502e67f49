package bitmap

import (
	"bufio"
	"encoding/binary"
	"io"
)

// Headers computes the file and info headers that describe img.
func Headers(img *Image) (FileHeader, InfoHeader) {
	stride := Stride(img.Width)
	sizeImage := uint32(stride * img.Height)

	height := int32(img.Height)
	if img.TopDown {
		height = -height
	}

	fh := FileHeader{
		Type:    Signature,
		Size:    PixelOffset + sizeImage, // Size of the whole bitmap file
		OffBits: PixelOffset,
	}
	ih := InfoHeader{
		Size:        InfoHeaderSize,
		Width:       int32(img.Width),
		Height:      height,
		Planes:      1,
		BitCount:    BitsPerPixel,
		SizeImage:   sizeImage,
		XPixelsPerM: img.XPixelsPerM,
		YPixelsPerM: img.YPixelsPerM,
	}

	return fh, ih
}

// Encode writes img to w as a 24-bit uncompressed bitmap. Rows are written in
// the order recorded by img.TopDown.
func Encode(w io.Writer, img *Image) error {
	if img == nil || img.Width <= 0 || img.Height <= 0 || len(img.Pix) != img.Width*img.Height {
		return &EncodeError{Stage: "check image", Err: ErrBadDimensions}
	}

	fh, ih := Headers(img)

	// Create a buffer (to reduce syscalls)
	bw := bufio.NewWriter(w)

	if err := binary.Write(bw, binary.LittleEndian, &fh); err != nil {
		return &EncodeError{Stage: "write file header", Err: err}
	}
	if err := binary.Write(bw, binary.LittleEndian, &ih); err != nil {
		return &EncodeError{Stage: "write info header", Err: err}
	}

	// Padding bytes stay zero for every row
	row := make([]byte, Stride(img.Width))

	for i := range img.Height {
		y := img.Height - i - 1 // BottomUp: last row first
		if img.TopDown {
			y = i
		}

		for x, p := range img.Row(y) {
			row[x*3] = p.B
			row[x*3+1] = p.G
			row[x*3+2] = p.R
		}

		if _, err := bw.Write(row); err != nil {
			return &EncodeError{Stage: "write row", Err: err}
		}
	}

	if err := bw.Flush(); err != nil {
		return &EncodeError{Stage: "flush", Err: err}
	}

	return nil
}
