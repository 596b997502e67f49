package bitmap

import (
	"encoding/binary"
	"errors"
	"io"
)

// Decode reads a 24-bit uncompressed bitmap from r.
func Decode(r io.Reader) (*Image, error) {
	fh, ih, err := readHeaders(r)
	if err != nil {
		return nil, err
	}

	if ih.Size != InfoHeaderSize {
		return nil, formatErr(ErrBadHeaderSize, "got %d bytes, want %d", ih.Size, InfoHeaderSize)
	}
	if ih.BitCount != BitsPerPixel {
		return nil, formatErr(ErrBadBitDepth, "got %d bits per pixel", ih.BitCount)
	}
	if ih.Compression != 0 {
		return nil, formatErr(ErrBadCompression, "compression type %d", ih.Compression)
	}
	if ih.Width <= 0 || ih.Height == 0 {
		return nil, formatErr(ErrBadDimensions, "%dx%d", ih.Width, ih.Height)
	}
	if fh.OffBits < PixelOffset {
		return nil, formatErr(ErrBadHeaderSize, "pixel data offset %d overlaps headers", fh.OffBits)
	}

	width := int(ih.Width)
	height := int(ih.Height)
	topDown := false // Pixels are stored TopDown?
	if height < 0 {
		topDown = true
		height = -height
	}

	img, err := New(width, height)
	if err != nil {
		return nil, err
	}
	img.TopDown = topDown
	img.XPixelsPerM = ih.XPixelsPerM
	img.YPixelsPerM = ih.YPixelsPerM

	// Skip anything between the headers and the pixel array
	if gap := int64(fh.OffBits) - PixelOffset; gap > 0 {
		if _, err := io.CopyN(io.Discard, r, gap); err != nil {
			return nil, formatErr(ErrShortRead, "seek to pixel data: %v", err)
		}
	}

	stride := Stride(width)
	row := make([]byte, stride)

	for i := range height {
		y := height - i - 1 // Bottom-up: first stored row is the last visual row
		if topDown {
			y = i
		}

		if _, err := io.ReadFull(r, row); err != nil {
			return nil, formatErr(ErrShortRead, "row %d of %d: %v", i+1, height, err)
		}

		dst := img.Row(y)
		for x := range dst {
			// Storage order is BGR
			dst[x] = Pixel{B: row[x*3], G: row[x*3+1], R: row[x*3+2]}
		}
	}

	return img, nil
}

// Validate checks the headers of r without reading the pixel data. It reports
// ErrUnreadable, ErrBadSignature, ErrBadHeaderSize or ErrBadBitDepth.
func Validate(r io.Reader) (HeaderInfo, error) {
	var fh FileHeader
	if err := binary.Read(r, binary.LittleEndian, &fh); err != nil {
		return HeaderInfo{}, &FormatError{Reason: ErrUnreadable, Detail: err.Error()}
	}
	if fh.Type != Signature {
		return HeaderInfo{}, formatErr(ErrBadSignature, "got %q", fh.Type[:])
	}

	var ih InfoHeader
	if err := binary.Read(r, binary.LittleEndian, &ih.Size); err != nil {
		return HeaderInfo{}, formatErr(ErrBadHeaderSize, "read header size: %v", err)
	}
	if ih.Size != InfoHeaderSize {
		return HeaderInfo{}, formatErr(ErrBadHeaderSize, "got %d bytes, want %d", ih.Size, InfoHeaderSize)
	}

	// Remaining 36 bytes of the info header
	rest := []any{&ih.Width, &ih.Height, &ih.Planes, &ih.BitCount, &ih.Compression, &ih.SizeImage,
		&ih.XPixelsPerM, &ih.YPixelsPerM, &ih.ColorsUsed, &ih.ColorsImportant}
	for _, field := range rest {
		if err := binary.Read(r, binary.LittleEndian, field); err != nil {
			return HeaderInfo{}, formatErr(ErrBadBitDepth, "truncated info header: %v", err)
		}
	}
	if ih.BitCount != BitsPerPixel {
		return HeaderInfo{}, formatErr(ErrBadBitDepth, "got %d bits per pixel", ih.BitCount)
	}

	return newHeaderInfo(&fh, &ih), nil
}

func readHeaders(r io.Reader) (*FileHeader, *InfoHeader, error) {
	var fh FileHeader
	if err := binary.Read(r, binary.LittleEndian, &fh); err != nil {
		return nil, nil, headerReadErr("file header", err)
	}
	if fh.Type != Signature {
		return nil, nil, formatErr(ErrBadSignature, "got %q", fh.Type[:])
	}

	// READ Info Header OR (more commonly) DIB Header!
	var ih InfoHeader
	if err := binary.Read(r, binary.LittleEndian, &ih); err != nil {
		return nil, nil, headerReadErr("info header", err)
	}

	return &fh, &ih, nil
}

func headerReadErr(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return formatErr(ErrShortRead, "%s truncated", what)
	}
	return &FormatError{Reason: ErrUnreadable, Detail: what + ": " + err.Error()}
}
