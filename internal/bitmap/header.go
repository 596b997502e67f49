package bitmap

// On-disk layout of a 24-bit uncompressed bitmap.
const (
	FileHeaderSize = 14
	InfoHeaderSize = 40
	PixelOffset    = FileHeaderSize + InfoHeaderSize

	BitsPerPixel  = 24
	BytesPerPixel = BitsPerPixel / 8

	// 2835 pixels per meter is roughly 72 DPI.
	DefaultResolution = 2835
)

// Signature is the two-byte magic at the start of every bitmap file.
var Signature = [2]byte{'B', 'M'}

// The FileHeader structure contains information about the type, size,
// and layout of a file that contains a DIB [device-independent bitmap].
// https://learn.microsoft.com/en-us/windows/win32/api/wingdi/ns-wingdi-bitmapfileheader
type FileHeader struct {
	Type      [2]byte // The file type: must be 0x4d42 (ASCII string "BM").
	Size      uint32  // The size, in bytes, of the bitmap file.
	Reserved1 uint16  // Reserved; must be zero.
	Reserved2 uint16  // Reserved; must be zero.
	OffBits   uint32  // Offset (in bytes) to the pixel array.
}

// The InfoHeader structure contains information about the
// dimensions and color format of a DIB (BITMAPINFOHEADER).
type InfoHeader struct {
	Size            uint32 // The number of bytes required by the structure.
	Width           int32  // The width of the bitmap, in pixels.
	Height          int32  // The height of the bitmap, in pixels. Negative means top-down rows.
	Planes          uint16 // The number of planes for the target device.
	BitCount        uint16 // The number of bits-per-pixel.
	Compression     uint32 // The type of compression.
	SizeImage       uint32 // The size of the image (in bytes).
	XPixelsPerM     int32  // The horizontal resolution, in pixels-per-meter.
	YPixelsPerM     int32  // The vertical resolution, in pixels-per-meter.
	ColorsUsed      uint32 // Number of color indexes that are actually used by bitmap.
	ColorsImportant uint32 // Number of color indexes required for displaying the bitmap.
}

// Stride returns the number of bytes in one stored row, padding included.
func Stride(width int) int {
	return ((width*BytesPerPixel + 3) / 4) * 4
}

// HeaderInfo is a flattened, JSON-friendly view of both headers.
type HeaderInfo struct {
	Signature       string `json:"signature"`
	FileSize        uint32 `json:"file_size"`
	DataOffset      uint32 `json:"data_offset"`
	HeaderSize      uint32 `json:"header_size"`
	Width           int32  `json:"width"`
	Height          int32  `json:"height"`
	Planes          uint16 `json:"planes"`
	BitCount        uint16 `json:"bit_count"`
	Compression     uint32 `json:"compression"`
	ImageSize       uint32 `json:"image_size"`
	XPixelsPerM     int32  `json:"x_pixels_per_m"`
	YPixelsPerM     int32  `json:"y_pixels_per_m"`
	ColorsUsed      uint32 `json:"colors_used"`
	ColorsImportant uint32 `json:"colors_important"`
	TopDown         bool   `json:"top_down"`
}

func newHeaderInfo(fh *FileHeader, ih *InfoHeader) HeaderInfo {
	return HeaderInfo{
		Signature:       string(fh.Type[:]),
		FileSize:        fh.Size,
		DataOffset:      fh.OffBits,
		HeaderSize:      ih.Size,
		Width:           ih.Width,
		Height:          ih.Height,
		Planes:          ih.Planes,
		BitCount:        ih.BitCount,
		Compression:     ih.Compression,
		ImageSize:       ih.SizeImage,
		XPixelsPerM:     ih.XPixelsPerM,
		YPixelsPerM:     ih.YPixelsPerM,
		ColorsUsed:      ih.ColorsUsed,
		ColorsImportant: ih.ColorsImportant,
		TopDown:         ih.Height < 0,
	}
}

// AbsHeight returns the number of pixel rows.
func (h HeaderInfo) AbsHeight() int {
	if h.Height < 0 {
		return -int(h.Height)
	}
	return int(h.Height)
}

// PixelBytes returns the in-memory size of the decoded pixel grid.
func (h HeaderInfo) PixelBytes() uint64 {
	return uint64(h.Width) * uint64(h.AbsHeight()) * BytesPerPixel
}

// Orientation describes the stored row order.
func (h HeaderInfo) Orientation() string {
	if h.TopDown {
		return "top-to-bottom"
	}
	return "bottom-to-top"
}
