package imageio

import (
	"bufio"
	"os"

	"github.com/kiesman99/imagecraft/internal/bitmap"
)

// ReadFile decodes the image stored at path.
func ReadFile(path string) (*bitmap.Image, Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", &bitmap.FileAccessError{Op: "read", Path: path, Err: err}
	}
	return Decode(data)
}

// WriteFile encodes img into path, replacing any existing file.
func WriteFile(path string, img *bitmap.Image, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return &bitmap.FileAccessError{Op: "create", Path: path, Err: err}
	}

	w := bufio.NewWriter(f)
	if err := Encode(w, img, format); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return &bitmap.FileAccessError{Op: "write", Path: path, Err: err}
	}

	if err := f.Close(); err != nil {
		return &bitmap.FileAccessError{Op: "close", Path: path, Err: err}
	}
	return nil
}
