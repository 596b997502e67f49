package bitmap

import (
	"bufio"
	"os"
)

// DecodeFile reads the bitmap stored at path.
func DecodeFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	return Decode(bufio.NewReader(f))
}

// ValidateFile checks the headers of the bitmap stored at path.
func ValidateFile(path string) (HeaderInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return HeaderInfo{}, &FileAccessError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	return Validate(f)
}

// EncodeFile writes img to path, replacing any existing file.
func EncodeFile(path string, img *Image) error {
	f, err := os.Create(path)
	if err != nil {
		return &FileAccessError{Op: "create", Path: path, Err: err}
	}

	if err := Encode(f, img); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return &FileAccessError{Op: "close", Path: path, Err: err}
	}
	return nil
}
