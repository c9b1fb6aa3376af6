package fileutil

import "io"

// VisualReader counts the bytes read through it.
type VisualReader struct {
	io.Reader
	Cur int64
}

func NewVisualReader(r io.Reader) *VisualReader {
	return &VisualReader{Reader: r}
}

func (r *VisualReader) Read(p []byte) (int, error) {
	n, err := r.Reader.Read(p)
	r.Cur += int64(n)
	return n, err
}
