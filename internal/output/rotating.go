package output

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/klauspost/compress/gzip"
)

// RotatingFile is an append-only file that rotates once it crosses a size
// threshold. Rotated generations are numbered path.1 .. path.N, newest
// first, optionally gzip compressed, and pruned beyond maxFiles.
// A threshold of zero disables rotation entirely.
type RotatingFile struct {
	path     string
	maxSize  int
	maxFiles int
	compress bool
	file     *os.File
	written  int
}

func OpenRotatingFile(path string, maxSize, maxFiles int, compress bool) (new *RotatingFile, err error) {
	new = &RotatingFile{
		path:     path,
		maxSize:  maxSize,
		maxFiles: maxFiles,
		compress: compress,
	}
	err = new.open()
	if err != nil {
		new = nil
	}
	return
}

func (r *RotatingFile) open() (err error) {
	r.file, err = os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		err = fmt.Errorf("failed to open output file '%s': %v", r.path, err)
		return
	}
	info, err := r.file.Stat()
	if err != nil {
		err = fmt.Errorf("failed to stat output file '%s': %v", r.path, err)
		return
	}
	r.written = int(info.Size())
	return
}

func (r *RotatingFile) Write(p []byte) (n int, err error) {
	if r.maxSize > 0 && r.written+len(p) > r.maxSize && r.written > 0 {
		if err = r.rotate(); err != nil {
			return
		}
	}
	n, err = r.file.Write(p)
	r.written += n
	return
}

func (r *RotatingFile) Sync() (err error) {
	err = r.file.Sync()
	return
}

func (r *RotatingFile) Close() (err error) {
	err = r.file.Close()
	return
}

// Shifts every older generation up one slot and reopens a fresh file
func (r *RotatingFile) rotate() (err error) {
	if err = r.file.Close(); err != nil {
		return
	}

	ext := ""
	if r.compress {
		ext = ".gz"
	}

	// drop the oldest, shift the rest
	_ = os.Remove(r.generation(r.maxFiles, ext))
	for i := r.maxFiles - 1; i >= 1; i-- {
		_ = os.Rename(r.generation(i, ext), r.generation(i+1, ext))
	}

	if r.compress {
		if err = compressFile(r.path, r.generation(1, ext)); err != nil {
			return
		}
		_ = os.Remove(r.path)
	} else {
		if err = os.Rename(r.path, r.generation(1, "")); err != nil {
			return
		}
	}

	r.written = 0
	err = r.open()
	return
}

func (r *RotatingFile) generation(n int, ext string) (name string) {
	name = r.path + "." + strconv.Itoa(n) + ext
	return
}

func compressFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	if _, err = io.Copy(gz, in); err != nil {
		return
	}
	err = gz.Close()
	return
}
