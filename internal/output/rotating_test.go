package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func TestRotatingFileNoRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	file, err := OpenRotatingFile(path, 0, 2, false)
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}

	for i := 0; i < 10; i++ {
		if _, err = file.Write([]byte("0123456789\n")); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	if err = file.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(data) != 110 {
		t.Fatalf("expected 110 bytes, got %d", len(data))
	}
	if _, err = os.Stat(path + ".1"); err == nil {
		t.Fatalf("no rotation expected")
	}
}

func TestRotatingFileRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	file, err := OpenRotatingFile(path, 25, 2, false)
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}

	// 11 bytes per write, the threshold trips on the third
	for i := 0; i < 6; i++ {
		if _, err = file.Write([]byte("0123456789\n")); err != nil {
			t.Fatalf("write %d failed: %v", i, err)
		}
	}
	if err = file.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	if _, err = os.Stat(path + ".1"); err != nil {
		t.Fatalf("expected a rotated generation: %v", err)
	}
	live, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(live) == 0 || len(live) > 25 {
		t.Fatalf("live file should hold the most recent writes, got %d bytes", len(live))
	}
}

func TestRotatingFileCompression(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	file, err := OpenRotatingFile(path, 25, 2, true)
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}

	for i := 0; i < 6; i++ {
		if _, err = file.Write([]byte("0123456789\n")); err != nil {
			t.Fatalf("write %d failed: %v", i, err)
		}
	}
	if err = file.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	compressed, err := os.ReadFile(path + ".1.gz")
	if err != nil {
		t.Fatalf("expected a compressed generation: %v", err)
	}
	reader, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		t.Fatalf("rotated file is not valid gzip: %v", err)
	}
	defer reader.Close()
	var out bytes.Buffer
	if _, err = out.ReadFrom(reader); err != nil {
		t.Fatalf("failed to inflate the rotated file: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("0123456789")) {
		t.Fatalf("rotated content was lost")
	}
}
