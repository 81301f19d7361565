// Package mnisttest writes small synthetic IDX archives for tests.
package mnisttest

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/aalvaropc/digitprobe/internal/infra/mnist"
)

const Side = 28

// Digit returns a 28x28 raster whose pixels are all v, with a bright diagonal
// so different samples are distinguishable.
func Digit(v uint8) []uint8 {
	pix := make([]uint8, Side*Side)
	for i := range pix {
		pix[i] = v
	}
	for i := 0; i < Side; i++ {
		pix[i*Side+i] = 255
	}
	return pix
}

// WriteSplit writes images and labels as gzip IDX archives under dir and
// returns the file set with matching digests.
func WriteSplit(t testing.TB, dir string, images [][]uint8, labels []uint8) mnist.Files {
	t.Helper()
	return WriteSplitSized(t, dir, Side, Side, images, labels)
}

// WriteSplitSized is WriteSplit with an arbitrary geometry in the image header.
// The image records are written as given.
func WriteSplitSized(t testing.TB, dir string, rows, cols uint32, images [][]uint8, labels []uint8) mnist.Files {
	t.Helper()

	var img bytes.Buffer
	_ = binary.Write(&img, binary.BigEndian, [4]uint32{0x00000803, uint32(len(images)), rows, cols})
	for _, im := range images {
		img.Write(im)
	}

	var lbl bytes.Buffer
	_ = binary.Write(&lbl, binary.BigEndian, [2]uint32{0x00000801, uint32(len(labels))})
	lbl.Write(labels)

	return mnist.Files{
		Images: writeGzip(t, dir, "test-images-idx3-ubyte.gz", img.Bytes()),
		Labels: writeGzip(t, dir, "test-labels-idx1-ubyte.gz", lbl.Bytes()),
	}
}

// Sequential builds n samples whose label is i%10 and whose fill value is i.
func Sequential(n int) ([][]uint8, []uint8) {
	images := make([][]uint8, n)
	labels := make([]uint8, n)
	for i := 0; i < n; i++ {
		images[i] = Digit(uint8(i))
		labels[i] = uint8(i % 10)
	}
	return images, labels
}

// Gzip compresses raw the way the archives are stored.
func Gzip(t testing.TB, raw []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func writeGzip(t testing.TB, dir, name string, raw []byte) mnist.File {
	t.Helper()

	b := Gzip(t, raw)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), b, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	sum := sha256.Sum256(b)
	return mnist.File{Name: name, SHA256: hex.EncodeToString(sum[:])}
}
