package mnist

import (
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/aalvaropc/digitprobe/internal/domain"
)

const (
	imagesMagic = 0x00000803
	labelsMagic = 0x00000801
)

type imageHeader struct {
	Count int
	Rows  int
	Cols  int
}

// readImageAt streams the gzip archive at path and decodes only record index.
// It returns an *indexError when index is past the end of the set.
func readImageAt(path string, index int) ([]uint8, imageHeader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, imageHeader{}, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, imageHeader{}, fmt.Errorf("gzip: %w", err)
	}
	defer zr.Close()

	var raw [4]uint32
	if err := binary.Read(zr, binary.BigEndian, &raw); err != nil {
		return nil, imageHeader{}, fmt.Errorf("read image header: %w", err)
	}
	if raw[0] != imagesMagic {
		return nil, imageHeader{}, fmt.Errorf("bad image magic %#08x", raw[0])
	}
	h := imageHeader{Count: int(raw[1]), Rows: int(raw[2]), Cols: int(raw[3])}
	if raw[2] != domain.ImageSide || raw[3] != domain.ImageSide {
		return nil, h, fmt.Errorf("bad image geometry %dx%d, want %dx%d", raw[3], raw[2], domain.ImageSide, domain.ImageSide)
	}
	if index < 0 || index >= h.Count {
		return nil, h, &indexError{index: index, count: h.Count}
	}

	size := int64(domain.ImagePixels)
	if _, err := io.CopyN(io.Discard, zr, int64(index)*size); err != nil {
		return nil, h, fmt.Errorf("seek to image %d: %w", index, err)
	}
	pix := make([]uint8, size)
	if _, err := io.ReadFull(zr, pix); err != nil {
		return nil, h, fmt.Errorf("read image %d: %w", index, err)
	}
	return pix, h, nil
}

// readLabelAt returns the label at index plus the number of labels in the file.
func readLabelAt(path string, index int) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return 0, 0, fmt.Errorf("gzip: %w", err)
	}
	defer zr.Close()

	var raw [2]uint32
	if err := binary.Read(zr, binary.BigEndian, &raw); err != nil {
		return 0, 0, fmt.Errorf("read label header: %w", err)
	}
	if raw[0] != labelsMagic {
		return 0, 0, fmt.Errorf("bad label magic %#08x", raw[0])
	}
	count := int(raw[1])
	if index < 0 || index >= count {
		return 0, count, &indexError{index: index, count: count}
	}

	if _, err := io.CopyN(io.Discard, zr, int64(index)); err != nil {
		return 0, count, fmt.Errorf("seek to label %d: %w", index, err)
	}
	var b [1]byte
	if _, err := io.ReadFull(zr, b[:]); err != nil {
		return 0, count, fmt.Errorf("read label %d: %w", index, err)
	}
	return int(b[0]), count, nil
}

type indexError struct {
	index int
	count int
}

func (e *indexError) Error() string {
	if e.count == 0 {
		return fmt.Sprintf("index %d out of range: test set is empty", e.index)
	}
	return fmt.Sprintf("index %d is past the end of the test set (0-%d)", e.index, e.count-1)
}
