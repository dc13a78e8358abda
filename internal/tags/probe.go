package tags

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	id3Magic      = "ID3"
	id3HeaderSize = 10
)

// tagHeader is what probeHeader learns from the first bytes of a file.
type tagHeader struct {
	Present bool
	Major   byte
	Size    int64 // header + frames (+ footer), 0 when not present
}

// probeHeader checks for an ID3v2 header without handing the file to the
// codec, so that "no tag" and "broken tag" are told apart before anything is
// created or rewritten.
func probeHeader(path string) (tagHeader, error) {
	f, err := os.Open(path)
	if err != nil {
		return tagHeader{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return tagHeader{}, err
	}

	buf := make([]byte, id3HeaderSize)
	if _, err := io.ReadFull(f, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return tagHeader{}, nil
		}
		return tagHeader{}, err
	}
	if string(buf[:3]) != id3Magic {
		return tagHeader{}, nil
	}

	major, revision, flags := buf[3], buf[4], buf[5]
	if major == 0xff || revision == 0xff {
		return tagHeader{}, fmt.Errorf("%w: invalid version %d.%d", ErrMalformedTag, major, revision)
	}
	if major < 2 || major > 4 {
		return tagHeader{}, fmt.Errorf("%w: unknown major version %d", ErrMalformedTag, major)
	}

	// Synchsafe integer: each byte carries 7 bits
	var size int64
	for _, b := range buf[6:10] {
		if b&0x80 != 0 {
			return tagHeader{}, fmt.Errorf("%w: size is not synchsafe", ErrMalformedTag)
		}
		size = size<<7 | int64(b)
	}
	size += id3HeaderSize

	// Footer flag, ID3v2.4 only
	if major == 4 && flags&0x10 != 0 {
		size += id3HeaderSize
	}

	if size > info.Size() {
		return tagHeader{}, fmt.Errorf("%w: tag size (%d) exceeds file size (%d)", ErrMalformedTag, size, info.Size())
	}

	return tagHeader{Present: true, Major: major, Size: size}, nil
}
