package tags

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Sentinel errors returned (possibly wrapped) by Store operations.
var (
	// ErrFileNotFound matches every *FileNotFoundError.
	ErrFileNotFound = errors.New("file not found")

	// ErrMalformedTag reports an ID3v2 container that cannot be parsed.
	// Reads treat it as absent metadata; writes surface it.
	ErrMalformedTag = errors.New("malformed ID3v2 tag")

	// ErrUnsupportedVersion reports an ID3v2 container older than v2.3.
	ErrUnsupportedVersion = errors.New("unsupported ID3v2 version")

	// ErrNoCoverArt is returned by ExportCoverArt when nothing is embedded.
	ErrNoCoverArt = errors.New("no cover art")

	// errNoTagHeader never leaves the package.
	errNoTagHeader = errors.New("no ID3v2 tag header")
)

// File roles used in FileNotFoundError.
const (
	RoleAudio = "audio file"
	RoleImage = "image file"
)

// FileNotFoundError is returned when an input path does not exist.
type FileNotFoundError struct {
	Role string // RoleAudio or RoleImage
	Path string
	Err  error
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Role, e.Path)
}

func (e *FileNotFoundError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrFileNotFound) hold.
func (e *FileNotFoundError) Is(target error) bool {
	return target == ErrFileNotFound
}

// TagWriteError is returned when a write operation could not persist its
// changes. The file is left untouched in that case.
type TagWriteError struct {
	Op   string
	Path string
	Err  error
}

func (e *TagWriteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *TagWriteError) Unwrap() error { return e.Err }

// requireFile checks that path exists.
func requireFile(role, path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return &FileNotFoundError{Role: role, Path: path, Err: err}
	}
	return fmt.Errorf("stat %s: %w", role, err)
}
