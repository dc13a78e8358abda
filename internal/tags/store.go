// Package tags reads and writes the cover art, title and artist stored in the
// ID3v2 tag of MP3 files.
//
// Reads resolve ambiguity toward "absent": a file without a tag, or with a tag
// that cannot be parsed, simply has no cover art and no metadata. Writes
// resolve it toward errors: a broken tag is reported instead of being
// overwritten. Every write is persisted as ID3v2.3 in a single save.
package tags

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/rs/zerolog"
)

// ExtMP3 is the only file extension the store is meant for.
const ExtMP3 = ".mp3"

// Frame IDs managed by the store.
const (
	frameTitle   = "TIT2"
	frameArtist  = "TPE1"
	framePicture = "APIC"
)

const (
	coverDescription = "Cover"
	writeVersion     = 3 // ID3v2.3, for player compatibility
)

// Operation names carried by TagWriteError.
const (
	opWriteCover  = "write cover art"
	opRemoveCover = "remove cover art"
	opWriteText   = "write text metadata"
)

// IsMP3 returns true if path has an .mp3 extension.
func IsMP3(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ExtMP3)
}

// Store performs tag operations on MP3 files. Each call parses the file from
// disk, applies its change and saves before returning; nothing is cached.
//
// Store does no locking. Callers must not run two write operations on the
// same path at the same time.
type Store struct {
	log            zerolog.Logger
	warnOnMismatch bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for per-call diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithMismatchWarnings toggles the warning logged when an image's content
// does not match the MIME type derived from its extension.
func WithMismatchWarnings(enabled bool) Option {
	return func(s *Store) { s.warnOnMismatch = enabled }
}

// NewStore creates a Store. Without options it logs nothing.
func NewStore(opts ...Option) *Store {
	s := &Store{
		log:            zerolog.Nop(),
		warnOnMismatch: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// openForRead parses the tag of path. It returns errNoTagHeader when the file
// has no tag, ErrUnsupportedVersion for ID3v2.2 and ErrMalformedTag when the
// container cannot be parsed.
func (s *Store) openForRead(path string) (*id3v2.Tag, error) {
	h, err := probeHeader(path)
	if err != nil {
		return nil, err
	}
	if !h.Present {
		return nil, errNoTagHeader
	}
	if h.Major < 3 {
		return nil, ErrUnsupportedVersion
	}
	return openParsed(path)
}

// openForWrite returns the tag of path, or a new empty tag when the file has
// none. Existence is checked first so that a failure to parse is never
// mistaken for a missing tag.
func (s *Store) openForWrite(path string) (*id3v2.Tag, error) {
	h, err := probeHeader(path)
	if err != nil {
		return nil, err
	}
	if !h.Present {
		s.log.Debug().Str("path", path).Msg("no ID3v2 tag, creating one")
		return id3v2.Open(path, id3v2.Options{Parse: false})
	}
	if h.Major < 3 {
		return nil, fmt.Errorf("%w: ID3v2.%d", ErrUnsupportedVersion, h.Major)
	}
	return openParsed(path)
}

func openParsed(path string) (*id3v2.Tag, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err == nil {
		return id3tag, nil
	}
	if errors.Is(err, id3v2.ErrUnsupportedVersion) {
		return nil, ErrUnsupportedVersion
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %w", ErrMalformedTag, err)
}

// update opens the tag of path for writing, applies mutate and saves the
// result as ID3v2.3. mutate reports whether it changed anything; nothing is
// saved otherwise.
//
// Save writes the new file next to the original and renames it over, so the
// file ends up either fully updated or untouched.
func (s *Store) update(op, path string, mutate func(*id3v2.Tag) bool) error {
	id3tag, err := s.openForWrite(path)
	if err != nil {
		return &TagWriteError{Op: op, Path: path, Err: err}
	}
	defer id3tag.Close()

	id3tag.SetVersion(writeVersion)
	if !mutate(id3tag) {
		return nil
	}

	if err := id3tag.Save(); err != nil {
		return &TagWriteError{Op: op, Path: path, Err: fmt.Errorf("save tags: %w", err)}
	}
	return nil
}
