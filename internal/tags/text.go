package tags

import (
	"errors"
	"strings"

	"github.com/bogem/id3v2/v2"
)

// Metadata holds the text frames managed by the store.
// A nil field means the frame is absent from the file.
type Metadata struct {
	Title  *string
	Artist *string
}

// ReadTextMetadata returns the title (TIT2) and artist (TPE1) of the MP3 at
// path. A missing or unreadable tag yields empty Metadata, not an error.
func (s *Store) ReadTextMetadata(path string) (Metadata, error) {
	if err := requireFile(RoleAudio, path); err != nil {
		return Metadata{}, err
	}

	id3tag, err := s.openForRead(path)
	switch {
	case errors.Is(err, errNoTagHeader):
		return Metadata{}, nil
	case errors.Is(err, ErrUnsupportedVersion):
		return s.readLegacyTextMetadata(path), nil
	case err != nil:
		s.log.Warn().Err(err).Str("path", path).Msg("unreadable ID3v2 tag, treating metadata as absent")
		return Metadata{}, nil
	}
	defer id3tag.Close()

	return Metadata{
		Title:  getID3TextFrame(id3tag, frameTitle),
		Artist: getID3TextFrame(id3tag, frameArtist),
	}, nil
}

func (s *Store) readLegacyTextMetadata(path string) Metadata {
	m, err := readLegacy(path)
	if err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("unreadable legacy ID3v2 tag, treating metadata as absent")
		return Metadata{}
	}
	return Metadata{
		Title:  legacyText(m, legacyTitleFrame),
		Artist: legacyText(m, legacyArtistFrame),
	}
}

// WriteTextMetadata replaces the title and artist of the MP3 at path. Values
// are stored as given, in UTF-8; empty strings are allowed. Pictures and any
// other frames are kept.
func (s *Store) WriteTextMetadata(path, title, artist string) error {
	if err := requireFile(RoleAudio, path); err != nil {
		return err
	}

	err := s.update(opWriteText, path, func(id3tag *id3v2.Tag) bool {
		setID3TextFrame(id3tag, frameTitle, title)
		setID3TextFrame(id3tag, frameArtist, artist)
		return true
	})
	if err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("failed to update metadata")
		return err
	}

	s.log.Info().Str("path", path).Str("title", title).Str("artist", artist).Msg("updated metadata")
	return nil
}

// getID3TextFrame returns the first value of a text frame, or nil if absent.
func getID3TextFrame(id3tag *id3v2.Tag, frameID string) *string {
	frames := id3tag.GetFrames(frameID)
	if len(frames) == 0 {
		return nil
	}
	tf, ok := frames[0].(id3v2.TextFrame)
	if !ok {
		return nil
	}
	text := tf.Text
	// ID3v2.4 separates multiple values with NUL; earlier versions keep NUL
	// as part of the value.
	if id3tag.Version() >= 4 {
		text, _, _ = strings.Cut(text, "\x00")
	}
	return &text
}

// setID3TextFrame removes every frame with frameID before adding the new one,
// so repeated writes never leave duplicates.
func setID3TextFrame(id3tag *id3v2.Tag, frameID, value string) {
	id3tag.DeleteFrames(frameID)
	id3tag.AddTextFrame(frameID, id3v2.EncodingUTF8, value)
}
