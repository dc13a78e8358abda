package tags

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bogem/id3v2/v2"
)

// coverBaseName names exported images when only a directory is given.
const coverBaseName = "cover"

// CoverArt is an embedded picture.
type CoverArt struct {
	Data     []byte
	MIMEType string
}

// ReadCoverArt returns the first attached picture of the MP3 at path.
// It returns nil (and no error) when the file has no tag, no picture, or a tag
// that cannot be parsed.
func (s *Store) ReadCoverArt(path string) (*CoverArt, error) {
	if err := requireFile(RoleAudio, path); err != nil {
		return nil, err
	}
	log := s.log.With().Str("path", path).Logger()

	id3tag, err := s.openForRead(path)
	switch {
	case errors.Is(err, errNoTagHeader):
		log.Debug().Msg("no ID3v2 tag, no cover art")
		return nil, nil
	case errors.Is(err, ErrUnsupportedVersion):
		return s.readLegacyCoverArt(path)
	case err != nil:
		log.Warn().Err(err).Msg("unreadable ID3v2 tag, treating cover art as absent")
		return nil, nil
	}
	defer id3tag.Close()

	// First picture in tag order wins
	for _, frame := range id3tag.GetFrames(framePicture) {
		if pic, ok := frame.(id3v2.PictureFrame); ok {
			log.Debug().Str("mime", pic.MimeType).Int("size", len(pic.Picture)).Msg("found cover art")
			return &CoverArt{
				Data:     bytes.Clone(pic.Picture),
				MIMEType: pic.MimeType,
			}, nil
		}
	}

	log.Debug().Msg("no cover art")
	return nil, nil
}

func (s *Store) readLegacyCoverArt(path string) (*CoverArt, error) {
	m, err := readLegacy(path)
	if err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("unreadable legacy ID3v2 tag, treating cover art as absent")
		return nil, nil
	}
	pic := m.Picture()
	if pic == nil {
		return nil, nil
	}
	return &CoverArt{Data: pic.Data, MIMEType: pic.MIMEType}, nil
}

// WriteCoverArt embeds the image at imagePath as the only attached picture of
// the MP3 at path. The image bytes are stored as-is; the MIME type comes from
// the image's extension (see MIMETypeForImage). Other frames are kept.
func (s *Store) WriteCoverArt(path, imagePath string) error {
	if err := requireFile(RoleAudio, path); err != nil {
		return err
	}
	if err := requireFile(RoleImage, imagePath); err != nil {
		return err
	}
	log := s.log.With().Str("path", path).Str("image", imagePath).Logger()

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return &TagWriteError{Op: opWriteCover, Path: path, Err: fmt.Errorf("read image: %w", err)}
	}

	mimeType, known := MIMETypeForImage(imagePath)
	if !known {
		log.Warn().Str("ext", filepath.Ext(imagePath)).Msg("unknown image extension, defaulting to image/jpeg")
	}
	if s.warnOnMismatch {
		if detected, ok := sniffImage(data, mimeType); !ok {
			log.Warn().Str("mime", mimeType).Str("detected", detected).Msg("image content does not match its extension")
		}
	}

	err = s.update(opWriteCover, path, func(id3tag *id3v2.Tag) bool {
		id3tag.DeleteFrames(framePicture)
		id3tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    mimeType,
			PictureType: id3v2.PTFrontCover,
			Description: coverDescription,
			Picture:     data,
		})
		return true
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to embed cover art")
		return err
	}

	log.Info().Str("mime", mimeType).Int("size", len(data)).Msg("embedded cover art (ID3v2.3)")
	return nil
}

// RemoveCoverArt deletes every attached picture from the MP3 at path.
// A file without a tag or without pictures is left untouched.
func (s *Store) RemoveCoverArt(path string) error {
	if err := requireFile(RoleAudio, path); err != nil {
		return err
	}

	h, err := probeHeader(path)
	if err != nil {
		return &TagWriteError{Op: opRemoveCover, Path: path, Err: err}
	}
	if !h.Present {
		return nil
	}

	removed := 0
	err = s.update(opRemoveCover, path, func(id3tag *id3v2.Tag) bool {
		removed = len(id3tag.GetFrames(framePicture))
		if removed == 0 {
			return false
		}
		id3tag.DeleteFrames(framePicture)
		return true
	})
	if err != nil {
		return err
	}

	if removed > 0 {
		s.log.Info().Str("path", path).Int("frames", removed).Msg("removed cover art")
	}
	return nil
}

// ExportCoverArt writes the embedded cover art of the MP3 at path to
// destPath and returns the file written. When destPath is an existing
// directory the image is saved there as "cover" plus CoverExtension of its
// MIME type. It returns ErrNoCoverArt when there is nothing to export.
func (s *Store) ExportCoverArt(path, destPath string) (string, error) {
	art, err := s.ReadCoverArt(path)
	if err != nil {
		return "", err
	}
	if art == nil {
		return "", fmt.Errorf("%s: %w", path, ErrNoCoverArt)
	}
	if fi, err := os.Stat(destPath); err == nil && fi.IsDir() {
		destPath = filepath.Join(destPath, coverBaseName+CoverExtension(art.MIMEType))
	}
	if err := os.WriteFile(destPath, art.Data, 0o644); err != nil { //nolint:gosec // exported images are meant to be shared
		return "", fmt.Errorf("write cover art: %w", err)
	}
	s.log.Debug().Str("path", path).Str("dest", destPath).Msg("exported cover art")
	return destPath, nil
}

// CoverExtension returns a file extension matching a picture MIME type.
func CoverExtension(mimeType string) string {
	if mimeType == mimePNG {
		return ".png"
	}
	return ".jpg"
}
