package tags

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bogem/id3v2/v2"
)

// Info describes the ID3v2 container of a file.
type Info struct {
	Path     string
	HasTag   bool
	Version  byte           // major version (2, 3 or 4), 0 without a tag
	Frames   map[string]int // frame ID -> number of frames
	Pictures []PictureInfo
}

// PictureInfo describes one attached picture.
type PictureInfo struct {
	MIMEType    string
	PictureType byte
	Description string
	Size        int
}

// FrameIDs returns the frame IDs present, sorted.
func (i *Info) FrameIDs() []string {
	ids := make([]string, 0, len(i.Frames))
	for id := range i.Frames {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Inspect reports what the tag of the MP3 at path contains. Unlike the read
// operations it reports a broken tag as an error wrapping ErrMalformedTag.
func (s *Store) Inspect(path string) (*Info, error) {
	if err := requireFile(RoleAudio, path); err != nil {
		return nil, err
	}

	info := &Info{Path: path, Frames: map[string]int{}}

	h, err := probeHeader(path)
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", path, err)
	}
	if !h.Present {
		return info, nil
	}
	info.HasTag = true
	info.Version = h.Major

	if h.Major < 3 {
		return s.inspectLegacy(info)
	}

	id3tag, err := openParsed(path)
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", path, err)
	}
	defer id3tag.Close()

	for id, frames := range id3tag.AllFrames() {
		info.Frames[id] = len(frames)
	}
	for _, frame := range id3tag.GetFrames(framePicture) {
		if pic, ok := frame.(id3v2.PictureFrame); ok {
			info.Pictures = append(info.Pictures, PictureInfo{
				MIMEType:    pic.MimeType,
				PictureType: pic.PictureType,
				Description: pic.Description,
				Size:        len(pic.Picture),
			})
		}
	}

	return info, nil
}

func (s *Store) inspectLegacy(info *Info) (*Info, error) {
	m, err := readLegacy(info.Path)
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", info.Path, errors.Join(ErrMalformedTag, err))
	}
	info.Frames = legacyFrameCounts(m)
	if pic := m.Picture(); pic != nil {
		info.Pictures = append(info.Pictures, PictureInfo{
			MIMEType:    pic.MIMEType,
			Description: pic.Description,
			Size:        len(pic.Data),
		})
	}
	return info, nil
}
