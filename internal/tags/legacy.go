package tags

import (
	"os"
	"strings"

	"github.com/dhowden/tag"
)

// ID3v2.2 frame IDs (three characters).
const (
	legacyTitleFrame  = "TT2"
	legacyArtistFrame = "TP1"
)

// readLegacy parses a container the id3v2 codec refuses (ID3v2.2) using
// dhowden/tag. The result is only ever read, never written back.
func readLegacy(path string) (tag.Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return tag.ReadFrom(f)
}

// legacyText returns the text of a raw legacy frame, or nil if absent.
func legacyText(m tag.Metadata, frameID string) *string {
	if s, ok := m.Raw()[frameID].(string); ok {
		return &s
	}
	return nil
}

// legacyFrameCounts groups dhowden raw keys ("TXX", "TXX_1") by frame ID.
func legacyFrameCounts(m tag.Metadata) map[string]int {
	counts := make(map[string]int)
	for key := range m.Raw() {
		id, _, _ := strings.Cut(key, "_")
		counts[id]++
	}
	return counts
}
