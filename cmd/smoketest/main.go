// Smoke test for the tag store: writes ASCII and Hebrew metadata plus cover
// art into a scratch MP3 and reads everything back.
//
// Usage: smoketest [work-dir]
package main

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/llehouerou/mp3tagger/internal/config"
	"github.com/llehouerou/mp3tagger/internal/logging"
	"github.com/llehouerou/mp3tagger/internal/tags"
)

// Minimal JPEG header, enough for a cover art round trip
var coverJPEG = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01, 0x01, 0x00, 0xFF, 0xD9}

func main() {
	root := ""
	if len(os.Args) > 1 {
		root = os.Args[1]
	}

	workDir, err := os.MkdirTemp(root, "mp3tagger-smoke-")
	if err != nil {
		log.Fatalf("Failed to create work directory: %v", err)
	}

	err = run(workDir)
	os.RemoveAll(workDir)
	if err != nil {
		log.Fatalf("Smoke test failed: %v", err)
	}
	log.Println("All smoke tests passed!")
}

func run(workDir string) error {
	store := tags.NewStore(tags.WithLogger(logging.New(config.LogConfig{Level: "debug"})))

	mp3Path := filepath.Join(workDir, "test_audio.mp3")
	// 10 frame headers of MPEG1 Layer3 silence, no tag
	if err := os.WriteFile(mp3Path, bytes.Repeat([]byte{0xFF, 0xFB, 0x90, 0x00}, 10), 0o600); err != nil {
		return fmt.Errorf("create MP3: %w", err)
	}
	imgPath := filepath.Join(workDir, "cover.jpg")
	if err := os.WriteFile(imgPath, coverJPEG, 0o600); err != nil {
		return fmt.Errorf("create image: %w", err)
	}

	log.Println("Reading untagged file...")
	meta, err := store.ReadTextMetadata(mp3Path)
	if err != nil {
		return err
	}
	if meta.Title != nil || meta.Artist != nil {
		return errors.New("untagged file reported metadata")
	}

	if err := checkMetadata(store, mp3Path, "Test Title", "Test Artist"); err != nil {
		return err
	}
	if err := checkMetadata(store, mp3Path, "כותרת בדיקה", "אמן בדיקה"); err != nil {
		return err
	}

	log.Println("Embedding cover art...")
	if err := store.WriteCoverArt(mp3Path, imgPath); err != nil {
		return err
	}
	if err := checkMetadata(store, mp3Path, "Title After Cover", "Artist After Cover"); err != nil {
		return err
	}

	art, err := store.ReadCoverArt(mp3Path)
	switch {
	case err != nil:
		return err
	case art == nil:
		return errors.New("cover art missing after metadata update")
	case !bytes.Equal(art.Data, coverJPEG):
		return fmt.Errorf("cover art changed: got %d bytes, want %d", len(art.Data), len(coverJPEG))
	}
	log.Printf("Cover art intact: %s, %d bytes", art.MIMEType, len(art.Data))

	return nil
}

// checkMetadata writes title and artist then verifies they read back exactly.
func checkMetadata(store *tags.Store, path, title, artist string) error {
	log.Printf("Writing metadata: Title=%q, Artist=%q", title, artist)
	if err := store.WriteTextMetadata(path, title, artist); err != nil {
		return err
	}

	meta, err := store.ReadTextMetadata(path)
	if err != nil {
		return err
	}
	if meta.Title == nil || *meta.Title != title {
		return fmt.Errorf("title mismatch: got %v, want %q", meta.Title, title)
	}
	if meta.Artist == nil || *meta.Artist != artist {
		return fmt.Errorf("artist mismatch: got %v, want %q", meta.Artist, artist)
	}
	log.Printf("  read back: Title=%q, Artist=%q", *meta.Title, *meta.Artist)
	return nil
}
