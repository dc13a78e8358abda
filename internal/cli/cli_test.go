package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/mp3tagger/internal/tags"
)

var testJPEG = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01, 0x01, 0x00}

func createMinimalMP3(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "song.mp3")
	// MP3 frame header (MPEG1 Layer3, 128kbps, 44100Hz, stereo) + padding
	mp3Frame := make([]byte, 417)
	mp3Frame[0] = 0xff
	mp3Frame[1] = 0xfb
	mp3Frame[2] = 0x90
	mp3Frame[3] = 0x00
	require.NoError(t, os.WriteFile(path, mp3Frame, 0o600))
	return path
}

// run executes the command line and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand(&app{logOut: io.Discard})
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return out.String(), err
}

func TestMeta_SetAndGet(t *testing.T) {
	path := createMinimalMP3(t, t.TempDir())

	out, err := run(t, "meta", "get", path)
	require.NoError(t, err)
	assert.Equal(t, "Title:  (none)\nArtist: (none)\n", out)

	_, err = run(t, "meta", "set", path, "--title", "כותרת בדיקה", "--artist", "אמן בדיקה")
	require.NoError(t, err)

	out, err = run(t, "meta", "get", path)
	require.NoError(t, err)
	assert.Equal(t, "Title:  כותרת בדיקה\nArtist: אמן בדיקה\n", out)
}

func TestMeta_SetKeepsValueOfOmittedFlag(t *testing.T) {
	path := createMinimalMP3(t, t.TempDir())

	_, err := run(t, "meta", "set", path, "--title", "Song", "--artist", "Band")
	require.NoError(t, err)

	_, err = run(t, "meta", "set", path, "--title", "Renamed")
	require.NoError(t, err)
	out, err := run(t, "meta", "get", path)
	require.NoError(t, err)
	assert.Equal(t, "Title:  Renamed\nArtist: Band\n", out)

	_, err = run(t, "meta", "set", path, "-a", "Other Band")
	require.NoError(t, err)
	out, err = run(t, "meta", "get", path)
	require.NoError(t, err)
	assert.Equal(t, "Title:  Renamed\nArtist: Other Band\n", out)
}

func TestMeta_SetWithoutStoredValuesUsesDefaults(t *testing.T) {
	path := createMinimalMP3(t, t.TempDir())

	_, err := run(t, "meta", "set", path, "-a", "Band")
	require.NoError(t, err)

	out, err := run(t, "meta", "get", path)
	require.NoError(t, err)
	assert.Equal(t, "Title:  song\nArtist: Band\n", out)
}

func TestCover_GetIntoDirectory(t *testing.T) {
	dir := t.TempDir()
	path := createMinimalMP3(t, dir)
	img := filepath.Join(dir, "art.jpeg")
	require.NoError(t, os.WriteFile(img, testJPEG, 0o600))
	_, err := run(t, "cover", "set", path, img)
	require.NoError(t, err)

	outDir := filepath.Join(dir, "export")
	require.NoError(t, os.Mkdir(outDir, 0o755))
	out, err := run(t, "cover", "get", path, "-o", outDir)
	require.NoError(t, err)

	want := filepath.Join(outDir, "cover.jpg")
	assert.Equal(t, "Saved cover art to "+want+"\n", out)
	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, testJPEG, data)
}

func TestCover_SetGetRemove(t *testing.T) {
	dir := t.TempDir()
	path := createMinimalMP3(t, dir)
	img := filepath.Join(dir, "cover.jpg")
	require.NoError(t, os.WriteFile(img, testJPEG, 0o600))

	out, err := run(t, "cover", "get", path)
	require.NoError(t, err)
	assert.Equal(t, "No cover art\n", out)

	_, err = run(t, "cover", "set", path, img)
	require.NoError(t, err)

	out, err = run(t, "cover", "get", path)
	require.NoError(t, err)
	assert.Equal(t, "Cover art: image/jpeg, 14 B\n", out)

	exported := filepath.Join(dir, "exported.jpg")
	_, err = run(t, "cover", "get", path, "-o", exported)
	require.NoError(t, err)
	data, err := os.ReadFile(exported)
	require.NoError(t, err)
	assert.Equal(t, testJPEG, data)

	_, err = run(t, "cover", "rm", path)
	require.NoError(t, err)

	out, err = run(t, "cover", "get", path)
	require.NoError(t, err)
	assert.Equal(t, "No cover art\n", out)
}

func TestCover_SetMissingImage(t *testing.T) {
	dir := t.TempDir()
	path := createMinimalMP3(t, dir)
	missing := filepath.Join(dir, "missing.png")

	_, err := run(t, "cover", "set", path, missing)
	require.Error(t, err)
	require.ErrorIs(t, err, tags.ErrFileNotFound)
	assert.Equal(t, "Failed to embed cover art '"+path+"': image file not found: "+missing, err.Error())
}

func TestMeta_GetMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.mp3")

	_, err := run(t, "meta", "get", missing)
	require.ErrorIs(t, err, tags.ErrFileNotFound)
	assert.Contains(t, err.Error(), "Failed to read metadata")
}

func TestInfo(t *testing.T) {
	dir := t.TempDir()
	path := createMinimalMP3(t, dir)

	out, err := run(t, "info", path)
	require.NoError(t, err)
	assert.Equal(t, "No ID3v2 tag\n", out)

	img := filepath.Join(dir, "cover.jpg")
	require.NoError(t, os.WriteFile(img, testJPEG, 0o600))
	_, err = run(t, "meta", "set", path, "--title", "T", "--artist", "A")
	require.NoError(t, err)
	_, err = run(t, "cover", "set", path, img)
	require.NoError(t, err)

	out, err = run(t, "info", path)
	require.NoError(t, err)
	assert.Equal(t, "ID3v2.3\n"+
		"  APIC x1\n"+
		"  TIT2 x1\n"+
		"  TPE1 x1\n"+
		"  picture 1: image/jpeg, type 3, \"Cover\", 14 B\n", out)
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	path := createMinimalMP3(t, dir)

	_, err := run(t, "--config", filepath.Join(dir, "missing.toml"), "meta", "get", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to load configuration")

	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[log]\nlevel = \"debug\"\n"), 0o600))
	_, err = run(t, "--config", cfgPath, "meta", "get", path)
	require.NoError(t, err)
}

func TestArgsValidation(t *testing.T) {
	_, err := run(t, "cover", "set", "only-one-arg.mp3")
	require.Error(t, err)
}
