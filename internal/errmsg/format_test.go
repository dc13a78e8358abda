//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpCoverWrite,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpCoverWrite,
			err:      errors.New("image file not found: cover.jpg"),
			expected: "Failed to embed cover art: image file not found: cover.jpg",
		},
		{
			name:     "metadata operation",
			op:       OpMetadataWrite,
			err:      errors.New("permission denied"),
			expected: "Failed to update metadata: permission denied",
		},
		{
			name:     "config operation",
			op:       OpConfigLoad,
			err:      errors.New("invalid TOML"),
			expected: "Failed to load configuration: invalid TOML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpMetadataRead,
			context:  "song.mp3",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpMetadataRead,
			context:  "song.mp3",
			err:      errors.New("audio file not found: song.mp3"),
			expected: "Failed to read metadata 'song.mp3': audio file not found: song.mp3",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpCoverRemove,
			context:  "",
			err:      errors.New("permission denied"),
			expected: "Failed to remove cover art: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	ops := []Op{
		OpCoverRead, OpCoverWrite, OpCoverRemove, OpCoverExport,
		OpMetadataRead, OpMetadataWrite,
		OpTagInspect,
		OpConfigLoad,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}

			expected := "Failed to " + string(op) + ": test error"
			if result := Format(op, testErr); result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}
