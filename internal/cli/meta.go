package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/llehouerou/mp3tagger/internal/errmsg"
)

const noneValue = "(none)"

func newMetaCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meta",
		Short: "Read or write the title and artist of an MP3 file",
	}
	cmd.AddCommand(
		newMetaGetCommand(a),
		newMetaSetCommand(a),
	)
	return cmd
}

func newMetaGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <file.mp3>",
		Short: "Print title and artist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			a.warnIfNotMP3(path)

			meta, err := a.store.ReadTextMetadata(path)
			if err != nil {
				return fail(errmsg.OpMetadataRead, path, err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Title:  %s\n", valueOrNone(meta.Title))
			fmt.Fprintf(out, "Artist: %s\n", valueOrNone(meta.Artist))
			return nil
		},
	}
}

func newMetaSetCommand(a *app) *cobra.Command {
	var title, artist string

	cmd := &cobra.Command{
		Use:   "set <file.mp3>",
		Short: "Replace title and artist (saved as ID3v2.3)",
		Long: "Replace title and artist (saved as ID3v2.3).\n" +
			"A flag left out keeps the stored value. Without a stored title the\n" +
			"file name (minus extension) is used; without a stored artist it is empty.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			a.warnIfNotMP3(path)

			if !cmd.Flags().Changed("title") || !cmd.Flags().Changed("artist") {
				meta, err := a.store.ReadTextMetadata(path)
				if err != nil {
					return fail(errmsg.OpMetadataWrite, path, err)
				}
				if !cmd.Flags().Changed("title") {
					title = valueOr(meta.Title, defaultTitle(path))
				}
				if !cmd.Flags().Changed("artist") {
					artist = valueOr(meta.Artist, "")
				}
			}

			if err := a.store.WriteTextMetadata(path, title, artist); err != nil {
				return fail(errmsg.OpMetadataWrite, path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "track title")
	cmd.Flags().StringVarP(&artist, "artist", "a", "", "track artist")
	return cmd
}

func valueOrNone(s *string) string {
	if s == nil {
		return noneValue
	}
	return *s
}

// valueOr returns *s, or def when s is nil or empty.
func valueOr(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}

// defaultTitle is the file name without its extension.
func defaultTitle(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
