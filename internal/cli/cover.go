package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/mp3tagger/internal/errmsg"
)

func newCoverCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cover",
		Short: "Read, embed or remove the cover art of an MP3 file",
	}
	cmd.AddCommand(
		newCoverGetCommand(a),
		newCoverSetCommand(a),
		newCoverRemoveCommand(a),
	)
	return cmd
}

func newCoverGetCommand(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get <file.mp3>",
		Short: "Show the embedded cover art, or save it with --output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			a.warnIfNotMP3(path)

			if output != "" {
				written, err := a.store.ExportCoverArt(path, output)
				if err != nil {
					return fail(errmsg.OpCoverExport, path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved cover art to %s\n", written)
				return nil
			}

			art, err := a.store.ReadCoverArt(path)
			if err != nil {
				return fail(errmsg.OpCoverRead, path, err)
			}
			if art == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No cover art")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cover art: %s, %s\n", art.MIMEType, humanize.Bytes(uint64(len(art.Data))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the image to this file, or into this directory as cover.<ext>")
	return cmd
}

func newCoverSetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <file.mp3> <image>",
		Short: "Embed an image as the only cover art (saved as ID3v2.3)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, image := args[0], args[1]
			a.warnIfNotMP3(path)

			if err := a.store.WriteCoverArt(path, image); err != nil {
				return fail(errmsg.OpCoverWrite, path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Embedded %s into %s\n", image, path)
			return nil
		},
	}
}

func newCoverRemoveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <file.mp3>",
		Aliases: []string{"remove"},
		Short:   "Remove every embedded picture",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			a.warnIfNotMP3(path)

			if err := a.store.RemoveCoverArt(path); err != nil {
				return fail(errmsg.OpCoverRemove, path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed cover art from %s\n", path)
			return nil
		},
	}
}
