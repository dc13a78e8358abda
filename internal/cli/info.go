package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/mp3tagger/internal/errmsg"
)

func newInfoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.mp3>",
		Short: "Describe the ID3v2 tag of an MP3 file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			a.warnIfNotMP3(path)

			info, err := a.store.Inspect(path)
			if err != nil {
				return fail(errmsg.OpTagInspect, path, err)
			}

			out := cmd.OutOrStdout()
			if !info.HasTag {
				fmt.Fprintln(out, "No ID3v2 tag")
				return nil
			}

			fmt.Fprintf(out, "ID3v2.%d\n", info.Version)
			for _, id := range info.FrameIDs() {
				fmt.Fprintf(out, "  %s x%d\n", id, info.Frames[id])
			}
			for i, pic := range info.Pictures {
				fmt.Fprintf(out, "  picture %d: %s, type %d, %q, %s\n",
					i+1, pic.MIMEType, pic.PictureType, pic.Description, humanize.Bytes(uint64(pic.Size))) //nolint:gosec // size is a slice length
			}
			return nil
		},
	}
}
