package cli

import (
	"fmt"
	"io"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/llehouerou/cadence/internal/lyrics"
)

func newLyricsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lyrics <track>",
		Short: "Print the synchronized lyrics of an audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			highlight := -1
			idx, found := lyrics.NewLoader(a.fs, a.logger).Load(args[0])
			if !found {
				fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("no lyrics for "+args[0]))
				return nil
			}
			if cmd.Flags().Changed("at") {
				highlight = idx.Resolve(lo.Must(cmd.Flags().GetDuration("at")))
			}
			printLyrics(cmd.OutOrStdout(), idx, highlight)
			return nil
		},
	}
	cmd.Flags().Duration("at", 0, "Highlight the line active at this position (e.g. 1m30s)")
	return cmd
}

func printLyrics(w io.Writer, idx *lyrics.Index, highlight int) {
	if idx.Title != "" {
		heading := idx.Title
		if idx.Artist != "" {
			heading = idx.Artist + " - " + heading
		}
		fmt.Fprintln(w, titleStyle.Render(heading))
	}
	for i, line := range idx.Lines() {
		stamp := dimStyle.Render("[" + formatStamp(line.Time) + "]")
		text := "  " + line.Text
		if i == highlight {
			text = activeLineStyle.Render("> " + line.Text)
		}
		fmt.Fprintln(w, stamp+" "+text)
	}
}
