package cli

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/llehouerou/cadence/internal/media"
)

func newScanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "List the audio or video files of a folder",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := kindFlag(cmd)
			dir := a.cfg.Folder(kind.String())
			if len(args) == 1 {
				dir = args[0]
			}
			long := lo.Must(cmd.Flags().GetBool("long"))
			return a.scan(cmd, dir, kind, long)
		},
	}
	cmd.Flags().Bool("video", false, "List video files instead of audio")
	cmd.Flags().BoolP("long", "l", false, "Show size and modification time")
	return cmd
}

func (a *app) scan(cmd *cobra.Command, dir string, kind media.Kind, long bool) error {
	scanner := media.NewScanner(a.fs, a.logger)
	names := scanner.Scan(dir, kind)
	out := cmd.OutOrStdout()

	if len(names) == 0 {
		fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("no %s files in %s", kind, dir)))
		return nil
	}

	lines := names
	if long {
		lines = lo.Map(names, func(name string, _ int) string {
			info, err := scanner.Stat(dir, name)
			if err != nil {
				a.logger.WithField("path", filepath.Join(dir, name)).WithError(err).Debug("stat failed")
				return fmt.Sprintf("%8s  %-14s  %s", "?", "", name)
			}
			return fmt.Sprintf("%8s  %-14s  %s",
				humanize.Bytes(uint64(info.Size())), //nolint:gosec // sizes are never negative
				humanize.Time(info.ModTime()),
				name)
		})
	}
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("%d %s files", len(names), kind)))
	return nil
}
