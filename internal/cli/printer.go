package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/playback"
)

// printer writes playback events as terminal lines.
type printer struct {
	w     io.Writer
	lines []string
}

func (p *printer) handle(ev playback.Event) {
	switch e := ev.(type) {
	case playback.ListUpdated:
		fmt.Fprintln(p.w, dimStyle.Render(fmt.Sprintf("%d %s files", len(e.Names), e.Kind)))
	case playback.TitleChange:
		heading := e.Title
		if e.Artist != "" {
			heading += " by " + e.Artist
		}
		if e.Album != "" {
			heading += " (" + e.Album + ")"
		}
		fmt.Fprintln(p.w, titleStyle.Render("♪ "+heading))
	case playback.StateChange:
		if e.Current != playback.StatePlaying {
			fmt.Fprintln(p.w, dimStyle.Render(e.Current.String()))
		}
	case playback.LyricsChange:
		p.lines = e.Lines
		if !e.Found {
			fmt.Fprintln(p.w, dimStyle.Render("no lyrics"))
		}
	case playback.HighlightChange:
		if e.Index >= 0 && e.Index < len(p.lines) {
			fmt.Fprintln(p.w, activeLineStyle.Render(p.lines[e.Index]))
		}
	case playback.ErrorEvent:
		msg := errmsg.FormatWith(errmsg.ForOperation(e.Operation), filepath.Base(e.Path), e.Err)
		fmt.Fprintln(p.w, errorStyle.Render(msg+" ("+e.Kind.Description()+")"))
	}
}

// printStatus writes the playlist with the current track marked.
func printStatus(w io.Writer, snap playback.Snapshot) {
	for i, name := range snap.Tracks {
		marker := "  "
		if i == snap.Index {
			marker = "> "
		}
		fmt.Fprintln(w, marker+name)
	}
	if snap.Path != "" {
		fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%s  %s / %s",
			snap.State, formatDuration(snap.Position), formatDuration(snap.Duration))))
	}
}
