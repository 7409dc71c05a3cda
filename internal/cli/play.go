package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"

	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/lyrics"
	"github.com/llehouerou/cadence/internal/media"
	"github.com/llehouerou/cadence/internal/mpris"
	"github.com/llehouerou/cadence/internal/notify"
	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/player"
	"github.com/llehouerou/cadence/internal/state"
	"github.com/llehouerou/cadence/internal/stderr"
	"github.com/llehouerou/cadence/internal/tags"
)

func newPlayCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play [dir|file]",
		Short: "Play a folder, reading commands from stdin",
		Long:  "Play a folder, reading commands from stdin.\n\nCommands: " + helpText,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := kindFlag(cmd)
			target := a.cfg.Folder(kind.String())
			if len(args) == 1 {
				target = args[0]
			}
			return a.play(cmd, kind, target)
		},
	}
	cmd.Flags().Bool("video", false, "Play video files through mpv")
	return cmd
}

// splitTarget returns the folder to list and, when target is a file, the
// track to start with.
func splitTarget(fsys afero.Fs, target string) (dir, start string, err error) {
	info, err := fsys.Stat(target)
	if err != nil {
		return "", "", err
	}
	if info.IsDir() {
		return target, "", nil
	}
	return filepath.Dir(target), filepath.Base(target), nil
}

func (a *app) play(cmd *cobra.Command, kind media.Kind, target string) error {
	dir, start, err := splitTarget(a.fs, target)
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpScan, target, err))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	backend, cleanup, err := a.newBackend(kind)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpBackendStart, err))
	}
	defer cleanup()

	s := &session{app: a, kind: kind, dir: dir, start: start}

	if a.cfg.ResumeEnabled() {
		store, err := state.Open(a.logger)
		if err != nil {
			a.logger.WithError(err).Warn(errmsg.Format(errmsg.OpStateOpen, err))
		} else {
			s.store = store
			defer store.Close()
		}
	}
	if a.cfg.NotificationsEnabled() {
		s.notifier = lo.Must(notify.New())
	}
	s.mpris = a.cfg.MPRISEnabled()

	return s.run(ctx, backend, cmd.InOrStdin(), cmd.OutOrStdout())
}

// newBackend starts the platform player for kind.
func (a *app) newBackend(kind media.Kind) (player.Backend, func(), error) {
	if kind == media.Video {
		b, err := player.NewMPVBackend(player.MPVOptions{
			Binary: a.cfg.MPV.Binary,
			Args:   a.cfg.MPV.Args,
			Logger: a.logger,
		})
		return b, func() {}, err
	}

	// The audio driver writes to fd 2; route it to the log while playing.
	cleanup := func() {}
	if !a.cfg.Log.File {
		if capture, err := stderr.Start(); err != nil {
			a.logger.WithError(err).Debug("stderr capture unavailable")
		} else {
			a.logger.SetOutput(capture.Original())
			capture.Forward(a.logger)
			cleanup = capture.Stop
		}
	}
	return player.NewBeepBackend(), cleanup, nil
}

// session is one run of the play command.
type session struct {
	app      *app
	kind     media.Kind
	dir      string
	start    string
	store    state.Interface
	notifier notify.Notifier
	mpris    bool
}

// syncWriter serializes writes from the event printer and the prompt.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w.Write(p)
}

func (s *session) run(ctx context.Context, backend player.Backend, in io.Reader, w io.Writer) error {
	a := s.app
	out := &syncWriter{w: w}

	svc := playback.New(backend, playback.Options{
		Kind:    s.kind,
		Lyrics:  lyrics.NewLoader(a.fs, a.logger),
		Scanner: media.NewScanner(a.fs, a.logger),
		Tags:    tags.NewReader(a.fs),
		Logger:  a.logger,
	})

	var consumers sync.WaitGroup
	p := &printer{w: out}
	sub := svc.Subscribe()
	consumers.Add(1)
	go func() {
		defer consumers.Done()
		consume(sub, p.handle)
	}()
	if s.notifier != nil {
		ann := notify.NewAnnouncer(s.notifier, a.logger)
		annSub := svc.Subscribe()
		consumers.Add(1)
		go func() {
			defer consumers.Done()
			consume(annSub, ann.Handle)
		}()
	}

	loopCtx, cancelLoop := context.WithCancel(ctx)
	loop := playback.NewLoop(svc)
	go func() { _ = loop.Run(loopCtx) }()

	loop.Do(func(svc *playback.Service) { svc.Scan(s.dir) })

	if s.mpris {
		adapter, err := mpris.New(loop, a.fs, a.logger)
		if err != nil {
			a.logger.WithError(err).Warn(errmsg.Format(errmsg.OpMPRISStart, err))
		} else {
			defer adapter.Close()
		}
	}

	s.restore(loop, out)
	fmt.Fprintln(out, dimStyle.Render(helpText))

	s.prompt(ctx, loop, in, out)

	snap, _ := playback.Call(loop, (*playback.Service).Snapshot)
	cancelLoop()
	<-loop.Done()
	err := svc.Close()
	consumers.Wait()

	if s.store != nil && snap.Path != "" {
		s.store.SaveSession(state.Session{
			Kind:     s.kind.String(),
			BasePath: s.dir,
			LastPath: snap.Path,
			Position: snap.Position,
		})
	}
	return err
}

// restore starts the requested track, or points the cursor at the last
// session's track so that p resumes it.
func (s *session) restore(loop *playback.Loop, out io.Writer) {
	if s.start != "" {
		path := filepath.Join(s.dir, s.start)
		loop.Do(func(svc *playback.Service) { svc.Load(path) })
		return
	}
	if s.store == nil {
		return
	}

	sess, err := s.store.GetSession(s.kind.String())
	if err != nil {
		s.app.logger.WithError(err).Warn(errmsg.Format(errmsg.OpStateRead, err))
		return
	}
	if sess == nil || sess.BasePath != s.dir {
		return
	}
	ok, _ := playback.Call(loop, func(svc *playback.Service) bool { return svc.Resume(sess.LastPath) })
	if ok {
		fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("last played %s at %s, press p to resume",
			filepath.Base(sess.LastPath), formatDuration(sess.Position))))
	}
}

// prompt reads commands until q, end of input, or ctx is done.
func (s *session) prompt(ctx context.Context, loop *playback.Loop, in io.Reader, out io.Writer) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			case <-loop.Done():
				return
			}
		}
	}()

	for {
		var line string
		select {
		case <-ctx.Done():
			return
		case l, ok := <-lines:
			if !ok {
				return
			}
			line = l
		}

		c, err := parseCommand(line)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render(err.Error()))
			continue
		}
		switch c.name {
		case "":
		case "q":
			return
		case "?":
			fmt.Fprintln(out, dimStyle.Render(helpText))
		case "ls":
			if snap, ok := playback.Call(loop, (*playback.Service).Snapshot); ok {
				printStatus(out, snap)
			}
		default:
			if !loop.Do(c.apply) {
				return
			}
		}
	}
}

// consume feeds sub's events to handle until the service closes, then
// drains what is left.
func consume(sub *playback.Subscription, handle func(playback.Event)) {
	for {
		select {
		case ev := <-sub.Events:
			handle(ev)
		case <-sub.Done:
			for {
				select {
				case ev := <-sub.Events:
					handle(ev)
				default:
					return
				}
			}
		}
	}
}
