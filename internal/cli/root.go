// Package cli implements the cadence command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/llehouerou/cadence/internal/config"
	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/logging"
	"github.com/llehouerou/cadence/internal/media"
)

// app holds what every subcommand needs once the root has set it up.
type app struct {
	fs       afero.Fs
	cfg      *config.Config
	logger   *logrus.Logger
	closeLog func() error
}

// kindFlag returns the media kind selected by the --video flag.
func kindFlag(cmd *cobra.Command) media.Kind {
	if lo.Must(cmd.Flags().GetBool("video")) {
		return media.Video
	}
	return media.Audio
}

// NewRootCmd builds the command tree reading files from fsys.
func NewRootCmd(fsys afero.Fs) *cobra.Command {
	a := &app{fs: fsys, closeLog: func() error { return nil }}

	root := &cobra.Command{
		Use:           "cadence",
		Short:         "Play local audio and video with synchronized lyrics",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.closeLog()
		},
	}

	root.PersistentFlags().String("config", "", "Read configuration from this file only")
	root.PersistentFlags().String("log-level", "", "Override the configured log level")

	root.AddCommand(
		newScanCmd(a),
		newLyricsCmd(a),
		newPlayCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if path := lo.Must(cmd.Flags().GetString("config")); path != "" {
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}
	if lvl := lo.Must(cmd.Flags().GetString("log-level")); lvl != "" {
		cfg.Log.Level = lvl
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpLoggingSetup, err))
	}

	a.cfg = cfg
	a.logger = logger
	a.closeLog = closeLog
	return nil
}

// Execute runs the command line and exits on failure.
func Execute() {
	if err := NewRootCmd(afero.NewOsFs()).Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, errorStyle.Render(strings.TrimSpace(err.Error())))
		os.Exit(1)
	}
}
