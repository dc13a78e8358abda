// Package cli implements the mp3tagger command line on top of tags.Store.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/llehouerou/mp3tagger/internal/config"
	"github.com/llehouerou/mp3tagger/internal/errmsg"
	"github.com/llehouerou/mp3tagger/internal/logging"
	"github.com/llehouerou/mp3tagger/internal/tags"
)

// app holds what every subcommand needs. It is filled in by the root
// command's PersistentPreRunE.
type app struct {
	store *tags.Store
	log   zerolog.Logger
	// logOut overrides the log destination (tests).
	logOut io.Writer
}

// opError ties a failure to the user-facing operation and the file it was
// about.
type opError struct {
	op   errmsg.Op
	path string
	err  error
}

func (e *opError) Error() string { return errmsg.FormatWith(e.op, e.path, e.err) }

func (e *opError) Unwrap() error { return e.err }

func fail(op errmsg.Op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &opError{op: op, path: path, err: err}
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{})
}

func newRootCommand(a *app) *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	root := &cobra.Command{
		Use:           "mp3tagger",
		Short:         "Edit cover art, title and artist of MP3 files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fail(errmsg.OpConfigLoad, configPath, err)
			}

			logCfg := cfg.GetLogConfig()
			if logLevel != "" {
				logCfg.Level = logLevel
			}
			out := a.logOut
			if out == nil {
				out = cmd.ErrOrStderr()
			}
			a.log = logging.NewWithWriter(out, logCfg)
			a.store = tags.NewStore(
				tags.WithLogger(a.log),
				tags.WithMismatchWarnings(cfg.WarnOnMismatch()),
			)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a config.toml loaded after the default locations")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newCoverCommand(a),
		newMetaCommand(a),
		newInfoCommand(a),
	)

	return root
}

// warnIfNotMP3 logs a warning for paths that do not look like MP3 files.
func (a *app) warnIfNotMP3(path string) {
	if !tags.IsMP3(path) {
		a.log.Warn().Str("path", path).Msg("file does not have an .mp3 extension")
	}
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		var opErr *opError
		if errors.As(err, &opErr) {
			fmt.Fprintln(os.Stderr, opErr.Error())
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return 1
	}
	return 0
}
