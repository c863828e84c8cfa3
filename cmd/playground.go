package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/loadables/core"
	"github.com/josephlewis42/loadables/core/config"
	"github.com/josephlewis42/loadables/core/logger"
	"github.com/josephlewis42/loadables/core/ttylog"
	"github.com/josephlewis42/loadables/core/vos"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var playgroundRecord string

// playgroundConfig loads the configuration, falling back to a temporary
// directory when none was initialized. The returned cleanup must be called.
func playgroundConfig(logger *log.Logger) (*config.Configuration, func(), error) {
	cfg, err := config.Load(cfgPath)
	if !errors.Is(err, fs.ErrNotExist) {
		return cfg, func() {}, err
	}

	dir, err := os.MkdirTemp("", "playground")
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { os.RemoveAll(dir) }

	if err := config.Initialize(dir, logger); err != nil {
		cleanup()
		return nil, nil, err
	}
	cfg, err = config.Load(dir)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return cfg, cleanup, nil
}

// playgroundFs exposes the host filesystem read-only, writes stay in memory.
func playgroundFs() afero.Fs {
	return afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(afero.NewOsFs()), afero.NewMemMapFs())
}

// playgroundCmd runs the shell over the local OS for testing
var playgroundCmd = &cobra.Command{
	Use:   "playground",
	Short: "Run builtins in an interactive shell.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		playgroundLogger := log.New(cmd.ErrOrStderr(), "[playground] ", 0)
		cfg, cleanup, err := playgroundConfig(playgroundLogger)
		if err != nil {
			return err
		}
		defer cleanup()

		logFd, err := cfg.OpenEventLog()
		if err != nil {
			return err
		}
		defer logFd.Close()
		eventLogger := logger.NewJSONLinesLogRecorder(logFd)

		var (
			stdin  io.Reader = os.Stdin
			stdout io.Writer = os.Stdout
			stderr io.Writer = os.Stderr
		)
		if playgroundRecord != "" {
			recording, err := os.Create(playgroundRecord)
			if err != nil {
				return err
			}
			defer recording.Close()

			recorder := ttylog.NewRecorder(ttylog.NewAsciicastLogSink(recording, 80, 24))
			stdin = recorder.Reader(ttylog.FDStdin, stdin)
			stdout = recorder.Writer(ttylog.FDStdout, stdout)
			stderr = recorder.Writer(ttylog.FDStderr, stderr)
			playgroundLogger.Printf("Recording to: %s\n", playgroundRecord)
		}

		playgroundLogger.Printf("Logging events to: %s\n", cfg.Path(cfg.EventLog))
		playgroundLogger.Println(strings.Repeat("=", 80))

		isPTY := colorEnabled(cfg.Color, os.Stderr)
		rl, err := readline.NewEx(&readline.Config{
			Prompt:      cfg.Prompt,
			HistoryFile: cfg.HistoryPath(),
			Stdin:       readline.NewCancelableStdin(stdin),
			Stdout:      stdout,
			Stderr:      stderr,
		})
		if err != nil {
			return err
		}
		defer rl.Close()

		shell := core.NewShell(cfg, vos.ProcAttr{
			Pid:    os.Getpid(),
			Stdin:  stdin,
			Stdout: stdout,
			Stderr: stderr,
			FS:     playgroundFs(),
			PTY: vos.PTY{
				Term:  os.Getenv("TERM"),
				IsPTY: isPTY,
			},
		}, rl, eventLogger.NewSession())
		defer shell.Close()

		exitCode := shell.Run()
		fmt.Fprintf(cmd.OutOrStdout(), "Exit code: %d\n", exitCode)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playgroundCmd)

	playgroundCmd.Flags().StringVar(&playgroundRecord, "record", "", "record the session to an asciicast file")
}
